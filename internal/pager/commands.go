package pager

import "strings"

// command runs a named command and reports whether the session should end
type command func(m *Model) bool

var commands = map[string]command{
	"q": func(*Model) bool { return true },
	"z": func(m *Model) bool {
		m.showHighlighter = !m.showHighlighter
		return false
	},
	"p": func(m *Model) bool {
		m.showProgress = !m.showProgress
		return false
	},
	"help":     openTutorial,
	"tutorial": openTutorial,
}

func openTutorial(m *Model) bool {
	m.openTutorial()
	return false
}

// ExecuteCommand runs a command line as typed after ':'. A leading ':' is
// accepted too. Unknown commands do nothing. It returns true when the
// command ends the session.
func (m *Model) ExecuteCommand(line string) bool {
	name := strings.TrimSpace(line)
	name = strings.TrimSpace(strings.TrimPrefix(name, ":"))

	cmd, ok := commands[name]
	if !ok {
		return false
	}
	return cmd(m)
}

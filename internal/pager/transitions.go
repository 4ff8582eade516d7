package pager

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeCommand
	ModeSearch
	ModeReverseSearch
)

func (m Mode) String() string {
	switch m {
	case ModeCommand:
		return "command"
	case ModeSearch:
		return "search"
	case ModeReverseSearch:
		return "reverse-search"
	default:
		return "normal"
	}
}

// textEntry reports whether keys in this mode edit the prompt
func (m Mode) textEntry() bool {
	return m != ModeNormal
}

// prefix is the character shown before the prompt buffer
func (m Mode) prefix() string {
	switch m {
	case ModeCommand:
		return ":"
	case ModeSearch:
		return "/"
	case ModeReverseSearch:
		return "?"
	}
	return ""
}

type action int

const (
	actNone action = iota
	actScrollDown
	actScrollUp
	actPageDown
	actPageUp
	actEnterCommand
	actEnterSearch
	actEnterReverseSearch
	actNextMatch
	actPrevMatch
	actQuit
	actCancel
	actSubmit
	actDelete
	actInsert
)

type handler func(m *Model, msg tea.KeyMsg) tea.Cmd

// transitions lists every action each mode accepts. Anything missing is
// ignored.
var transitions = map[Mode]map[action]handler{
	ModeNormal: {
		actScrollDown:         func(m *Model, _ tea.KeyMsg) tea.Cmd { m.vp.ScrollDown(); return nil },
		actScrollUp:           func(m *Model, _ tea.KeyMsg) tea.Cmd { m.vp.ScrollUp(); return nil },
		actPageDown:           func(m *Model, _ tea.KeyMsg) tea.Cmd { m.vp.PageDown(); return nil },
		actPageUp:             func(m *Model, _ tea.KeyMsg) tea.Cmd { m.vp.PageUp(); return nil },
		actEnterCommand:       enterMode(ModeCommand),
		actEnterSearch:        enterMode(ModeSearch),
		actEnterReverseSearch: enterMode(ModeReverseSearch),
		actNextMatch:          func(m *Model, _ tea.KeyMsg) tea.Cmd { m.repeatSearch(m.forward); return nil },
		actPrevMatch:          func(m *Model, _ tea.KeyMsg) tea.Cmd { m.repeatSearch(!m.forward); return nil },
		actQuit:               quit,
	},
	ModeCommand: {
		actCancel: cancel,
		actDelete: edit,
		actInsert: edit,
		actSubmit: submitCommand,
		actQuit:   quit,
	},
	ModeSearch: {
		actCancel: cancel,
		actDelete: edit,
		actInsert: edit,
		actSubmit: submitSearch,
		actQuit:   quit,
	},
	ModeReverseSearch: {
		actCancel: cancel,
		actDelete: edit,
		actInsert: edit,
		actSubmit: submitSearch,
		actQuit:   quit,
	},
}

// resolve maps a key press to an action for the current mode
func (m *Model) resolve(msg tea.KeyMsg) action {
	if key.Matches(msg, interrupt) {
		return actQuit
	}

	if m.mode.textEntry() {
		switch msg.Type {
		case tea.KeyEsc:
			return actCancel
		case tea.KeyEnter:
			return actSubmit
		case tea.KeyBackspace:
			return actDelete
		case tea.KeyRunes, tea.KeySpace:
			return actInsert
		}
		return actNone
	}

	switch {
	case key.Matches(msg, m.keys.ScrollDown):
		return actScrollDown
	case key.Matches(msg, m.keys.ScrollUp):
		return actScrollUp
	case key.Matches(msg, m.keys.PageDown):
		return actPageDown
	case key.Matches(msg, m.keys.PageUp):
		return actPageUp
	case key.Matches(msg, m.keys.Command):
		return actEnterCommand
	case key.Matches(msg, m.keys.Search):
		return actEnterSearch
	case key.Matches(msg, m.keys.ReverseSearch):
		return actEnterReverseSearch
	case key.Matches(msg, m.keys.NextMatch):
		return actNextMatch
	case key.Matches(msg, m.keys.PrevMatch):
		return actPrevMatch
	case key.Matches(msg, m.keys.Quit):
		return actQuit
	}
	return actNone
}

// dispatch runs the transition for msg, if the current mode has one
func (m *Model) dispatch(msg tea.KeyMsg) tea.Cmd {
	h, ok := transitions[m.mode][m.resolve(msg)]
	if !ok {
		return nil
	}
	return h(m, msg)
}

func enterMode(mode Mode) handler {
	return func(m *Model, _ tea.KeyMsg) tea.Cmd {
		m.mode = mode
		switch mode {
		case ModeSearch:
			m.forward = true
		case ModeReverseSearch:
			m.forward = false
		}
		m.prompt.Reset()
		m.prompt.Prompt = mode.prefix()
		m.prompt.Focus()
		return nil
	}
}

func cancel(m *Model, _ tea.KeyMsg) tea.Cmd {
	m.toNormal()
	return nil
}

// edit hands insert and backspace to the prompt input. Its cursor is not
// drawn, so blink commands are dropped.
func edit(m *Model, msg tea.KeyMsg) tea.Cmd {
	m.prompt, _ = m.prompt.Update(msg)
	return nil
}

func submitCommand(m *Model, _ tea.KeyMsg) tea.Cmd {
	line := m.prompt.Value()
	m.toNormal()
	if m.ExecuteCommand(line) {
		return m.quit()
	}
	return nil
}

func submitSearch(m *Model, _ tea.KeyMsg) tea.Cmd {
	m.query = m.prompt.Value()
	m.findNext(m.mode == ModeSearch)
	m.centerOnMatch()
	m.toNormal()
	return nil
}

func quit(m *Model, _ tea.KeyMsg) tea.Cmd {
	return m.quit()
}

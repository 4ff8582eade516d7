package pager

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimelordUK/mread/internal/render"
)

var tutorialIntro = []string{
	"Welcome to mread!",
	"",
	"Your position is saved as you read and restored the next time",
	"you open the same text, even from a different file.",
	"",
	"Keys:",
}

var tutorialCommands = []string{
	"",
	"Commands:",
	"  :z          toggle the line highlighter",
	"  :p          toggle the percentage indicator",
	"  :help       show this screen again",
	"  :q          quit",
	"",
	"Press any other key to continue...",
}

// tutorial is the scrollable help overlay
type tutorial struct {
	vp     viewport.Model
	lines  []string
	column int
}

func tutorialText(keys KeyMap) []string {
	h := help.New()
	ref := strings.Split(h.FullHelpView(keys.FullHelp()), "\n")

	lines := make([]string, 0, len(tutorialIntro)+len(ref)+len(tutorialCommands))
	lines = append(lines, tutorialIntro...)
	for _, l := range ref {
		lines = append(lines, "  "+l)
	}
	return append(lines, tutorialCommands...)
}

func newTutorial(keys KeyMap, width, height, column int) *tutorial {
	t := &tutorial{
		vp:     viewport.New(width, height),
		lines:  tutorialText(keys),
		column: column,
	}
	t.layout()
	return t
}

func (t *tutorial) setSize(width, height int) {
	t.vp.Width = width
	t.vp.Height = height
	t.layout()
}

func (t *tutorial) layout() {
	pad := strings.Repeat(" ", render.CenterPad(t.vp.Width, t.column))
	centered := make([]string, len(t.lines))
	for i, l := range t.lines {
		centered[i] = pad + l
	}
	t.vp.SetContent(strings.Join(centered, "\n"))
}

// update scrolls on navigation keys. Any other key closes the overlay,
// reported by returning false.
func (t *tutorial) update(keys KeyMap, msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, keys.ScrollDown):
		t.vp.SetYOffset(t.vp.YOffset + 1)
	case key.Matches(msg, keys.ScrollUp):
		t.vp.SetYOffset(t.vp.YOffset - 1)
	case key.Matches(msg, keys.PageDown):
		t.vp.SetYOffset(t.vp.YOffset + t.vp.Height)
	case key.Matches(msg, keys.PageUp):
		t.vp.SetYOffset(t.vp.YOffset - t.vp.Height)
	default:
		return false
	}
	return true
}

func (t *tutorial) view() string {
	return t.vp.View()
}

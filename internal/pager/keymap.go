package pager

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/TimelordUK/mread/internal/config"
)

// KeyMap holds the normal mode bindings
type KeyMap struct {
	ScrollUp      key.Binding
	ScrollDown    key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Command       key.Binding
	Search        key.Binding
	ReverseSearch key.Binding
	NextMatch     key.Binding
	PrevMatch     key.Binding
	Quit          key.Binding
}

// interrupt ends the session from any mode, including text entry
var interrupt = key.NewBinding(key.WithKeys("ctrl+c"))

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// NewKeyMap builds bindings from the keybinding config
func NewKeyMap(cfg config.KeybindingConfig) KeyMap {
	return KeyMap{
		ScrollUp:      binding(cfg.ScrollUp, "up one line"),
		ScrollDown:    binding(cfg.ScrollDown, "down one line"),
		PageUp:        binding(cfg.PageUp, "up one page"),
		PageDown:      binding(cfg.PageDown, "down one page"),
		Command:       binding(cfg.Command, "command"),
		Search:        binding(cfg.Search, "search forward"),
		ReverseSearch: binding(cfg.ReverseSearch, "search backward"),
		NextMatch:     binding(cfg.NextMatch, "next match"),
		PrevMatch:     binding(cfg.PrevMatch, "previous match"),
		Quit:          binding(cfg.Quit, "quit"),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ScrollDown, k.ScrollUp, k.Search, k.Command}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ScrollDown, k.ScrollUp, k.PageDown, k.PageUp},
		{k.Search, k.ReverseSearch, k.NextMatch, k.PrevMatch},
		{k.Command, k.Quit},
	}
}

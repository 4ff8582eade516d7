// Package pager is the interactive reading loop: a bubbletea model that owns
// the scroll position and input mode, and records progress after every
// event.
package pager

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimelordUK/mread/internal/config"
	"github.com/TimelordUK/mread/internal/logger"
	"github.com/TimelordUK/mread/internal/progress"
	"github.com/TimelordUK/mread/internal/render"
	"github.com/TimelordUK/mread/internal/search"
	"github.com/TimelordUK/mread/internal/source"
	"github.com/TimelordUK/mread/internal/view"
)

// Store is where reading positions are kept
type Store interface {
	Record(hash uint64, offset, total int) error
	Latest(hash uint64) (progress.Event, bool, error)
}

// Model is the pager state
type Model struct {
	doc    *source.Buffer
	vp     *view.Viewport
	column int

	keys   KeyMap
	styles render.Styles
	prompt textinput.Model
	mode   Mode

	// Search state
	query   string
	forward bool
	match   *search.Match

	showHighlighter bool
	showProgress    bool

	tutorial *tutorial
	// quitAfterTutorial ends the session when the overlay closes
	quitAfterTutorial bool

	store      Store
	persistErr error
	quitting   bool
}

// NewModel creates a pager over doc at the given size
func NewModel(doc *source.Buffer, cfg *config.Config, store Store, column, width, height int) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if column <= 0 {
		column = cfg.Reader.Column
	}

	ti := textinput.New()
	ti.CharLimit = 256

	vp := view.NewViewport(width, height)
	vp.SetTotal(doc.LineCount())

	return &Model{
		doc:             doc,
		vp:              vp,
		column:          column,
		keys:            NewKeyMap(cfg.Keybindings),
		styles:          render.NewStyles(cfg.Theme),
		prompt:          ti,
		mode:            ModeNormal,
		forward:         true,
		showHighlighter: cfg.Reader.EnableLineHighlighter,
		showProgress:    cfg.Reader.ShowProgress,
		store:           store,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.tutorial != nil {
			cmd = m.updateTutorial(msg)
		} else {
			cmd = m.dispatch(msg)
		}

	case tea.WindowSizeMsg:
		m.vp.SetSize(msg.Width, msg.Height)
		if m.tutorial != nil {
			m.tutorial.setSize(msg.Width, msg.Height)
		}

	default:
		return m, nil
	}

	m.persist()
	return m, cmd
}

func (m *Model) updateTutorial(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, interrupt) {
		return m.quit()
	}
	if m.tutorial.update(m.keys, msg) {
		return nil
	}
	m.tutorial = nil
	if m.quitAfterTutorial {
		return m.quit()
	}
	return nil
}

// View implements tea.Model
func (m *Model) View() string {
	if m.tutorial != nil {
		return m.tutorial.view()
	}
	return render.Render(m.frame(), m.styles)
}

func (m *Model) frame() render.Frame {
	f := render.Frame{
		Doc:             m.doc,
		Offset:          m.vp.Offset(),
		Width:           m.vp.Width(),
		Height:          m.vp.Height(),
		Column:          m.column,
		Match:           m.match,
		ShowHighlighter: m.showHighlighter,
		ShowProgress:    m.showProgress,
		Percent:         m.vp.Percent(),
	}
	if m.mode.textEntry() {
		f.Prompt = m.mode.prefix() + m.prompt.Value()
	}
	return f
}

// persist records the current offset. Failures are logged and kept for
// inspection; they never stop the session.
func (m *Model) persist() {
	if m.store == nil || m.doc.Empty() {
		return
	}
	if err := m.store.Record(m.doc.Hash(), m.vp.Offset(), m.vp.Total()); err != nil {
		logger.Warn("saving progress: %v", err)
		m.persistErr = err
		return
	}
	m.persistErr = nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}

func (m *Model) toNormal() {
	m.mode = ModeNormal
	m.prompt.Reset()
	m.prompt.Blur()
}

func (m *Model) openTutorial() {
	m.tutorial = newTutorial(m.keys, m.vp.Width(), m.vp.Height(), m.column)
}

// findNext searches from the current match, or the top line when there is
// none. The previous match is kept when nothing is found.
func (m *Model) findNext(forward bool) {
	if m.query == "" {
		return
	}
	start := m.vp.Offset()
	if m.match != nil {
		start = m.match.Line
	}
	if found, ok := search.Find(m.doc.All(), m.query, start, forward); ok {
		m.match = &found
	}
}

func (m *Model) centerOnMatch() {
	if m.match != nil {
		m.vp.CenterOn(m.match.Line)
	}
}

func (m *Model) repeatSearch(forward bool) {
	if m.query == "" {
		return
	}
	m.findNext(forward)
	m.centerOnMatch()
}

// Mode returns the current input mode
func (m *Model) Mode() Mode { return m.mode }

// Offset returns the top line of the viewport
func (m *Model) Offset() int { return m.vp.Offset() }

// Match returns the current search match, if any
func (m *Model) Match() (search.Match, bool) {
	if m.match == nil {
		return search.Match{}, false
	}
	return *m.match, true
}

// ShowHighlighter reports whether the line highlighter is drawn
func (m *Model) ShowHighlighter() bool { return m.showHighlighter }

// ShowProgress reports whether the percentage indicator is drawn
func (m *Model) ShowProgress() bool { return m.showProgress }

// TutorialOpen reports whether the help overlay is showing
func (m *Model) TutorialOpen() bool { return m.tutorial != nil }

// Quitting reports whether a quit has been requested
func (m *Model) Quitting() bool { return m.quitting }

// PersistErr returns the last progress write error, cleared on success
func (m *Model) PersistErr() error { return m.persistErr }

package pager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/TimelordUK/mread/internal/config"
	"github.com/TimelordUK/mread/internal/logger"
	"github.com/TimelordUK/mread/internal/render"
	"github.com/TimelordUK/mread/internal/source"
)

// plainHeight is the page printed when output has no terminal size
const plainHeight = 24

var (
	termIsTerminal = term.IsTerminal
	termGetSize    = term.GetSize
)

// Options configures a reading session
type Options struct {
	Config *config.Config
	Store  Store
	// Column is the width the document was wrapped to; 0 uses the config
	Column int

	Output io.Writer
	// Input overrides where keys are read from
	Input io.Reader
	// InputTTY reads keys from the controlling terminal, for when stdin
	// carried the document
	InputTTY bool
}

func fileDescriptor(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	return int(f.Fd()), true
}

// Run reads doc until the user quits. When the output is not a terminal
// one page is printed from the resumed position and Run returns.
func Run(ctx context.Context, doc *source.Buffer, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	offset, resumed := resumeOffset(doc, opts.Store)

	fd, isFile := fileDescriptor(out)
	if !isFile || !termIsTerminal(fd) {
		height := plainHeight
		if isFile {
			if _, h, err := termGetSize(fd); err == nil && h > 0 {
				height = h
			}
		}
		logger.Debug("output is not a terminal, printing %d lines from %d", height, offset)
		return render.RenderPlain(out, doc.Lines(offset, height))
	}

	width, height, err := termGetSize(fd)
	if err != nil {
		return fmt.Errorf("query terminal size: %w", err)
	}

	m := NewModel(doc, cfg, opts.Store, opts.Column, width, height)
	m.vp.SetOffset(offset)

	if cfg.Reader.EnableTutorial && (doc.Empty() || !resumed) {
		m.openTutorial()
		m.quitAfterTutorial = doc.Empty()
	}
	if doc.Empty() && m.tutorial == nil {
		logger.Info("empty document, nothing to show")
		return nil
	}

	popts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(out),
	}
	switch {
	case opts.Input != nil:
		popts = append(popts, tea.WithInput(opts.Input))
	case opts.InputTTY:
		popts = append(popts, tea.WithInputTTY())
	}

	if _, err := tea.NewProgram(m, popts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run pager: %w", err)
	}
	return nil
}

// resumeOffset looks up the last saved position for doc. Lookup failures
// fall back to the top.
func resumeOffset(doc *source.Buffer, store Store) (int, bool) {
	if store == nil || doc.Empty() {
		return 0, false
	}
	ev, ok, err := store.Latest(doc.Hash())
	if err != nil {
		logger.Warn("loading progress: %v", err)
		return 0, false
	}
	if !ok {
		return 0, false
	}

	offset := ev.Offset
	if offset >= doc.LineCount() {
		offset = doc.LineCount() - 1
	}
	if offset < 0 {
		offset = 0
	}
	logger.Debug("resuming at line %d (%.1f%%)", offset, ev.Percentage)
	return offset, true
}

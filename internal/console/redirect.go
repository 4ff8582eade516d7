// Package console redirects diagnostic output away from the terminal while
// the pager owns it. A Redirect holds the streams it replaced and puts them
// back on Release; nothing is kept in package state.
package console

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimelordUK/mread/internal/logger"
)

const logPrefix = "mread"

// Redirect is an acquired console redirection.
type Redirect struct {
	file *os.File
	path string

	prevStderr *os.File
	prevLog    io.Writer
	prevPrefix string
	prevLogger io.Writer
	released   bool
}

// Acquire points os.Stderr, the standard log package and the mread logger
// at the file at path, creating its directory if needed.
func Acquire(path string) (*Redirect, error) {
	if path == "" {
		return nil, fmt.Errorf("console redirect: empty log path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("console redirect: %w", err)
	}

	r := &Redirect{
		path:       path,
		prevStderr: os.Stderr,
		prevLog:    log.Writer(),
		prevPrefix: log.Prefix(),
		prevLogger: logger.Output(),
	}

	f, err := tea.LogToFile(path, logPrefix)
	if err != nil {
		return nil, fmt.Errorf("console redirect: %w", err)
	}
	r.file = f

	os.Stderr = f
	logger.SetOutput(f)
	return r, nil
}

// Path returns the file output is redirected to.
func (r *Redirect) Path() string {
	return r.path
}

// Release restores the replaced streams and closes the log file. It is safe
// to call more than once.
func (r *Redirect) Release() error {
	if r == nil || r.released {
		return nil
	}
	r.released = true

	os.Stderr = r.prevStderr
	log.SetOutput(r.prevLog)
	log.SetPrefix(r.prevPrefix)
	logger.SetOutput(r.prevLogger)
	return r.file.Close()
}

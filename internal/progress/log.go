// Package progress keeps the append-only reading position log. Every
// navigation step appends one JSON line; the current position of a document
// is the newest event for its hash.
package progress

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/TimelordUK/mread/internal/logger"
)

const maxRecordSize = 1024 * 1024

// Event is one recorded reading position
type Event struct {
	Timestamp    time.Time `json:"timestamp"`
	DocumentHash uint64    `json:"document_hash"`
	Offset       int       `json:"offset"`
	TotalLines   int       `json:"total_lines"`
	Percentage   float64   `json:"percentage"`
	SessionID    string    `json:"session_id,omitempty"`
}

// record is the on-disk shape. Older writers wrapped the event in an
// UpdateProgress envelope.
type record struct {
	Event
	Legacy *Event `json:"UpdateProgress,omitempty"`
}

// Error is a failed log read or write. The session can keep going and try
// again on the next step.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("progress %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether a later attempt may succeed
func (e *Error) Retryable() bool { return true }

// Option configures a Log
type Option func(*Log)

// WithSession stamps every recorded event with id
func WithSession(id string) Option {
	return func(l *Log) { l.session = id }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// Log is a JSONL progress store at a fixed path
type Log struct {
	mu      sync.Mutex
	path    string
	session string
	now     func() time.Time
}

// NewLog returns a log backed by path. Nothing is touched on disk until the
// first write.
func NewLog(path string, opts ...Option) *Log {
	l := &Log{path: path, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the backing file
func (l *Log) Path() string {
	return l.path
}

// Percentage is 100*offset/total, or 0 for an empty document
func Percentage(offset, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(offset) / float64(total)
}

// Record appends the current position of a document
func (l *Log) Record(hash uint64, offset, total int) error {
	return l.Append(Event{
		Timestamp:    l.now().UTC(),
		DocumentHash: hash,
		Offset:       offset,
		TotalLines:   total,
		Percentage:   Percentage(offset, total),
		SessionID:    l.session,
	})
}

// Append writes ev as a single line, creating the directory and file on
// first use.
func (l *Log) Append(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return &Error{Op: "encode", Path: l.path, Err: err}
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return &Error{Op: "append", Path: l.path, Err: err}
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &Error{Op: "append", Path: l.path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return &Error{Op: "append", Path: l.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Op: "append", Path: l.path, Err: err}
	}
	return nil
}

// Latest returns the newest event for hash. Ties on timestamp go to the
// event written last. A missing log is not an error.
func (l *Log) Latest(hash uint64) (Event, bool, error) {
	var (
		best  Event
		found bool
	)
	err := l.scan(func(ev Event) {
		if ev.DocumentHash != hash {
			return
		}
		if !found || !ev.Timestamp.Before(best.Timestamp) {
			best = ev
			found = true
		}
	})
	if err != nil {
		return Event{}, false, err
	}
	return best, found, nil
}

// History returns every event for hash in file order
func (l *Log) History(hash uint64) ([]Event, error) {
	var events []Event
	err := l.scan(func(ev Event) {
		if ev.DocumentHash == hash {
			events = append(events, ev)
		}
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (l *Log) scan(fn func(Event)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &Error{Op: "read", Path: l.path, Err: err}
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 64*1024)
	var line []byte
	lineNum := 0
	oversized := false
	for {
		chunk, more, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return &Error{Op: "read", Path: l.path, Err: err}
		}
		if !oversized {
			if len(line)+len(chunk) > maxRecordSize {
				oversized = true
				line = line[:0]
			} else {
				line = append(line, chunk...)
			}
		}
		if more {
			continue
		}

		lineNum++
		switch {
		case oversized:
			logger.Debug("progress: skipping record %d in %s: longer than %d bytes", lineNum, l.path, maxRecordSize)
		case len(line) > 0:
			if ev, err := decode(line); err != nil {
				logger.Debug("progress: skipping record %d in %s: %v", lineNum, l.path, err)
			} else {
				fn(ev)
			}
		}
		line = line[:0]
		oversized = false
	}
}

func decode(line []byte) (Event, error) {
	var rec record
	if err := json.Unmarshal(line, &rec); err != nil {
		return Event{}, err
	}
	ev := rec.Event
	if rec.Legacy != nil {
		ev = *rec.Legacy
	}
	if ev.Timestamp.IsZero() {
		return Event{}, errors.New("record has no timestamp")
	}
	return ev, nil
}

package source

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const maxLineSize = 1024 * 1024

// Stream collects lines from a reader on a producer goroutine. The pager
// takes one Snapshot at startup; the stream is not read again afterwards.
type Stream struct {
	mu    sync.Mutex
	lines []string

	done chan struct{}
	err  error
}

// NewStream starts reading r. Reading stops at EOF, on error, or when ctx
// is cancelled (checked between lines).
func NewStream(ctx context.Context, r io.Reader) *Stream {
	s := &Stream{done: make(chan struct{})}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)
		for scanner.Scan() {
			if err := gctx.Err(); err != nil {
				return err
			}
			s.mu.Lock()
			s.lines = append(s.lines, scanner.Text())
			s.mu.Unlock()
		}
		return scanner.Err()
	})

	go func() {
		err := g.Wait()
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.done)
	}()

	return s
}

// Snapshot waits until the reader is exhausted or wait elapses, then
// returns a copy of the lines read so far. The error is the producer's
// error if it finished with one.
func (s *Stream) Snapshot(wait time.Duration) ([]string, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-s.done:
	case <-timer.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out, s.err
}

// Done is closed once the producer has finished
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

package source

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"
)

// LineProvider is the read-only view of a document the pager and renderer use
type LineProvider interface {
	// LineCount returns total number of lines
	LineCount() int

	// Line returns the line at index (0-based), or "" when out of range
	Line(index int) string

	// Lines returns a range of lines, clamped to the document
	Lines(start, count int) []string
}

// Buffer is an immutable sequence of display lines together with its
// content-derived identity.
type Buffer struct {
	lines []string
	hash  uint64
}

// NewBuffer copies lines and hashes them. Identical content always yields
// the same hash, wherever it came from.
func NewBuffer(lines []string) (*Buffer, error) {
	owned := make([]string, len(lines))
	copy(owned, lines)

	h, err := hashstructure.Hash(owned, hashstructure.FormatV2, nil)
	if err != nil {
		return nil, fmt.Errorf("hash document: %w", err)
	}
	return &Buffer{lines: owned, hash: h}, nil
}

// Hash returns the document identity
func (b *Buffer) Hash() uint64 {
	return b.hash
}

// LineCount returns total number of lines
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Empty reports whether the document has no lines
func (b *Buffer) Empty() bool {
	return len(b.lines) == 0
}

// Line returns the line at index
func (b *Buffer) Line(index int) string {
	if index < 0 || index >= len(b.lines) {
		return ""
	}
	return b.lines[index]
}

// Lines returns up to count lines starting at start
func (b *Buffer) Lines(start, count int) []string {
	if start < 0 {
		start = 0
	}
	if start >= len(b.lines) || count <= 0 {
		return nil
	}
	end := start + count
	if end > len(b.lines) {
		end = len(b.lines)
	}
	return b.lines[start:end]
}

// All returns every line. Callers must not modify the result.
func (b *Buffer) All() []string {
	return b.lines
}

// Package search finds case-insensitive substring matches in a line
// sequence, wrapping around the ends of the document.
package search

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Match locates a hit as byte offsets within one line
type Match struct {
	Line  int
	Start int
	End   int
}

// Find looks for query starting after start in the given direction.
// Forward scans start+1 to the end, then 0 to start inclusive. Backward
// scans start-1 down to 0, then the last line down to start inclusive.
// An empty query or document never matches.
func Find(lines []string, query string, start int, forward bool) (Match, bool) {
	if query == "" || len(lines) == 0 {
		return Match{}, false
	}
	if start < 0 {
		start = 0
	}
	if start >= len(lines) {
		start = len(lines) - 1
	}

	f := newFolder(query)
	n := len(lines)
	for step := 1; step <= n; step++ {
		var i int
		if forward {
			i = (start + step) % n
		} else {
			i = (start - step + n) % n
		}
		if s, e := f.index(lines[i]); s >= 0 {
			return Match{Line: i, Start: s, End: e}, true
		}
	}
	return Match{}, false
}

// folder compares runes by their case folding. Matching is rune for rune,
// so a hit always spans whole runes of the line and its offsets point into
// the line as given.
type folder struct {
	caser cases.Caser
	query []string
}

func newFolder(query string) *folder {
	f := &folder{caser: cases.Fold()}
	for _, r := range query {
		f.query = append(f.query, f.fold(r))
	}
	return f
}

func (f *folder) fold(r rune) string {
	if r < utf8.RuneSelf {
		if 'A' <= r && r <= 'Z' {
			r += 'a' - 'A'
		}
		return string(r)
	}
	return f.caser.String(string(r))
}

// index returns the byte range of the first match in line, or -1, -1.
func (f *folder) index(line string) (int, int) {
	for start := range line {
		if end, ok := f.matchAt(line, start); ok {
			return start, end
		}
	}
	return -1, -1
}

func (f *folder) matchAt(line string, start int) (int, bool) {
	pos := start
	for _, want := range f.query {
		if pos >= len(line) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(line[pos:])
		if f.fold(r) != want {
			return 0, false
		}
		pos += size
	}
	return pos, true
}

// Package render projects pager state onto terminal rows. Render is a pure
// function of its Frame; nothing here touches the terminal.
package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/TimelordUK/mread/internal/search"
	"github.com/TimelordUK/mread/internal/source"
)

// Frame is everything needed to draw one screen
type Frame struct {
	Doc    source.LineProvider
	Offset int
	Width  int
	Height int
	// Column is the width the document was wrapped to
	Column int

	Match           *search.Match
	ShowHighlighter bool
	ShowProgress    bool
	Percent         float64

	// Prompt is the status row text including its ':', '/' or '?' prefix.
	// Empty means no status row.
	Prompt string
}

type span struct {
	text   string
	style  lipgloss.Style
	styled bool
}

type row []span

// CenterPad is the left padding that centers a column-wide block
func CenterPad(width, column int) int {
	if column >= width {
		return 0
	}
	return (width - column) / 2
}

// Render draws the visible window lines[offset:offset+height] as height rows
func Render(f Frame, st Styles) string {
	if f.Width <= 0 || f.Height <= 0 {
		return ""
	}

	pad := strings.Repeat(" ", CenterPad(f.Width, f.Column))
	highlightRow := f.Height / 2
	total := 0
	if f.Doc != nil {
		total = f.Doc.LineCount()
	}

	rows := make([]string, f.Height)
	for r := 0; r < f.Height; r++ {
		lineIdx := f.Offset + r

		var spans row
		if lineIdx < total {
			spans = append(spans, span{text: pad})
			spans = append(spans, lineSpans(f.Doc.Line(lineIdx), lineIdx, f.Match, st)...)
		}

		highlighted := f.ShowHighlighter && r == highlightRow
		if highlighted {
			spans = spans.fill(f.Width).under(st.Highlighter)
		}

		if f.ShowProgress && r == f.Height-2 {
			text := fmt.Sprintf("%.0f%%", math.Round(f.Percent))
			x := f.Width - len(text) - 2
			if x >= 0 {
				spans = spans.truncate(x).fill(x)
				spans = append(spans, span{text: text, style: st.Progress, styled: true})
			}
		}

		if f.Prompt != "" && r == f.Height-1 {
			spans = row{{text: f.Prompt, style: st.Status, styled: true}}.truncate(f.Width)
			spans = spans.fill(f.Width).under(st.Status)
		}

		rows[r] = spans.truncate(f.Width).String()
	}
	return strings.Join(rows, "\n")
}

// lineSpans splits a line into before/match/after when the match is on it
func lineSpans(text string, lineIdx int, m *search.Match, st Styles) row {
	if m == nil || m.Line != lineIdx {
		return row{{text: text}}
	}

	start, end := clamp(m.Start, 0, len(text)), clamp(m.End, 0, len(text))
	if start > end {
		start = end
	}
	return row{
		{text: text[:start]},
		{text: text[start:end], style: st.Match, styled: true},
		{text: text[end:]},
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (r row) width() int {
	w := 0
	for _, s := range r {
		w += runewidth.StringWidth(s.text)
	}
	return w
}

// truncate cuts the row to at most w display columns
func (r row) truncate(w int) row {
	out := make(row, 0, len(r))
	remaining := w
	for _, s := range r {
		if remaining <= 0 {
			break
		}
		sw := runewidth.StringWidth(s.text)
		if sw > remaining {
			s.text = runewidth.Truncate(s.text, remaining, "")
			sw = runewidth.StringWidth(s.text)
		}
		out = append(out, s)
		remaining -= sw
	}
	return out
}

// fill pads the row with spaces up to w display columns
func (r row) fill(w int) row {
	if gap := w - r.width(); gap > 0 {
		r = append(r, span{text: strings.Repeat(" ", gap)})
	}
	return r
}

// under gives unstyled spans the background style
func (r row) under(bg lipgloss.Style) row {
	out := make(row, len(r))
	for i, s := range r {
		if !s.styled {
			s.style = bg
			s.styled = true
		}
		out[i] = s
	}
	return out
}

func (r row) String() string {
	var b strings.Builder
	for _, s := range r {
		if s.text == "" {
			continue
		}
		if s.styled {
			b.WriteString(s.style.Render(s.text))
		} else {
			b.WriteString(s.text)
		}
	}
	return b.String()
}

// RenderPlain prints lines one per row with no cursor control
func RenderPlain(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

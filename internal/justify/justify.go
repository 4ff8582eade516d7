// Package justify lays out plain text as fully justified lines of a fixed
// width. Paragraphs are separated by blank lines in the input and output.
package justify

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Justify wraps text to width columns. Every line of a paragraph but the
// last is padded to exactly width by widening the gaps between words, the
// leftmost gaps first. Words longer than width are split. A blank line
// follows each paragraph.
func Justify(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, para := range strings.Split(text, "\n\n") {
		words := splitLongWords(strings.Fields(para), width)
		if len(words) > 0 {
			wrapped := strings.Split(wordwrap.String(strings.Join(words, " "), width), "\n")
			for i, line := range wrapped {
				if i < len(wrapped)-1 {
					line = justifyLine(strings.Fields(line), width)
				}
				lines = append(lines, strings.TrimRight(line, " "))
			}
		}
		lines = append(lines, "")
	}
	return lines
}

func splitLongWords(words []string, width int) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if runewidth.StringWidth(w) <= width {
			out = append(out, w)
			continue
		}
		out = append(out, strings.Split(wrap.String(w, width), "\n")...)
	}
	return out
}

func justifyLine(words []string, width int) string {
	if len(words) < 2 {
		return strings.Join(words, "")
	}

	used := 0
	for _, w := range words {
		used += runewidth.StringWidth(w)
	}
	gaps := len(words) - 1
	spaces := width - used
	if spaces < gaps {
		return strings.Join(words, " ")
	}
	each, extra := spaces/gaps, spaces%gaps

	var b strings.Builder
	for i, w := range words {
		b.WriteString(w)
		if i < gaps {
			n := each
			if i < extra {
				n++
			}
			b.WriteString(strings.Repeat(" ", n))
		}
	}
	return b.String()
}

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/mread/internal/config"
	"github.com/TimelordUK/mread/internal/search"
	"github.com/TimelordUK/mread/internal/source"
)

func doc(t *testing.T, lines ...string) *source.Buffer {
	t.Helper()
	buf, err := source.NewBuffer(lines)
	require.NoError(t, err)
	return buf
}

func plainRows(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

var testStyles = NewStyles(config.DefaultConfig().Theme)

func TestCenterPad(t *testing.T) {
	assert.Equal(t, 10, CenterPad(40, 20))
	assert.Equal(t, 0, CenterPad(20, 40))
	assert.Equal(t, 0, CenterPad(20, 20))
	assert.Equal(t, 1, CenterPad(23, 20))
}

func TestRenderVisibleWindow(t *testing.T) {
	out := Render(Frame{
		Doc:    doc(t, "one", "two", "three", "four", "five"),
		Offset: 1,
		Width:  20,
		Height: 3,
		Column: 10,
	}, testStyles)

	rows := plainRows(out)
	require.Len(t, rows, 3)
	assert.Equal(t, "     two", rows[0])
	assert.Equal(t, "     three", rows[1])
	assert.Equal(t, "     four", rows[2])
}

func TestRenderPastEndLeavesBlankRows(t *testing.T) {
	rows := plainRows(Render(Frame{
		Doc:    doc(t, "a", "b"),
		Offset: 1,
		Width:  10,
		Height: 3,
		Column: 10,
	}, testStyles))

	assert.Equal(t, []string{"b", "", ""}, rows)
}

func TestRenderHighlighterFillsRow(t *testing.T) {
	rows := plainRows(Render(Frame{
		Doc:             doc(t, "a", "b", "c"),
		Width:           8,
		Height:          3,
		Column:          8,
		ShowHighlighter: true,
	}, testStyles))

	assert.Equal(t, "a", rows[0])
	assert.Equal(t, "b       ", rows[1])
	assert.Equal(t, "c", rows[2])
}

func TestRenderHighlighterOnEmptyRow(t *testing.T) {
	rows := plainRows(Render(Frame{
		Doc:             doc(t, "a"),
		Width:           6,
		Height:          5,
		Column:          6,
		ShowHighlighter: true,
	}, testStyles))

	assert.Equal(t, "      ", rows[2])
}

func TestRenderMatchKeepsText(t *testing.T) {
	lines := []string{"alpha", "beta", "gamma"}
	m, ok := search.Find(lines, "MM", 0, true)
	require.True(t, ok)

	out := Render(Frame{
		Doc:    doc(t, lines...),
		Width:  5,
		Height: 3,
		Column: 5,
		Match:  &m,
	}, testStyles)

	assert.Equal(t, "gamma", plainRows(out)[2])
}

func TestLineSpansSplitsMatch(t *testing.T) {
	spans := lineSpans("hello world", 4, &search.Match{Line: 4, Start: 6, End: 11}, testStyles)
	require.Len(t, spans, 3)
	assert.Equal(t, "hello ", spans[0].text)
	assert.Equal(t, "world", spans[1].text)
	assert.True(t, spans[1].styled)
	assert.Equal(t, "", spans[2].text)

	other := lineSpans("hello", 3, &search.Match{Line: 4}, testStyles)
	assert.Len(t, other, 1)

	clamped := lineSpans("abc", 0, &search.Match{Line: 0, Start: 2, End: 99}, testStyles)
	assert.Equal(t, "c", clamped[1].text)
}

func TestRenderProgressIndicator(t *testing.T) {
	rows := plainRows(Render(Frame{
		Doc:          doc(t, "one", "two", "three", "four", "five"),
		Offset:       2,
		Width:        12,
		Height:       4,
		Column:       12,
		ShowProgress: true,
		Percent:      40,
	}, testStyles))

	assert.Equal(t, "three", rows[0])
	assert.Equal(t, "five   40%", rows[2])
}

func TestRenderProgressRoundsHalfUp(t *testing.T) {
	for percent, want := range map[float64]string{0.5: "1%", 12.5: "13%", 99.5: "100%", 12.4: "12%"} {
		rows := plainRows(Render(Frame{
			Doc:          doc(t, "one", "two", "three", "four", "five"),
			Offset:       2,
			Width:        12,
			Height:       4,
			Column:       12,
			ShowProgress: true,
			Percent:      percent,
		}, testStyles))

		assert.Equal(t, "five", strings.TrimSpace(strings.TrimSuffix(rows[2], want)), "percent %v", percent)
	}
}

func TestRenderPrompt(t *testing.T) {
	rows := plainRows(Render(Frame{
		Doc:    doc(t, "one", "two", "three"),
		Width:  6,
		Height: 3,
		Column: 6,
		Prompt: "/tw",
	}, testStyles))

	assert.Equal(t, "one", rows[0])
	assert.Equal(t, "/tw   ", rows[2])
}

func TestRenderTruncatesWideLines(t *testing.T) {
	rows := plainRows(Render(Frame{
		Doc:    doc(t, "abcdefghij", "日本語テキスト"),
		Width:  5,
		Height: 2,
		Column: 5,
	}, testStyles))

	assert.Equal(t, "abcde", rows[0])
	assert.Equal(t, "日本", rows[1])
}

func TestRenderDegenerateSize(t *testing.T) {
	assert.Empty(t, Render(Frame{Doc: doc(t, "a"), Width: 0, Height: 3}, testStyles))
	assert.Empty(t, Render(Frame{Doc: doc(t, "a"), Width: 3, Height: 0}, testStyles))
}

func TestRenderPlain(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderPlain(&out, []string{"three", "four", "five"}))
	assert.Equal(t, "three\nfour\nfive\n", out.String())
}

package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func newViewport(total, width, height int) *Viewport {
	v := NewViewport(width, height)
	v.SetTotal(total)
	return v
}

func TestNewViewportIsEmptyUntilSetTotal(t *testing.T) {
	v := NewViewport(80, 10)
	assert.Zero(t, v.Total())
	v.SetOffset(5)
	assert.Zero(t, v.Offset())

	v.SetTotal(10)
	v.SetOffset(5)
	assert.Equal(t, 5, v.Offset())
}

func TestScrollDownNoRoom(t *testing.T) {
	v := newViewport(10, 80, 10)
	v.ScrollDown()
	assert.Equal(t, 0, v.Offset())
}

func TestScrollDownStopsAtLastPage(t *testing.T) {
	v := newViewport(10, 80, 5)
	for i := 0; i < 20; i++ {
		v.ScrollDown()
	}
	assert.Equal(t, 5, v.Offset())
}

func TestScrollUpStopsAtTop(t *testing.T) {
	v := newViewport(10, 80, 5)
	v.ScrollDown()
	v.ScrollUp()
	v.ScrollUp()
	assert.Equal(t, 0, v.Offset())
}

func TestPaging(t *testing.T) {
	v := newViewport(100, 80, 20)

	v.PageDown()
	assert.Equal(t, 17, v.Offset())
	v.PageDown()
	assert.Equal(t, 34, v.Offset())

	v.PageUp()
	assert.Equal(t, 17, v.Offset())
	v.PageUp()
	assert.Equal(t, 0, v.Offset())

	v.SetOffset(10)
	v.PageUp()
	assert.Equal(t, 0, v.Offset())
}

func TestPageDownClampsToLastPage(t *testing.T) {
	v := newViewport(30, 80, 20)
	v.PageDown()
	assert.Equal(t, 10, v.Offset())
	v.PageDown()
	assert.Equal(t, 10, v.Offset())
}

func TestPageStepTinyViewport(t *testing.T) {
	v := newViewport(10, 80, 2)
	v.PageDown()
	assert.Equal(t, 1, v.Offset())
}

func TestCenterOn(t *testing.T) {
	v := newViewport(100, 80, 10)

	v.CenterOn(50)
	assert.Equal(t, 45, v.Offset())

	v.CenterOn(2)
	assert.Equal(t, 0, v.Offset())

	v.CenterOn(98)
	assert.Equal(t, 90, v.Offset())

	short := newViewport(4, 80, 10)
	short.CenterOn(3)
	assert.Equal(t, 0, short.Offset())
}

func TestSetSizeKeepsOffset(t *testing.T) {
	v := newViewport(10, 80, 5)
	v.SetOffset(5)
	v.SetSize(80, 10)
	assert.Equal(t, 5, v.Offset())
	assert.Equal(t, 10, v.Height())

	v.ScrollDown()
	assert.Equal(t, 5, v.Offset())
	v.ScrollUp()
	assert.Equal(t, 4, v.Offset())
}

func TestSetOffsetClamps(t *testing.T) {
	v := newViewport(10, 80, 5)
	v.SetOffset(50)
	assert.Equal(t, 9, v.Offset())
	v.SetOffset(-3)
	assert.Equal(t, 0, v.Offset())

	empty := newViewport(0, 80, 5)
	empty.SetOffset(3)
	assert.Equal(t, 0, empty.Offset())
}

func TestPercent(t *testing.T) {
	v := newViewport(5, 80, 3)
	v.ScrollDown()
	v.ScrollDown()
	assert.Equal(t, 40.0, v.Percent())
	assert.Equal(t, 0.0, newViewport(0, 80, 3).Percent())
}

func TestNavigationStaysInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(0, 200).Draw(t, "total")
		height := rapid.IntRange(1, 60).Draw(t, "height")
		v := newViewport(total, 80, height)

		ops := rapid.SliceOf(rapid.IntRange(0, 4)).Draw(t, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				v.ScrollDown()
			case 1:
				v.ScrollUp()
			case 2:
				v.PageDown()
			case 3:
				v.PageUp()
			case 4:
				v.CenterOn(rapid.IntRange(0, 200).Draw(t, "line"))
			}

			assert.GreaterOrEqual(t, v.Offset(), 0)
			if total > height {
				assert.LessOrEqual(t, v.Offset(), total-height)
			} else {
				assert.Equal(t, 0, v.Offset())
			}
		}
	})
}

func TestSetTotalClampsOffset(t *testing.T) {
	v := newViewport(100, 80, 10)
	v.SetOffset(80)
	v.SetTotal(20)
	assert.Equal(t, 19, v.Offset())
	assert.Equal(t, 20, v.Total())
	assert.Equal(t, 80, v.Width())
}

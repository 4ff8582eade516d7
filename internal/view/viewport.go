// Package view holds viewport geometry and the scroll offset rules.
package view

// pageOverlap is how many rows of the previous page stay visible after a
// page step.
const pageOverlap = 3

// Viewport manages the visible portion of a document
// It knows nothing about rendering, only how far down the reader is
type Viewport struct {
	total int

	// Dimensions
	width  int
	height int

	// Scroll position
	offset int
}

// NewViewport creates a viewport with no document; SetTotal attaches one
func NewViewport(width, height int) *Viewport {
	return &Viewport{width: width, height: height}
}

// SetTotal sets the document length and clamps the offset into it
func (v *Viewport) SetTotal(total int) {
	v.total = total
	v.SetOffset(v.offset)
}

// SetSize updates viewport dimensions. The offset is left alone; the next
// navigation step brings it back in range.
func (v *Viewport) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetOffset jumps to line, clamped to [0, total-1]
func (v *Viewport) SetOffset(line int) {
	if line >= v.total {
		line = v.total - 1
	}
	if line < 0 {
		line = 0
	}
	v.offset = line
}

// ScrollDown moves one line down while there is content below the page
func (v *Viewport) ScrollDown() {
	if v.offset+v.height < v.total {
		v.offset++
	}
}

// ScrollUp moves one line up unless already at the top
func (v *Viewport) ScrollUp() {
	if v.offset > 0 {
		v.offset--
	}
}

// PageDown advances by height-3 lines, stopping at the last full page
func (v *Viewport) PageDown() {
	if v.offset+v.height >= v.total {
		return
	}
	v.offset += v.pageStep()
	if last := v.lastPage(); v.offset > last {
		v.offset = last
	}
}

// PageUp goes back by height-3 lines, snapping to the top on underflow
func (v *Viewport) PageUp() {
	step := v.pageStep()
	if v.offset >= step {
		v.offset -= step
	} else {
		v.offset = 0
	}
}

// CenterOn scrolls so line sits in the middle row where possible
func (v *Viewport) CenterOn(line int) {
	offset := line - v.height/2
	if offset < 0 {
		offset = 0
	}
	if offset+v.height > v.total {
		offset = v.lastPage()
	}
	v.offset = offset
}

// Offset returns the current top line number
func (v *Viewport) Offset() int {
	return v.offset
}

// Total returns the number of lines in the document
func (v *Viewport) Total() int {
	return v.total
}

// Width returns the viewport width
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the viewport height
func (v *Viewport) Height() int {
	return v.height
}

// Percent is how far through the document the top line is
func (v *Viewport) Percent() float64 {
	if v.total == 0 {
		return 0
	}
	return 100 * float64(v.offset) / float64(v.total)
}

func (v *Viewport) pageStep() int {
	step := v.height - pageOverlap
	if step < 1 {
		step = 1
	}
	return step
}

func (v *Viewport) lastPage() int {
	last := v.total - v.height
	if last < 0 {
		last = 0
	}
	return last
}

// =======================
// cube/canvas.go
// =======================

package cube

import "strings"

// Canvas is the frame buffer and its parallel depth buffer. Both are
// allocated once and cleared, never reallocated, between ticks.
type Canvas struct {
	width, height int
	glyphs        []rune
	depth         []float64
}

// NewCanvas allocates a width x height canvas.
func NewCanvas(width, height int) *Canvas {
	n := width * height
	c := &Canvas{
		width:  width,
		height: height,
		glyphs: make([]rune, n),
		depth:  make([]float64, n),
	}
	c.Clear()
	return c
}

// Clear fills the frame with the background glyph and zeroes the depth.
func (c *Canvas) Clear() {
	n := len(c.glyphs)
	if n == 0 {
		return
	}
	// copy-doubling
	c.glyphs[0], c.depth[0] = Background, 0
	for i := 1; i < n; i *= 2 {
		copy(c.glyphs[i:], c.glyphs[:i])
		copy(c.depth[i:], c.depth[:i])
	}
}

// Plot writes glyph at idx if ooz is closer than what the cell holds.
// It reports false when the sample is outside the grid or occluded.
func (c *Canvas) Plot(idx int, ooz float64, glyph rune) (inside, written bool) {
	if idx < 0 || idx >= len(c.glyphs) {
		return false, false
	}
	if ooz <= c.depth[idx] {
		return true, false
	}
	c.depth[idx] = ooz
	c.glyphs[idx] = glyph
	return true, true
}

// Len is the number of cells in each buffer.
func (c *Canvas) Len() int { return len(c.glyphs) }

// DepthLen is the length of the depth buffer.
func (c *Canvas) DepthLen() int { return len(c.depth) }

// At returns the glyph and depth stored at idx.
func (c *Canvas) At(idx int) (rune, float64) { return c.glyphs[idx], c.depth[idx] }

// Size returns the grid dimensions.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

// String serializes the frame as height rows of width glyphs joined by
// line breaks.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(len(c.glyphs) * 2)
	for k, g := range c.glyphs {
		if k > 0 && k%c.width == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteRune(g)
	}
	return sb.String()
}

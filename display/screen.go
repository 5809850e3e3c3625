// =======================
// display/screen.go
// =======================

// Package display holds the surfaces frames are published to: a tcell
// terminal screen for the interactive session and a plain text writer.
package display

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"asciicube/cube"
	"asciicube/scheduler"
)

// Help is the key summary drawn on the header line.
const Help = "ASCII Cube | Arrows:rotate R:reset Q:quit"

// faceColors tints each face glyph.
var faceColors = map[rune]tcell.Color{
	'@': tcell.NewRGBColor(120, 80, 255),
	'$': tcell.NewRGBColor(255, 150, 50),
	'%': tcell.NewRGBColor(50, 255, 120),
	'#': tcell.NewRGBColor(50, 100, 255),
	'*': tcell.NewRGBColor(255, 50, 80),
	'+': tcell.NewRGBColor(255, 255, 50),
}

// Screen draws frames centered on a tcell screen with a header and a
// status line.
type Screen struct {
	mu     sync.Mutex
	screen tcell.Screen
	shown  uint64
}

// NewScreen wraps an initialized tcell screen.
func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// Show replaces whatever is on screen with f.
func (d *Screen) Show(f scheduler.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.screen
	s.Clear()
	w, h := s.Size()

	// too small to hold anything useful
	if w <= 15 || h <= 8 {
		s.Show()
		return nil
	}

	drawText(s, 1, 1, tcell.StyleDefault.Foreground(tcell.ColorWhite), Help)

	x0 := (w - f.Width) / 2
	y0 := (h - f.Height) / 2
	if y0 < 3 {
		y0 = 3
	}
	for i, line := range strings.Split(f.Text, "\n") {
		y := y0 + i
		if y >= h-2 {
			break
		}
		x := x0
		for _, r := range line {
			if x >= 0 && x < w && r != cube.Background {
				s.SetContent(x, y, r, nil, glyphStyle(r))
			}
			x++
		}
	}

	info := fmt.Sprintf("Frame: %d | X: %.2f Y: %.2f Z: %.2f | Grid: %dx%d",
		f.Seq, f.Rotation.X, f.Rotation.Y, f.Rotation.Z, f.Width, f.Height)
	drawText(s, 1, h-2, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), info)

	s.Show()
	d.shown++
	return nil
}

// Shown returns how many frames reached the screen.
func (d *Screen) Shown() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown
}

func glyphStyle(r rune) tcell.Style {
	if c, ok := faceColors[r]; ok {
		return tcell.StyleDefault.Foreground(c)
	}
	return tcell.StyleDefault
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

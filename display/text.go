// =======================
// display/text.go
// =======================

package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"asciicube/scheduler"
)

// homeClear moves the cursor home and clears the terminal.
const homeClear = "\x1b[H\x1b[2J"

// Text writes frames to an io.Writer.
type Text struct {
	w      io.Writer
	border bool
	home   bool
	style  lipgloss.Style
}

// TextOption configures a Text display.
type TextOption func(*Text)

// WithBorder frames the output in a rounded lipgloss border.
func WithBorder() TextOption { return func(t *Text) { t.border = true } }

// WithHome clears the terminal before each frame so frames replace each
// other in place.
func WithHome() TextOption { return func(t *Text) { t.home = true } }

// NewText returns a display writing to w.
func NewText(w io.Writer, opts ...TextOption) *Text {
	t := &Text{
		w: w,
		style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Render returns what Show writes for f, without the terminal control
// prefix.
func (t *Text) Render(f scheduler.Frame) string {
	if t.border {
		return t.style.Render(f.Text)
	}
	return f.Text
}

func (t *Text) Show(f scheduler.Frame) error {
	out := t.Render(f)
	if t.home {
		out = homeClear + out
	}
	if _, err := fmt.Fprintln(t.w, out); err != nil {
		return fmt.Errorf("write frame %d: %w", f.Seq, err)
	}
	return nil
}

// Package tty implements the fixed-size character grid the editor draws
// into: an off-screen back buffer, grapheme/width-aware drawing, and a
// run-length-coalescing present() that writes a single escape-sequence
// burst per frame. It is the Go-native replacement for pita-term's
// screen.rs, grounded on the cursor-addressed, buffered-writer style
// found throughout this corpus's terminal UIs.
package tty

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Screen is a w×h character grid positioned at (originX, originY)
// within the shared Terminal. It owns its own back buffer and cursor,
// but defers raw-mode/alt-screen lifecycle to the Terminal it was
// built from, so that an Editor composing a doc Screen and a log
// Screen over the same tty doesn't double-toggle terminal state.
type Screen struct {
	term *Terminal
	out  *bufio.Writer

	originX, originY int
	width, height    int

	back []cell // width*height, row-major
	prev []cell // what was last flushed to the terminal

	cursorX, cursorY int
	lineOffset       int

	bg Style
}

// NewScreen builds a Screen of the given size anchored at (originX,
// originY) in term's coordinate space. Per spec.md §7 error kind #4, a
// non-positive width or height is rejected rather than producing a
// Screen nothing can draw into.
func NewScreen(term *Terminal, originX, originY, width, height int) (*Screen, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("tty: invalid screen size %dx%d", width, height)
	}
	s := &Screen{
		term:     term,
		out:      bufio.NewWriter(term.out),
		originX:  originX,
		originY:  originY,
		width:    width,
		height:   height,
		back:     make([]cell, width*height),
		prev:     make([]cell, width*height),
		bg:       Style{BG: DefaultBG},
	}
	s.Clear(s.bg)
	return s, nil
}

func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

// Clear fills the back buffer with blank cells in the given style.
// Nothing is written to the terminal until present().
func (s *Screen) Clear(style Style) {
	for i := range s.back {
		c := blankCell
		c.style = style
		s.back[i] = c
	}
}

// Draw writes text starting at back-buffer column x, row y, segmenting
// it into grapheme clusters with uniseg and measuring each cluster's
// terminal column width with go-runewidth — the same pairing the
// editor package uses to split typed/pasted text, so a character
// inserted always occupies exactly as many columns as it renders.
// Clusters that would run past the right edge are dropped rather than
// wrapped; wrapping is the editor's job via line_offset, not the
// Screen's.
func (s *Screen) Draw(x, y int, text string, style Style) {
	if y < 0 || y >= s.height {
		return
	}
	col := x
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		if col < 0 {
			col++
			continue
		}
		if col >= s.width {
			break
		}
		cluster := gr.Str()
		w := runewidth.StringWidth(cluster)
		if w <= 0 {
			// Zero-width graphemes (combining marks, etc.) would
			// otherwise be invisible; spec.md §4.4 renders them by
			// prefixing a space so the cluster still occupies a
			// column, rather than strictly following Unicode width.
			cluster = " " + cluster
			w = 1
		}
		if col+w > s.width {
			break
		}
		idx := y*s.width + col
		s.back[idx] = cell{grapheme: cluster, style: style}
		for k := 1; k < w; k++ {
			s.back[idx+k] = cell{grapheme: "", style: style, continuation: true}
		}
		col += w
	}
}

// SetCursor positions the terminal cursor, clamped to the screen's
// bounds so a stale cursor position from a just-shrunk line can never
// address outside the grid.
func (s *Screen) SetCursor(x, y int) {
	if x < 0 {
		x = 0
	}
	if x >= s.width {
		x = s.width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= s.height {
		y = s.height - 1
	}
	s.cursorX, s.cursorY = x, y
}

// IncOffset and DecOffset scroll the viewport by one line, and
// LineOffset reports the current scroll position — the index of the
// first document line shown in row 0.
func (s *Screen) IncOffset()      { s.lineOffset++ }
func (s *Screen) DecOffset() bool {
	if s.lineOffset == 0 {
		return false
	}
	s.lineOffset--
	return true
}
func (s *Screen) LineOffset() int { return s.lineOffset }

// Present flushes the back buffer to the terminal, writing a cursor
// move plus a single SGR sequence per run of same-styled cells (so a
// wholly unchanged frame costs only the final cursor-position and
// show-cursor escapes). Only cells that differ from the last presented frame are
// redrawn. Finally restores the cursor's position and visibility, per
// spec.md §4.4 — Open hides the cursor before the first frame is ever
// drawn, so Present is what makes it visible again each pass.
func (s *Screen) Present() error {
	var b strings.Builder
	cur := Style{}
	haveCur := false

	for row := 0; row < s.height; row++ {
		rowChanged := false
		base := row * s.width
		for col := 0; col < s.width; col++ {
			if s.back[base+col] != s.prev[base+col] {
				rowChanged = true
				break
			}
		}
		if !rowChanged {
			continue
		}
		fmt.Fprintf(&b, "\x1b[%d;%dH", s.originY+row+1, s.originX+1)
		for col := 0; col < s.width; col++ {
			c := s.back[base+col]
			if c.continuation {
				continue
			}
			if !haveCur || cur != c.style {
				b.WriteString(sequence(cur, c.style))
				cur = c.style
				haveCur = true
			}
			if c.grapheme == "" {
				b.WriteByte(' ')
			} else {
				b.WriteString(c.grapheme)
			}
		}
	}
	fmt.Fprintf(&b, "\x1b[%d;%dH", s.originY+s.cursorY+1, s.originX+s.cursorX+1)
	b.WriteString("\x1b[?25h")

	if _, err := io.WriteString(s.out, b.String()); err != nil {
		return fmt.Errorf("tty: present: %w", err)
	}
	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("tty: present: flush: %w", err)
	}
	copy(s.prev, s.back)
	return nil
}

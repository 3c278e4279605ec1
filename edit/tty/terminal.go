package tty

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Terminal owns the raw-mode/alternate-screen lifecycle of the
// underlying tty. It is shared by every Screen drawn on top of it so
// that entering and leaving alternate mode happens exactly once no
// matter how many Screens (doc, log) are in play, mirroring the
// drop-releases-the-terminal contract of pita-term's original Screen
// while acknowledging Go has no destructors to hang it on.
type Terminal struct {
	fd       int
	file     *os.File
	oldState *term.State
	out      io.Writer

	closeOnce sync.Once
}

// Open puts f's file descriptor into raw mode and switches to the
// alternate screen buffer with the cursor hidden, writing output
// through w (typically f itself: each Screen adds its own bufio.Writer
// over w and flushes it on Present, while Close writes to w directly).
func Open(f *os.File, w io.Writer) (*Terminal, error) {
	fd := int(f.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("tty: enter raw mode: %w", err)
	}
	t := &Terminal{fd: fd, file: f, oldState: old, out: w}
	// Enter the alternate screen, hide the cursor during redraws, and
	// request the SteadyBar cursor shape (spec.md §6).
	io.WriteString(w, "\x1b[?1049h\x1b[?25l\x1b[6 q")
	return t, nil
}

// NewHeadlessTerminal builds a Terminal that performs no raw-mode or
// alternate-screen handling, writing only through w. Used by tests and
// by any non-interactive embedding of the edit/editor packages where
// there is no real tty to own.
func NewHeadlessTerminal(w io.Writer) *Terminal {
	return &Terminal{out: w}
}

// Close leaves the alternate screen, shows the cursor, resets colours
// and restores the previous terminal mode. Safe to call from multiple
// Screens sharing this Terminal or from a panic-recovery path; only
// the first call has any effect.
func (t *Terminal) Close() error {
	var err error
	t.closeOnce.Do(func() {
		io.WriteString(t.out, "\x1b[0m\x1b[?25h\x1b[?1049l")
		if t.oldState != nil {
			err = term.Restore(t.fd, t.oldState)
		}
	})
	return err
}

// Size reports the current terminal dimensions in columns, rows.
func (t *Terminal) Size() (width, height int, err error) {
	return term.GetSize(t.fd)
}

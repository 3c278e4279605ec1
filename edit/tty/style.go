package tty

import (
	"strings"

	"github.com/muesli/termenv"
)

// Style is a foreground/background colour pair, per spec.md §3's Screen
// cell definition.
type Style struct {
	FG, BG termenv.Color
}

// profile is shared by every Screen so that colour downsampling (e.g. a
// 16-colour terminal) is consistent across the doc and log screens.
var profile = termenv.ColorProfile()

// DefaultBG matches the purple-grey background pita-term's original
// screen.rs shipped as DEFAULT_BG.
var DefaultBG = profile.Color("#3b3849")

// sequence builds the SGR escape sequence that switches the terminal to
// s, or the empty string if s equals prev (present()'s run-length
// tracking relies on this).
func sequence(prev, s Style) string {
	if prev == s {
		return ""
	}
	var b strings.Builder
	b.WriteString("\x1b[0m")
	if s.FG != nil {
		b.WriteString("\x1b[" + s.FG.Sequence(false) + "m")
	}
	if s.BG != nil {
		b.WriteString("\x1b[" + s.BG.Sequence(true) + "m")
	}
	return b.String()
}

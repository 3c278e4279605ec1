package edit

import "github.com/rivo/uniseg"

// SplitGraphemes breaks s into one string per grapheme cluster, using
// the same segmentation uniseg provides to edit/tty's Draw so that a
// character inserted into the document buffer is always drawn by Draw
// as exactly one grapheme cluster.
func SplitGraphemes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func isWhitespace(s string) bool {
	return s == " " || s == "\n"
}

func isNewline(s string) bool {
	return s == "\n"
}

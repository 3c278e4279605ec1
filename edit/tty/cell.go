package tty

// cell is one occupied column of the back buffer. Wide graphemes (CJK,
// emoji) occupy a leading cell plus one or more continuation cells so
// that column arithmetic stays simple everywhere else in the package.
type cell struct {
	grapheme     string
	style        Style
	continuation bool
}

var blankCell = cell{grapheme: " "}

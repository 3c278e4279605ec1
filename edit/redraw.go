package edit

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/oknozor/pita/edit/tty"
)

var profile = termenv.ColorProfile()

// tagStyles maps chroma token-type names (see highlight.ChromaAdapter)
// to a foreground colour. Untagged or unrecognised runs keep the
// screen's default style.
var tagStyles = map[string]termenv.Color{
	"Keyword":            profile.Color("#c678dd"),
	"KeywordDeclaration": profile.Color("#c678dd"),
	"LiteralString":      profile.Color("#98c379"),
	"LiteralNumber":      profile.Color("#d19a66"),
	"Comment":            profile.Color("#5c6370"),
	"NameBuiltin":        profile.Color("#61afef"),
	"NameFunction":       profile.Color("#61afef"),
}

func docStyle(tag string) tty.Style {
	if fg, ok := tagStyles[tag]; ok {
		return tty.Style{FG: fg, BG: tty.DefaultBG}
	}
	return tty.Style{BG: tty.DefaultBG}
}

// lineLenAt returns the length, including its trailing newline if any,
// of document line, by locating its start and scanning to the next
// newline or end of document.
func (e *Editor) lineLenAt(line int) int {
	start, ok := e.buf.LineColumnToIndex(0, line, isNewline)
	if !ok {
		return 0
	}
	cur := e.buf.Range(start, e.buf.Len())
	n := 0
	for {
		v, ok := cur.Next()
		if !ok {
			break
		}
		n++
		if v == "\n" {
			break
		}
	}
	return n
}

// DrawDoc repopulates the doc screen's back buffer from the document
// buffer's currently-visible window, refreshing the line-endings cache
// as it goes. Grounded on spec.md §4.5's draw_doc algorithm and
// pita-term's draw_doc (original_source/crates/pita-term/src/main.rs):
// it records the length of the line above the viewport first, then
// walks the visible pieces emitting one run of same-tag text at a
// time, flushing on a highlight-tag change or a newline.
func (e *Editor) DrawDoc() {
	e.doc.Clear(tty.Style{BG: tty.DefaultBG})
	height := e.doc.Height()
	offset := e.doc.LineOffset()

	aboveLen := 0
	if offset > 0 {
		aboveLen = e.lineLenAt(offset - 1)
	}
	endings := []int{aboveLen}

	start, ok := e.buf.LineColumnToIndex(0, offset, isNewline)
	if !ok {
		e.lineEndings = endings
		return
	}

	cur := e.buf.Range(start, e.buf.Len())

	row, col := 0, 0
	lineLen := 0
	var run strings.Builder
	runCol := 0
	runTag := ""
	haveRun := false

	flush := func() {
		if run.Len() == 0 {
			return
		}
		e.doc.Draw(runCol, row, run.String(), docStyle(runTag))
		run.Reset()
	}

	idx := start
	for row <= height {
		v, ok := cur.Next()
		if !ok {
			flush()
			endings = append(endings, lineLen)
			break
		}
		tag, _ := e.overlay.Get(idx)
		idx++

		if v == "\n" {
			lineLen++
			flush()
			endings = append(endings, lineLen)
			row++
			col = 0
			lineLen = 0
			haveRun = false
			continue
		}

		if !haveRun || tag != runTag {
			flush()
			runCol = col
			runTag = tag
			haveRun = true
		}
		run.WriteString(v)
		col++
		lineLen++
	}

	e.lineEndings = endings
}

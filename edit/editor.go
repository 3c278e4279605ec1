// Package edit is the coordination layer between a generic piece-table
// document, a highlight overlay and one or two character-grid screens:
// it turns decoded key events into buffer edits and cursor motion,
// keeping a line-endings cache in step with what's actually on screen.
// Grounded on pita-term's Editor (main.rs, cursor.rs) in this corpus's
// original_source, restated per spec.md §4.5.
package edit

import (
	"log/slog"

	"github.com/oknozor/pita/edit/tty"
	"github.com/oknozor/pita/highlight"
	"github.com/oknozor/pita/piecetable"
)

// Editor owns the document buffer, the doc and (optional) log screens,
// the highlight overlay and the line-endings cache, per spec.md §4.5.
type Editor struct {
	buf     *piecetable.Buffer[string]
	doc     *tty.Screen
	logScr  *tty.Screen
	overlay *highlight.Overlay
	logger  *slog.Logger

	cursorCol, cursorRow int

	// lineEndings[0] is the length of the line immediately above the
	// viewport (index doc.LineOffset()-1); lineEndings[row+1] is the
	// length, including its trailing newline, of visible screen row
	// row. This single-slice, shifted-by-one layout is grounded on
	// pita-term's cursor.rs, which indexes line_endings the same way.
	lineEndings []int
}

// New builds an Editor over src (its initial document contents,
// already split into grapheme clusters by the caller) with doc as the
// main editing viewport. logScr may be nil when no log pane is wired.
func New(src []string, doc, logScr *tty.Screen, logger *slog.Logger) *Editor {
	return &Editor{
		buf:     piecetable.New(src),
		doc:     doc,
		logScr:  logScr,
		overlay: highlight.New(),
		logger:  logger,
	}
}

// Buffer exposes the underlying document for callers that need direct
// access (e.g. the highlight pass reading a byte view).
func (e *Editor) Buffer() *piecetable.Buffer[string] { return e.buf }

// Overlay exposes the highlight overlay draw_doc consults.
func (e *Editor) Overlay() *highlight.Overlay { return e.overlay }

// setCursor records the cursor position and hands it to the doc screen.
// y is clamped to the last screen row, so a wrap that scrolled the
// viewport leaves the cursor on the row now showing the next line.
func (e *Editor) setCursor(x, y int) {
	if y > e.doc.Height()-1 {
		y = e.doc.Height() - 1
	}
	e.cursorCol, e.cursorRow = x, y
	e.doc.SetCursor(x, y)
}

// CursorIndex resolves the on-screen cursor position to an absolute
// buffer index via the line/column lookup.
func (e *Editor) CursorIndex() (int, bool) {
	return e.buf.LineColumnToIndex(e.cursorCol, e.doc.LineOffset()+e.cursorRow, isNewline)
}

func satSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}

// lineEndingAt returns lineEndings[i], or 0 if i falls outside what
// the last redraw recorded — a degenerate screen row past both the
// loaded window and the end of the document behaves as a zero-length
// line rather than panicking.
func (e *Editor) lineEndingAt(i int) int {
	if i < 0 || i >= len(e.lineEndings) {
		return 0
	}
	return e.lineEndings[i]
}

// Apply executes cmd against the document and cursor, returning
// whether the viewport needs a full redraw (spec.md §4.5's "cursor
// motion contracts" and "edit commands").
func (e *Editor) Apply(cmd Command) bool {
	switch cmd.Kind {
	case Quit:
		return false
	case Char:
		return e.insertChar(cmd.Text)
	case NewLine:
		return e.insertNewLine()
	case Tab:
		return e.tab()
	case DeleteForward:
		return e.deleteForward()
	case DeleteBackWard:
		return e.deleteBackward()
	case MoveLeft:
		return e.MoveLeft()
	case MoveRight:
		return e.MoveRight()
	case MoveUp:
		return e.MoveUp()
	case MoveDown:
		return e.MoveDown()
	case WordLeft:
		return e.WordLeft()
	case WordRight:
		return e.WordRight()
	default:
		return false
	}
}

func (e *Editor) insertChar(text string) bool {
	idx, ok := e.CursorIndex()
	if !ok {
		return false
	}
	e.buf.Insert(idx, text)
	e.MoveRight()
	return true
}

// insertNewLine inserts "\n" at the cursor then moves unconditionally
// to column 0 of the next screen row, scrolling if that row is below
// the viewport — "MoveRight-to-next-line" in spec.md §4.5's edit
// commands, distinct from a plain MoveRight because it does not
// depend on the (necessarily stale, pre-edit) line-endings cache.
// Grounded on the cursor_next_line helper in original_source's
// pita-term draft.
func (e *Editor) insertNewLine() bool {
	idx, ok := e.CursorIndex()
	if !ok {
		return false
	}
	e.buf.Insert(idx, "\n")
	y := e.cursorRow + 1
	if y > e.doc.Height()-1 {
		e.doc.IncOffset()
	}
	e.setCursor(0, y)
	return true
}

func (e *Editor) tab() bool {
	idx, ok := e.CursorIndex()
	if !ok {
		return false
	}
	e.buf.Insert(idx, " ")
	e.buf.Insert(idx+1, " ")
	e.MoveRight()
	e.MoveRight()
	return true
}

func (e *Editor) deleteForward() bool {
	idx, ok := e.CursorIndex()
	if !ok || idx >= e.buf.Len() {
		return false
	}
	e.buf.Remove(idx)
	return true
}

func (e *Editor) deleteBackward() bool {
	idx, ok := e.CursorIndex()
	if !ok || idx == 0 {
		return false
	}
	e.MoveLeft()
	newIdx, ok := e.CursorIndex()
	if !ok {
		return true
	}
	e.buf.Remove(newIdx)
	return true
}

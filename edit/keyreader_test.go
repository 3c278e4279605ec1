package edit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadKeyPlainRune(t *testing.T) {
	kr := NewKeyReader(strings.NewReader("a"))
	ev, err := kr.ReadKey()
	assert.NoError(t, err)
	assert.Equal(t, KeyEvent{Key: KeyRune, Text: "a"}, ev)
}

func TestReadKeyEnterTabBackspace(t *testing.T) {
	kr := NewKeyReader(strings.NewReader("\r\t\x7f"))
	for _, want := range []Key{KeyEnter, KeyTab, KeyBackspace} {
		ev, err := kr.ReadKey()
		assert.NoError(t, err)
		assert.Equal(t, want, ev.Key)
	}
}

func TestReadKeyArrow(t *testing.T) {
	kr := NewKeyReader(strings.NewReader("\x1b[C\x1b[D\x1b[A\x1b[B"))
	for _, want := range []Key{KeyRight, KeyLeft, KeyUp, KeyDown} {
		ev, err := kr.ReadKey()
		assert.NoError(t, err)
		assert.Equal(t, want, ev.Key)
	}
}

func TestReadKeyCtrlArrow(t *testing.T) {
	kr := NewKeyReader(strings.NewReader("\x1b[1;5C\x1b[1;5D"))
	ev, err := kr.ReadKey()
	assert.NoError(t, err)
	assert.Equal(t, KeyCtrlRight, ev.Key)
	ev, err = kr.ReadKey()
	assert.NoError(t, err)
	assert.Equal(t, KeyCtrlLeft, ev.Key)
}

func TestReadKeyDelete(t *testing.T) {
	kr := NewKeyReader(strings.NewReader("\x1b[3~"))
	ev, err := kr.ReadKey()
	assert.NoError(t, err)
	assert.Equal(t, KeyDelete, ev.Key)
}

func TestReadKeyBareEscBeforeEOF(t *testing.T) {
	kr := NewKeyReader(strings.NewReader("\x1b"))
	ev, err := kr.ReadKey()
	assert.NoError(t, err)
	assert.Equal(t, KeyEsc, ev.Key)
}

func TestDecodeMapsCommands(t *testing.T) {
	cases := []struct {
		ev   KeyEvent
		kind CommandKind
	}{
		{KeyEvent{Key: KeyEsc}, Quit},
		{KeyEvent{Key: KeyRune, Text: "x"}, Char},
		{KeyEvent{Key: KeyLeft}, MoveLeft},
		{KeyEvent{Key: KeyCtrlRight}, WordRight},
		{KeyEvent{Key: KeyEnter}, NewLine},
		{KeyEvent{Key: KeyTab}, Tab},
		{KeyEvent{Key: KeyBackspace}, DeleteBackWard},
		{KeyEvent{Key: KeyDelete}, DeleteForward},
	}
	for _, c := range cases {
		cmd, ok := Decode(c.ev)
		assert.True(t, ok)
		assert.Equal(t, c.kind, cmd.Kind)
	}
}

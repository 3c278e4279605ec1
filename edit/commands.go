package edit

// CommandKind enumerates the editor's command set, per spec.md §4.5.
type CommandKind int

const (
	Quit CommandKind = iota
	Char
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	WordLeft
	WordRight
	NewLine
	DeleteForward
	DeleteBackWard
	Tab
)

// Command is one decoded editor action. Text carries the inserted
// grapheme cluster for Char and is otherwise unused.
type Command struct {
	Kind CommandKind
	Text string
}

// Key names the high-level keys Decode understands. The terminal I/O
// collaborator is responsible for turning raw escape sequences into
// these — CSI/G3 parsing is out of scope here, per spec.md §1 and
// SPEC_FULL.md §4.5.
type Key int

const (
	KeyRune Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyCtrlLeft
	KeyCtrlRight
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEsc
)

// KeyEvent is an already-decoded key press. Text holds the grapheme
// cluster for KeyRune.
type KeyEvent struct {
	Key  Key
	Text string
}

// Decode maps a key event onto a Command, per the bindings in
// spec.md §6. The second return value is false for keys with no
// bound command (e.g. function keys, mouse), and the caller should
// ignore the event.
func Decode(ev KeyEvent) (Command, bool) {
	switch ev.Key {
	case KeyRune:
		if ev.Text == "" {
			return Command{}, false
		}
		return Command{Kind: Char, Text: ev.Text}, true
	case KeyLeft:
		return Command{Kind: MoveLeft}, true
	case KeyRight:
		return Command{Kind: MoveRight}, true
	case KeyUp:
		return Command{Kind: MoveUp}, true
	case KeyDown:
		return Command{Kind: MoveDown}, true
	case KeyCtrlLeft:
		return Command{Kind: WordLeft}, true
	case KeyCtrlRight:
		return Command{Kind: WordRight}, true
	case KeyEnter:
		return Command{Kind: NewLine}, true
	case KeyTab:
		return Command{Kind: Tab}, true
	case KeyBackspace:
		return Command{Kind: DeleteBackWard}, true
	case KeyDelete:
		return Command{Kind: DeleteForward}, true
	case KeyEsc:
		return Command{Kind: Quit}, true
	default:
		return Command{}, false
	}
}

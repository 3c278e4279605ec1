package edit

import (
	"bufio"
	"io"
	"time"
	"unicode"
)

// escTimeout bounds how long KeyReader waits after a bare ESC byte to
// see whether it's the start of a CSI sequence before reporting it as
// a standalone Esc key. Grounded on the teacher's reader.go, which
// used the same disambiguation against an async.TimedReader; since
// this module has no equivalent timed-reader package, the wait is
// implemented with time.After racing against the background reader
// goroutine's channel instead.
const escTimeout = 10 * time.Millisecond

// runeRead is one ReadRune result handed from the background reader
// goroutine to whichever KeyReader method is waiting for it.
type runeRead struct {
	r   rune
	err error
}

// KeyReader decodes raw terminal input into KeyEvents. It understands
// the small set of CSI sequences spec.md §6 binds to commands (arrow
// keys, Ctrl+arrow for word motion, Delete) plus the plain control
// characters (Enter, Tab, Backspace, Esc) and otherwise treats input
// as UTF-8 text, one rune per KeyEvent; the runes of a multi-rune
// grapheme cluster arrive as separate events.
//
// A single background goroutine is the sole caller of the underlying
// bufio.Reader's ReadRune, feeding results through ch one at a time; an
// earlier draft instead spawned a fresh goroutine per escape-timeout
// wait, which raced two ReadRune calls against the same bufio.Reader
// and could drop or reorder a byte. Because the goroutine blocks on
// sending until ch is received, a rune read just after an escape
// timeout fires is never lost: it simply sits in the send until the
// next ReadKey call picks it up, in the order it arrived. The goroutine
// closes ch after its first error so a caller that keeps reading past
// end-of-input gets the same terminal error back instead of blocking
// forever on a channel nothing will ever send on again.
type KeyReader struct {
	ch      chan runeRead
	lastErr error
}

// NewKeyReader wraps r (typically the raw-mode terminal file) and
// starts its background reader goroutine.
func NewKeyReader(r io.Reader) *KeyReader {
	br := bufio.NewReaderSize(r, 0)
	ch := make(chan runeRead)
	go func() {
		for {
			rn, _, err := br.ReadRune()
			ch <- runeRead{rn, err}
			if err != nil {
				close(ch)
				return
			}
		}
	}()
	return &KeyReader{ch: ch}
}

// readRune blocks for the next rune read by the background goroutine.
func (kr *KeyReader) readRune() (rune, error) {
	res, open := <-kr.ch
	if !open {
		return 0, kr.lastErr
	}
	if res.err != nil {
		kr.lastErr = res.err
	}
	return res.r, res.err
}

// readRuneTimeout waits up to d for the next rune. ok is false on
// timeout; the rune, once it does arrive, is still delivered to the
// next readRune/readRuneTimeout call rather than discarded.
func (kr *KeyReader) readRuneTimeout(d time.Duration) (r rune, ok bool, err error) {
	select {
	case res, open := <-kr.ch:
		if !open {
			return 0, true, kr.lastErr
		}
		if res.err != nil {
			kr.lastErr = res.err
		}
		return res.r, true, res.err
	case <-time.After(d):
		return 0, false, nil
	}
}

// ReadKey blocks for the next decoded key event.
func (kr *KeyReader) ReadKey() (KeyEvent, error) {
	r, err := kr.readRune()
	if err != nil {
		return KeyEvent{}, err
	}

	switch r {
	case 0x7f, 0x08:
		return KeyEvent{Key: KeyBackspace}, nil
	case '\r', '\n':
		return KeyEvent{Key: KeyEnter}, nil
	case '\t':
		return KeyEvent{Key: KeyTab}, nil
	case 0x1b:
		return kr.readEscape()
	default:
		if unicode.IsControl(r) {
			return KeyEvent{}, nil
		}
		return KeyEvent{Key: KeyRune, Text: string(r)}, nil
	}
}

func (kr *KeyReader) readEscape() (KeyEvent, error) {
	r2, ok, err := kr.readRuneTimeout(escTimeout)
	if err == io.EOF {
		// End of input right after a bare ESC is as conclusive as a
		// timeout: nothing else is coming to complete a CSI sequence.
		// The EOF itself is still delivered on the next ReadKey call.
		return KeyEvent{Key: KeyEsc}, nil
	}
	if err != nil {
		return KeyEvent{}, err
	}
	if !ok {
		return KeyEvent{Key: KeyEsc}, nil
	}
	if r2 == '[' {
		return kr.readCSI()
	}
	// Unrecognised Alt-prefixed sequence: no binding, report plain Esc.
	return KeyEvent{Key: KeyEsc}, nil
}

// readCSI parses a CSI-style function key sequence of the form
// "[\d;]*[A-Za-z~]", matching the teacher's parseCSI but limited to
// the arrow/Delete/Ctrl-modifier bindings this editor actually uses.
func (kr *KeyReader) readCSI() (KeyEvent, error) {
	var nums []int
	var last rune
	for {
		r, err := kr.readRune()
		if err != nil {
			return KeyEvent{}, err
		}
		if r != ';' && (r < '0' || r > '9') {
			last = r
			break
		}
		if len(nums) == 0 {
			nums = append(nums, 0)
		}
		if r == ';' {
			nums = append(nums, 0)
		} else {
			cur := len(nums) - 1
			nums[cur] = nums[cur]*10 + int(r-'0')
		}
	}

	ctrl := len(nums) == 2 && nums[0] == 1 && nums[1] == 5

	switch last {
	case 'A':
		return KeyEvent{Key: KeyUp}, nil
	case 'B':
		return KeyEvent{Key: KeyDown}, nil
	case 'C':
		if ctrl {
			return KeyEvent{Key: KeyCtrlRight}, nil
		}
		return KeyEvent{Key: KeyRight}, nil
	case 'D':
		if ctrl {
			return KeyEvent{Key: KeyCtrlLeft}, nil
		}
		return KeyEvent{Key: KeyLeft}, nil
	case '~':
		if len(nums) > 0 && nums[0] == 3 {
			return KeyEvent{Key: KeyDelete}, nil
		}
	}
	return KeyEvent{}, nil
}

package piecetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func collectBytes(b *Buffer[byte]) []byte {
	return b.Iter().Collect()
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"", "Hello world", "x", "abcdefgh"} {
		buf := New([]byte(s))
		got := string(collectBytes(buf))
		assert.Equal(t, s, got)
	}
}

// Scenario 1: typed run coalesces into a single Add piece via the reuse hint.
func TestScenarioTypedRunCoalesces(t *testing.T) {
	buf := New([]byte("Hello "))
	for i, r := range []byte("world") {
		buf.Insert(6+i, r)
	}
	assert.Equal(t, "Hello world", string(collectBytes(buf)))
	require.Len(t, buf.pieces, 2)
	assert.Equal(t, piece{src: sourceOriginal, start: 0, length: 6}, buf.pieces[0])
	assert.Equal(t, piece{src: sourceAdd, start: 0, length: 5}, buf.pieces[1])
}

// Scenario 2: insert at the very start splits into a new head piece.
func TestScenarioInsertAtStart(t *testing.T) {
	buf := New([]byte("Hello "))
	buf.Insert(0, 'o')
	assert.Equal(t, "oHello ", string(collectBytes(buf)))
	require.Len(t, buf.pieces, 2)
	assert.Equal(t, piece{src: sourceAdd, start: 0, length: 1}, buf.pieces[0])
	assert.Equal(t, piece{src: sourceOriginal, start: 0, length: 6}, buf.pieces[1])
}

// Scenario 3: insert in the middle splits the original piece in three.
func TestScenarioInsertInMiddle(t *testing.T) {
	buf := New([]byte("Hello "))
	buf.Insert(3, 'o')
	assert.Equal(t, "Helolo ", string(collectBytes(buf)))
	require.Len(t, buf.pieces, 3)
	assert.Equal(t, piece{src: sourceOriginal, start: 0, length: 3}, buf.pieces[0])
	assert.Equal(t, piece{src: sourceAdd, start: 0, length: 1}, buf.pieces[1])
	assert.Equal(t, piece{src: sourceOriginal, start: 3, length: 3}, buf.pieces[2])
}

// Scenario 4: three head-removes in a row eat into the Original piece.
func TestScenarioRemoveHeadThrice(t *testing.T) {
	buf := New([]byte("Hello world"))
	buf.Remove(0)
	buf.Remove(0)
	buf.Remove(0)
	assert.Equal(t, "lo world", string(collectBytes(buf)))
	require.Len(t, buf.pieces, 1)
	assert.Equal(t, piece{src: sourceOriginal, start: 3, length: 8}, buf.pieces[0])
}

// Scenario 5: a single middle remove splits the Original piece in two.
func TestScenarioRemoveMiddle(t *testing.T) {
	buf := New([]byte("Hello world"))
	buf.Remove(3)
	assert.Equal(t, "Helo world", string(collectBytes(buf)))
	require.Len(t, buf.pieces, 2)
	assert.Equal(t, piece{src: sourceOriginal, start: 0, length: 3}, buf.pieces[0])
	assert.Equal(t, piece{src: sourceOriginal, start: 4, length: 7}, buf.pieces[1])
}

// Scenario 6: interleaved head-inserts followed by a middle insert, read
// both forward and backward.
func TestScenarioInterleavedInsertsBothDirections(t *testing.T) {
	buf := New([]byte("Helo"))
	buf.Insert(0, 'b')
	buf.Insert(0, 'a')
	buf.Insert(0, 'c')
	buf.Insert(4, ' ')
	assert.Equal(t, "cabH elo", string(collectBytes(buf)))
	assert.Equal(t, "ole Hbac", string(buf.ReverseIter().Collect()))
}

// Scenario 7: reverse ranges over a plain 4-element buffer. Per §9(d)
// (see DESIGN.md), ReverseRange(lo,hi) yields range(lo,hi) reversed —
// i.e. indices hi-1 down to lo — so ReverseRange(0,3) over "abcd" yields
// "cba", not the spec prose's literal "dcb".
func TestScenarioReverseRanges(t *testing.T) {
	buf := New([]byte("abcd"))
	assert.Equal(t, "cba", string(buf.ReverseRange(0, 3).Collect()))
	assert.Equal(t, "ba", string(buf.ReverseRange(0, 2).Collect()))
	assert.Equal(t, "dc", string(buf.ReverseRange(2, 4).Collect()))
}

// Scenario 8: scattered inserts and removes interleaved.
func TestScenarioScatteredEdits(t *testing.T) {
	buf := New([]byte("Hello world"))
	buf.Remove(1)
	buf.Insert(1, '3')
	buf.Remove(4)
	buf.Insert(4, '0')
	assert.Equal(t, "H3ll0 world", string(collectBytes(buf)))

	buf.Insert(8, '$')
	buf.Remove(7)
	assert.Equal(t, "H3ll0 w$rld", string(collectBytes(buf)))
}

func TestIndexMatchesCursor(t *testing.T) {
	buf := New([]byte("the quick brown fox"))
	buf.Insert(3, ' ')
	buf.Remove(0)
	it := buf.Iter()
	for i := 0; i < buf.Len(); i++ {
		v, ok := it.Next()
		require.True(t, ok)
		assert.Equal(t, buf.Index(i), v)
	}
}

func TestRangeMatchesSlice(t *testing.T) {
	buf := New([]byte("0123456789"))
	buf.Insert(5, 'x')
	ref := []byte("01234x56789")
	got := buf.Range(2, 8).Collect()
	assert.Equal(t, ref[2:8], got)
}

func TestPanicsOnStaleGeneration(t *testing.T) {
	buf := New([]byte("abc"))
	it := buf.Iter()
	buf.Insert(0, 'z')
	assert.Panics(t, func() { it.Next() })
}

func TestPanicsOnOutOfBounds(t *testing.T) {
	buf := New([]byte("abc"))
	assert.Panics(t, func() { buf.Index(3) })
	assert.Panics(t, func() { buf.Insert(4, 'x') })
	assert.Panics(t, func() { buf.Remove(3) })
}

// TestPropertyRoundTrip applies random Insert/Remove/Push sequences
// against a reference slice and checks the buffer agrees after every
// step: forward iteration, reverse iteration, Index, and the piece
// invariants (start+length <= backing size, length >= 1).
func TestPropertyRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := []byte(rapid.StringN(0, 12, -1).Draw(rt, "seed"))
		buf := New(append([]byte(nil), seed...))
		ref := append([]byte(nil), seed...)

		steps := rapid.IntRange(0, 40).Draw(rt, "steps")
		for s := 0; s < steps; s++ {
			op := rapid.IntRange(0, 2).Draw(rt, "op")
			switch {
			case op == 0 || len(ref) == 0:
				i := rapid.IntRange(0, len(ref)).Draw(rt, "insert_at")
				c := byte(rapid.IntRange('a', 'z').Draw(rt, "insert_char"))
				buf.Insert(i, c)
				ref = append(ref[:i:i], append([]byte{c}, ref[i:]...)...)
			case op == 1:
				i := rapid.IntRange(0, len(ref)-1).Draw(rt, "remove_at")
				buf.Remove(i)
				ref = append(ref[:i:i], ref[i+1:]...)
			default:
				c := byte(rapid.IntRange('a', 'z').Draw(rt, "push_char"))
				buf.Push(c)
				ref = append(ref, c)
			}

			require.Equal(rt, len(ref), buf.Len())
			require.Equal(rt, ref, collectBytes(buf))
			require.Equal(rt, reverseOf(ref), buf.ReverseIter().Collect())

			total := 0
			for _, p := range buf.pieces {
				require.GreaterOrEqual(rt, p.length, 1)
				backing := buf.original
				if p.src == sourceAdd {
					backing = buf.add
				}
				require.LessOrEqual(rt, p.start+p.length, len(backing))
				total += p.length
			}
			require.Equal(rt, buf.length, total)

			for i := range ref {
				require.Equal(rt, ref[i], buf.Index(i))
			}
		}
	})
}

func TestPropertyRangeAgreesWithReverseRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.StringN(1, 24, -1).Draw(rt, "body")
		buf := New([]byte(s))
		lo := rapid.IntRange(0, len(s)).Draw(rt, "lo")
		hi := rapid.IntRange(lo, len(s)).Draw(rt, "hi")

		fwd := buf.Range(lo, hi).Collect()
		rev := buf.ReverseRange(lo, hi).Collect()
		require.Equal(rt, reverseOf(fwd), rev)
	})
}

func reverseOf(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

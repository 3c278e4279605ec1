// Package piecetable implements a generic piece-table sequence: an
// immutable original array plus an append-only add array, stitched
// together by an ordered list of pieces. Insert and remove are
// amortised O(1) thanks to a one-edit reuse hint that fast-paths the
// common case of typing or backspacing one element at a time.
package piecetable

import "fmt"

// source names which backing array a Piece slices into.
type source int

const (
	sourceOriginal source = iota
	sourceAdd
)

// piece is a contiguous slice of one of the two backing arrays.
type piece struct {
	src    source
	start  int
	length int
}

// locKind enumerates the disambiguated result of an absolute-index
// lookup into the piece list.
type locKind int

const (
	locHead locKind = iota
	locMiddle
	locTail
	locEOF
)

// location names exactly where an absolute index lands: at the head,
// tail, or interior of a piece, or past the end of the sequence.
type location struct {
	kind     locKind
	pieceIdx int
	delta    int
}

// hintKind enumerates the shape of the one-slot reuse hint.
type hintKind int

const (
	hintNone hintKind = iota
	hintInsert
	hintRemove
)

// reuseHint fast-paths the common case of an edit immediately adjacent
// to the previous one (typing or backspacing in a run).
type reuseHint struct {
	kind       hintKind
	pieceIdx   int    // valid for hintInsert
	headWasNew bool   // valid for hintInsert
	removeLoc  location // valid for hintRemove
}

// Buffer is a piece-table sequence over elements of type T. The zero
// value is not usable; construct one with New.
type Buffer[T comparable] struct {
	original []T
	add      []T
	pieces   []piece
	length   int

	hint           reuseHint
	lastEditIndex  int
	haveLastEdit   bool
	generation     uint64
}

// New builds a PieceBuffer with a single Original piece spanning src.
// src is borrowed for the buffer's lifetime and must not be mutated by
// the caller.
func New[T comparable](src []T) *Buffer[T] {
	b := &Buffer[T]{
		original: src,
		add:      nil,
		pieces:   nil,
		length:   len(src),
	}
	if len(src) > 0 {
		b.pieces = []piece{{src: sourceOriginal, start: 0, length: len(src)}}
	}
	return b
}

// Len returns the logical length of the sequence.
func (b *Buffer[T]) Len() int { return b.length }

// Generation returns the current edit generation. Cursors snapshot this
// at construction and refuse to advance once it has changed underneath
// them, since the buffer has no borrow checker to enforce §9's aliasing
// rule at compile time.
func (b *Buffer[T]) Generation() uint64 { return b.generation }

func (b *Buffer[T]) bufferFor(p piece) []T {
	if p.src == sourceAdd {
		return b.add
	}
	return b.original
}

// Index returns the element at absolute index i. It is read-only and
// never updates the reuse hint. Out-of-bounds is a precondition
// violation: it panics rather than returning an error, matching the
// debug-assert semantics of the source this was distilled from (Go has
// no separate release-mode assertion that would compile it out).
func (b *Buffer[T]) Index(i int) T {
	if i < 0 || i >= b.length {
		panic(fmt.Sprintf("piecetable: index %d out of bounds (length %d)", i, b.length))
	}
	loc := b.locate(i)
	pieceIdx, delta := locPieceOffset(loc)
	p := b.pieces[pieceIdx]
	return b.bufferFor(p)[p.start+delta]
}

// locPieceOffset normalizes Head/Middle/Tail into a (pieceIdx, delta)
// pair; it must not be called with locEOF.
func locPieceOffset(loc location) (int, int) {
	switch loc.kind {
	case locHead:
		return loc.pieceIdx, 0
	default: // locMiddle, locTail
		return loc.pieceIdx, loc.delta
	}
}

// locate performs the absolute-index -> Location scan, O(p) in the
// number of pieces. It returns locEOF exactly when i equals the total
// length (valid only as an insertion point).
func (b *Buffer[T]) locate(i int) location {
	acc := 0
	for idx, p := range b.pieces {
		if i >= acc && i < acc+p.length {
			delta := i - acc
			switch {
			case delta == 0:
				return location{kind: locHead, pieceIdx: idx}
			case delta == p.length-1:
				return location{kind: locTail, pieceIdx: idx, delta: delta}
			default:
				return location{kind: locMiddle, pieceIdx: idx, delta: delta}
			}
		}
		acc += p.length
	}
	return location{kind: locEOF}
}

// Push appends x to the end of the sequence, extending the last piece
// in place when it already tails the add array.
func (b *Buffer[T]) Push(x T) {
	b.generation++
	n := len(b.pieces)
	if n > 0 {
		last := &b.pieces[n-1]
		if last.src == sourceAdd && last.start+last.length == len(b.add) {
			b.add = append(b.add, x)
			last.length++
			b.length++
			b.hint = reuseHint{kind: hintInsert, pieceIdx: n - 1, headWasNew: false}
			b.lastEditIndex, b.haveLastEdit = b.length-1, true
			return
		}
	}
	b.add = append(b.add, x)
	b.pieces = append(b.pieces, piece{src: sourceAdd, start: len(b.add) - 1, length: 1})
	b.length++
	b.hint = reuseHint{kind: hintInsert, pieceIdx: len(b.pieces) - 1, headWasNew: true}
	b.lastEditIndex, b.haveLastEdit = b.length-1, true
}

// Insert places x at absolute index i, 0 <= i <= Len(). Inserting at
// i == Len() appends.
func (b *Buffer[T]) Insert(i int, x T) {
	if i < 0 || i > b.length {
		panic(fmt.Sprintf("piecetable: insert at %d out of bounds (length %d)", i, b.length))
	}
	b.generation++

	// Fast path: typing forward immediately after the previous insert.
	if b.hint.kind == hintInsert && b.haveLastEdit && i == b.lastEditIndex+1 {
		b.add = append(b.add, x)
		b.pieces[b.hint.pieceIdx].length++
		b.length++
		b.lastEditIndex = i
		return
	}

	loc := b.locate(i)
	pushStart := len(b.add)
	b.add = append(b.add, x)

	switch loc.kind {
	case locHead:
		b.pieces = insertPieceAt(b.pieces, loc.pieceIdx, piece{src: sourceAdd, start: pushStart, length: 1})
		b.hint = reuseHint{kind: hintInsert, pieceIdx: loc.pieceIdx, headWasNew: true}
	case locMiddle, locTail:
		orig := b.pieces[loc.pieceIdx]
		b.pieces[loc.pieceIdx].length = loc.delta
		ins := piece{src: sourceAdd, start: pushStart, length: 1}
		split := piece{src: orig.src, start: orig.start + loc.delta, length: orig.length - loc.delta}
		b.pieces = insertPieceAt(b.pieces, loc.pieceIdx+1, ins)
		b.pieces = insertPieceAt(b.pieces, loc.pieceIdx+2, split)
		b.hint = reuseHint{kind: hintInsert, pieceIdx: loc.pieceIdx + 1, headWasNew: false}
	case locEOF:
		b.pieces = append(b.pieces, piece{src: sourceAdd, start: pushStart, length: 1})
		b.hint = reuseHint{kind: hintInsert, pieceIdx: len(b.pieces) - 1, headWasNew: true}
	}

	b.length++
	b.lastEditIndex, b.haveLastEdit = i, true
}

// Remove deletes the element at absolute index i, 0 <= i < Len().
func (b *Buffer[T]) Remove(i int) {
	if i < 0 || i >= b.length {
		panic(fmt.Sprintf("piecetable: remove at %d out of bounds (length %d)", i, b.length))
	}
	b.generation++

	// Fast path 1: backspacing an insert that just happened, undoing it
	// in place.
	if b.hint.kind == hintInsert && b.hint.headWasNew && b.haveLastEdit && i == b.lastEditIndex {
		pieceIdx := b.hint.pieceIdx
		b.pieces[pieceIdx].length--
		if b.pieces[pieceIdx].length == 0 {
			b.pieces = removePieceAt(b.pieces, pieceIdx)
		}
		b.hint = reuseHint{}
		b.length--
		b.lastEditIndex, b.haveLastEdit = i, true
		return
	}

	// Fast path 2: repeated Delete at the same index, already located.
	if b.hint.kind == hintRemove && b.haveLastEdit && i == b.lastEditIndex {
		loc := b.hint.removeLoc
		b.applyRemove(loc)
		b.length--
		b.lastEditIndex, b.haveLastEdit = i, true
		return
	}

	loc := b.locate(i)
	b.applyRemove(loc)
	b.length--
	b.lastEditIndex, b.haveLastEdit = i, true
}

// applyRemove performs the structural edit for a located removal and
// updates b.hint for a possible follow-on fast path.
func (b *Buffer[T]) applyRemove(loc location) {
	switch loc.kind {
	case locHead:
		p := &b.pieces[loc.pieceIdx]
		p.start++
		p.length--
		if p.length == 0 {
			b.pieces = removePieceAt(b.pieces, loc.pieceIdx)
		}
		b.hint = reuseHint{}

	case locTail:
		p := &b.pieces[loc.pieceIdx]
		p.length--
		// The element now at the removed index is the head of the next
		// piece, if there is one.
		if loc.pieceIdx+1 < len(b.pieces) {
			b.hint = reuseHint{kind: hintRemove, removeLoc: location{kind: locHead, pieceIdx: loc.pieceIdx + 1}}
		} else {
			b.hint = reuseHint{}
		}

	case locMiddle:
		orig := b.pieces[loc.pieceIdx]
		b.pieces[loc.pieceIdx].length = loc.delta
		suffixStart := loc.delta + 1
		suffixLen := orig.length - suffixStart
		if suffixLen > 0 {
			suffix := piece{src: orig.src, start: orig.start + suffixStart, length: suffixLen}
			b.pieces = insertPieceAt(b.pieces, loc.pieceIdx+1, suffix)
			// The suffix piece's first element is always a Head,
			// regardless of its length: location classification gives
			// Head priority at delta == 0, so a length-1 suffix is
			// still Head, never Tail. This generalizes the spec's
			// Tail-derived wording for the Middle case consistently.
			b.hint = reuseHint{kind: hintRemove, removeLoc: location{kind: locHead, pieceIdx: loc.pieceIdx + 1}}
		} else {
			b.hint = reuseHint{}
		}

	case locEOF:
		// no-op
	}
}

func insertPieceAt(pieces []piece, idx int, p piece) []piece {
	pieces = append(pieces, piece{})
	copy(pieces[idx+1:], pieces[idx:])
	pieces[idx] = p
	return pieces
}

func removePieceAt(pieces []piece, idx int) []piece {
	return append(pieces[:idx], pieces[idx+1:]...)
}

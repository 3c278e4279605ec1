package piecetable

import "fmt"

// staleGenerationMsg is panicked by any cursor whose buffer mutated
// since construction. Go has no borrow checker, so this is the runtime
// stand-in for §9's "cursors borrow the buffer immutably" rule.
const staleGenerationMsg = "piecetable: cursor used after buffer mutation"

// Forward lazily walks the sequence from front to back. It borrows the
// buffer; any mutation of the buffer invalidates it.
type Forward[T comparable] struct {
	buf        *Buffer[T]
	generation uint64
	pieceIdx   int
	innerIdx   int
}

// Iter returns a fresh forward cursor positioned at the start of the
// sequence.
func (b *Buffer[T]) Iter() *Forward[T] {
	return b.forwardFrom(0)
}

func (b *Buffer[T]) forwardFrom(i int) *Forward[T] {
	c := &Forward[T]{buf: b, generation: b.generation}
	if i >= b.length {
		c.pieceIdx = len(b.pieces)
		return c
	}
	loc := b.locate(i)
	pieceIdx, delta := locPieceOffset(loc)
	c.pieceIdx, c.innerIdx = pieceIdx, delta
	return c
}

// Next returns the next element and true, or the zero value and false
// once the cursor is exhausted.
func (c *Forward[T]) Next() (T, bool) {
	if c.generation != c.buf.generation {
		panic(staleGenerationMsg)
	}
	for c.pieceIdx < len(c.buf.pieces) {
		p := c.buf.pieces[c.pieceIdx]
		if c.innerIdx < p.length {
			v := c.buf.bufferFor(p)[p.start+c.innerIdx]
			c.innerIdx++
			return v, true
		}
		c.pieceIdx++
		c.innerIdx = 0
	}
	var zero T
	return zero, false
}

// Reverse lazily walks the sequence from back to front.
type Reverse[T comparable] struct {
	buf        *Buffer[T]
	generation uint64
	pieceIdx   int // -1 once exhausted
	innerIdx   int
}

// ReverseIter returns a fresh reverse cursor positioned at the end of
// the sequence.
func (b *Buffer[T]) ReverseIter() *Reverse[T] {
	return b.reverseFrom(b.length - 1)
}

// reverseFrom builds a reverse cursor whose first Next() call returns
// the element at absolute index i. i == -1 yields an empty cursor.
func (b *Buffer[T]) reverseFrom(i int) *Reverse[T] {
	c := &Reverse[T]{buf: b, generation: b.generation}
	if i < 0 || i >= b.length {
		c.pieceIdx = -1
		return c
	}
	loc := b.locate(i)
	pieceIdx, delta := locPieceOffset(loc)
	c.pieceIdx, c.innerIdx = pieceIdx, delta
	return c
}

// Next returns the previous element and true, or the zero value and
// false once the cursor is exhausted.
func (c *Reverse[T]) Next() (T, bool) {
	if c.generation != c.buf.generation {
		panic(staleGenerationMsg)
	}
	if c.pieceIdx < 0 {
		var zero T
		return zero, false
	}
	p := c.buf.pieces[c.pieceIdx]
	v := c.buf.bufferFor(p)[p.start+c.innerIdx]
	c.innerIdx--
	if c.innerIdx < 0 {
		c.pieceIdx--
		if c.pieceIdx >= 0 {
			c.innerIdx = c.buf.pieces[c.pieceIdx].length - 1
		}
	}
	return v, true
}

// Range is a forward cursor bounded to a half-open [lo, hi) slice.
type Range[T comparable] struct {
	inner     *Forward[T]
	remaining int
}

// Range returns a bounded forward cursor over [lo, hi). 0 <= lo <= hi <=
// Len() is a precondition.
func (b *Buffer[T]) Range(lo, hi int) *Range[T] {
	if lo < 0 || hi < lo || hi > b.length {
		panic(fmt.Sprintf("piecetable: invalid range [%d, %d) over length %d", lo, hi, b.length))
	}
	return &Range[T]{inner: b.forwardFrom(lo), remaining: hi - lo}
}

// Next returns the next element in the range and true, or the zero
// value and false once exhausted.
func (r *Range[T]) Next() (T, bool) {
	if r.remaining <= 0 {
		var zero T
		return zero, false
	}
	v, ok := r.inner.Next()
	if !ok {
		var zero T
		return zero, false
	}
	r.remaining--
	return v, true
}

// Collect drains r into a freshly allocated slice.
func (r *Range[T]) Collect() []T {
	out := make([]T, 0, r.remaining)
	for {
		v, ok := r.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// ReverseRange is a reverse cursor bounded to a half-open [lo, hi)
// slice, yielding elements from index hi-1 down to lo.
type ReverseRange[T comparable] struct {
	inner     *Reverse[T]
	remaining int
}

// ReverseRange returns a bounded reverse cursor yielding the elements of
// [lo, hi) from index hi-1 down to lo.
func (b *Buffer[T]) ReverseRange(lo, hi int) *ReverseRange[T] {
	if lo < 0 || hi < lo || hi > b.length {
		panic(fmt.Sprintf("piecetable: invalid range [%d, %d) over length %d", lo, hi, b.length))
	}
	return &ReverseRange[T]{inner: b.reverseFrom(hi - 1), remaining: hi - lo}
}

// Next returns the previous element in the range and true, or the zero
// value and false once exhausted.
func (r *ReverseRange[T]) Next() (T, bool) {
	if r.remaining <= 0 {
		var zero T
		return zero, false
	}
	v, ok := r.inner.Next()
	if !ok {
		var zero T
		return zero, false
	}
	r.remaining--
	return v, true
}

// Collect drains r into a freshly allocated slice, in visitation order
// (i.e. reversed relative to the forward slice).
func (r *ReverseRange[T]) Collect() []T {
	out := make([]T, 0, r.remaining)
	for {
		v, ok := r.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Collect drains the whole sequence into a freshly allocated slice.
func (c *Forward[T]) Collect() []T {
	out := make([]T, 0, c.buf.length)
	for {
		v, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Collect drains the whole sequence, back to front, into a freshly
// allocated slice.
func (c *Reverse[T]) Collect() []T {
	out := make([]T, 0, c.buf.length)
	for {
		v, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

package piecetable

// LineColumnToIndex walks the sequence forward counting newlines (as
// reported by isNewline) to find the absolute index of (line, column).
// It is the byte/grapheme-oriented specialisation spec.md §4.1
// describes: the generic buffer itself has no notion of "newline", so
// the caller supplies one. ok is false if (column, line) is unreachable
// (e.g. line runs past the end of the sequence, or column runs past the
// end of that line).
func (b *Buffer[T]) LineColumnToIndex(column, line int, isNewline func(T) bool) (idx int, ok bool) {
	curLine, curCol := 0, 0
	it := b.Iter()
	i := 0
	for {
		if curLine == line && curCol == column {
			return i, true
		}
		v, more := it.Next()
		if !more {
			return 0, false
		}
		if isNewline(v) {
			curLine++
			curCol = 0
		} else if curLine == line {
			curCol++
		}
		i++
	}
}

// Package highlight implements the non-overlapping tagged-range overlay
// that sits between a syntax-highlight engine and the editor's renderer,
// plus the event-stream reconstruction described in spec.md §4.6.
package highlight

// Range is a single non-overlapping tagged span over absolute buffer
// indices, start < end.
type Range struct {
	Start, End int
	Tag        string
}

// Overlay is a grow-only list of tagged ranges. Producers rebuild it
// wholesale per highlight pass via Clear + Push, or via Rebuild from a
// raw event stream.
type Overlay struct {
	ranges []Range
}

// New returns an empty overlay.
func New() *Overlay { return &Overlay{} }

// Push appends a range. The contract does not require ranges to be
// non-overlapping, though producers are expected to maintain that in
// practice; on overlap, Get returns the first match.
func (o *Overlay) Push(r Range) {
	o.ranges = append(o.ranges, r)
}

// Clear empties the overlay. Producers call this before a full rebuild,
// and callers call this when the highlight engine fails (error kind #3
// in spec.md §7) so that rendering proceeds uncoloured.
func (o *Overlay) Clear() {
	o.ranges = o.ranges[:0]
}

// Get returns the tag covering absolute index i, if any. It applies the
// +1 bias that matches the producer's event semantics (spec.md §4.3,
// §9b): a range [start, end) covers i when i+1 is in [start, end).
func (o *Overlay) Get(i int) (string, bool) {
	probe := i + 1
	for _, r := range o.ranges {
		if probe >= r.Start && probe < r.End {
			return r.Tag, true
		}
	}
	return "", false
}

package highlight

// EventKind enumerates the three event shapes a highlight engine emits
// over a byte view of the document (spec.md §4.6).
type EventKind int

const (
	// EventSource reports the byte range [Start, End) the most recent
	// token (or un-highlighted run) covers.
	EventSource EventKind = iota
	// EventHighlightStart opens a pending tag.
	EventHighlightStart
	// EventHighlightEnd closes the most recently opened pending tag.
	EventHighlightEnd
)

// Event is one item of the highlight engine's output stream.
type Event struct {
	Kind       EventKind
	Start, End int    // valid for EventSource
	Tag        string // valid for EventHighlightStart
}

// Rebuild clears the overlay and reconstructs it from a raw event
// stream, pairing the most recently opened pending tag with the most
// recently reported source range on each EventHighlightEnd. A
// HighlightEnd with no pending start, or a Start/End pair whose source
// range is still unknown, is silently dropped — the producer is
// trusted to emit well-formed streams, and a malformed one should
// degrade to "fewer ranges", never a crash.
func Rebuild(o *Overlay, events []Event) {
	o.Clear()

	var pendingTag string
	havePending := false
	var lastStart, lastEnd int
	haveSource := false

	for _, ev := range events {
		switch ev.Kind {
		case EventSource:
			lastStart, lastEnd = ev.Start, ev.End
			haveSource = true
		case EventHighlightStart:
			pendingTag = ev.Tag
			havePending = true
		case EventHighlightEnd:
			if havePending && haveSource && lastStart < lastEnd {
				o.Push(Range{Start: lastStart, End: lastEnd, Tag: pendingTag})
			}
			havePending = false
		}
	}
}

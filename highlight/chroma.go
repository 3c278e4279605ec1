package highlight

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ChromaAdapter drives a github.com/alecthomas/chroma/v2 lexer over a
// byte view of the document and turns its tokens into the
// Source/HighlightStart/HighlightEnd event stream Rebuild consumes.
// This is the concrete stand-in for spec.md §4.6's "syntax-highlight
// engine" collaborator — the engine's own grammar is out of scope, but
// wiring a real tokenizer here keeps the overlay's reconstruction logic
// honest against real token output instead of a hand-rolled fixture.
type ChromaAdapter struct {
	lexer chroma.Lexer
}

// NewChromaAdapter resolves a lexer by filename (falls back to the
// plaintext lexer when the language can't be determined), matching how
// chroma-based editors in this corpus pick a grammar.
func NewChromaAdapter(filename string) *ChromaAdapter {
	l := lexers.Match(filename)
	if l == nil {
		l = lexers.Fallback
	}
	return &ChromaAdapter{lexer: chroma.Coalesce(l)}
}

// Highlight tokenizes src and returns the event stream for Rebuild. A
// tokenizer error is returned to the caller, which per spec.md §7 error
// kind #3 should Clear the overlay and proceed uncoloured rather than
// abort the session.
func (c *ChromaAdapter) Highlight(src []byte) ([]Event, error) {
	iter, err := c.lexer.Tokenise(nil, string(src))
	if err != nil {
		return nil, fmt.Errorf("highlight: tokenise: %w", err)
	}

	var events []Event
	offset := 0
	for _, tok := range iter.Tokens() {
		n := len(tok.Value)
		if n == 0 {
			continue
		}
		tag := tok.Type.String()
		events = append(events,
			Event{Kind: EventHighlightStart, Tag: tag},
			Event{Kind: EventSource, Start: offset, End: offset + n},
			Event{Kind: EventHighlightEnd},
		)
		offset += n
	}
	return events, nil
}

package parseforest

import "fmt"

// Span denotes a half-open range of token positions [From, To) covered by a
// partial item or a symbol node.
type Span [2]uint64

// From returns the inclusive start position of the span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the exclusive end position of the span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the number of positions covered by the span.
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// String renders a span as "(x…y)".
func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

package sentsplit

import "fmt"

// Span is a half-open interval of rune offsets into the original input.
type Span struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether s and o share at least one rune.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Sentence is a sentence found in a text. Text has no surrounding whitespace
// and equals the input runes selected by Span.
type Sentence struct {
	Text string
	Span Span
}

// Spans returns the spans of sentences in order.
func Spans(sentences []Sentence) []Span {
	spans := make([]Span, len(sentences))
	for i, s := range sentences {
		spans[i] = s.Span
	}
	return spans
}

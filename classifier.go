package sentsplit

import "context"

// Classifier decomposes text into sentence-like chunks.
//
// Segment must return chunks in order, without overlap, each chunk keeping
// the whitespace around it, so that concatenating the chunks reproduces text
// exactly. Implementations used by a shared Splitter must be safe for
// concurrent calls.
type Classifier interface {
	Segment(ctx context.Context, text string) ([]string, error)
}

// SpecialCaseAdder is implemented by classifiers whose tokenizer can be told
// to keep a literal string, such as an abbreviation, as one unit.
// Registrations happen before the first call to Segment.
type SpecialCaseAdder interface {
	AddSpecialCase(literal string)
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, text string) ([]string, error)

// Segment calls f(ctx, text).
func (f ClassifierFunc) Segment(ctx context.Context, text string) ([]string, error) {
	return f(ctx, text)
}

// Package uax29 provides a rule-based sentence classifier implementing the
// Unicode UAX #29 sentence boundary rules. It needs no model files.
package uax29

import (
	"context"

	"github.com/clipperhouse/uax29/v2/sentences"

	"github.com/jamesainslie/go-sentsplit/internal/boundary"
)

// Classifier segments text using UAX #29. It is safe for concurrent use.
type Classifier struct {
	literals boundary.Literals
}

// New creates a UAX #29 classifier.
func New() *Classifier {
	return &Classifier{}
}

// AddSpecialCase protects literal from ending a sentence. UAX #29 breaks
// after "Dr. " when a capital letter follows; registering "Dr." prevents it.
func (c *Classifier) AddSpecialCase(literal string) {
	c.literals.Add(literal)
}

// Segment returns the UAX #29 sentences of text. Trailing whitespace stays
// attached to the sentence it follows.
func (c *Classifier) Segment(_ context.Context, text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	var ends []int
	pos := 0
	seg := sentences.FromString(text)
	for seg.Next() {
		pos += len(seg.Value())
		ends = append(ends, pos)
	}

	return boundary.Cut(text, c.literals.Filter(text, ends)), nil
}

package sentsplit

import (
	"context"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
)

var punctuationRE = regexp.MustCompile(`[.!?]\s+`)

// punctuationClassifier cuts after sentence punctuation followed by
// whitespace, keeping the whitespace with the preceding chunk.
func punctuationClassifier(_ context.Context, text string) ([]string, error) {
	var chunks []string
	prev := 0
	for _, loc := range punctuationRE.FindAllStringIndex(text, -1) {
		chunks = append(chunks, text[prev:loc[1]])
		prev = loc[1]
	}
	if prev < len(text) {
		chunks = append(chunks, text[prev:])
	}
	return chunks, nil
}

// countingClassifier wraps punctuationClassifier and counts calls.
type countingClassifier struct {
	calls atomic.Int64
}

func (c *countingClassifier) Segment(ctx context.Context, text string) ([]string, error) {
	c.calls.Add(1)
	return punctuationClassifier(ctx, text)
}

// closingClassifier records whether Close was called.
type closingClassifier struct {
	ClassifierFunc
	closed bool
}

func (c *closingClassifier) Close() error {
	c.closed = true
	return nil
}

func newTestSplitter(t *testing.T, c Classifier, opts ...Option) *Splitter {
	t.Helper()
	s, err := NewWithClassifier(c, opts...)
	if err != nil {
		t.Fatalf("NewWithClassifier() failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustSplit(t *testing.T, s *Splitter, text string) []Sentence {
	t.Helper()
	sentences, err := s.Split(context.Background(), text)
	if err != nil {
		t.Fatalf("Split(%q) failed: %v", text, err)
	}
	return sentences
}

// checkSentences asserts order, span fidelity and trimming for a result.
func checkSentences(t *testing.T, text string, sentences []Sentence) {
	t.Helper()
	runes := []rune(text)
	prevEnd := 0
	for i, s := range sentences {
		if s.Span.Start < prevEnd || s.Span.Start >= s.Span.End {
			t.Errorf("sentence %d: span %v out of order (previous end %d)", i, s.Span, prevEnd)
			return
		}
		if s.Span.End > len(runes) {
			t.Errorf("sentence %d: span %v beyond input of %d runes", i, s.Span, len(runes))
			return
		}
		if got := string(runes[s.Span.Start:s.Span.End]); got != s.Text {
			t.Errorf("sentence %d: text %q does not match input %q at %v", i, s.Text, got, s.Span)
		}
		if strings.TrimFunc(s.Text, isSpace) != s.Text {
			t.Errorf("sentence %d: text %q has surrounding whitespace", i, s.Text)
		}
		prevEnd = s.Span.End
	}
}

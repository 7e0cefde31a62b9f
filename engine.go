package sentsplit

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// segment runs the configured strategy over text without consulting the cache.
func (s *Splitter) segment(ctx context.Context, text string) ([]Sentence, error) {
	if text == "" {
		return nil, nil
	}

	var sentences []Sentence
	if !s.splitOnLineBreaks {
		if _, err := s.appendClassified(ctx, &sentences, 0, text); err != nil {
			return nil, err
		}
		return sentences, nil
	}

	cur := 0
	for _, line := range splitLines(text) {
		lineLen := utf8.RuneCountInString(line)
		if lineLen < s.maxLenBeforeSplit {
			appendTrimmed(&sentences, cur, line)
		} else if _, err := s.appendClassified(ctx, &sentences, cur, line); err != nil {
			return nil, err
		}
		// Chunk offsets from the classifier are relative to the line.
		cur += lineLen
	}
	return sentences, nil
}

// appendClassified segments text with the classifier and trims every chunk,
// starting at rune offset cur. It returns the number of runes consumed.
func (s *Splitter) appendClassified(ctx context.Context, sentences *[]Sentence, cur int, text string) (int, error) {
	chunks, err := s.classifier.Segment(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrClassifierFailed, err)
	}

	start := cur
	for _, chunk := range chunks {
		cur += appendTrimmed(sentences, cur, chunk)
	}
	s.logger.Debug("classified text", "chunks", len(chunks), "runes", cur-start)
	return cur - start, nil
}

// appendTrimmed appends chunk without its surrounding whitespace, located at
// rune offset cur, unless it is blank. It returns the untrimmed rune length
// of chunk, which is what the caller must advance its offset by.
func appendTrimmed(sentences *[]Sentence, cur int, chunk string) int {
	chunkLen := utf8.RuneCountInString(chunk)
	stripped := strings.TrimFunc(chunk, isSpace)
	if stripped == "" {
		return chunkLen
	}

	start := cur + chunkLen - utf8.RuneCountInString(strings.TrimLeftFunc(chunk, isSpace))
	end := start + utf8.RuneCountInString(stripped)
	*sentences = append(*sentences, Sentence{
		Text: stripped,
		Span: Span{Start: start, End: end},
	})
	return chunkLen
}

// isSpace reports whether r is whitespace, counting the information
// separators U+001C..U+001F like str.isspace does in Python.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r >= 0x1c && r <= 0x1f
}

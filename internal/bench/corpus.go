// Package bench provides benchmarking utilities for sentence boundary detection.
package bench

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jamesainslie/go-sentsplit"
)

const (
	textExt  = ".txt"
	splitExt = ".split"
)

// whitespace matches what unicode.IsSpace accepts, which \s alone does not.
const whitespace = `[\s\v\x{85}\p{Z}]+`

// Document is a raw text paired with its gold sentence spans.
type Document struct {
	ID   string // file name without extension
	Text string
	Gold []sentsplit.Span

	// Missing holds gold lines that could not be located in Text.
	Missing []string
}

// LoadDocument reads a text file and its gold split file, one sentence per
// line, and locates every gold sentence in the text.
func LoadDocument(textPath, splitPath string, logger *slog.Logger) (*Document, error) {
	text, err := os.ReadFile(textPath)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	split, err := os.ReadFile(splitPath)
	if err != nil {
		return nil, fmt.Errorf("read split: %w", err)
	}

	base := filepath.Base(splitPath)
	doc := &Document{
		ID:   strings.TrimSuffix(base, filepath.Ext(base)),
		Text: string(text),
	}
	doc.Gold, doc.Missing = FindSpans(doc.Text, strings.Split(string(split), "\n"))

	if logger != nil {
		for _, line := range doc.Missing {
			logger.Warn("gold sentence not found", "document", doc.ID, "sentence", line)
		}
	}
	return doc, nil
}

// LoadCorpus loads every *.split file in dir together with the .txt file of
// the same name. Documents are returned sorted by ID.
func LoadCorpus(dir string, logger *slog.Logger) ([]*Document, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	splitFiles, err := filepath.Glob(filepath.Join(dir, "*"+splitExt))
	if err != nil {
		return nil, fmt.Errorf("glob corpus: %w", err)
	}
	sort.Strings(splitFiles)

	docs := make([]*Document, 0, len(splitFiles))
	for _, splitPath := range splitFiles {
		textPath := strings.TrimSuffix(splitPath, splitExt) + textExt
		doc, err := LoadDocument(textPath, splitPath, logger)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", filepath.Base(splitPath), err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// FindSpans locates each gold line in text, searching left to right from the
// end of the previous match. Whitespace runs in a line match any whitespace
// run in text. Spans are rune offsets. Lines that cannot be found are
// returned in missing; blank lines are ignored.
func FindSpans(text string, lines []string) (spans []sentsplit.Span, missing []string) {
	var (
		from      int // byte offset where the next search starts
		runeBase  int // rune offset of runeByte
		runeByte  int
		toRuneOff = func(b int) int {
			runeBase += utf8.RuneCountInString(text[runeByte:b])
			runeByte = b
			return runeBase
		}
	)

	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		for i, f := range fields {
			fields[i] = regexp.QuoteMeta(f)
		}
		re, err := regexp.Compile(strings.Join(fields, whitespace))
		if err != nil {
			missing = append(missing, line)
			continue
		}

		loc := re.FindStringIndex(text[from:])
		if loc == nil {
			missing = append(missing, line)
			continue
		}
		start, end := from+loc[0], from+loc[1]
		spans = append(spans, sentsplit.Span{Start: toRuneOff(start), End: toRuneOff(end)})
		from = end
	}
	return spans, missing
}

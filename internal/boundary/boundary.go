// Package boundary provides helpers shared by the classifier backends for
// turning sentence end offsets into whitespace-preserving chunks.
package boundary

import (
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Literals is a set of protected strings, such as abbreviations, that must
// never end a chunk. It is safe for concurrent use.
type Literals struct {
	mu   sync.RWMutex
	list []string
}

// Add registers a literal. Empty strings and duplicates are ignored.
func (l *Literals) Add(literal string) {
	if literal == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !slices.Contains(l.list, literal) {
		l.list = append(l.list, literal)
	}
}

// Len returns the number of registered literals.
func (l *Literals) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.list)
}

// Filter drops the byte offsets in ends that fall inside an occurrence of a
// registered literal in text, or right after it and its trailing whitespace.
// The end of text is always kept.
func (l *Literals) Filter(text string, ends []int) []int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.list) == 0 || len(ends) == 0 {
		return ends
	}

	var protected [][2]int
	for _, lit := range l.list {
		for from := 0; from < len(text); {
			i := strings.Index(text[from:], lit)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(lit)
			from = start + 1
			if !atWordStart(text, start) {
				continue
			}
			protected = append(protected, [2]int{start, end + leadingSpaceLen(text[end:])})
		}
	}
	if len(protected) == 0 {
		return ends
	}

	kept := make([]int, 0, len(ends))
	for _, e := range ends {
		if e < len(text) && insideAny(protected, e) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// Cut splits text at the given byte offsets. Offsets that are out of range or
// not increasing are ignored. The chunks always cover text completely.
func Cut(text string, ends []int) []string {
	if text == "" {
		return nil
	}
	chunks := make([]string, 0, len(ends)+1)
	prev := 0
	for _, e := range ends {
		if e <= prev || e > len(text) {
			continue
		}
		chunks = append(chunks, text[prev:e])
		prev = e
	}
	if prev < len(text) {
		chunks = append(chunks, text[prev:])
	}
	return chunks
}

func atWordStart(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func leadingSpaceLen(s string) int {
	return len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
}

func insideAny(intervals [][2]int, offset int) bool {
	for _, iv := range intervals {
		if offset > iv[0] && offset <= iv[1] {
			return true
		}
	}
	return false
}

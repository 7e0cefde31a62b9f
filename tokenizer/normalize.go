package tokenizer

import (
	"unicode"
	"unicode/utf8"
)

const sentencePieceSpace = '▁' // U+2581 LOWER ONE EIGHTH BLOCK

// normalized is text prepared for tokenization together with the byte range
// in the original text that each rune came from.
type normalized struct {
	runes  []rune
	starts []int // byte offset in the original text where runes[i] starts
	ends   []int // byte offset in the original text where runes[i] ends
}

// normalize prepares text for tokenization following XLM-RoBERTa conventions.
// - Adds dummy prefix (space at start)
// - Replaces spaces with ▁
// - Normalizes whitespace (collapses runs, trims trailing)
//
// An inserted ▁ is zero-width in the original text, located at the start of
// the word it precedes.
func normalize(text string) normalized {
	var n normalized
	needSpace := true // start true to add dummy prefix before first non-space

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			// Only separate words once something has been written
			if len(n.runes) > 0 {
				needSpace = true
			}
		} else {
			if needSpace {
				n.add(sentencePieceSpace, i, i)
				needSpace = false
			}
			n.add(r, i, i+size)
		}
		i += size
	}

	return n
}

func (n *normalized) add(r rune, start, end int) {
	n.runes = append(n.runes, r)
	n.starts = append(n.starts, start)
	n.ends = append(n.ends, end)
}

func (n normalized) String() string {
	return string(n.runes)
}

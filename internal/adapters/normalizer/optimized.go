package normalizer

import (
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_text_compare/internal/pool"
	"github.com/baditaflorin/go_text_compare/internal/ports"
)

const (
	asciiKeep byte = iota
	asciiSpace
	asciiLower
)

// FoldingNormalizer lower-cases text, turns punctuation into spaces and
// collapses runs of spaces. Leading and trailing spaces are dropped.
type FoldingNormalizer struct {
	// Pre-computed decision table for ASCII characters (0-127)
	asciiTable [128]byte

	bytePool *pool.BufferPool
}

// NewFoldingNormalizer creates a folding normalizer.
func NewFoldingNormalizer() ports.Normalizer {
	n := &FoldingNormalizer{
		bytePool: pool.NewBufferPool(8192),
	}
	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case unicode.IsPunct(r) || unicode.IsSpace(r):
			n.asciiTable[i] = asciiSpace
		case unicode.IsUpper(r):
			n.asciiTable[i] = asciiLower
		default:
			n.asciiTable[i] = asciiKeep
		}
	}
	return n
}

// Normalize folds text.
func (n *FoldingNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	buffer := n.bytePool.Get(0)
	defer n.bytePool.Put(buffer)
	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}
	out := *buffer

	// Starting as if a space was just written drops leading separators.
	lastWasSpace := true
	space := func() {
		if !lastWasSpace {
			out = append(out, ' ')
			lastWasSpace = true
		}
	}

	for i := 0; i < len(text); {
		b := text[i]
		if b < utf8.RuneSelf {
			switch n.asciiTable[b] {
			case asciiKeep:
				out = append(out, b)
				lastWasSpace = false
			case asciiSpace:
				space()
			case asciiLower:
				out = append(out, b+('a'-'A'))
				lastWasSpace = false
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		switch {
		case r == utf8.RuneError && size == 1:
			// Keep invalid bytes so the splitter still reports the encoding error.
			out = append(out, b)
			lastWasSpace = false
		case unicode.IsPunct(r) || unicode.IsSpace(r):
			space()
		default:
			out = utf8.AppendRune(out, unicode.ToLower(r))
			lastWasSpace = false
		}
	}

	if k := len(out); k > 0 && out[k-1] == ' ' {
		out = out[:k-1]
	}
	*buffer = out
	return string(out)
}

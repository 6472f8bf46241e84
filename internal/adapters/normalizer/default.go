package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_text_compare/internal/pool"
	"github.com/baditaflorin/go_text_compare/internal/ports"
)

// IdentityNormalizer returns text unchanged. It is the default, so diff
// segments concatenate back to the exact input.
type IdentityNormalizer struct{}

// NewIdentityNormalizer creates a normalizer that leaves text untouched.
func NewIdentityNormalizer() ports.Normalizer {
	return IdentityNormalizer{}
}

// Normalize returns text as is.
func (IdentityNormalizer) Normalize(text string) string { return text }

// WhitespaceNormalizer trims text and collapses every run of whitespace into
// a single space.
type WhitespaceNormalizer struct {
	builders *pool.StringBuilderPool
}

// NewWhitespaceNormalizer creates a whitespace normalizer.
func NewWhitespaceNormalizer() ports.Normalizer {
	return &WhitespaceNormalizer{builders: pool.NewStringBuilderPool()}
}

// Normalize collapses whitespace.
func (n *WhitespaceNormalizer) Normalize(text string) string {
	fields := strings.Fields(text)
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	}

	sb := n.builders.Get()
	defer n.builders.Put(sb)
	sb.Grow(len(text))
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f)
	}
	return sb.String()
}

// Chain applies normalizers in order.
type Chain []ports.Normalizer

// Normalize runs every normalizer of the chain.
func (c Chain) Normalize(text string) string {
	for _, n := range c {
		text = n.Normalize(text)
	}
	return text
}

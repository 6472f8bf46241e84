package normalizer

import (
	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_text_compare/internal/ports"
)

// NFCNormalizer composes text to Unicode Normalization Form C, so that a
// precomposed Hangul syllable and its jamo sequence compare as equal.
type NFCNormalizer struct{}

// NewNFCNormalizer creates an NFC normalizer.
func NewNFCNormalizer() ports.Normalizer {
	return NFCNormalizer{}
}

// Normalize returns the NFC form of text.
func (NFCNormalizer) Normalize(text string) string {
	if norm.NFC.IsNormalString(text) {
		return text
	}
	return norm.NFC.String(text)
}

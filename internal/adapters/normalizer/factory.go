package normalizer

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_text_compare/internal/core/domain"
	"github.com/baditaflorin/go_text_compare/internal/ports"
)

// NormalizerType selects one of the fixed normalization rule sets.
type NormalizerType int

const (
	// NoneType leaves text untouched.
	NoneType NormalizerType = iota
	// WhitespaceType trims and collapses whitespace.
	WhitespaceType
	// NFCType composes text to Unicode NFC.
	NFCType
	// FoldingType lower-cases, drops punctuation and collapses spaces.
	FoldingType
	// FullType applies NFC and then folding.
	FullType
)

var typeNames = map[NormalizerType]string{
	NoneType:       "none",
	WhitespaceType: "whitespace",
	NFCType:        "nfc",
	FoldingType:    "fold",
	FullType:       "full",
}

func (t NormalizerType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("NormalizerType(%d)", int(t))
}

// ParseType maps a name such as "nfc" to its NormalizerType.
func ParseType(name string) (NormalizerType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return NoneType, nil
	}
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return NoneType, fmt.Errorf("%w: unknown normalizer %q", domain.ErrInvalidConfig, name)
}

// Types lists every normalizer type in declaration order.
func Types() []NormalizerType {
	return []NormalizerType{NoneType, WhitespaceType, NFCType, FoldingType, FullType}
}

// NormalizerFactory creates normalizers by type.
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory.
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// CreateNormalizer creates a normalizer of the given type. Unknown types
// fall back to the identity normalizer.
func (f *NormalizerFactory) CreateNormalizer(t NormalizerType) ports.Normalizer {
	switch t {
	case WhitespaceType:
		return NewWhitespaceNormalizer()
	case NFCType:
		return NewNFCNormalizer()
	case FoldingType:
		return NewFoldingNormalizer()
	case FullType:
		return Chain{NewNFCNormalizer(), NewFoldingNormalizer()}
	default:
		return NewIdentityNormalizer()
	}
}

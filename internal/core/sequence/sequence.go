// Package sequence implements the fixed splitting rules that turn text into
// alignment units: one unit per Unicode code point, or one unit per run of
// non-whitespace characters.
package sequence

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/baditaflorin/go_text_compare/internal/core/domain"
)

// Characters splits text into code points.
func Characters(text string) (domain.Sequence, error) {
	if !utf8.ValidString(text) {
		return domain.Sequence{}, fmt.Errorf("%w: character split", domain.ErrEncoding)
	}
	units := make([]string, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		units = append(units, string(r))
	}
	return domain.NewSequence(units, domain.Character), nil
}

// Words splits text on runs of Unicode whitespace.
func Words(text string) (domain.Sequence, error) {
	if !utf8.ValidString(text) {
		return domain.Sequence{}, fmt.Errorf("%w: word split", domain.ErrEncoding)
	}
	return domain.NewSequence(strings.Fields(text), domain.Word), nil
}

// Split dispatches on granularity.
func Split(text string, granularity domain.Granularity) (domain.Sequence, error) {
	switch granularity {
	case domain.Character:
		return Characters(text)
	case domain.Word:
		return Words(text)
	default:
		return domain.Sequence{}, fmt.Errorf("%w: unknown granularity %d", domain.ErrInvalidConfig, granularity)
	}
}

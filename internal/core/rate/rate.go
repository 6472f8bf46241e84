// Package rate derives error rates and the similarity ratio from an edit
// script. CER and WER are the same computation over character-level and
// word-level scripts respectively.
package rate

import (
	"fmt"

	"github.com/baditaflorin/go_text_compare/internal/core/domain"
)

// Count tallies hits, substitutions, deletions and insertions.
func Count(script domain.EditScript) domain.Counts {
	var c domain.Counts
	for _, op := range script.Ops {
		switch op.Kind {
		case domain.Equal:
			c.Hits += op.Reference.Len()
		case domain.Substitute:
			c.Substitutions += op.Reference.Len()
		case domain.Delete:
			c.Deletions += op.Reference.Len()
		case domain.Insert:
			c.Insertions += op.Candidate.Len()
		}
	}
	return c
}

// Rate returns (S + D + I) / referenceLength.
//
// A zero-length reference yields 0 when the script has no errors (both
// sides empty) and domain.ErrEmptyReference otherwise; the division is
// never coerced to a number.
func Rate(script domain.EditScript, referenceLength int) (float64, error) {
	if referenceLength < 0 {
		return 0, fmt.Errorf("%w: negative reference length %d", domain.ErrInvalidScript, referenceLength)
	}
	errs := Count(script).Errors()
	if referenceLength == 0 {
		if errs == 0 {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %d edit(s) against an empty reference", domain.ErrEmptyReference, errs)
	}
	return float64(errs) / float64(referenceLength), nil
}

// Measure wraps Rate, mapping an empty-reference error to an undefined measure.
// Any other error is returned unchanged.
func Measure(script domain.EditScript) (domain.Measure, error) {
	v, err := Rate(script, script.ReferenceLen)
	if err != nil {
		return domain.Undefined(), err
	}
	return domain.Defined(v), nil
}

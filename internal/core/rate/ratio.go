package rate

import "github.com/baditaflorin/go_text_compare/internal/core/domain"

// Ratio returns the difflib-style similarity 2·M / (|reference| + |candidate|),
// where M is the number of units covered by Equal operations. Two empty
// sequences are identical and score 1.
//
// The ratio counts matches rather than edits, so it need not agree with CER:
// many short substitutions can leave a high ratio next to a high error rate.
func Ratio(script domain.EditScript) float64 {
	total := script.ReferenceLen + script.CandidateLen
	if total == 0 {
		return 1
	}
	return 2 * float64(script.Matched()) / float64(total)
}

// Package segment turns an edit script into labeled, renderable diff
// segments.
package segment

import (
	"fmt"

	"github.com/baditaflorin/go_text_compare/internal/core/domain"
)

// LabelOf maps an operation kind to its segment label.
func LabelOf(kind domain.OpKind) domain.Label {
	switch kind {
	case domain.Insert:
		return domain.LabelInsert
	case domain.Delete:
		return domain.LabelDelete
	case domain.Substitute:
		return domain.LabelReplace
	default:
		return domain.LabelEqual
	}
}

type pending struct {
	label     domain.Label
	reference domain.Span
	candidate domain.Span
}

// Segments walks script in order and emits one segment per operation.
// Adjacent operations with the same label merge only when they are
// contiguous in both sequences. For character sequences the reference texts
// concatenate back to the reference, and likewise for the candidate.
func Segments(script domain.EditScript, reference, candidate domain.Sequence) ([]domain.DiffSegment, error) {
	if script.ReferenceLen != reference.Len() || script.CandidateLen != candidate.Len() {
		return nil, fmt.Errorf("%w: script covers %d/%d units, sequences have %d/%d",
			domain.ErrInvalidScript, script.ReferenceLen, script.CandidateLen, reference.Len(), candidate.Len())
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}

	runs := make([]pending, 0, len(script.Ops))
	for _, op := range script.Ops {
		label := LabelOf(op.Kind)
		if n := len(runs); n > 0 {
			last := &runs[n-1]
			if last.label == label &&
				last.reference.End == op.Reference.Start &&
				last.candidate.End == op.Candidate.Start {
				last.reference.End = op.Reference.End
				last.candidate.End = op.Candidate.End
				continue
			}
		}
		runs = append(runs, pending{label: label, reference: op.Reference, candidate: op.Candidate})
	}

	segments := make([]domain.DiffSegment, 0, len(runs))
	for _, r := range runs {
		seg := domain.DiffSegment{Label: r.label}
		if r.label != domain.LabelInsert {
			seg.ReferenceText = reference.Join(r.reference.Start, r.reference.End)
		}
		if r.label != domain.LabelDelete {
			seg.CandidateText = candidate.Join(r.candidate.Start, r.candidate.End)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// ReferenceText concatenates the reference side of segments.
func ReferenceText(segments []domain.DiffSegment) string {
	out := make([]byte, 0, 64)
	for _, s := range segments {
		out = append(out, s.ReferenceText...)
	}
	return string(out)
}

// CandidateText concatenates the candidate side of segments.
func CandidateText(segments []domain.DiffSegment) string {
	out := make([]byte, 0, 64)
	for _, s := range segments {
		out = append(out, s.CandidateText...)
	}
	return string(out)
}

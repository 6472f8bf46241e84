package segment

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/baditaflorin/go_text_compare/internal/core/align"
	"github.com/baditaflorin/go_text_compare/internal/core/domain"
	"github.com/baditaflorin/go_text_compare/internal/core/sequence"
)

func segmentsFor(t *testing.T, reference, candidate string) []domain.DiffSegment {
	t.Helper()
	ref, err := sequence.Characters(reference)
	if err != nil {
		t.Fatal(err)
	}
	cand, err := sequence.Characters(candidate)
	if err != nil {
		t.Fatal(err)
	}
	script, err := align.Align(ref, cand)
	if err != nil {
		t.Fatal(err)
	}
	segs, err := Segments(script, ref, cand)
	if err != nil {
		t.Fatalf("Segments: %v", err)
	}
	return segs
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		candidate string
		want      []domain.DiffSegment
	}{
		{"both empty", "", "", []domain.DiffSegment{}},
		{
			name:      "all deleted",
			reference: "abc",
			candidate: "",
			want:      []domain.DiffSegment{{Label: domain.LabelDelete, ReferenceText: "abc"}},
		},
		{
			name:      "all inserted",
			reference: "",
			candidate: "abc",
			want:      []domain.DiffSegment{{Label: domain.LabelInsert, CandidateText: "abc"}},
		},
		{
			name:      "replace in the middle",
			reference: "hello",
			candidate: "hallo",
			want: []domain.DiffSegment{
				{Label: domain.LabelEqual, ReferenceText: "h", CandidateText: "h"},
				{Label: domain.LabelReplace, ReferenceText: "e", CandidateText: "a"},
				{Label: domain.LabelEqual, ReferenceText: "llo", CandidateText: "llo"},
			},
		},
		{
			name:      "word dropped",
			reference: "소견은 보이지",
			candidate: "소견 보이지",
			want: []domain.DiffSegment{
				{Label: domain.LabelEqual, ReferenceText: "소견", CandidateText: "소견"},
				{Label: domain.LabelDelete, ReferenceText: "은"},
				{Label: domain.LabelEqual, ReferenceText: " 보이지", CandidateText: " 보이지"},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := segmentsFor(t, tc.reference, tc.candidate)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Segments(%q, %q)\n got  %+v\n want %+v", tc.reference, tc.candidate, got, tc.want)
			}
		})
	}
}

func TestSegmentsMergeOnlyContiguousSameLabel(t *testing.T) {
	ref, _ := sequence.Characters("abcd")
	cand, _ := sequence.Characters("abxy")
	script := domain.EditScript{
		Ops: []domain.EditOperation{
			{Kind: domain.Equal, Reference: domain.Span{Start: 0, End: 1}, Candidate: domain.Span{Start: 0, End: 1}},
			{Kind: domain.Equal, Reference: domain.Span{Start: 1, End: 2}, Candidate: domain.Span{Start: 1, End: 2}},
			{Kind: domain.Substitute, Reference: domain.Span{Start: 2, End: 3}, Candidate: domain.Span{Start: 2, End: 3}},
			{Kind: domain.Delete, Reference: domain.Span{Start: 3, End: 4}, Candidate: domain.Span{Start: 3, End: 3}},
			{Kind: domain.Insert, Reference: domain.Span{Start: 4, End: 4}, Candidate: domain.Span{Start: 3, End: 4}},
		},
		ReferenceLen: 4,
		CandidateLen: 4,
	}
	got, err := Segments(script, ref, cand)
	if err != nil {
		t.Fatalf("Segments: %v", err)
	}
	want := []domain.DiffSegment{
		{Label: domain.LabelEqual, ReferenceText: "ab", CandidateText: "ab"},
		{Label: domain.LabelReplace, ReferenceText: "c", CandidateText: "x"},
		{Label: domain.LabelDelete, ReferenceText: "d"},
		{Label: domain.LabelInsert, CandidateText: "y"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSegmentsRejectMismatchedScript(t *testing.T) {
	ref, _ := sequence.Characters("abc")
	cand, _ := sequence.Characters("ab")
	script := domain.EditScript{ReferenceLen: 1, CandidateLen: 1}
	if _, err := Segments(script, ref, cand); !errors.Is(err, domain.ErrInvalidScript) {
		t.Fatalf("expected ErrInvalidScript, got %v", err)
	}
}

func TestSegmentsRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	alphabet := []rune("ab 내에x")
	gen := func() string {
		n := r.Intn(15)
		out := make([]rune, n)
		for i := range out {
			out[i] = alphabet[r.Intn(len(alphabet))]
		}
		return string(out)
	}
	dmp := diffmatchpatch.New()
	for i := 0; i < 200; i++ {
		a, b := gen(), gen()
		segs := segmentsFor(t, a, b)
		if ReferenceText(segs) != a || CandidateText(segs) != b {
			t.Fatalf("round trip failed for %q / %q: %+v", a, b, segs)
		}

		// The same check through diff-match-patch's own reconstruction.
		var diffs []diffmatchpatch.Diff
		for _, s := range segs {
			switch s.Label {
			case domain.LabelEqual:
				diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffEqual, Text: s.ReferenceText})
			case domain.LabelDelete:
				diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffDelete, Text: s.ReferenceText})
			case domain.LabelInsert:
				diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffInsert, Text: s.CandidateText})
			case domain.LabelReplace:
				diffs = append(diffs,
					diffmatchpatch.Diff{Type: diffmatchpatch.DiffDelete, Text: s.ReferenceText},
					diffmatchpatch.Diff{Type: diffmatchpatch.DiffInsert, Text: s.CandidateText})
			}
		}
		if dmp.DiffText1(diffs) != a || dmp.DiffText2(diffs) != b {
			t.Fatalf("diff-match-patch reconstruction failed for %q / %q", a, b)
		}

		for j := 1; j < len(segs); j++ {
			if segs[j].Label == segs[j-1].Label {
				t.Fatalf("adjacent segments share label %s for %q / %q", segs[j].Label, a, b)
			}
		}
	}
}

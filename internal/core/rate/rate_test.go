package rate

import (
	"errors"
	"math"
	"testing"

	"github.com/baditaflorin/go_text_compare/internal/core/align"
	"github.com/baditaflorin/go_text_compare/internal/core/domain"
	"github.com/baditaflorin/go_text_compare/internal/core/sequence"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12
}

func script(t *testing.T, g domain.Granularity, reference, candidate string) domain.EditScript {
	t.Helper()
	ref, err := sequence.Split(reference, g)
	if err != nil {
		t.Fatal(err)
	}
	cand, err := sequence.Split(candidate, g)
	if err != nil {
		t.Fatal(err)
	}
	s, err := align.Align(ref, cand)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRate(t *testing.T) {
	tests := []struct {
		name        string
		granularity domain.Granularity
		reference   string
		candidate   string
		want        float64
	}{
		{"wer single substitution", domain.Word, "the cat sat", "the cat sits", 1.0 / 3.0},
		{"cer single substitution", domain.Character, "hello", "hallo", 0.2},
		{"cer both empty", domain.Character, "", "", 0},
		{"wer both empty", domain.Word, "", "", 0},
		{"cer all deleted", domain.Character, "abc", "", 1},
		{"cer insertions exceed one", domain.Character, "ab", "abcdef", 2},
		{"wer identical", domain.Word, "spleen 에 특이 소견은", "spleen  에 특이\t소견은", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := script(t, tc.granularity, tc.reference, tc.candidate)
			got, err := Rate(s, s.ReferenceLen)
			if err != nil {
				t.Fatalf("Rate: %v", err)
			}
			if !almostEqual(got, tc.want) {
				t.Fatalf("Rate(%q, %q) = %v, want %v", tc.reference, tc.candidate, got, tc.want)
			}
		})
	}
}

func TestRateEmptyReferenceIsUndefined(t *testing.T) {
	s := script(t, domain.Character, "", "abc")
	if _, err := Rate(s, 0); !errors.Is(err, domain.ErrEmptyReference) {
		t.Fatalf("expected ErrEmptyReference, got %v", err)
	}

	m, err := Measure(s)
	if !errors.Is(err, domain.ErrEmptyReference) {
		t.Fatalf("expected ErrEmptyReference, got %v", err)
	}
	if m.Defined {
		t.Fatalf("measure should be undefined, got %v", m)
	}
}

func TestCount(t *testing.T) {
	s := script(t, domain.Character, "kitten", "sitting")
	c := Count(s)
	want := domain.Counts{Hits: 4, Substitutions: 2, Deletions: 0, Insertions: 1}
	if c != want {
		t.Fatalf("Count = %+v, want %+v", c, want)
	}
	if c.Errors() != s.Distance() {
		t.Fatalf("error count %d differs from distance %d", c.Errors(), s.Distance())
	}
}

func TestCountSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"abc", ""},
		{"flaw", "lawn"},
		{"liver 내에 small", "river 내에"},
	}
	for _, p := range pairs {
		ab := Count(script(t, domain.Character, p[0], p[1]))
		ba := Count(script(t, domain.Character, p[1], p[0]))
		if ab.Errors() != ba.Errors() {
			t.Fatalf("%q/%q: distance %d vs %d", p[0], p[1], ab.Errors(), ba.Errors())
		}
		if ab.Insertions-ab.Deletions != ba.Deletions-ba.Insertions {
			t.Fatalf("%q/%q: insert/delete balance not mirrored: %+v vs %+v", p[0], p[1], ab, ba)
		}
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		candidate string
		want      float64
	}{
		{"identical", "hello", "hello", 1},
		{"both empty", "", "", 1},
		{"empty candidate", "abc", "", 0},
		{"empty reference", "", "abc", 0},
		{"one substitution", "hello", "hallo", 0.8},
		{"disjoint", "abc", "xyz", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Ratio(script(t, domain.Character, tc.reference, tc.candidate))
			if !almostEqual(got, tc.want) {
				t.Fatalf("Ratio(%q, %q) = %v, want %v", tc.reference, tc.candidate, got, tc.want)
			}
		})
	}
}

package normalizer

import (
	"errors"
	"sync"
	"testing"

	"github.com/baditaflorin/go_text_compare/internal/core/domain"
)

func TestNormalizers(t *testing.T) {
	factory := NewNormalizerFactory()
	tests := []struct {
		name  string
		typ   NormalizerType
		input string
		want  string
	}{
		{"none keeps text", NoneType, "  Hello,\tWorld ", "  Hello,\tWorld "},
		{"whitespace collapses", WhitespaceType, "  a \t b\n\nc ", "a b c"},
		{"whitespace single field", WhitespaceType, "  word  ", "word"},
		{"whitespace only", WhitespaceType, " \t\n", ""},
		{"nfc composes hangul jamo", NFCType, "\u1100\u1161", "\uac00"},
		{"nfc composes accent", NFCType, "e\u0301", "\u00e9"},
		{"nfc leaves composed text", NFCType, "소견은", "소견은"},
		{"fold ascii", FoldingType, "Hello, World!", "hello world"},
		{"fold trims separators", FoldingType, "  ABC...def  ", "abc def"},
		{"fold unicode punctuation", FoldingType, "\u00dcber\u2014Test", "\u00fcber test"},
		{"fold hangul", FoldingType, "소견은, 특이!", "소견은 특이"},
		{"fold keeps invalid bytes", FoldingType, "a\xffB", "a\xffb"},
		{"fold empty", FoldingType, "", ""},
		{"full", FullType, "\u1100\u1161, ABC", "\uac00 abc"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := factory.CreateNormalizer(tc.typ).Normalize(tc.input)
			if got != tc.want {
				t.Fatalf("%s.Normalize(%q) = %q, want %q", tc.typ, tc.input, got, tc.want)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if got, err := ParseType(" NFC "); err != nil || got != NFCType {
		t.Fatalf("ParseType is not case-insensitive: %v, %v", got, err)
	}
	if got, err := ParseType(""); err != nil || got != NoneType {
		t.Fatalf("empty name should mean none: %v, %v", got, err)
	}
	if _, err := ParseType("stemming"); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestFoldingNormalizerConcurrent(t *testing.T) {
	n := NewFoldingNormalizer()
	inputs := map[string]string{
		"The Cat, SAT.":  "the cat sat",
		"Liver: 내에 MASS": "liver 내에 mass",
		"--x--":          "x",
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				for in, want := range inputs {
					if got := n.Normalize(in); got != want {
						errs <- in + " -> " + got
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Errorf("concurrent normalize mismatch: %s", e)
	}
}

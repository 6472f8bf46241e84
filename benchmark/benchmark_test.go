package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/agnivade/levenshtein"

	"github.com/baditaflorin/go_text_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_text_compare/internal/adapters/normalizer"
	"github.com/baditaflorin/go_text_compare/internal/core/align"
	"github.com/baditaflorin/go_text_compare/internal/core/compare"
	"github.com/baditaflorin/go_text_compare/internal/core/domain"
	"github.com/baditaflorin/go_text_compare/internal/core/sequence"
	"github.com/baditaflorin/go_text_compare/internal/warmup"
)

var sizes = []struct {
	name string
	size int
}{
	{"100B", 100},
	{"1KB", 1000},
	{"4KB", 4000},
}

// BenchmarkNormalizers compares the cost of each normalization mode.
func BenchmarkNormalizers(b *testing.B) {
	factory := normalizer.NewNormalizerFactory()
	text := warmup.SampleText(10000)

	for _, nt := range normalizer.Types() {
		norm := factory.CreateNormalizer(nt)
		b.Run(nt.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				_ = norm.Normalize(text)
			}
		})
	}
}

// BenchmarkAlign measures the character alignment alone.
func BenchmarkAlign(b *testing.B) {
	for _, sz := range sizes {
		reference := warmup.SampleText(sz.size)
		candidate := warmup.SimilarText(reference, 0.2)
		ref, _ := sequence.Characters(reference)
		cand, _ := sequence.Characters(candidate)

		b.Run(sz.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := align.Align(ref, cand); err != nil {
					b.Fatal(err)
				}
			}
		})
		// Distance only, for reference.
		b.Run(sz.name+"-distance-only", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = levenshtein.ComputeDistance(reference, candidate)
			}
		})
	}
}

// BenchmarkComparePair measures a full pair comparison including the word
// alignment and diff segmentation.
func BenchmarkComparePair(b *testing.B) {
	aligner, err := align.New(align.DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	calc, err := compare.NewCalculator(aligner, logger.NewNop(), normalizer.NewIdentityNormalizer())
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	for _, sz := range sizes {
		reference := warmup.SampleText(sz.size)
		candidate := warmup.SimilarText(reference, 0.2)
		b.Run(sz.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = calc.Compare(ctx, reference, candidate)
			}
		})
	}
}

// BenchmarkEngine measures batch throughput for different worker counts.
func BenchmarkEngine(b *testing.B) {
	const rows = 64
	reference := warmup.SampleText(300)
	records := make([][]string, rows)
	for i := range records {
		records[i] = []string{reference, warmup.SimilarText(reference, 0.1), warmup.SimilarText(reference, 0.3)}
	}
	table, err := domain.NewTable([]string{"origin", "target1", "target2"}, records)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	for _, workers := range []int{1, 4, 0} {
		config := compare.DefaultConfig()
		config.Workers = workers
		engine, err := compare.NewEngine(config, logger.NewNop(), normalizer.NewIdentityNormalizer())
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("workers-%d", workers), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := engine.Compare(ctx, table); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

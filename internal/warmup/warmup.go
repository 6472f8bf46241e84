// Package warmup exercises comparators and normalizers before traffic
// arrives, so that buffer pools are populated and code paths are hot.
package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/baditaflorin/go_text_compare/internal/ports"
)

// Config defines how hard the warm-up runs.
type Config struct {
	// Concurrency is the number of goroutines per component kind.
	Concurrency int
	// Iterations per goroutine.
	Iterations int
	// SampleTextSize is the approximate length of the generated reference
	// text in bytes. Alignment cost grows with its square.
	SampleTextSize int
	// Duration bounds the whole warm-up. Zero means no limit.
	Duration time.Duration
	// ForceGC runs a collection once the warm-up is done.
	ForceGC bool
}

// DefaultConfig returns the default warm-up configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency:    runtime.NumCPU(),
		Iterations:     50,
		SampleTextSize: 300,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Manager runs the warm-up for registered components.
type Manager struct {
	logger      ports.Logger
	comparators []ports.PairComparator
	normalizers []ports.Normalizer
	config      Config
}

// NewManager creates a warm-up manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{logger: logger, config: config}
}

// RegisterComparator adds a pair comparator to be warmed up.
func (wm *Manager) RegisterComparator(c ports.PairComparator) {
	wm.comparators = append(wm.comparators, c)
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (wm *Manager) RegisterNormalizer(n ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, n)
}

// Stats reports what a warm-up did.
type Stats struct {
	Comparisons    int64
	Normalizations int64
	Duration       time.Duration
}

// WarmUp runs every registered component until the iterations are done or
// ctx (bounded by Config.Duration) expires.
func (wm *Manager) WarmUp(ctx context.Context) Stats {
	start := time.Now()
	wm.logger.Info("Starting warm-up",
		"components", len(wm.comparators)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	var stats Stats
	stats.Normalizations = wm.run(ctx, len(wm.normalizers) > 0, func(text, _ string) {
		for _, n := range wm.normalizers {
			_ = n.Normalize(text)
		}
	})
	stats.Comparisons = wm.run(ctx, len(wm.comparators) > 0, func(reference, candidate string) {
		for _, c := range wm.comparators {
			_ = c.Compare(ctx, reference, candidate)
		}
	})

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warm-up")
		runtime.GC()
	}

	stats.Duration = time.Since(start)
	wm.logger.Info("Warm-up completed",
		"comparisons", stats.Comparisons,
		"normalizations", stats.Normalizations,
		"duration", stats.Duration.String(),
	)
	return stats
}

// run calls step from Concurrency goroutines, cycling through identical,
// slightly different and very different candidate texts, and returns how
// many steps completed.
func (wm *Manager) run(ctx context.Context, enabled bool, step func(reference, candidate string)) int64 {
	if !enabled {
		return 0
	}

	reference := SampleText(wm.config.SampleTextSize)
	candidates := []string{
		reference,
		SimilarText(reference, 0.1),
		SimilarText(reference, 0.5),
	}

	var (
		wg    sync.WaitGroup
		total atomic.Int64
	)
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				step(reference, candidates[j%len(candidates)])
				total.Add(1)
			}
		}()
	}
	wg.Wait()
	return total.Load()
}

var sampleWords = []string{
	"the", "liver", "shows", "no", "focal", "lesion", "spleen", "에", "특이",
	"소견은", "보이지", "않습니다", "small", "cyst", "in", "내에", "kidney", "normal",
}

// SampleText builds mixed English and Korean text of about size bytes.
func SampleText(size int) string {
	var sb strings.Builder
	for i := 0; sb.Len() < size; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(sampleWords[i%len(sampleWords)])
	}
	return sb.String()
}

var replacementWords = []string{"replaced", "변경", "altered", "다른", "novel"}

// SimilarText replaces the leading diffRatio share of words in text.
func SimilarText(text string, diffRatio float64) string {
	words := strings.Fields(text)
	changes := int(float64(len(words)) * diffRatio)
	for i := 0; i < changes && i < len(words); i++ {
		words[i] = replacementWords[i%len(replacementWords)]
	}
	return strings.Join(words, " ")
}

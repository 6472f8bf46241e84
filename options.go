package textcompare

import (
	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_text_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_text_compare/internal/core/compare"
	"github.com/baditaflorin/go_text_compare/internal/warmup"
)

// Option configures a Comparer.
type Option func(*config)

type config struct {
	engine         compare.Config
	logger         Logger
	normalizer     Normalizer
	normalizerType NormalizerType
	warmUp         bool
	warmUpConfig   warmup.Config
}

func defaultConfig() config {
	return config{
		engine:         compare.DefaultConfig(),
		normalizerType: NormalizeNone,
		warmUpConfig:   warmup.DefaultConfig(),
	}
}

// WithLogger logs through an existing l.Logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger.FromExisting(lg)
	}
}

// WithLoggerAdapter logs through any Logger implementation.
func WithLoggerAdapter(lg Logger) Option {
	return func(cfg *config) {
		cfg.logger = lg
	}
}

// WithNormalizer sets a custom normalizer. It takes precedence over
// WithNormalizerType.
func WithNormalizer(n Normalizer) Option {
	return func(cfg *config) {
		cfg.normalizer = n
	}
}

// WithNormalizerType selects one of the built-in normalization rule sets.
func WithNormalizerType(t NormalizerType) Option {
	return func(cfg *config) {
		cfg.normalizerType = t
	}
}

// WithWorkers bounds the number of pairs compared concurrently.
// Zero uses one worker per CPU.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		cfg.engine.Workers = n
	}
}

// WithMaxCandidates bounds the number of candidate columns. Zero removes
// the bound.
func WithMaxCandidates(n int) Option {
	return func(cfg *config) {
		cfg.engine.MaxCandidates = n
	}
}

// WithMaxCells bounds |reference|·|candidate| for one alignment. Larger
// rows fail with ErrSequenceTooLong. Zero removes the bound.
func WithMaxCells(n int64) Option {
	return func(cfg *config) {
		cfg.engine.MaxCells = n
	}
}

// WithPrecision sets the decimals used by BatchResult.Overview.
func WithPrecision(p int) Option {
	return func(cfg *config) {
		cfg.engine.Precision = p
	}
}

// WithWarmUp enables warm-up during New.
func WithWarmUp(enabled bool) Option {
	return func(cfg *config) {
		cfg.warmUp = enabled
	}
}

// WithWarmUpConfig sets the warm-up configuration and enables warm-up.
func WithWarmUpConfig(wc warmup.Config) Option {
	return func(cfg *config) {
		cfg.warmUp = true
		cfg.warmUpConfig = wc
	}
}

// Package textcompare compares reference texts with candidate texts. For each
// pair it computes a similarity ratio, the character error rate (CER), the
// word error rate (WER) and a labeled character-level diff. Tables of one
// reference column and one or more candidate columns are compared row by row
// and aggregated per column.
//
// Every metric derives from a single minimal edit alignment (Wagner–Fischer,
// unit costs). Undefined values, such as an error rate against an empty
// reference, are reported as undefined Measures and never as 0.
package textcompare

import (
	"context"
	"fmt"
	"time"

	"github.com/baditaflorin/go_text_compare/internal/adapters/normalizer"
	"github.com/baditaflorin/go_text_compare/internal/adapters/table"
	"github.com/baditaflorin/go_text_compare/internal/core/compare"
	"github.com/baditaflorin/go_text_compare/internal/core/domain"
	"github.com/baditaflorin/go_text_compare/internal/metrics"
	"github.com/baditaflorin/go_text_compare/internal/ports"
	"github.com/baditaflorin/go_text_compare/internal/warmup"
)

type (
	Table            = domain.Table
	Row              = domain.Row
	BatchResult      = domain.BatchResult
	ColumnResult     = domain.ColumnResult
	ComparisonResult = domain.ComparisonResult
	OverviewRow      = domain.OverviewRow
	DiffSegment      = domain.DiffSegment
	Label            = domain.Label
	Measure          = domain.Measure
	Counts           = domain.Counts

	Logger         = ports.Logger
	Normalizer     = ports.Normalizer
	NormalizerType = normalizer.NormalizerType
	WarmUpConfig   = warmup.Config
	WarmUpStats    = warmup.Stats
)

const (
	LabelEqual   = domain.LabelEqual
	LabelInsert  = domain.LabelInsert
	LabelDelete  = domain.LabelDelete
	LabelReplace = domain.LabelReplace
)

const (
	NormalizeNone       = normalizer.NoneType
	NormalizeWhitespace = normalizer.WhitespaceType
	NormalizeNFC        = normalizer.NFCType
	NormalizeFold       = normalizer.FoldingType
	NormalizeFull       = normalizer.FullType
)

var (
	ErrInvalidInputShape = domain.ErrInvalidInputShape
	ErrEmptyReference    = domain.ErrEmptyReference
	ErrEncoding          = domain.ErrEncoding
	ErrSequenceTooLong   = domain.ErrSequenceTooLong
	ErrInvalidConfig     = domain.ErrInvalidConfig
)

// Column names used by CompareTexts.
const (
	ReferenceColumn = "origin"
	CandidatePrefix = "target"
)

// ParseNormalizerType maps "none", "whitespace", "nfc", "fold" or "full"
// to a NormalizerType.
func ParseNormalizerType(name string) (NormalizerType, error) {
	return normalizer.ParseType(name)
}

// DefaultWarmUpConfig returns the default warm-up configuration.
func DefaultWarmUpConfig() WarmUpConfig {
	return warmup.DefaultConfig()
}

// NewTable builds a Table from a header row and data records. The first
// column is the reference.
func NewTable(header []string, records [][]string) (Table, error) {
	return domain.NewTable(header, records)
}

var _ ports.TableComparator = (*Comparer)(nil)

// Comparer runs comparisons. It is safe for concurrent use.
type Comparer struct {
	engine     *compare.Engine
	normalizer Normalizer
	logger     Logger
	ownsLogger bool
	warmUp     warmup.Config
}

// New creates a Comparer. Without WithLogger a text logger on stdout is
// created and closed by Close.
func New(opts ...Option) (*Comparer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ownsLogger := false
	if cfg.logger == nil {
		lg, err := createDefaultLogger()
		if err != nil {
			return nil, err
		}
		cfg.logger = lg
		ownsLogger = true
	}
	if cfg.normalizer == nil {
		cfg.normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(cfg.normalizerType)
	}

	engine, err := compare.NewEngine(cfg.engine, cfg.logger, cfg.normalizer)
	if err != nil {
		if ownsLogger {
			_ = cfg.logger.Close()
		}
		return nil, err
	}

	c := &Comparer{
		engine:     engine,
		normalizer: cfg.normalizer,
		logger:     cfg.logger,
		ownsLogger: ownsLogger,
		warmUp:     cfg.warmUpConfig,
	}
	if cfg.warmUp {
		c.WarmUp(context.Background())
	}
	return c, nil
}

// Compare compares every candidate column of t against its reference column.
// An invalid column shape or cancellation of ctx fails the whole batch; any
// other problem is reported on the affected row.
func (c *Comparer) Compare(ctx context.Context, t Table) (BatchResult, error) {
	start := time.Now()
	res, err := c.engine.Compare(ctx, t)
	if err != nil {
		return BatchResult{}, err
	}
	metrics.ObserveBatch(res, time.Since(start))
	return res, nil
}

// CompareRecords compares a header plus records, as read from a CSV file.
func (c *Comparer) CompareRecords(ctx context.Context, header []string, records [][]string) (BatchResult, error) {
	t, err := domain.NewTable(header, records)
	if err != nil {
		return BatchResult{}, err
	}
	return c.Compare(ctx, t)
}

// CompareFile reads a .csv or .xlsx file and compares it.
func (c *Comparer) CompareFile(ctx context.Context, path string) (BatchResult, error) {
	t, err := table.ReadFile(path)
	if err != nil {
		return BatchResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	c.logger.Info("Loaded table",
		"path", path,
		"rows", len(t.Rows),
		"columns", len(t.CandidateColumns)+1,
	)
	return c.Compare(ctx, t)
}

// CompareTexts compares one reference with one or more candidate texts as a
// single-row table with columns origin, target1, target2 and so on. Empty
// candidates after the first are dropped.
func (c *Comparer) CompareTexts(ctx context.Context, reference string, candidates ...string) (BatchResult, error) {
	t := TextTable(reference, candidates...)
	return c.Compare(ctx, t)
}

// TextTable builds the single-row table CompareTexts compares.
func TextTable(reference string, candidates ...string) Table {
	row := Row{Reference: reference, Candidates: make(map[string]string, len(candidates))}
	t := Table{ReferenceColumn: ReferenceColumn}
	for i, cand := range candidates {
		if i > 0 && cand == "" {
			continue
		}
		name := fmt.Sprintf("%s%d", CandidatePrefix, i+1)
		t.CandidateColumns = append(t.CandidateColumns, name)
		row.Candidates[name] = cand
	}
	t.Rows = []Row{row}
	return t
}

// ComparePair compares a single reference with a single candidate.
func (c *Comparer) ComparePair(ctx context.Context, reference, candidate string) ComparisonResult {
	return c.engine.Pair().Compare(ctx, reference, candidate)
}

// WarmUp exercises the comparison pipeline so later requests run on warm
// buffer pools.
func (c *Comparer) WarmUp(ctx context.Context) WarmUpStats {
	m := warmup.NewManager(c.logger, c.warmUp)
	m.RegisterNormalizer(c.normalizer)
	m.RegisterComparator(c.engine.Pair())
	return m.WarmUp(ctx)
}

// Close flushes and closes the logger created by New. A logger passed in
// with an option is left open.
func (c *Comparer) Close() error {
	if !c.ownsLogger {
		return nil
	}
	return c.logger.Close()
}

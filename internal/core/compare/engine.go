package compare

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_text_compare/internal/core/align"
	"github.com/baditaflorin/go_text_compare/internal/core/domain"
	"github.com/baditaflorin/go_text_compare/internal/ports"
)

// Config holds configuration for the batch engine.
type Config struct {
	// Workers bounds the number of pairs compared concurrently.
	// Zero means runtime.NumCPU().
	Workers int
	// MaxCandidates bounds the number of candidate columns. Zero means no bound.
	MaxCandidates int
	// MaxCells bounds |reference|·|candidate| for a single alignment.
	MaxCells int64
	// Precision is the number of decimals aggregates are rounded to in the overview.
	Precision int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Workers:       0,
		MaxCandidates: 2,
		MaxCells:      align.DefaultMaxCells,
		Precision:     3,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if c.MaxCandidates < 0 {
		return errors.New("maxCandidates must not be negative")
	}
	if c.MaxCells < 0 {
		return errors.New("maxCells must not be negative")
	}
	if c.Precision < 0 || c.Precision > 15 {
		return errors.New("precision must be between 0 and 15")
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Engine compares tables of reference and candidate columns. Rows are
// independent and are compared concurrently; results keep row order.
type Engine struct {
	config Config
	pair   *Calculator
	logger ports.Logger
}

// NewEngine creates a batch engine.
func NewEngine(config Config, logger ports.Logger, normalizer ports.Normalizer) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	aligner, err := align.New(align.Config{MaxCells: config.MaxCells})
	if err != nil {
		return nil, err
	}
	pair, err := NewCalculator(aligner, logger, normalizer)
	if err != nil {
		return nil, err
	}
	return &Engine{config: config, pair: pair, logger: logger}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.config }

// Pair returns the pair calculator the engine runs for every row.
func (e *Engine) Pair() *Calculator { return e.pair }

// Compare validates the table shape, compares every row against every
// candidate column and aggregates per column. Shape errors and cancellation
// abort the batch; every other failure is confined to its row.
func (e *Engine) Compare(ctx context.Context, table domain.Table) (domain.BatchResult, error) {
	if err := table.Validate(e.config.MaxCandidates); err != nil {
		e.logger.Error("Rejected table", "error", err)
		return domain.BatchResult{}, err
	}

	start := time.Now()
	columns := table.CandidateColumns
	e.logger.Info("Starting batch comparison",
		"reference_column", table.ReferenceColumn,
		"candidate_columns", len(columns),
		"rows", len(table.Rows),
		"workers", e.config.workers(),
	)

	slots := make([][]domain.ComparisonResult, len(columns))
	for c := range slots {
		slots[c] = make([]domain.ComparisonResult, len(table.Rows))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.workers())

schedule:
	for c, column := range columns {
		for i, row := range table.Rows {
			if gctx.Err() != nil {
				break schedule
			}
			g.Go(func() error {
				res := e.pair.Compare(gctx, row.Reference, row.Candidates[column])
				res.Row = i
				if res.Err != nil {
					if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
						return res.Err
					}
					e.logger.Warn("Row comparison failed",
						"row", i,
						"column", column,
						"error", res.Err,
					)
				}
				slots[c][i] = res
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		e.logger.Error("Batch comparison aborted", "error", err)
		return domain.BatchResult{}, err
	}
	if err := ctx.Err(); err != nil {
		e.logger.Error("Batch comparison aborted", "error", err)
		return domain.BatchResult{}, err
	}

	result := domain.BatchResult{
		ReferenceColumn: table.ReferenceColumn,
		Columns:         append([]string(nil), columns...),
		Results:         make(map[string]domain.ColumnResult, len(columns)),
		Precision:       e.config.Precision,
	}
	for c, column := range columns {
		result.Results[column] = Aggregate(column, slots[c])
	}

	e.logger.Info("Finished batch comparison",
		"rows", len(table.Rows),
		"duration", time.Since(start).String(),
	)
	return result, nil
}

// Aggregate computes the per-column means. Failed rows are excluded from
// every mean; undefined rates are excluded from their own mean only. A mean
// over no values is undefined.
func Aggregate(column string, rows []domain.ComparisonResult) domain.ColumnResult {
	res := domain.ColumnResult{Column: column, Rows: rows}

	var ratioSum, cerSum, werSum float64
	var ratioN, cerN, werN int
	for _, r := range rows {
		if r.Failed() {
			res.FailedRows++
			continue
		}
		ratioSum += r.Ratio
		ratioN++
		if r.CER.Defined {
			cerSum += r.CER.Value
			cerN++
		} else {
			res.UndefinedCER++
		}
		if r.WER.Defined {
			werSum += r.WER.Value
			werN++
		} else {
			res.UndefinedWER++
		}
	}

	res.MeanRatio = mean(ratioSum, ratioN)
	res.MeanCER = mean(cerSum, cerN)
	res.MeanWER = mean(werSum, werN)
	return res
}

func mean(sum float64, n int) domain.Measure {
	if n == 0 {
		return domain.Undefined()
	}
	return domain.Defined(sum / float64(n))
}

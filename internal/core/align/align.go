// Package align computes minimal edit scripts between two sequences with the
// Wagner–Fischer dynamic program. Insert, delete and substitute cost 1; equal
// costs 0.
//
// Costs are kept in two rolling rows. The full path is recoverable from a
// one-byte-per-cell traceback matrix that records, for every cell, the move
// chosen under the fixed precedence Equal > Substitute > Delete > Insert.
package align

import (
	"errors"
	"fmt"

	"github.com/baditaflorin/go_text_compare/internal/core/domain"
	"github.com/baditaflorin/go_text_compare/internal/pool"
)

// DefaultMaxCells bounds |reference|·|candidate| (64 MiB of traceback).
const DefaultMaxCells int64 = 1 << 26

const (
	moveEqual byte = iota
	moveSubstitute
	moveDelete
	moveInsert
)

// Config holds configuration for the aligner.
type Config struct {
	// MaxCells limits the traceback matrix size. Zero means unlimited.
	MaxCells int64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{MaxCells: DefaultMaxCells}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxCells < 0 {
		return errors.New("maxCells must not be negative")
	}
	return nil
}

// Aligner computes edit scripts. It is safe for concurrent use.
type Aligner struct {
	config Config
	rows   *pool.IntBufferPool
	trace  *pool.BufferPool
}

// New creates an aligner.
func New(config Config) (*Aligner, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return &Aligner{
		config: config,
		rows:   pool.NewIntBufferPool(256),
		trace:  pool.NewBufferPool(64 * 1024),
	}, nil
}

var defaultAligner, _ = New(DefaultConfig())

// Align computes an edit script with the default configuration.
func Align(reference, candidate domain.Sequence) (domain.EditScript, error) {
	return defaultAligner.Align(reference, candidate)
}

// Align returns a minimal-cost edit script turning reference into candidate.
func (a *Aligner) Align(reference, candidate domain.Sequence) (domain.EditScript, error) {
	n, m := reference.Len(), candidate.Len()
	script := domain.EditScript{ReferenceLen: n, CandidateLen: m}

	switch {
	case n == 0 && m == 0:
		return script, nil
	case n == 0:
		script.Ops = []domain.EditOperation{{
			Kind:      domain.Insert,
			Reference: domain.Span{Start: 0, End: 0},
			Candidate: domain.Span{Start: 0, End: m},
		}}
		return script, nil
	case m == 0:
		script.Ops = []domain.EditOperation{{
			Kind:      domain.Delete,
			Reference: domain.Span{Start: 0, End: n},
			Candidate: domain.Span{Start: 0, End: 0},
		}}
		return script, nil
	}

	cells := int64(n+1) * int64(m+1)
	if a.config.MaxCells > 0 && int64(n)*int64(m) > a.config.MaxCells {
		return domain.EditScript{}, fmt.Errorf("%w: %d x %d units exceeds %d cells",
			domain.ErrSequenceTooLong, n, m, a.config.MaxCells)
	}

	traceBuf := a.trace.Get(int(cells))
	defer a.trace.Put(traceBuf)
	trace := *traceBuf

	prevBuf, currBuf := a.rows.Get(m+1), a.rows.Get(m+1)
	defer a.rows.Put(prevBuf)
	defer a.rows.Put(currBuf)
	prev, curr := *prevBuf, *currBuf

	width := m + 1
	prev[0] = 0
	for j := 1; j <= m; j++ {
		prev[j] = j
		trace[j] = moveInsert
	}

	for i := 1; i <= n; i++ {
		curr[0] = i
		trace[i*width] = moveDelete
		refUnit := reference.At(i - 1)
		for j := 1; j <= m; j++ {
			best, move := prev[j-1], moveEqual
			if refUnit != candidate.At(j-1) {
				best++
				move = moveSubstitute
			}
			if del := prev[j] + 1; del < best {
				best, move = del, moveDelete
			}
			if ins := curr[j-1] + 1; ins < best {
				best, move = ins, moveInsert
			}
			curr[j] = best
			trace[i*width+j] = move
		}
		prev, curr = curr, prev
	}

	script.Ops = backtrack(trace, width, n, m)
	return script, nil
}

// backtrack walks the traceback from (n, m) to (0, 0), then reverses the
// path and coalesces consecutive moves of the same kind into one operation.
func backtrack(trace []byte, width, n, m int) []domain.EditOperation {
	path := make([]byte, 0, n+m)
	i, j := n, m
	for i > 0 || j > 0 {
		move := trace[i*width+j]
		path = append(path, move)
		switch move {
		case moveEqual, moveSubstitute:
			i--
			j--
		case moveDelete:
			i--
		case moveInsert:
			j--
		}
	}

	var ops []domain.EditOperation
	i, j = 0, 0
	for k := len(path) - 1; k >= 0; k-- {
		kind := kindOf(path[k])
		di, dj := 1, 1
		switch kind {
		case domain.Delete:
			dj = 0
		case domain.Insert:
			di = 0
		}
		if last := len(ops) - 1; last >= 0 && ops[last].Kind == kind {
			ops[last].Reference.End += di
			ops[last].Candidate.End += dj
		} else {
			ops = append(ops, domain.EditOperation{
				Kind:      kind,
				Reference: domain.Span{Start: i, End: i + di},
				Candidate: domain.Span{Start: j, End: j + dj},
			})
		}
		i += di
		j += dj
	}
	return ops
}

func kindOf(move byte) domain.OpKind {
	switch move {
	case moveSubstitute:
		return domain.Substitute
	case moveDelete:
		return domain.Delete
	case moveInsert:
		return domain.Insert
	default:
		return domain.Equal
	}
}

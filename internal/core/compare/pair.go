// Package compare runs the full comparison pipeline for a pair of texts and
// for whole tables of reference and candidate columns.
package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/baditaflorin/go_text_compare/internal/core/align"
	"github.com/baditaflorin/go_text_compare/internal/core/domain"
	"github.com/baditaflorin/go_text_compare/internal/core/rate"
	"github.com/baditaflorin/go_text_compare/internal/core/segment"
	"github.com/baditaflorin/go_text_compare/internal/core/sequence"
	"github.com/baditaflorin/go_text_compare/internal/ports"
)

// Calculator compares one reference text with one candidate text: ratio,
// CER, WER, edit counts and the character-level diff segments.
type Calculator struct {
	aligner    *align.Aligner
	logger     ports.Logger
	normalizer ports.Normalizer
}

// NewCalculator creates a pair calculator.
func NewCalculator(aligner *align.Aligner, logger ports.Logger, normalizer ports.Normalizer) (*Calculator, error) {
	if aligner == nil {
		return nil, fmt.Errorf("%w: nil aligner", domain.ErrInvalidConfig)
	}
	if logger == nil || normalizer == nil {
		return nil, fmt.Errorf("%w: logger and normalizer are required", domain.ErrInvalidConfig)
	}
	return &Calculator{
		aligner:    aligner,
		logger:     logger,
		normalizer: normalizer,
	}, nil
}

// Compare computes every metric for one pair. Errors are recorded on the
// result; an undefined CER or WER alone does not mark the row as failed.
func (c *Calculator) Compare(ctx context.Context, reference, candidate string) domain.ComparisonResult {
	select {
	case <-ctx.Done():
		return failed(ctx.Err())
	default:
	}

	ref := c.normalizer.Normalize(reference)
	cand := c.normalizer.Normalize(candidate)

	refChars, err := sequence.Characters(ref)
	if err != nil {
		return failed(fmt.Errorf("reference: %w", err))
	}
	candChars, err := sequence.Characters(cand)
	if err != nil {
		return failed(fmt.Errorf("candidate: %w", err))
	}

	charScript, err := c.aligner.Align(refChars, candChars)
	if err != nil {
		return failed(err)
	}

	// Word splitting cannot fail once the characters decoded.
	refWords, _ := sequence.Words(ref)
	candWords, _ := sequence.Words(cand)
	wordScript, err := c.aligner.Align(refWords, candWords)
	if err != nil {
		return failed(err)
	}

	segments, err := segment.Segments(charScript, refChars, candChars)
	if err != nil {
		return failed(err)
	}

	res := domain.ComparisonResult{
		Ratio:      rate.Ratio(charScript),
		Distance:   charScript.Distance(),
		CharCounts: rate.Count(charScript),
		WordCounts: rate.Count(wordScript),
		Segments:   segments,
	}
	res.CER, err = c.measure(charScript, "cer")
	if err != nil {
		return failed(err)
	}
	res.WER, err = c.measure(wordScript, "wer")
	if err != nil {
		return failed(err)
	}

	c.logger.Debug("Compared pair",
		"reference_chars", refChars.Len(),
		"candidate_chars", candChars.Len(),
		"reference_words", refWords.Len(),
		"ratio", res.Ratio,
		"cer", res.CER.String(),
		"wer", res.WER.String(),
	)
	return res
}

func (c *Calculator) measure(script domain.EditScript, metric string) (domain.Measure, error) {
	m, err := rate.Measure(script)
	if errors.Is(err, domain.ErrEmptyReference) {
		c.logger.Warn("Rate undefined for empty reference",
			"metric", metric,
			"insertions", script.CandidateLen,
		)
		return m, nil
	}
	return m, err
}

func failed(err error) domain.ComparisonResult {
	return domain.ComparisonResult{
		CER:   domain.Undefined(),
		WER:   domain.Undefined(),
		Error: err.Error(),
		Err:   err,
	}
}

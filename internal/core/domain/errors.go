package domain

import "errors"

// Batch-level errors abort a comparison before any row is processed.
// Row-level errors are recorded on the affected ComparisonResult and the
// batch keeps going.
var (
	// ErrInvalidInputShape: fewer than two columns, or a candidate column
	// count outside the supported range.
	ErrInvalidInputShape = errors.New("invalid input shape")
	// ErrEmptyReference: the reference has zero units but the candidate
	// does not, so the error rate has no denominator.
	ErrEmptyReference = errors.New("empty reference: rate undefined")
	// ErrEncoding: the text is not valid UTF-8 and cannot be split.
	ErrEncoding = errors.New("invalid text encoding")
	// ErrSequenceTooLong: the alignment matrix would exceed the cell budget.
	ErrSequenceTooLong = errors.New("sequence too long")
	// ErrInvalidScript: an edit script does not cover both sequences.
	ErrInvalidScript = errors.New("invalid edit script")
	// ErrInvalidConfig: a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

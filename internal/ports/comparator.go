package ports

import (
	"context"

	"github.com/baditaflorin/go_text_compare/internal/core/domain"
)

// PairComparator compares one reference text against one candidate text.
// Failures are reported on the result rather than returned, so a single bad
// row never aborts a batch.
type PairComparator interface {
	Compare(ctx context.Context, reference, candidate string) domain.ComparisonResult
}

// TableComparator compares every candidate column of a table against its
// reference column.
type TableComparator interface {
	Compare(ctx context.Context, table domain.Table) (domain.BatchResult, error)
}

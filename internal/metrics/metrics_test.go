package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/baditaflorin/go_text_compare/internal/core/domain"
)

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("reference: %w", domain.ErrEncoding), "encoding"},
		{domain.ErrSequenceTooLong, "too_long"},
		{domain.ErrInvalidScript, "invalid_script"},
		{fmt.Errorf("boom"), "other"},
	}
	for _, tc := range tests {
		if got := ErrorType(tc.err); got != tc.want {
			t.Errorf("ErrorType(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestObserveBatch(t *testing.T) {
	okBefore := testutil.ToFloat64(RowsTotal.WithLabelValues("ok"))
	failedBefore := testutil.ToFloat64(RowsTotal.WithLabelValues("failed"))
	encodingBefore := testutil.ToFloat64(RowErrors.WithLabelValues("encoding"))
	cerBefore := testutil.ToFloat64(UndefinedRates.WithLabelValues("cer"))
	batchesBefore := testutil.ToFloat64(BatchesTotal)

	res := domain.BatchResult{
		ReferenceColumn: "origin",
		Columns:         []string{"target1"},
		Results: map[string]domain.ColumnResult{
			"target1": {
				Column: "target1",
				Rows: []domain.ComparisonResult{
					{Row: 0},
					{Row: 1, Err: domain.ErrEncoding},
					{Row: 2},
				},
				UndefinedCER: 1,
			},
		},
	}
	ObserveBatch(res, 10*time.Millisecond)

	if got := testutil.ToFloat64(RowsTotal.WithLabelValues("ok")) - okBefore; got != 2 {
		t.Errorf("ok rows += %v, want 2", got)
	}
	if got := testutil.ToFloat64(RowsTotal.WithLabelValues("failed")) - failedBefore; got != 1 {
		t.Errorf("failed rows += %v, want 1", got)
	}
	if got := testutil.ToFloat64(RowErrors.WithLabelValues("encoding")) - encodingBefore; got != 1 {
		t.Errorf("encoding errors += %v, want 1", got)
	}
	if got := testutil.ToFloat64(UndefinedRates.WithLabelValues("cer")) - cerBefore; got != 1 {
		t.Errorf("undefined cer += %v, want 1", got)
	}
	if got := testutil.ToFloat64(BatchesTotal) - batchesBefore; got != 1 {
		t.Errorf("batches += %v, want 1", got)
	}
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("/compare", "200"))
	ObserveRequest("/compare", "200", time.Millisecond)
	if got := testutil.ToFloat64(RequestsTotal.WithLabelValues("/compare", "200")) - before; got != 1 {
		t.Fatalf("requests += %v, want 1", got)
	}
}

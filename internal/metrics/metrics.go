// Package metrics exposes Prometheus collectors for comparisons and the
// HTTP service.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/baditaflorin/go_text_compare/internal/core/domain"
)

var (
	BatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "textcompare_batches_total",
		Help: "Batch comparisons completed",
	})

	RowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "textcompare_rows_total",
		Help: "Compared rows by outcome",
	}, []string{"outcome"})

	UndefinedRates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "textcompare_undefined_rates_total",
		Help: "Rows whose error rate had an empty reference",
	}, []string{"metric"})

	RowErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "textcompare_row_errors_total",
		Help: "Failed rows by error type",
	}, []string{"error_type"})

	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "textcompare_batch_duration_seconds",
		Help:    "Batch comparison latency",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
	})

	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "textcompare_http_requests_total",
		Help: "HTTP requests by path and status code",
	}, []string{"path", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "textcompare_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
	}, []string{"path"})
)

// ErrorType classifies a row error for the error_type label.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrEncoding):
		return "encoding"
	case errors.Is(err, domain.ErrSequenceTooLong):
		return "too_long"
	case errors.Is(err, domain.ErrInvalidScript):
		return "invalid_script"
	default:
		return "other"
	}
}

// ObserveBatch records the outcome of one batch comparison.
func ObserveBatch(res domain.BatchResult, elapsed time.Duration) {
	BatchesTotal.Inc()
	BatchDuration.Observe(elapsed.Seconds())
	for _, name := range res.Columns {
		col := res.Results[name]
		for _, row := range col.Rows {
			if row.Failed() {
				RowsTotal.WithLabelValues("failed").Inc()
				RowErrors.WithLabelValues(ErrorType(row.Err)).Inc()
				continue
			}
			RowsTotal.WithLabelValues("ok").Inc()
		}
		UndefinedRates.WithLabelValues("cer").Add(float64(col.UndefinedCER))
		UndefinedRates.WithLabelValues("wer").Add(float64(col.UndefinedWER))
	}
}

// ObserveRequest records one HTTP request.
func ObserveRequest(path, status string, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(path, status).Inc()
	RequestDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}

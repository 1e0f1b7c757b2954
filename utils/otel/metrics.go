package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all OTel metric instruments for photo-indexer.
// Nil until InitMetrics runs; the Add/Observe helpers tolerate that.
var Metrics *PhotoIndexerMetrics

// PhotoIndexerMetrics contains all metric instruments.
type PhotoIndexerMetrics struct {
	ImportedTotal  metric.Int64Counter
	SkippedTotal   metric.Int64Counter
	FailedTotal    metric.Int64Counter
	JobsTotal      metric.Int64Counter
	ImportDuration metric.Float64Histogram
	SearchDuration metric.Float64Histogram
}

// InitMetrics initializes all metric instruments.
func InitMetrics() error {
	meter := otel.Meter("photo-indexer")

	importedTotal, err := meter.Int64Counter("photo_indexer_imported_total",
		metric.WithDescription("Total number of photos indexed by import batches"),
	)
	if err != nil {
		return err
	}

	skippedTotal, err := meter.Int64Counter("photo_indexer_skipped_total",
		metric.WithDescription("Total number of already-indexed photos skipped"),
	)
	if err != nil {
		return err
	}

	failedTotal, err := meter.Int64Counter("photo_indexer_failed_total",
		metric.WithDescription("Total number of items that failed canonical mapping or indexing"),
	)
	if err != nil {
		return err
	}

	jobsTotal, err := meter.Int64Counter("photo_indexer_jobs_total",
		metric.WithDescription("Total number of import jobs consumed from the queue"),
	)
	if err != nil {
		return err
	}

	importDuration, err := meter.Float64Histogram("photo_indexer_import_duration_seconds",
		metric.WithDescription("Import batch duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	searchDuration, err := meter.Float64Histogram("photo_indexer_search_duration_seconds",
		metric.WithDescription("Search request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	Metrics = &PhotoIndexerMetrics{
		ImportedTotal:  importedTotal,
		SkippedTotal:   skippedTotal,
		FailedTotal:    failedTotal,
		JobsTotal:      jobsTotal,
		ImportDuration: importDuration,
		SearchDuration: searchDuration,
	}

	return nil
}

// RecordImportBatch records the outcome counters and duration of one
// import batch.
func RecordImportBatch(ctx context.Context, indexed, skipped, failed int64, seconds float64) {
	if Metrics == nil {
		return
	}
	Metrics.ImportedTotal.Add(ctx, indexed)
	Metrics.SkippedTotal.Add(ctx, skipped)
	Metrics.FailedTotal.Add(ctx, failed)
	Metrics.ImportDuration.Record(ctx, seconds)
}

// RecordJobConsumed counts one job taken off the queue.
func RecordJobConsumed(ctx context.Context) {
	if Metrics == nil {
		return
	}
	Metrics.JobsTotal.Add(ctx, 1)
}

// RecordSearchDuration records the latency of one search request.
func RecordSearchDuration(ctx context.Context, seconds float64) {
	if Metrics == nil {
		return
	}
	Metrics.SearchDuration.Record(ctx, seconds)
}

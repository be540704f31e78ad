// Package telemetry exposes low-overhead counters for the read pipeline.
// Counters are registered on the default prometheus registry; a caller
// that wants to scrape them can mount promhttp, a one-shot caller simply
// ignores them.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesFetched counts canonical messages produced per platform.
	MessagesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatsource_messages_fetched_total",
		Help: "Canonical messages produced by fetch calls, by platform.",
	}, []string{"platform"})

	// RowsSkipped counts source rows dropped because they could not be
	// scanned into the canonical model.
	RowsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatsource_rows_skipped_total",
		Help: "Source rows skipped as unmappable, by platform.",
	}, []string{"platform"})

	// FetchErrors counts fetch calls that failed terminally.
	FetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatsource_fetch_errors_total",
		Help: "Fetch calls that returned an error, by platform.",
	}, []string{"platform"})
)

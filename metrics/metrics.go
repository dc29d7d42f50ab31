// Package metrics holds the prometheus metrics shared by all pipelines.
//
// The tools are batch jobs, so instead of being scraped the default
// registry is dumped once to a node-exporter textfile at the end of a run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for general use, in all pipelines.
var (
	LinesRead = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trace_lines_read_total",
			Help: "Number of input lines read, by pipeline.",
		},
		[]string{"pipeline"},
	)
	EventsMatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trace_queue_events_total",
			Help: "Number of recognized transmit-queue events, by kind.",
		},
		[]string{"kind"},
	)
	MalformedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trace_malformed_records_total",
			Help: "Number of input records skipped because they could not be parsed.",
		},
		[]string{"pipeline"},
	)
	QueueDelay = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "trace_queue_delay_seconds",
			Help: "A histogram of per-packet queue delays.",
			Buckets: []float64{
				.0001, .00025, .0005,
				.001, .0025, .005,
				.01, .025, .05,
				.1, .25, .5,
				1, 2.5, 5, 10},
		},
	)
	RunCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trace_runs_total",
			Help: "Number of pipeline runs, by pipeline and result.",
		},
		[]string{"pipeline", "result"},
	)
)

// WriteTextfile writes the default registry to path in the text
// exposition format. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

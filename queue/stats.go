package queue

import (
	"github.com/influxdata/tdigest"
)

// Stats is the archival summary of a queue pipeline run.
type Stats struct {
	Strategy  string
	Enqueues  int
	Dequeues  int
	Samples   int
	MinLength int
	MaxLength int
	// FinalLength is the queue length after the last event. A non-zero
	// value means packets were still queued when the trace ended.
	FinalLength int

	DelaySamples  int
	NegativeDelay int     `json:",omitempty"`
	MeanDelay     float64
	MaxDelay      float64
	P50Delay      float64
	P95Delay      float64
	P99Delay      float64
}

// Summarize computes Stats for a finished tracker and its delays.
func Summarize(strategy string, t *Tracker, delays []DelaySample) *Stats {
	s := &Stats{
		Strategy:     strategy,
		Enqueues:     t.Enqueues(),
		Dequeues:     t.Dequeues(),
		Samples:      len(t.Samples()),
		MinLength:    t.MinLength(),
		MaxLength:    t.MaxLength(),
		FinalLength:  t.Length(),
		DelaySamples: len(delays),
	}
	if len(delays) == 0 {
		return s
	}
	td := tdigest.NewWithCompression(100)
	sum := 0.0
	s.MaxDelay = delays[0].Delay
	for _, d := range delays {
		if d.Delay < 0 {
			s.NegativeDelay++
		}
		if d.Delay > s.MaxDelay {
			s.MaxDelay = d.Delay
		}
		sum += d.Delay
		td.Add(d.Delay, 1)
	}
	s.MeanDelay = sum / float64(len(delays))
	s.P50Delay = td.Quantile(0.5)
	s.P95Delay = td.Quantile(0.95)
	s.P99Delay = td.Quantile(0.99)
	return s
}

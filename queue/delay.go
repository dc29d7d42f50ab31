package queue

import (
	"fmt"

	"github.com/m-lab/ns3-trace-plotter/trace"
)

// DelaySample is the time a packet spent queued, stamped with the time it
// left the queue.
type DelaySample struct {
	Time  float64
	Delay float64
}

// Correlator attributes a delay to each completed queue traversal. Events
// are given in input order.
type Correlator interface {
	Correlate(events []trace.Event) []DelaySample
}

// PairByIndex pairs the i-th enqueue time with the i-th dequeue time, for i
// up to the length of the shorter list. Trailing unmatched events are
// dropped and negative delays are passed through unchanged.
func PairByIndex(enqueues, dequeues []float64) []DelaySample {
	n := len(enqueues)
	if len(dequeues) < n {
		n = len(dequeues)
	}
	if n == 0 {
		return nil
	}
	delays := make([]DelaySample, 0, n)
	for i := 0; i < n; i++ {
		delays = append(delays, DelaySample{
			Time:  dequeues[i],
			Delay: dequeues[i] - enqueues[i],
		})
	}
	return delays
}

// IndexCorrelator splits the events by kind and applies PairByIndex.
type IndexCorrelator struct{}

// Correlate implements Correlator.
func (IndexCorrelator) Correlate(events []trace.Event) []DelaySample {
	var enqueues, dequeues []float64
	for _, ev := range events {
		switch ev.Kind {
		case trace.Enqueue:
			enqueues = append(enqueues, ev.Time)
		case trace.Dequeue:
			dequeues = append(dequeues, ev.Time)
		}
	}
	return PairByIndex(enqueues, dequeues)
}

// FIFOCorrelator keeps a queue of pending enqueue times and pops the oldest
// one on every dequeue. A dequeue that finds the queue empty produces no
// sample and is not paired with any later enqueue. While the running length
// never goes negative the result equals IndexCorrelator's.
type FIFOCorrelator struct{}

// Correlate implements Correlator.
func (FIFOCorrelator) Correlate(events []trace.Event) []DelaySample {
	var delays []DelaySample
	var pending []float64
	for _, ev := range events {
		switch ev.Kind {
		case trace.Enqueue:
			pending = append(pending, ev.Time)
		case trace.Dequeue:
			if len(pending) == 0 {
				continue
			}
			delays = append(delays, DelaySample{
				Time:  ev.Time,
				Delay: ev.Time - pending[0],
			})
			pending = pending[1:]
		}
	}
	return delays
}

// Strategy names accepted by NewCorrelator.
const (
	StrategyFIFO  = "fifo"
	StrategyIndex = "index"
)

// NewCorrelator returns the correlator registered under name.
func NewCorrelator(name string) (Correlator, error) {
	switch name {
	case StrategyFIFO:
		return FIFOCorrelator{}, nil
	case StrategyIndex:
		return IndexCorrelator{}, nil
	}
	return nil, fmt.Errorf("unknown delay strategy %q", name)
}

// Package queue rebuilds transmit-queue occupancy and per-packet queue
// delay from a sequence of trace events.
package queue

import (
	"errors"
	"fmt"

	"github.com/m-lab/ns3-trace-plotter/trace"
)

// ErrNegativeQueue is returned by Observe when the running length drops
// below zero and the tracker was configured with RejectNegative.
var ErrNegativeQueue = errors.New("queue length went negative")

// NegativePolicy says what happens when a dequeue is observed with no
// matching enqueue.
type NegativePolicy int

const (
	// AllowNegative keeps the negative length in the samples so that the
	// inconsistency stays visible in the output.
	AllowNegative NegativePolicy = iota
	// RejectNegative turns a negative length into ErrNegativeQueue.
	RejectNegative
)

// Sample is the queue length right after an event.
type Sample struct {
	Time   float64
	Length int
}

// Tracker keeps the running queue length. The zero value is ready to use
// and allows negative lengths.
type Tracker struct {
	Policy NegativePolicy

	length   int
	min, max int
	samples  []Sample
	enqueues int
	dequeues int
}

// NewTracker returns a tracker with the given policy.
func NewTracker(policy NegativePolicy) *Tracker {
	return &Tracker{Policy: policy}
}

// Observe applies ev and returns the sample it produced. Events must be
// passed in input order; they are never reordered by time.
func (t *Tracker) Observe(ev trace.Event) (Sample, error) {
	switch ev.Kind {
	case trace.Enqueue:
		t.length++
		t.enqueues++
	case trace.Dequeue:
		if t.length <= 0 && t.Policy == RejectNegative {
			return Sample{}, fmt.Errorf("%w: dequeue at %v with empty queue", ErrNegativeQueue, ev.Time)
		}
		t.length--
		t.dequeues++
	default:
		return Sample{}, fmt.Errorf("unknown event kind %d", ev.Kind)
	}
	if len(t.samples) == 0 || t.length < t.min {
		t.min = t.length
	}
	if len(t.samples) == 0 || t.length > t.max {
		t.max = t.length
	}
	s := Sample{Time: ev.Time, Length: t.length}
	t.samples = append(t.samples, s)
	return s, nil
}

// Length returns the current queue length.
func (t *Tracker) Length() int { return t.length }

// Samples returns one sample per observed event, in observation order.
func (t *Tracker) Samples() []Sample { return t.samples }

// Enqueues returns the number of enqueue events observed.
func (t *Tracker) Enqueues() int { return t.enqueues }

// Dequeues returns the number of dequeue events observed.
func (t *Tracker) Dequeues() int { return t.dequeues }

// MinLength returns the smallest length seen. It is only meaningful once
// at least one event was observed.
func (t *Tracker) MinLength() int { return t.min }

// MaxLength returns the largest length seen.
func (t *Tracker) MaxLength() int { return t.max }

// Track runs all events through a new tracker.
func Track(events []trace.Event, policy NegativePolicy) (*Tracker, error) {
	t := NewTracker(policy)
	for _, ev := range events {
		if _, err := t.Observe(ev); err != nil {
			return t, err
		}
	}
	return t, nil
}

package queue

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/m-lab/ns3-trace-plotter/trace"
)

func TestPairByIndex(t *testing.T) {
	tests := []struct {
		name     string
		enqueues []float64
		dequeues []float64
		want     []DelaySample
	}{
		{name: "empty"},
		{name: "no-dequeues", enqueues: []float64{1, 2}},
		{
			name:     "three-enqueues-one-dequeue",
			enqueues: []float64{1.0, 1.25, 2.0},
			dequeues: []float64{1.5},
			want:     []DelaySample{{Time: 1.5, Delay: 0.5}},
		},
		{
			name:     "extra-dequeues-dropped",
			enqueues: []float64{1.0},
			dequeues: []float64{2.0, 3.0},
			want:     []DelaySample{{Time: 2.0, Delay: 1.0}},
		},
		{
			name:     "negative-delay-kept",
			enqueues: []float64{3.0},
			dequeues: []float64{2.0},
			want:     []DelaySample{{Time: 2.0, Delay: -1.0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, PairByIndex(tt.enqueues, tt.dequeues)); diff != "" {
				t.Errorf("PairByIndex() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIndexCorrelatorLength(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for round := 0; round < 50; round++ {
		events := randomEvents(r, r.Intn(300))
		nenq, ndeq := 0, 0
		for _, ev := range events {
			if ev.Kind == trace.Enqueue {
				nenq++
			} else {
				ndeq++
			}
		}
		want := nenq
		if ndeq < want {
			want = ndeq
		}
		if got := len(IndexCorrelator{}.Correlate(events)); got != want {
			t.Fatalf("round %d: len(delays) = %d, want min(%d, %d)", round, got, nenq, ndeq)
		}
	}
}

func TestFIFOCorrelator(t *testing.T) {
	tests := []struct {
		name   string
		events []trace.Event
		want   []DelaySample
	}{
		{name: "empty"},
		{
			name:   "fifo-order",
			events: []trace.Event{enq(1), enq(2), deq(3), enq(4), deq(5), deq(6)},
			want: []DelaySample{
				{Time: 3, Delay: 2},
				{Time: 5, Delay: 3},
				{Time: 6, Delay: 2},
			},
		},
		{
			name:   "dequeue-before-enqueue-skipped",
			events: []trace.Event{deq(1), enq(2), deq(3)},
			want:   []DelaySample{{Time: 3, Delay: 1}},
		},
		{
			name:   "trailing-enqueues",
			events: []trace.Event{enq(1), enq(1.5), enq(2), deq(2.5)},
			want:   []DelaySample{{Time: 2.5, Delay: 1.5}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, FIFOCorrelator{}.Correlate(tt.events)); diff != "" {
				t.Errorf("Correlate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFIFOEqualsIndexWithoutUnderflow(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for round := 0; round < 50; round++ {
		var events []trace.Event
		length := 0
		now := 0.0
		n := r.Intn(300)
		for i := 0; i < n; i++ {
			now += r.Float64()
			if length > 0 && r.Intn(2) == 0 {
				events = append(events, deq(now))
				length--
			} else {
				events = append(events, enq(now))
				length++
			}
		}
		index := IndexCorrelator{}.Correlate(events)
		fifo := FIFOCorrelator{}.Correlate(events)
		if diff := cmp.Diff(index, fifo); diff != "" {
			t.Fatalf("round %d: fifo differs from index (-index +fifo):\n%s", round, diff)
		}
	}
}

func TestNewCorrelator(t *testing.T) {
	c, err := NewCorrelator(StrategyFIFO)
	if _, ok := c.(FIFOCorrelator); err != nil || !ok {
		t.Errorf("NewCorrelator(fifo) = %T, %v", c, err)
	}
	c, err = NewCorrelator(StrategyIndex)
	if _, ok := c.(IndexCorrelator); err != nil || !ok {
		t.Errorf("NewCorrelator(index) = %T, %v", c, err)
	}
	if _, err := NewCorrelator("lifo"); err == nil {
		t.Error("NewCorrelator(lifo) should fail")
	}
}

func TestSummarize(t *testing.T) {
	events := []trace.Event{enq(1), enq(2), deq(3), deq(5), enq(6)}
	tr, err := Track(events, AllowNegative)
	if err != nil {
		t.Fatal(err)
	}
	delays := IndexCorrelator{}.Correlate(events)
	s := Summarize(StrategyIndex, tr, delays)
	want := &Stats{
		Strategy:     StrategyIndex,
		Enqueues:     3,
		Dequeues:     2,
		Samples:      5,
		MinLength:    0,
		MaxLength:    2,
		FinalLength:  1,
		DelaySamples: 2,
		MeanDelay:    2.5,
		MaxDelay:     3,
	}
	ignore := cmpopts.IgnoreFields(Stats{}, "P50Delay", "P95Delay", "P99Delay")
	if diff := cmp.Diff(want, s, ignore); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
	if s.P50Delay < 2 || s.P50Delay > 3 || s.P99Delay < s.P50Delay {
		t.Errorf("unexpected quantiles p50=%v p99=%v", s.P50Delay, s.P99Delay)
	}

	empty := Summarize(StrategyFIFO, NewTracker(AllowNegative), nil)
	if empty.DelaySamples != 0 || empty.MeanDelay != 0 {
		t.Errorf("Summarize(empty) = %+v", empty)
	}
}

func TestSummarizeKeepsZeroDelays(t *testing.T) {
	// Every packet leaves the queue at the time it entered.
	events := []trace.Event{enq(1), deq(1), enq(2), deq(2)}
	tr, err := Track(events, AllowNegative)
	if err != nil {
		t.Fatal(err)
	}
	s := Summarize(StrategyFIFO, tr, FIFOCorrelator{}.Correlate(events))
	if s.DelaySamples != 2 {
		t.Fatalf("DelaySamples = %d, want 2", s.DelaySamples)
	}
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"MeanDelay", "MaxDelay", "P50Delay", "P95Delay", "P99Delay"} {
		if !strings.Contains(string(b), `"`+field+`":0`) {
			t.Errorf("summary %s is missing %s", b, field)
		}
	}
}

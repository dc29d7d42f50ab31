// Package cwnd parses congestion window logs written by the ns-3
// CongestionWindow trace sink, one "time old_cwnd new_cwnd" line per change.
package cwnd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m-lab/ns3-trace-plotter/logging"
	"github.com/m-lab/ns3-trace-plotter/metrics"
)

// ErrMalformedRecord is returned for lines that do not hold exactly three
// numbers.
var ErrMalformedRecord = errors.New("malformed cwnd record")

// Record is one congestion window change.
type Record struct {
	Time         float64
	PreviousCwnd float64
	CurrentCwnd  float64
}

// ParseRecord parses a single non-empty line.
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Record{}, fmt.Errorf("%w: want 3 fields, got %d", ErrMalformedRecord, len(fields))
	}
	var v [3]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		v[i] = x
	}
	return Record{Time: v[0], PreviousCwnd: v[1], CurrentCwnd: v[2]}, nil
}

// Series is the congestion window over time.
type Series struct {
	Time []float64
	Cwnd []float64
	// Skipped holds the malformed lines, in input order.
	Skipped []string
}

// Len returns the number of points in the series.
func (s *Series) Len() int { return len(s.Time) }

// Collect parses lines into a series. Blank lines are ignored silently;
// malformed lines are logged and skipped.
func Collect(lines []string) *Series {
	s := &Series{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r, err := ParseRecord(line)
		if err != nil {
			logging.Logger.WithError(err).WithField("line", line).Warn("Skipping line due to unexpected format")
			metrics.MalformedRecords.WithLabelValues("cwnd").Inc()
			s.Skipped = append(s.Skipped, line)
			continue
		}
		s.Time = append(s.Time, r.Time)
		s.Cwnd = append(s.Cwnd, r.CurrentCwnd)
	}
	return s
}

// Stats is the archival summary of a cwnd pipeline run.
type Stats struct {
	Records int
	Skipped int
	MinCwnd float64
	MaxCwnd float64
	// FinalCwnd is the window after the last recorded change.
	FinalCwnd float64
	Duration  float64
}

// Summarize computes Stats for s.
func Summarize(s *Series) *Stats {
	st := &Stats{Records: s.Len(), Skipped: len(s.Skipped)}
	if s.Len() == 0 {
		return st
	}
	st.MinCwnd, st.MaxCwnd = s.Cwnd[0], s.Cwnd[0]
	for _, c := range s.Cwnd {
		if c < st.MinCwnd {
			st.MinCwnd = c
		}
		if c > st.MaxCwnd {
			st.MaxCwnd = c
		}
	}
	st.FinalCwnd = s.Cwnd[len(s.Cwnd)-1]
	st.Duration = s.Time[len(s.Time)-1] - s.Time[0]
	return st
}

// Package throughput computes receiver goodput from text capture dumps.
//
// A dump has one packet per line with at least seven whitespace separated
// fields, as printed by
//
//	tshark -r capture.pcap -T fields -e frame.time_epoch -e ip.src -e ip.dst \
//	    -e tcp.srcport -e tcp.dstport -e tcp.len -e tcp.seq
//
// Only the epoch time (field 0) and the TCP payload length (field 5) are
// used.
package throughput

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/m-lab/ns3-trace-plotter/logging"
	"github.com/m-lab/ns3-trace-plotter/metrics"
)

// Errors returned by Calculate.
var (
	ErrNoRecords     = errors.New("no valid data")
	ErrZeroTimeRange = errors.New("all records share one timestamp")
)

// MinFields is the number of fields a record line must have.
const MinFields = 7

// Record is one captured packet.
type Record struct {
	Time         float64
	PayloadBytes int64
}

// ParseRecord parses a dump line. ok is false for lines with too few
// fields, which are not records at all; err is set for record lines whose
// fields are not numbers.
func ParseRecord(line string) (r Record, ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) < MinFields {
		return Record{}, false, nil
	}
	t, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Record{}, true, err
	}
	n, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return Record{}, true, err
	}
	return Record{Time: t, PayloadBytes: n}, true, nil
}

// FileResult is the throughput of one dump.
type FileResult struct {
	Name      string
	Records   int
	Skipped   int
	Bytes     int64
	TimeRange float64
	Bps       float64
	// Error is set when the file did not yield a throughput.
	Error string `json:",omitempty"`
}

// Valid reports whether r holds a throughput.
func (r FileResult) Valid() bool { return r.Error == "" }

// Mbps returns the throughput in megabits per second.
func (r FileResult) Mbps() float64 { return r.Bps / 1e6 }

// Calculate computes the throughput of the dump named name, given its
// lines: total payload bits over the span between the earliest and the
// latest record.
func Calculate(name string, lines []string) (FileResult, error) {
	res := FileResult{Name: name}
	first := true
	var min, max float64
	for _, line := range lines {
		r, ok, err := ParseRecord(line)
		if !ok {
			continue
		}
		if err != nil {
			logging.Logger.WithError(err).WithFields(log.Fields{
				"file": name,
				"line": line,
			}).Warn("Error parsing line")
			metrics.MalformedRecords.WithLabelValues("throughput").Inc()
			res.Skipped++
			continue
		}
		res.Records++
		res.Bytes += r.PayloadBytes
		if first || r.Time < min {
			min = r.Time
		}
		if first || r.Time > max {
			max = r.Time
		}
		first = false
	}
	if res.Records == 0 {
		res.Error = ErrNoRecords.Error()
		return res, fmt.Errorf("%s: %w", name, ErrNoRecords)
	}
	res.TimeRange = max - min
	if res.TimeRange <= 0 {
		res.Error = ErrZeroTimeRange.Error()
		return res, fmt.Errorf("%s: %w", name, ErrZeroTimeRange)
	}
	res.Bps = float64(res.Bytes*8) / res.TimeRange
	return res, nil
}

// Stats is the archival summary of a throughput pipeline run.
type Stats struct {
	Files       []FileResult
	ValidFiles  int
	AverageBps  float64
	AverageMbps float64
}

// Average averages the valid results. Invalid ones are kept in Files but do
// not count.
func Average(results []FileResult) *Stats {
	s := &Stats{Files: results}
	total := 0.0
	for _, r := range results {
		if !r.Valid() {
			continue
		}
		total += r.Bps
		s.ValidFiles++
	}
	if s.ValidFiles > 0 {
		s.AverageBps = total / float64(s.ValidFiles)
		s.AverageMbps = s.AverageBps / 1e6
	}
	return s
}

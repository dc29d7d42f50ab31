// Package tsv writes queue series as tab separated files, in the layout
// gnuplot and the original analysis scripts expect.
package tsv

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/m-lab/ns3-trace-plotter/queue"
)

// Float is a float64 written in shortest round-trip form, always with a
// decimal point or an exponent so integral values read back as floats.
type Float float64

// FormatFloat renders f like Float does.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	abs := math.Abs(f)
	var s string
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (f Float) MarshalCSV() (string, error) {
	return FormatFloat(float64(f)), nil
}

// NoDelay fills the delay column of rows that have no delay sample.
const NoDelay = "0"

// LengthRow is one row of the queue length file.
type LengthRow struct {
	Time   Float `csv:"# Time"`
	Length int   `csv:"QueueLength"`
}

// CombinedRow is one row of the queue length and delay file.
type CombinedRow struct {
	Time   Float  `csv:"# Time"`
	Length int    `csv:"QueueLength"`
	Delay  string `csv:"QueueDelay"`
}

// LengthRows converts samples into rows.
func LengthRows(samples []queue.Sample) []*LengthRow {
	rows := make([]*LengthRow, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, &LengthRow{Time: Float(s.Time), Length: s.Length})
	}
	return rows
}

// CombinedRows pairs sample i with delay i. The pairing is by position in
// the two series, not by time; rows past the end of delays get a 0 delay.
func CombinedRows(samples []queue.Sample, delays []queue.DelaySample) []*CombinedRow {
	rows := make([]*CombinedRow, 0, len(samples))
	for i, s := range samples {
		row := &CombinedRow{Time: Float(s.Time), Length: s.Length, Delay: NoDelay}
		if i < len(delays) {
			row.Delay = FormatFloat(delays[i].Delay)
		}
		rows = append(rows, row)
	}
	return rows
}

func newWriter(w io.Writer) *gocsv.SafeCSVWriter {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return gocsv.NewSafeCSVWriter(cw)
}

func marshal(rows interface{}, w io.Writer) error {
	out := newWriter(w)
	if err := gocsv.MarshalCSV(rows, out); err != nil {
		return err
	}
	out.Flush()
	return out.Error()
}

// WriteLengths writes the "# Time\tQueueLength" file.
func WriteLengths(w io.Writer, samples []queue.Sample) error {
	return marshal(LengthRows(samples), w)
}

// WriteCombined writes the "# Time\tQueueLength\tQueueDelay" file.
func WriteCombined(w io.Writer, samples []queue.Sample, delays []queue.DelaySample) error {
	return marshal(CombinedRows(samples, delays), w)
}

package pipeline

import (
	"github.com/apex/log"

	"github.com/m-lab/ns3-trace-plotter/data"
	"github.com/m-lab/ns3-trace-plotter/logging"
	"github.com/m-lab/ns3-trace-plotter/metrics"
	"github.com/m-lab/ns3-trace-plotter/throughput"
)

// ThroughputConfig configures RunThroughput.
type ThroughputConfig struct {
	Common
	Inputs []string
}

// RunThroughput computes the throughput of every capture dump and their
// average. Unreadable or empty dumps are reported and left out of the
// average; ErrInsufficientData is returned when no dump is usable.
func RunThroughput(c ThroughputConfig) (*data.Summary, error) {
	summary := newSummary("throughput", c.Common, c.Inputs...)
	var files []throughput.FileResult
	for _, name := range c.Inputs {
		lines, err := ReadLines(name)
		if err != nil {
			logging.Logger.WithError(err).WithField("file", name).Warn("Error reading the file")
			files = append(files, throughput.FileResult{Name: name, Error: err.Error()})
			continue
		}
		metrics.LinesRead.WithLabelValues("throughput").Add(float64(len(lines)))
		r, err := throughput.Calculate(name, lines)
		if err != nil {
			logging.Logger.WithError(err).WithField("file", name).Warn("No throughput for file")
		} else {
			logging.Logger.WithFields(log.Fields{
				"file":       r.Name,
				"bytes":      r.Bytes,
				"time_range": r.TimeRange,
				"bps":        r.Bps,
				"mbps":       r.Mbps(),
			}).Info("Throughput")
		}
		files = append(files, r)
	}
	summary.Throughput = throughput.Average(files)
	if summary.Throughput.ValidFiles == 0 {
		return noData(summary, c.Common)
	}
	logging.Logger.WithField("bps", summary.Throughput.AverageBps).
		WithField("mbps", summary.Throughput.AverageMbps).
		WithField("files", summary.Throughput.ValidFiles).
		Info("Average throughput")
	return summary, finish(summary, c.Common, ResultOK)
}

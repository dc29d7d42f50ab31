package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/m-lab/ns3-trace-plotter/chart"
	"github.com/m-lab/ns3-trace-plotter/data"
	"github.com/m-lab/ns3-trace-plotter/logging"
	"github.com/m-lab/ns3-trace-plotter/metrics"
	"github.com/m-lab/ns3-trace-plotter/queue"
	"github.com/m-lab/ns3-trace-plotter/trace"
	"github.com/m-lab/ns3-trace-plotter/tsv"
)

// Output formats of the queue pipeline.
const (
	FormatCombined = "combined"
	FormatLength   = "length"
)

// Negative queue policies, by flag value.
const (
	NegativeAllow = "allow"
	NegativeError = "error"
)

// QueueConfig configures RunQueue.
type QueueConfig struct {
	Common
	Input string
	// Output is the TSV file. Empty disables it.
	Output string
	// Format is FormatCombined or FormatLength.
	Format string
	// Plot is the PNG written for the series. Empty disables rendering.
	Plot string
	// Strategy names the delay correlator, see queue.NewCorrelator.
	Strategy string
	// Negative is NegativeAllow or NegativeError.
	Negative string
}

func negativePolicy(name string) (queue.NegativePolicy, error) {
	switch name {
	case "", NegativeAllow:
		return queue.AllowNegative, nil
	case NegativeError:
		return queue.RejectNegative, nil
	}
	return 0, fmt.Errorf("unknown negative queue policy %q", name)
}

// QueuePanels are the charts of a queue run: the length alone, or the
// length over the delay.
func QueuePanels(format string, samples []queue.Sample, delays []queue.DelaySample) []chart.Panel {
	lengths := chart.Series{Name: "Queue Length", Color: chart.Blue}
	for _, s := range samples {
		lengths.X = append(lengths.X, s.Time)
		lengths.Y = append(lengths.Y, float64(s.Length))
	}
	panels := []chart.Panel{{
		Title:  "Queue Length Over Time",
		XLabel: "Time (seconds)",
		YLabel: "Queue Length (packets)",
		Series: []chart.Series{lengths},
	}}
	if format == FormatLength {
		return panels
	}
	d := chart.Series{Name: "Queue Delay", Color: chart.Red}
	for _, s := range delays {
		d.X = append(d.X, s.Time)
		d.Y = append(d.Y, s.Delay)
	}
	return append(panels, chart.Panel{
		Title:  "Queue Delay Over Time",
		XLabel: "Time (seconds)",
		YLabel: "Queue Delay (seconds)",
		Series: []chart.Series{d},
	})
}

// RunQueue rebuilds queue length and delay from the trace at c.Input. It
// returns ErrInsufficientData, with nothing written, when the trace holds
// no queue event.
func RunQueue(ctx context.Context, c QueueConfig) (*data.Summary, error) {
	summary := newSummary("queue", c.Common, c.Input)
	policy, err := negativePolicy(c.Negative)
	if err != nil {
		return summary, err
	}
	correlator, err := queue.NewCorrelator(c.Strategy)
	if err != nil {
		return summary, err
	}
	var write func(io.Writer, []queue.Sample, []queue.DelaySample) error
	switch c.Format {
	case FormatCombined:
		write = tsv.WriteCombined
	case FormatLength:
		write = func(w io.Writer, s []queue.Sample, _ []queue.DelaySample) error {
			return tsv.WriteLengths(w, s)
		}
	default:
		return summary, fmt.Errorf("unknown output format %q", c.Format)
	}

	lines, err := ReadLines(c.Input)
	if err != nil {
		return summary, err
	}
	metrics.LinesRead.WithLabelValues("queue").Add(float64(len(lines)))

	events := trace.MatchAll(lines)
	if len(events) == 0 {
		summary.Queue = queue.Summarize(c.Strategy, queue.NewTracker(policy), nil)
		return noData(summary, c.Common)
	}
	tracker := queue.NewTracker(policy)
	for _, ev := range events {
		metrics.EventsMatched.WithLabelValues(ev.Kind.String()).Inc()
		if _, err := tracker.Observe(ev); err != nil {
			summary.Queue = queue.Summarize(c.Strategy, tracker, nil)
			if ferr := finish(summary, c.Common, ResultNegativeQueue); ferr != nil {
				logging.Logger.WithError(ferr).Warn("Could not record the failed run")
			}
			return summary, err
		}
	}
	if tracker.MinLength() < 0 {
		logging.Logger.WithField("min_length", tracker.MinLength()).Warn("Queue length went negative; the trace has dequeues without enqueues")
	}
	delays := correlator.Correlate(events)
	for _, d := range delays {
		metrics.QueueDelay.Observe(d.Delay)
	}
	summary.Queue = queue.Summarize(c.Strategy, tracker, delays)
	logging.Logger.WithField("events", len(events)).WithField("delays", len(delays)).Info("Parsed trace")

	if c.Output != "" {
		err := writeFile(c.Output, func(w io.Writer) error {
			return write(w, tracker.Samples(), delays)
		})
		if err != nil {
			return summary, err
		}
		summary.Outputs = append(summary.Outputs, c.Output)
		logging.Logger.WithField("path", c.Output).Info("Queue data written")
	}
	if c.Plot != "" {
		panels := QueuePanels(c.Format, tracker.Samples(), delays)
		err := chart.Render(c.Plot, chart.DefaultWidth, chart.DefaultPanelHeight, panels...)
		if err != nil {
			return summary, fmt.Errorf("%w: rendering %s: %v", ErrResourceUnavailable, c.Plot, err)
		}
		summary.Outputs = append(summary.Outputs, c.Plot)
		logging.Logger.WithField("path", c.Plot).Info("Plot saved")
	}
	if err := finish(summary, c.Common, ResultOK); err != nil {
		return summary, err
	}
	return summary, show(ctx, c.Common, c.Plot)
}

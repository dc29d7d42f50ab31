package pipeline

import (
	"context"
	"fmt"

	"github.com/m-lab/ns3-trace-plotter/chart"
	"github.com/m-lab/ns3-trace-plotter/cwnd"
	"github.com/m-lab/ns3-trace-plotter/data"
	"github.com/m-lab/ns3-trace-plotter/logging"
	"github.com/m-lab/ns3-trace-plotter/metrics"
)

// CwndConfig configures RunCwnd.
type CwndConfig struct {
	Common
	Input string
	// Plot is the PNG written for the series. Empty disables rendering.
	Plot string
}

// CwndPanel is the chart of a congestion window series.
func CwndPanel(s *cwnd.Series) chart.Panel {
	return chart.Panel{
		Title:  "Congestion Window Evolution",
		XLabel: "Time (seconds)",
		YLabel: "Congestion Window Size (packets)",
		Series: []chart.Series{{Name: "CWND", X: s.Time, Y: s.Cwnd, Color: chart.Blue}},
	}
}

// RunCwnd plots the congestion window log at c.Input. It returns
// ErrInsufficientData, with nothing rendered, when the log holds no valid
// record.
func RunCwnd(ctx context.Context, c CwndConfig) (*data.Summary, error) {
	summary := newSummary("cwnd", c.Common, c.Input)
	lines, err := ReadLines(c.Input)
	if err != nil {
		return summary, err
	}
	metrics.LinesRead.WithLabelValues("cwnd").Add(float64(len(lines)))

	series := cwnd.Collect(lines)
	summary.Cwnd = cwnd.Summarize(series)
	if series.Len() == 0 {
		return noData(summary, c.Common)
	}
	logging.Logger.WithField("records", series.Len()).WithField("skipped", len(series.Skipped)).Info("Parsed cwnd log")

	if c.Plot != "" {
		err := chart.Render(c.Plot, chart.DefaultWidth, chart.DefaultPanelHeight, CwndPanel(series))
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

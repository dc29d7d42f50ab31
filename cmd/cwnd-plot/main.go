// cwnd-plot plots the congestion window log written by the ns-3
// CongestionWindow trace sink.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-lab/go/rtx"

	"github.com/m-lab/ns3-trace-plotter/config"
	"github.com/m-lab/ns3-trace-plotter/metrics"
	"github.com/m-lab/ns3-trace-plotter/pipeline"
)

var (
	input    = flag.String("input", "tcp-example.cwnd", "The cwnd log to plot, one \"time old new\" record per line")
	plotPath = flag.String("plot", "cwnd_evolution_plot.png", "The PNG file to render. Empty disables rendering")
	common   = config.Register(flag.CommandLine)

	// Context for the whole program.
	ctx, cancel = context.WithCancel(context.Background())
)

func main() {
	rtx.Must(config.Parse(flag.CommandLine, common, os.Args[1:]), "Could not parse flags")
	c, err := common.Common()
	rtx.Must(err, "Invalid flags")

	sigctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	_, err = pipeline.RunCwnd(sigctx, pipeline.CwndConfig{
		Common: c,
		Input:  *input,
		Plot:   *plotPath,
	})
	rtx.Must(metrics.WriteTextfile(common.MetricsTextfile), "Could not write metrics")
	if errors.Is(err, pipeline.ErrInsufficientData) {
		return
	}
	rtx.Must(err, "Could not plot %s", *input)
}

// queue-plot rebuilds transmit queue length and queue delay from an ns-3
// ASCII trace, writes them as a tab separated file and plots them.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/rtx"

	"github.com/m-lab/ns3-trace-plotter/config"
	"github.com/m-lab/ns3-trace-plotter/metrics"
	"github.com/m-lab/ns3-trace-plotter/pipeline"
	"github.com/m-lab/ns3-trace-plotter/queue"
)

var (
	input    = flag.String("input", "tcp-example.tr", "The ns-3 ASCII trace to analyze")
	output   = flag.String("output", "queue_results.txt", "The tab separated output file. Empty disables it")
	plotPath = flag.String("plot", "queue_results_plot.png", "The PNG file to render. Empty disables rendering")
	format   = flagx.Enum{
		Options: []string{pipeline.FormatCombined, pipeline.FormatLength},
		Value:   pipeline.FormatCombined,
	}
	strategy = flagx.Enum{
		Options: []string{queue.StrategyFIFO, queue.StrategyIndex},
		Value:   queue.StrategyFIFO,
	}
	negative = flagx.Enum{
		Options: []string{pipeline.NegativeAllow, pipeline.NegativeError},
		Value:   pipeline.NegativeAllow,
	}
	common = config.Register(flag.CommandLine)

	// Context for the whole program.
	ctx, cancel = context.WithCancel(context.Background())
)

func init() {
	flag.Var(&format, "output.format", "combined writes length and delay columns, length only the queue length")
	flag.Var(&strategy, "delay.strategy", "How dequeues are paired with enqueues: fifo, or index to pair the i-th of each")
	flag.Var(&negative, "queue.negative", "What to do when the queue length goes below zero: allow or error")
}

func main() {
	rtx.Must(config.Parse(flag.CommandLine, common, os.Args[1:]), "Could not parse flags")
	c, err := common.Common()
	rtx.Must(err, "Invalid flags")

	sigctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	_, err = pipeline.RunQueue(sigctx, pipeline.QueueConfig{
		Common:   c,
		Input:    *input,
		Output:   *output,
		Format:   format.Value,
		Plot:     *plotPath,
		Strategy: strategy.Value,
		Negative: negative.Value,
	})
	rtx.Must(metrics.WriteTextfile(common.MetricsTextfile), "Could not write metrics")
	if errors.Is(err, pipeline.ErrInsufficientData) {
		return
	}
	rtx.Must(err, "Could not analyze %s", *input)
}

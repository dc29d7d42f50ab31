// throughput computes the receiver throughput of one or more capture dumps
// and their average.
//
// Usage:
//
//	throughput [flags] [dump ...]
package main

import (
	"errors"
	"flag"
	"os"

	"github.com/m-lab/go/rtx"

	"github.com/m-lab/ns3-trace-plotter/config"
	"github.com/m-lab/ns3-trace-plotter/metrics"
	"github.com/m-lab/ns3-trace-plotter/pipeline"
)

var (
	defaultInputs = []string{
		"tcp-example-0-0_output.txt",
		"tcp-example-1-0_output.txt",
		"tcp-example-2-0_output.txt",
	}
	common = config.Register(flag.CommandLine)
)

func main() {
	rtx.Must(config.Parse(flag.CommandLine, common, os.Args[1:]), "Could not parse flags")
	c, err := common.Common()
	rtx.Must(err, "Invalid flags")

	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs = defaultInputs
	}
	_, err = pipeline.RunThroughput(pipeline.ThroughputConfig{Common: c, Inputs: inputs})
	rtx.Must(metrics.WriteTextfile(common.MetricsTextfile), "Could not write metrics")
	if errors.Is(err, pipeline.ErrInsufficientData) {
		return
	}
	rtx.Must(err, "Could not compute throughput")
}

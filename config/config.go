// Package config declares the flags shared by all commands. Every flag can
// also be set through the environment, e.g. -show.addr as SHOW_ADDR.
package config

import (
	"flag"
	"fmt"

	"github.com/m-lab/go/flagx"

	"github.com/m-lab/ns3-trace-plotter/display"
	"github.com/m-lab/ns3-trace-plotter/logging"
	"github.com/m-lab/ns3-trace-plotter/metadata"
	"github.com/m-lab/ns3-trace-plotter/pipeline"
)

// Flags holds the values of the shared flags.
type Flags struct {
	Display         flagx.Enum
	Viewer          string
	Addr            string
	DataDir         string
	Compress        bool
	Metadata        flagx.StringArray
	MetricsTextfile string
	LogFormat       flagx.Enum
}

// Register declares the shared flags on fs.
func Register(fs *flag.FlagSet) *Flags {
	f := &Flags{
		Display:   flagx.Enum{Options: display.Modes, Value: display.ModeNone},
		LogFormat: flagx.Enum{Options: []string{logging.FormatJSON, logging.FormatText}, Value: logging.FormatJSON},
	}
	fs.Var(&f.Display, "show", "How to show rendered plots: none, open (run -show.viewer) or http (serve on -show.addr)")
	fs.StringVar(&f.Viewer, "show.viewer", "xdg-open", "Image viewer command used by -show=open")
	fs.StringVar(&f.Addr, "show.addr", "localhost:8080", "Listen address used by -show=http")
	fs.StringVar(&f.DataDir, "datadir", "", "Directory for archival run summaries. Empty disables them")
	fs.BoolVar(&f.Compress, "compress", false, "Whether to gzip archival run summaries")
	fs.Var(&f.Metadata, "metadata", "name=value metadata stored in the run summary; may be repeated")
	fs.StringVar(&f.MetricsTextfile, "metrics.textfile", "", "Write prometheus metrics to this file when the run ends")
	fs.Var(&f.LogFormat, "log.format", "Log format: json or text")
	return f
}

// Parse parses args, then fills unset flags from the environment and
// applies the log format.
func Parse(fs *flag.FlagSet, f *Flags, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := flagx.ArgsFromEnv(fs); err != nil {
		return fmt.Errorf("could not read flags from the environment: %w", err)
	}
	return logging.SetFormat(f.LogFormat.Value)
}

// Common converts the flag values into pipeline options.
func (f *Flags) Common() (pipeline.Common, error) {
	md, err := metadata.Parse(f.Metadata)
	if err != nil {
		return pipeline.Common{}, err
	}
	return pipeline.Common{
		Display: display.Config{
			Mode:   f.Display.Value,
			Viewer: f.Viewer,
			Addr:   f.Addr,
		},
		DataDir:  f.DataDir,
		Compress: f.Compress,
		Metadata: md,
	}, nil
}

// Package pipeline runs the cwnd, queue and throughput analyses end to end:
// read the input, derive the series, write them out, render and show charts
// and archive a summary of the run.
package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-lab/go/prometheusx"

	"github.com/m-lab/ns3-trace-plotter/data"
	"github.com/m-lab/ns3-trace-plotter/display"
	"github.com/m-lab/ns3-trace-plotter/logging"
	"github.com/m-lab/ns3-trace-plotter/metadata"
	"github.com/m-lab/ns3-trace-plotter/metrics"
	"github.com/m-lab/ns3-trace-plotter/results"
)

var (
	// ErrResourceUnavailable wraps failures to read an input or create an
	// output. Runs that return it must be aborted.
	ErrResourceUnavailable = errors.New("resource unavailable")
	// ErrInsufficientData means the input held nothing to plot. Nothing was
	// written and no chart was rendered.
	ErrInsufficientData = errors.New("no valid data")
)

// Run results recorded in summaries and metrics.
const (
	ResultOK            = "ok"
	ResultNoData        = "no data"
	ResultNegativeQueue = "negative queue"
)

// Common holds the options shared by every pipeline.
type Common struct {
	Display  display.Config
	DataDir  string
	Compress bool
	Metadata []metadata.NameValue
}

// ReadLines reads the whole file at path into memory, one string per line
// without the line terminator.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	defer f.Close()
	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrResourceUnavailable, path, err)
		}
	}
}

// writeFile creates path and fills it with write. A failed write removes
// the file, so no partial output is left behind.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	bw := bufio.NewWriter(f)
	err = write(bw)
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		f.Close()
		if rmErr := os.Remove(path); rmErr != nil {
			logging.Logger.WithError(rmErr).WithField("path", path).Warn("Could not remove partial output")
		}
		return fmt.Errorf("%w: writing %s: %v", ErrResourceUnavailable, path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	return nil
}

func newSummary(pipeline string, c Common, inputs ...string) *data.Summary {
	return &data.Summary{
		GitShortCommit: prometheusx.GitShortCommit,
		SchemaVersion:  data.CurrentSchemaVersion,
		UUID:           uuid.NewString(),
		Pipeline:       pipeline,
		Inputs:         inputs,
		StartTime:      time.Now().UTC(),
		Metadata:       c.Metadata,
	}
}

// finish stamps the summary, archives it and records the run.
func finish(s *data.Summary, c Common, result string) error {
	s.EndTime = time.Now().UTC()
	s.Result = result
	metrics.RunCount.WithLabelValues(s.Pipeline, result).Inc()
	name, err := results.Save(c.DataDir, s.Pipeline, s.UUID, c.Compress, s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	if name != "" {
		logging.Logger.WithField("path", name).Info("Summary saved")
	}
	return nil
}

// noData reports an empty run.
func noData(s *data.Summary, c Common) (*data.Summary, error) {
	logging.Logger.WithField("input", s.Inputs).Warn("No valid data to plot")
	if err := finish(s, c, ResultNoData); err != nil {
		return s, err
	}
	return s, ErrInsufficientData
}

// show displays the rendered plots, if any.
func show(ctx context.Context, c Common, plots ...string) error {
	var paths []string
	for _, p := range plots {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return display.Show(ctx, c.Display, paths...)
}

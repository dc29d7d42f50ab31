package data

import (
	"time"

	"github.com/m-lab/ns3-trace-plotter/cwnd"
	"github.com/m-lab/ns3-trace-plotter/metadata"
	"github.com/m-lab/ns3-trace-plotter/queue"
	"github.com/m-lab/ns3-trace-plotter/throughput"
)

// CurrentSchemaVersion is the current version of the Summary struct below.
// It should be incremented for every structure change to Summary so that
// readers of archived summaries can tell layouts apart.
const CurrentSchemaVersion = 1

// Summary is the struct that is serialized as JSON to disk as the archival
// record of one pipeline run.
type Summary struct {
	// GitShortCommit is the Git commit (short form) of the running code.
	GitShortCommit string
	// SchemaVersion represents the version of the Summary structure.
	SchemaVersion int

	UUID     string
	Pipeline string
	// Inputs are the files the run read, in the order they were given.
	Inputs []string
	// Outputs are the files the run wrote.
	Outputs []string `json:",omitempty"`

	StartTime time.Time
	EndTime   time.Time

	// Result is "ok" or the reason the run produced no output.
	Result string

	Metadata []metadata.NameValue `json:",omitempty"`

	Cwnd       *cwnd.Stats       `json:",omitempty"`
	Queue      *queue.Stats      `json:",omitempty"`
	Throughput *throughput.Stats `json:",omitempty"`
}

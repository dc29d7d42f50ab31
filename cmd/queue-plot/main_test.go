package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-lab/go/osx"
	"github.com/m-lab/go/prometheusx/promtest"
	"github.com/m-lab/go/rtx"
)

const trace = `+ 0.5 /NodeList/0/DeviceList/1/$ns3::PointToPointNetDevice/TxQueue/Enqueue ns3::PppHeader
+ 0.7 /NodeList/0/DeviceList/1/$ns3::PointToPointNetDevice/TxQueue/Enqueue ns3::PppHeader
- 1.0 /NodeList/0/DeviceList/1/$ns3::PointToPointNetDevice/TxQueue/Dequeue ns3::PppHeader
- 1.2 /NodeList/0/DeviceList/1/$ns3::PointToPointNetDevice/TxQueue/Dequeue ns3::PppHeader
`

func setupMain(t *testing.T, content string) (string, func()) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tcp-example.tr")
	rtx.Must(os.WriteFile(in, []byte(content), 0644), "Could not write trace")

	cleanups := []func(){}
	for _, ev := range []struct{ key, value string }{
		{"INPUT", in},
		{"OUTPUT", filepath.Join(dir, "queue_results.txt")},
		{"PLOT", filepath.Join(dir, "queue_results_plot.png")},
		{"DATADIR", filepath.Join(dir, "data")},
		{"METRICS_TEXTFILE", filepath.Join(dir, "metrics.prom")},
		{"DELAY_STRATEGY", "fifo"},
		{"LOG_FORMAT", "text"},
	} {
		cleanups = append(cleanups, osx.MustSetenv(ev.key, ev.value))
	}
	return dir, func() {
		for _, f := range cleanups {
			f()
		}
	}
}

func TestMain_WritesResults(t *testing.T) {
	dir, cleanup := setupMain(t, trace)
	defer cleanup()

	main()

	b, err := os.ReadFile(filepath.Join(dir, "queue_results.txt"))
	rtx.Must(err, "Could not read results")
	want := "# Time\tQueueLength\tQueueDelay\n" +
		"0.5\t1\t0.5\n" +
		"0.7\t2\t0.5\n" +
		"1.0\t1\t0\n" +
		"1.2\t0\t0\n"
	if string(b) != want {
		t.Errorf("results = %q, want %q", string(b), want)
	}
	for _, name := range []string{"queue_results_plot.png", "metrics.prom"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s was not written: %v", name, err)
		}
	}
	m, err := os.ReadFile(filepath.Join(dir, "metrics.prom"))
	rtx.Must(err, "Could not read metrics")
	if !strings.Contains(string(m), "trace_queue_events_total") {
		t.Errorf("metrics textfile is missing matched events:\n%s", m)
	}
}

func TestMain_EmptyTrace(t *testing.T) {
	dir, cleanup := setupMain(t, "r 1.0 /NodeList/1/DeviceList/0/MacRx\n")
	defer cleanup()

	// No usable events is not fatal, but nothing gets written.
	main()

	if _, err := os.Stat(filepath.Join(dir, "queue_results.txt")); err == nil {
		t.Error("results written for a trace without queue events")
	}
}

func TestMetrics(t *testing.T) {
	promtest.LintMetrics(t)
}

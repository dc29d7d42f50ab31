package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/m-lab/go/rtx"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRender(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		panels []Panel
	}{
		{
			name: "single",
			panels: []Panel{{
				Title:  "Congestion Window Evolution",
				XLabel: "Time (seconds)",
				YLabel: "Congestion Window Size (packets)",
				Series: []Series{{Name: "CWND", X: []float64{0, 1, 2}, Y: []float64{10, 12, 14}, Color: Blue}},
			}},
		},
		{
			name: "stacked",
			panels: []Panel{
				{Title: "Queue Length Over Time", Series: []Series{{Name: "Queue Length", X: []float64{1, 1.5, 2}, Y: []float64{1, 0, 1}}}},
				{Title: "Queue Delay Over Time", Series: []Series{{Name: "Queue Delay", X: []float64{1.5}, Y: []float64{0.5}, Color: Red}}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".png")
			rtx.Must(Render(path, 4*vg.Inch, 3*vg.Inch, tt.panels...), "Render failed")
			b, err := os.ReadFile(path)
			rtx.Must(err, "could not read %s", path)
			if !bytes.HasPrefix(b, pngMagic) {
				t.Errorf("%s is not a PNG file", path)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	if err := Render(filepath.Join(dir, "none.png"), DefaultWidth, DefaultPanelHeight); !errors.Is(err, ErrNoPanels) {
		t.Errorf("Render() without panels = %v, want ErrNoPanels", err)
	}
	bad := Panel{Series: []Series{{Name: "bad", X: []float64{1, 2}, Y: []float64{1}}}}
	if err := Render(filepath.Join(dir, "bad.png"), DefaultWidth, DefaultPanelHeight, bad); err == nil {
		t.Error("Render() with mismatched series should fail")
	}
	ok := Panel{Series: []Series{{Name: "ok", X: []float64{1}, Y: []float64{1}}}}
	if err := Render(filepath.Join(dir, "missing", "dir", "x.png"), DefaultWidth, DefaultPanelHeight, ok); err == nil {
		t.Error("Render() into a missing directory should fail")
	}
}

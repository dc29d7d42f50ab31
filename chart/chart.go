// Package chart renders time series as line charts with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNoPanels is returned when Render is called without anything to draw.
var ErrNoPanels = errors.New("no panels to render")

// Series is a named line.
type Series struct {
	Name  string
	X, Y  []float64
	Color color.Color
}

// Panel is one chart with its own axes.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

// Common line colors.
var (
	Blue = color.RGBA{B: 255, A: 255}
	Red  = color.RGBA{R: 255, A: 255}
)

// Default image size of a single panel.
const (
	DefaultWidth       = 10 * vg.Inch
	DefaultPanelHeight = 6 * vg.Inch
)

func xys(s Series) (plotter.XYs, error) {
	if len(s.X) != len(s.Y) {
		return nil, fmt.Errorf("series %q has %d x and %d y values", s.Name, len(s.X), len(s.Y))
	}
	pts := make(plotter.XYs, len(s.X))
	for i := range s.X {
		pts[i].X = s.X[i]
		pts[i].Y = s.Y[i]
	}
	return pts, nil
}

// newPlot builds a plot with a grid and a legend entry per series.
func newPlot(p Panel) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = p.XLabel
	pl.Y.Label.Text = p.YLabel
	pl.Add(plotter.NewGrid())
	for _, s := range p.Series {
		pts, err := xys(s)
		if err != nil {
			return nil, err
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(2)
		if s.Color != nil {
			line.LineStyle.Color = s.Color
		}
		pl.Add(line)
		pl.Legend.Add(s.Name, line)
	}
	pl.Legend.Top = true
	return pl, nil
}

// Render draws panels stacked top to bottom and saves them as a PNG image
// at path.
func Render(path string, width, panelHeight vg.Length, panels ...Panel) error {
	if len(panels) == 0 {
		return ErrNoPanels
	}
	plots := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		pl, err := newPlot(p)
		if err != nil {
			return err
		}
		plots[i] = []*plot.Plot{pl}
	}

	img := vgimg.New(width, panelHeight*vg.Length(len(panels)))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(panels),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

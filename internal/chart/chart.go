// Package chart draws the stress-strain scatter with its fitted line and keeps the
// rendered chart of the latest run.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/chrissnell/youngslab/internal/constants"
	"github.com/chrissnell/youngslab/pkg/elasticity"
)

var (
	// ErrReleased is returned when a chart is used after its canvas replaced it
	ErrReleased = errors.New("chart has been released")
	// ErrNoChart is returned by a canvas that holds nothing
	ErrNoChart = errors.New("no chart has been rendered")
)

var (
	pointColor = color.RGBA{R: 66, G: 133, B: 244, A: 230}
	lineColor  = color.RGBA{R: 219, G: 68, B: 55, A: 255}
)

// Renderer draws charts at a fixed pixel size
type Renderer struct {
	WidthPx  int
	HeightPx int
}

// NewRenderer returns a renderer, falling back to the default size for non-positive dimensions
func NewRenderer(widthPx, heightPx int) Renderer {
	if widthPx <= 0 {
		widthPx = constants.DefaultChartWidthPx
	}
	if heightPx <= 0 {
		heightPx = constants.DefaultChartHeightPx
	}
	return Renderer{WidthPx: widthPx, HeightPx: heightPx}
}

// Chart is one rendered plot. It holds its PNG snapshot until released.
type Chart struct {
	Legend string
	png    []byte
}

// Snapshot returns the PNG image of the chart
func (c *Chart) Snapshot() ([]byte, error) {
	if c == nil || c.png == nil {
		return nil, ErrReleased
	}
	return c.png, nil
}

// Release drops the image data. The chart cannot be used afterwards.
func (c *Chart) Release() {
	c.png = nil
}

// Render draws the experimental points and the fitted line over
// [0.9·min ε, 1.1·max ε] and captures a PNG snapshot.
func (r Renderer) Render(res *elasticity.Result) (*Chart, error) {
	p := plot.New()
	p.Title.Text = "Stress-strain (σ-ε) relationship"
	p.X.Label.Text = "Strain (ε)"
	p.Y.Label.Text = "Stress (σ) (Pa)"
	p.X.Tick.Marker = exponentTicks{}
	p.Y.Tick.Marker = exponentTicks{}
	p.Add(plotter.NewGrid())

	points := make(plotter.XYs, len(res.Points))
	for i, pt := range res.Points {
		points[i].X = pt.Strain
		points[i].Y = pt.Stress
	}
	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, fmt.Errorf("error plotting data points: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Color = pointColor

	lo, hi := elasticity.Span(res.Points)
	fitLine := plotter.XYs{
		{X: lo, Y: res.Fit.At(lo)},
		{X: hi, Y: res.Fit.At(hi)},
	}
	line, err := plotter.NewLine(fitLine)
	if err != nil {
		return nil, fmt.Errorf("error plotting fit line: %w", err)
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = lineColor
	line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	p.Add(scatter, line)

	legend := fmt.Sprintf("Linear fit (Y=%s Pa)", strconv.FormatFloat(res.Fit.Slope, 'e', 3, 64))
	p.Legend.Add("Experimental data points", scatter)
	p.Legend.Add(legend, line)
	p.Legend.Top = true
	p.Legend.Left = true

	wt, err := p.WriterTo(pixels(r.WidthPx), pixels(r.HeightPx), "png")
	if err != nil {
		return nil, fmt.Errorf("error creating chart canvas: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("error encoding chart snapshot: %w", err)
	}

	return &Chart{Legend: legend, png: buf.Bytes()}, nil
}

// pixels converts a pixel count to a length at the 96 dpi the PNG canvas uses
func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / 96
}

// exponentTicks labels the default ticks in exponent notation with two decimals
type exponentTicks struct{}

func (exponentTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = strconv.FormatFloat(ticks[i].Value, 'e', 2, 64)
		}
	}
	return ticks
}

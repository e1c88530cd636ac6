// Package chart renders season statistics as PNG charts with gonum/plot.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Chart is a rendered image plus the metadata templates need.
type Chart struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	PNG   []byte `json:"-"`
}

type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer sizes charts in inches.
func NewRenderer(widthIn, heightIn float64) *Renderer {
	if widthIn <= 0 {
		widthIn = 10
	}
	if heightIn <= 0 {
		heightIn = 6
	}
	return &Renderer{Width: vg.Length(widthIn) * vg.Inch, Height: vg.Length(heightIn) * vg.Inch}
}

// Series is one named set of values aligned with a chart's labels.
type Series struct {
	Name   string
	Values []float64
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	return p
}

func (r *Renderer) encode(name, title string, p *plot.Plot) (Chart, error) {
	wt, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return Chart{}, fmt.Errorf("chart %s: %w", name, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return Chart{}, fmt.Errorf("chart %s: %w", name, err)
	}
	return Chart{Name: name, Title: title, PNG: buf.Bytes()}, nil
}

// Bars draws one horizontal bar per label, first label at the bottom.
func (r *Renderer) Bars(name, title, valueLabel string, labels []string, values []float64) (Chart, error) {
	if len(labels) == 0 {
		return Chart{}, fmt.Errorf("chart %s: no data", name)
	}
	p := newPlot(title)
	p.X.Label.Text = valueLabel

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(14))
	if err != nil {
		return Chart{}, fmt.Errorf("chart %s: %w", name, err)
	}
	bars.Horizontal = true
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(labels...)
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(values))
	text := make([]string, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: v, Y: float64(i)}
		text[i] = formatValue(v)
	}
	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err == nil {
		lbl.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(-4)}
		p.Add(lbl)
	}
	return r.encode(name, title, p)
}

// GroupedBars draws vertical bars per label, one bar per series.
func (r *Renderer) GroupedBars(name, title, valueLabel string, labels []string, series []Series) (Chart, error) {
	if len(labels) == 0 || len(series) == 0 {
		return Chart{}, fmt.Errorf("chart %s: no data", name)
	}
	p := newPlot(title)
	p.Y.Label.Text = valueLabel
	w := vg.Points(40 / float64(len(series)))
	for i, s := range series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), w)
		if err != nil {
			return Chart{}, fmt.Errorf("chart %s: %w", name, err)
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = vg.Length(float64(i)-float64(len(series)-1)/2) * w
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
	}
	p.Legend.Top = true
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.Add(plotter.NewGrid())
	return r.encode(name, title, p)
}

// LineSeries is one line of (x, y) points.
type LineSeries struct {
	Name string
	XYs  plotter.XYs
}

// Lines draws one line per series. With invertY the smallest value is at the
// top, which suits league positions.
func (r *Renderer) Lines(name, title, xLabel, yLabel string, series []LineSeries, invertY bool) (Chart, error) {
	if len(series) == 0 {
		return Chart{}, fmt.Errorf("chart %s: no data", name)
	}
	p := newPlot(title)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	for i, s := range series {
		line, points, err := plotter.NewLinePoints(s.XYs)
		if err != nil {
			return Chart{}, fmt.Errorf("chart %s: %w", name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		line.Dashes = plotutil.Dashes(i / len(plotutil.DefaultColors))
		points.GlyphStyle.Color = plotutil.Color(i)
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(s.Name, line, points)
	}
	if invertY {
		p.Y.Scale = plot.InvertedScale{Normalizer: p.Y.Scale}
	}
	p.Legend.Left = true
	p.Add(plotter.NewGrid())
	return r.encode(name, title, p)
}

type matrixGrid struct {
	z [][]float64
}

func (g matrixGrid) Dims() (c, r int)   { return len(g.z[0]), len(g.z) }
func (g matrixGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

// Heatmap draws a square matrix with labels on both axes. matrix[row][col].
func (r *Renderer) Heatmap(name, title string, labels []string, matrix [][]float64) (Chart, error) {
	if len(labels) == 0 || len(matrix) != len(labels) {
		return Chart{}, fmt.Errorf("chart %s: no data", name)
	}
	p := newPlot(title)
	hm := plotter.NewHeatMap(matrixGrid{z: matrix}, palette.Heat(16, 1))
	if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)
	p.NominalX(labels...)
	p.NominalY(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight

	xys := make(plotter.XYs, 0, len(labels)*len(labels))
	text := make([]string, 0, len(labels)*len(labels))
	for row := range matrix {
		for col, v := range matrix[row] {
			xys = append(xys, plotter.XY{X: float64(col), Y: float64(row)})
			text = append(text, formatValue(v))
		}
	}
	if lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text}); err == nil {
		p.Add(lbl)
	}
	return r.encode(name, title, p)
}

// Edge joins two nodes with a weight in [0, 1].
type Edge struct {
	From, To int
	Weight   float64
}

// Network places nodes on a circle and draws weighted edges between them.
func (r *Renderer) Network(name, title string, nodes []string, edges []Edge) (Chart, error) {
	if len(nodes) == 0 {
		return Chart{}, fmt.Errorf("chart %s: no data", name)
	}
	p := newPlot(title)
	p.HideAxes()

	pos := make(plotter.XYs, len(nodes))
	for i := range nodes {
		angle := 2 * math.Pi * float64(i) / float64(len(nodes))
		pos[i] = plotter.XY{X: math.Cos(angle), Y: math.Sin(angle)}
	}
	for _, e := range edges {
		if e.Weight <= 0 || e.From >= len(pos) || e.To >= len(pos) {
			continue
		}
		l, err := plotter.NewLine(plotter.XYs{pos[e.From], pos[e.To]})
		if err != nil {
			return Chart{}, fmt.Errorf("chart %s: %w", name, err)
		}
		l.Width = vg.Points(1 + 6*e.Weight)
		shade := uint8(200 - 150*math.Min(e.Weight, 1))
		l.Color = color.Gray{Y: shade}
		p.Add(l)
	}
	sc, err := plotter.NewScatter(pos)
	if err != nil {
		return Chart{}, fmt.Errorf("chart %s: %w", name, err)
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(10)
	sc.GlyphStyle.Color = plotutil.Color(1)
	p.Add(sc)
	if lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: pos, Labels: nodes}); err == nil {
		lbl.Offset = vg.Point{X: vg.Points(12), Y: vg.Points(4)}
		p.Add(lbl)
	}
	p.X.Min, p.X.Max = -1.4, 1.6
	p.Y.Min, p.Y.Max = -1.3, 1.3
	return r.encode(name, title, p)
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.2f", v)
}

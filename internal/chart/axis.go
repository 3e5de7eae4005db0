package chart

import (
	"math"
	"strconv"
)

// Options controls the bar and line charts. The padding fields inset the
// plot rectangle from the edges of the drawing surface.
type Options struct {
	Width         float64
	Height        float64
	PaddingLeft   float64
	PaddingTop    float64
	PaddingRight  float64
	PaddingBottom float64
	BarGap        float64
	Stacked       bool
	ShowValues    bool
	Labels        []string
}

func DefaultBarOptions() Options {
	return Options{
		Width:         600,
		Height:        240,
		PaddingLeft:   40,
		PaddingTop:    20,
		PaddingRight:  10,
		PaddingBottom: 30,
		BarGap:        2,
		ShowValues:    true,
	}
}

func DefaultLineOptions() Options {
	return Options{
		Width:         600,
		Height:        200,
		PaddingLeft:   40,
		PaddingTop:    20,
		PaddingRight:  20,
		PaddingBottom: 30,
	}
}

// plot returns the plot rectangle.
func (o Options) plot() (x, y, w, h float64) {
	return o.PaddingLeft, o.PaddingTop,
		o.Width - o.PaddingLeft - o.PaddingRight,
		o.Height - o.PaddingTop - o.PaddingBottom
}

// baseline is the y coordinate of the value 0.
func (o Options) baseline() float64 {
	_, y, _, h := o.plot()
	return y + h
}

// Tick is one horizontal grid line. Frac is its height as a fraction of
// the plot height.
type Tick struct {
	Value int
	Frac  float64
}

// Ticks returns a tick at every whole step of min(5, maxVal) steps from
// 0 toward maxVal, labelled round(i/steps*maxVal). A fractional step
// count stops short of the top, and maxVal below 1 still yields two ticks.
func Ticks(maxVal float64) []Tick {
	steps := math.Min(5, maxVal)
	if steps < 1 {
		steps = 1
	}
	ticks := make([]Tick, 0, int(steps)+1)
	for i := 0; float64(i) <= steps; i++ {
		frac := float64(i) / steps
		ticks = append(ticks, Tick{Value: int(math.Round(frac * maxVal)), Frac: frac})
	}
	return ticks
}

// scaleMax substitutes 1 for a zero maximum so heights stay finite.
func scaleMax(v float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1
	}
	return v
}

// drawGrid draws a light rule and a right-aligned label at every tick.
func drawGrid(s Surface, o Options, maxVal float64) {
	_, py, _, ph := o.plot()
	for _, t := range Ticks(maxVal) {
		y := py + ph - t.Frac*ph
		s.BeginPath()
		s.MoveTo(o.PaddingLeft, y)
		s.LineTo(o.Width-o.PaddingRight, y)
		s.Stroke(gridColor, 1)
		s.Text(strconv.Itoa(t.Value), o.PaddingLeft-8, y+4, TextStyle{Color: labelColor, Size: 11, Align: AlignRight})
	}
}

func drawNoData(s Surface, x, y float64) {
	s.Text(NoDataLabel, x, y, TextStyle{Color: labelColor, Size: 14, Align: AlignCenter, Baseline: BaselineMiddle})
}

func drawXLabel(s Surface, o Options, label string, x float64) {
	if label == "" {
		return
	}
	s.Text(label, x, o.Height-8, TextStyle{Color: labelColor, Size: 10, Align: AlignCenter})
}

// RoundedRect adds a rectangle with per-corner radii (top-left, top-right,
// bottom-right, bottom-left) to the current path. Empty rectangles add
// nothing.
func RoundedRect(s Surface, x, y, w, h float64, r [4]float64) {
	if w <= 0 || h <= 0 {
		return
	}
	limit := math.Min(w, h) / 2
	for i := range r {
		r[i] = math.Min(r[i], limit)
	}
	tl, tr, br, bl := r[0], r[1], r[2], r[3]
	s.MoveTo(x+tl, y)
	s.LineTo(x+w-tr, y)
	s.QuadTo(x+w, y, x+w, y+tr)
	s.LineTo(x+w, y+h-br)
	s.QuadTo(x+w, y+h, x+w-br, y+h)
	s.LineTo(x+bl, y+h)
	s.QuadTo(x, y+h, x, y+h-bl)
	s.LineTo(x, y+tl)
	s.QuadTo(x, y, x+tl, y)
	s.ClosePath()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

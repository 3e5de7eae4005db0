package chart

import "math"

// Segment is one coloured part of a stacked bar or a donut.
type Segment struct {
	Label string
	Value float64
	Color string
}

// Bar is a single bar. With Options.Stacked and non-empty Segments the
// segments are drawn on top of each other and Value is ignored.
type Bar struct {
	Label    string
	Value    float64
	Color    string
	Segments []Segment
}

func (b Bar) stacked(o Options) bool {
	return o.Stacked && len(b.Segments) > 0
}

func (b Bar) total(o Options) float64 {
	if !b.stacked(o) {
		return finite(b.Value)
	}
	var sum float64
	for _, s := range b.Segments {
		sum += finite(s.Value)
	}
	return sum
}

// RenderBar draws a grouped or stacked bar chart with a value grid.
func RenderBar(s Surface, bars []Bar, o Options) {
	s.Resize(o.Width, o.Height)
	px, py, pw, ph := o.plot()
	if len(bars) == 0 {
		drawNoData(s, px+pw/2, py+ph/2)
		return
	}

	var maxVal float64
	for _, b := range bars {
		maxVal = math.Max(maxVal, b.total(o))
	}
	maxVal = scaleMax(maxVal)
	drawGrid(s, o, maxVal)

	base := o.baseline()
	bw := math.Max(4, pw/float64(len(bars))-o.BarGap)
	for i, b := range bars {
		x := px + float64(i)*(bw+o.BarGap) + o.BarGap/2

		if b.stacked(o) {
			y := base
			top := lastPositive(b.Segments)
			for j, seg := range b.Segments {
				h := finite(seg.Value) / maxVal * ph
				if h <= 0 {
					continue
				}
				y -= h
				var r [4]float64
				if j == top {
					r = [4]float64{2, 2, 0, 0}
				}
				s.BeginPath()
				RoundedRect(s, x, y, bw, h, r)
				s.Fill(colorOr(seg.Color, DefaultColor))
			}
		} else {
			v := finite(b.Value)
			h := math.Max(1, v/maxVal*ph)
			y := base - h
			s.BeginPath()
			RoundedRect(s, x, y, bw, h, [4]float64{2, 2, 0, 0})
			s.Fill(colorOr(b.Color, DefaultColor))
			if o.ShowValues && v > 0 && h > 15 {
				s.Text(formatValue(v), x+bw/2, y+12, TextStyle{Color: white, Size: 10, Align: AlignCenter})
			}
		}

		label := b.Label
		if label == "" && i < len(o.Labels) {
			label = o.Labels[i]
		}
		drawXLabel(s, o, label, x+bw/2)
	}
}

func lastPositive(segs []Segment) int {
	for i := len(segs) - 1; i >= 0; i-- {
		if finite(segs[i].Value) > 0 {
			return i
		}
	}
	return -1
}

func colorOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}

// finite maps NaN and infinities to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

package chart

import "math"

// Series is one line of a line chart. Fill shades the area between the
// line and the baseline with FillColor, or a translucent Color.
type Series struct {
	Label     string
	Data      []float64
	Color     string
	Fill      bool
	FillColor string
}

// RenderLine draws each series as a polyline with point markers. The
// number of points comes from o.Labels, or the first series when there
// are no labels.
func RenderLine(s Surface, series []Series, o Options) {
	s.Resize(o.Width, o.Height)
	px, py, pw, ph := o.plot()

	n := len(o.Labels)
	if n == 0 && len(series) > 0 {
		n = len(series[0].Data)
	}
	if n == 0 {
		drawNoData(s, px+pw/2, py+ph/2)
		return
	}

	var maxVal float64
	for _, sr := range series {
		for _, v := range sr.Data {
			maxVal = math.Max(maxVal, finite(v))
		}
	}
	maxVal = scaleMax(maxVal)
	drawGrid(s, o, maxVal)

	step := pw
	if n > 1 {
		step = pw / float64(n-1)
	}
	base := o.baseline()
	for i, l := range o.Labels {
		drawXLabel(s, o, l, px+float64(i)*step)
	}

	for _, sr := range series {
		m := min(len(sr.Data), n)
		if m == 0 {
			continue
		}
		color := colorOr(sr.Color, DefaultColor)
		pts := make([][2]float64, m)
		for i := 0; i < m; i++ {
			pts[i] = [2]float64{px + float64(i)*step, base - finite(sr.Data[i])/maxVal*ph}
		}

		if sr.Fill {
			fill := sr.FillColor
			if fill == "" {
				fill = Translucent(color, DefaultFillAlpha)
			}
			s.BeginPath()
			s.MoveTo(pts[0][0], base)
			for _, p := range pts {
				s.LineTo(p[0], p[1])
			}
			s.LineTo(pts[m-1][0], base)
			s.ClosePath()
			s.Fill(fill)
		}

		s.BeginPath()
		s.MoveTo(pts[0][0], pts[0][1])
		for _, p := range pts[1:] {
			s.LineTo(p[0], p[1])
		}
		s.Stroke(color, 2)

		for _, p := range pts {
			s.BeginPath()
			s.Arc(p[0], p[1], 3, 0, 2*math.Pi)
			s.Fill(color)
			s.BeginPath()
			s.Arc(p[0], p[1], 1.5, 0, 2*math.Pi)
			s.Fill(white)
		}
	}
}

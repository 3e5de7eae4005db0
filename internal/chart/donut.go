package chart

import "math"

type DonutOptions struct {
	Size       float64
	LineWidth  float64
	CenterText string
}

func DefaultDonutOptions() DonutOptions {
	return DonutOptions{Size: 180, LineWidth: 28}
}

// RenderDonut draws segments clockwise from 12 o'clock as arcs of a ring,
// each sweeping value/total of the circle. Segments without a colour take
// Palette[i%len(Palette)]. Non-positive values are skipped.
func RenderDonut(s Surface, segs []Segment, o DonutOptions) {
	s.Resize(o.Size, o.Size)
	c := o.Size / 2
	r := math.Max(0, (o.Size-o.LineWidth)/2)

	var total float64
	for _, seg := range segs {
		if v := finite(seg.Value); v > 0 {
			total += v
		}
	}

	if total <= 0 {
		s.BeginPath()
		s.Arc(c, c, r, 0, 2*math.Pi)
		s.Stroke(gridColor, o.LineWidth)
		drawNoData(s, c, c)
		return
	}

	angle := -math.Pi / 2
	for i, seg := range segs {
		v := finite(seg.Value)
		if v <= 0 {
			continue
		}
		sweep := v / total * 2 * math.Pi
		s.BeginPath()
		s.Arc(c, c, r, angle, angle+sweep)
		s.Stroke(colorOr(seg.Color, Palette[i%len(Palette)]), o.LineWidth)
		angle += sweep
	}

	if o.CenterText != "" {
		s.Text(o.CenterText, c, c, TextStyle{Color: textColor, Size: 20, Bold: true, Align: AlignCenter, Baseline: BaselineMiddle})
	}
}

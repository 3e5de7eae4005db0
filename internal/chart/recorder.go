package chart

import "math"

type OpKind int

const (
	OpFill OpKind = iota
	OpStroke
	OpText
)

type Point struct{ X, Y float64 }

type Rect struct{ X, Y, W, H float64 }

// Op is one painted element. Fill and stroke ops carry the points of the
// path they painted (arcs are sampled) and its bounding box.
type Op struct {
	Kind   OpKind
	Color  string
	Width  float64
	Points []Point
	Bounds Rect
	Text   string
	X, Y   float64
	Style  TextStyle
}

// Recorder is a Surface that keeps every painted element in order.
type Recorder struct {
	Width, Height float64
	Ops           []Op

	path []Point
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Resize(w, h float64) {
	r.Width, r.Height = w, h
	r.Ops = nil
	r.path = nil
}

func (r *Recorder) BeginPath()          { r.path = r.path[:0] }
func (r *Recorder) MoveTo(x, y float64) { r.path = append(r.path, Point{x, y}) }
func (r *Recorder) LineTo(x, y float64) { r.path = append(r.path, Point{x, y}) }
func (r *Recorder) ClosePath()          {}

func (r *Recorder) QuadTo(cx, cy, x, y float64) {
	r.path = append(r.path, Point{cx, cy}, Point{x, y})
}

const arcSamples = 16

func (r *Recorder) Arc(cx, cy, radius, start, end float64) {
	for i := 0; i <= arcSamples; i++ {
		a := start + (end-start)*float64(i)/arcSamples
		r.path = append(r.path, Point{cx + radius*math.Cos(a), cy + radius*math.Sin(a)})
	}
}

func (r *Recorder) Fill(color string) {
	r.Ops = append(r.Ops, r.pathOp(OpFill, color, 0))
}

func (r *Recorder) Stroke(color string, width float64) {
	r.Ops = append(r.Ops, r.pathOp(OpStroke, color, width))
}

func (r *Recorder) Text(text string, x, y float64, style TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Color: style.Color, Text: text, X: x, Y: y, Style: style})
}

func (r *Recorder) pathOp(kind OpKind, color string, width float64) Op {
	pts := append([]Point(nil), r.path...)
	return Op{Kind: kind, Color: color, Width: width, Points: pts, Bounds: bounds(pts)}
}

func bounds(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Kind returns the recorded ops of one kind, in paint order.
func (r *Recorder) Kind(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the strings drawn, in paint order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Kind(OpText) {
		out = append(out, op.Text)
	}
	return out
}

// Finite reports whether every recorded coordinate is a finite number.
func (r *Recorder) Finite() bool {
	ok := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	for _, op := range r.Ops {
		if !ok(op.X) || !ok(op.Y) || !ok(op.Width) {
			return false
		}
		for _, p := range op.Points {
			if !ok(p.X) || !ok(p.Y) {
				return false
			}
		}
	}
	return true
}

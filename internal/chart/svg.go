package chart

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"
)

// SVG is a Surface that renders to a standalone SVG document.
type SVG struct {
	width, height float64
	body          strings.Builder
	path          strings.Builder
	hasPoint      bool
}

func NewSVG() *SVG { return &SVG{} }

func (s *SVG) Resize(w, h float64) {
	s.width, s.height = w, h
	s.body.Reset()
	s.BeginPath()
}

func (s *SVG) BeginPath() {
	s.path.Reset()
	s.hasPoint = false
}

func (s *SVG) MoveTo(x, y float64) {
	fmt.Fprintf(&s.path, "M%s %s ", num(x), num(y))
	s.hasPoint = true
}

func (s *SVG) LineTo(x, y float64) {
	if !s.hasPoint {
		s.MoveTo(x, y)
		return
	}
	fmt.Fprintf(&s.path, "L%s %s ", num(x), num(y))
}

func (s *SVG) QuadTo(cx, cy, x, y float64) {
	if !s.hasPoint {
		s.MoveTo(cx, cy)
	}
	fmt.Fprintf(&s.path, "Q%s %s %s %s ", num(cx), num(cy), num(x), num(y))
}

func (s *SVG) ClosePath() {
	if s.hasPoint {
		s.path.WriteString("Z ")
	}
}

// Arc adds a clockwise arc. A full turn is written as two half arcs since
// a single SVG arc cannot start and end on the same point.
func (s *SVG) Arc(cx, cy, r, start, end float64) {
	sweep := end - start
	x0, y0 := cx+r*math.Cos(start), cy+r*math.Sin(start)
	if s.hasPoint {
		s.LineTo(x0, y0)
	} else {
		s.MoveTo(x0, y0)
	}
	if sweep <= 0 || r <= 0 {
		return
	}
	if sweep >= 2*math.Pi-1e-9 {
		s.arcTo(cx, cy, r, start+math.Pi, false)
		s.arcTo(cx, cy, r, start+2*math.Pi, false)
		return
	}
	s.arcTo(cx, cy, r, end, sweep > math.Pi)
}

func (s *SVG) arcTo(cx, cy, r, angle float64, large bool) {
	flag := 0
	if large {
		flag = 1
	}
	fmt.Fprintf(&s.path, "A%s %s 0 %d 1 %s %s ", num(r), num(r), flag,
		num(cx+r*math.Cos(angle)), num(cy+r*math.Sin(angle)))
}

func (s *SVG) Fill(color string) {
	if s.path.Len() == 0 {
		return
	}
	fmt.Fprintf(&s.body, "<path d=\"%s\" fill=\"%s\"/>\n", strings.TrimSpace(s.path.String()), html.EscapeString(color))
}

func (s *SVG) Stroke(color string, width float64) {
	if s.path.Len() == 0 {
		return
	}
	fmt.Fprintf(&s.body, "<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%s\" stroke-linejoin=\"round\"/>\n",
		strings.TrimSpace(s.path.String()), html.EscapeString(color), num(width))
}

func (s *SVG) Text(text string, x, y float64, st TextStyle) {
	anchor := "start"
	switch st.Align {
	case AlignCenter:
		anchor = "middle"
	case AlignRight:
		anchor = "end"
	}
	attrs := fmt.Sprintf("x=\"%s\" y=\"%s\" fill=\"%s\" font-size=\"%s\" text-anchor=\"%s\"",
		num(x), num(y), html.EscapeString(st.Color), num(st.Size), anchor)
	if st.Bold {
		attrs += " font-weight=\"bold\""
	}
	if st.Baseline == BaselineMiddle {
		attrs += " dominant-baseline=\"middle\""
	}
	fmt.Fprintf(&s.body, "<text %s>%s</text>\n", attrs, html.EscapeString(text))
}

// String returns the complete document.
func (s *SVG) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%s\" height=\"%s\" viewBox=\"0 0 %s %s\" font-family=\"sans-serif\">\n",
		num(s.width), num(s.height), num(s.width), num(s.height))
	b.WriteString(s.body.String())
	b.WriteString("</svg>\n")
	return b.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func num(v float64) string {
	out := fmt.Sprintf("%.2f", v)
	out = strings.TrimRight(strings.TrimRight(out, "0"), ".")
	if out == "-0" || out == "" {
		return "0"
	}
	return out
}

// Package chart draws bar, donut and line charts as vector commands onto a
// Surface. Every Render function is a pure function of its arguments apart
// from the calls it makes on the surface it is given.
package chart

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type Baseline int

const (
	BaselineAlphabetic Baseline = iota
	BaselineMiddle
)

type TextStyle struct {
	Color    string
	Size     float64
	Bold     bool
	Align    Align
	Baseline Baseline
}

// Surface is a 2D drawing target with canvas-like path semantics: a path
// is started with BeginPath, built with MoveTo/LineTo/QuadTo/Arc, and
// painted with Fill or Stroke. Angles are radians, clockwise from 3 o'clock
// in screen coordinates (y grows downwards).
type Surface interface {
	Resize(width, height float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	Arc(cx, cy, r, start, end float64)
	ClosePath()
	Fill(color string)
	Stroke(color string, width float64)
	Text(text string, x, y float64, style TextStyle)
}

const (
	gridColor  = "#e2e8f0"
	labelColor = "#94a3b8"
	textColor  = "#0f172a"
	white      = "#ffffff"

	// DefaultColor is used for bars and series without a colour.
	DefaultColor = "#2563eb"

	// NoDataLabel is drawn in place of an empty chart.
	NoDataLabel = "No data"
)

// Palette colours donut segments that carry no colour of their own.
var Palette = []string{"#2563eb", "#ef4444", "#f59e0b", "#10b981", "#8b5cf6", "#ec4899", "#06b6d4"}

// Translucent appends an alpha byte to a #rrggbb colour. Other colour
// forms are returned unchanged.
func Translucent(color string, alpha uint8) string {
	if len(color) != 7 || color[0] != '#' {
		return color
	}
	const hex = "0123456789abcdef"
	return color + string([]byte{hex[alpha>>4], hex[alpha&0x0f]})
}

// DefaultFillAlpha is the alpha applied to area fills without an explicit
// fill colour.
const DefaultFillAlpha = 0x20

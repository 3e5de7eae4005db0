// Package heat scales per-day counts to discrete shading levels relative
// to the busiest day of the month.
package heat

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
)

// MaxLevel is the darkest level.
const MaxLevel = 5

// Cell is one day of a month with its count and level.
type Cell struct {
	Day   int
	Count int
	Level int
}

// Level maps count to 0..MaxLevel. Zero counts, and every count when max
// is zero, map to 0.
func Level(count, max int) int {
	if count <= 0 || max <= 0 {
		return 0
	}
	// ceil(count/max*MaxLevel) in integer arithmetic.
	l := (count*MaxLevel + max - 1) / max
	return min(MaxLevel, l)
}

// Max returns the largest value in counts.
func Max(counts map[int]int) int {
	return max(0, lo.Max(lo.Values(counts)))
}

// Cells returns one cell per day 1..days; days missing from counts are 0.
// Levels scale against Max(counts).
func Cells(counts map[int]int, days int) []Cell {
	top := Max(counts)
	cells := make([]Cell, days)
	for d := 1; d <= days; d++ {
		cells[d-1] = Cell{Day: d, Count: counts[d], Level: Level(counts[d], top)}
	}
	return cells
}

const (
	paletteLow  = "#f1f5f9"
	paletteHigh = "#b91c1c"
)

// Palette returns MaxLevel+1 hex colours from the empty shade to the
// hottest one, blended in Lab space so steps look even.
func Palette() []string {
	return Blend(paletteLow, paletteHigh)
}

// Blend interpolates MaxLevel+1 colours between two hex colours. Unparsable
// input falls back to the default palette ends.
func Blend(lowHex, highHex string) []string {
	low, err := colorful.Hex(lowHex)
	if err != nil {
		low, _ = colorful.Hex(paletteLow)
	}
	high, err := colorful.Hex(highHex)
	if err != nil {
		high, _ = colorful.Hex(paletteHigh)
	}
	out := make([]string, MaxLevel+1)
	for i := range out {
		out[i] = low.BlendLab(high, float64(i)/MaxLevel).Clamped().Hex()
	}
	return out
}

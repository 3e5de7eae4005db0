// Package calendar lays out a month as a Sunday-first 7-column grid of
// heat-shaded day cells.
package calendar

import (
	"math"
	"strconv"

	"github.com/sadopc/absentee/internal/chart"
	"github.com/sadopc/absentee/internal/dates"
	"github.com/sadopc/absentee/internal/heat"
)

// DangerThreshold is the daily count at which a cell is flagged.
const DangerThreshold = 5

type Cell struct {
	Day    int
	Date   string
	Count  int
	Level  int
	Today  bool
	Danger bool
}

// Grid is one laid-out month. Leading is the number of blank cells before
// day 1.
type Grid struct {
	Year    int
	Month0  int
	Headers []string
	Leading int
	Cells   []Cell
	Max     int

	onActivate func(date string)
}

// Build lays out the month. counts is keyed by day of month; today is an
// ISO date and may fall outside the month.
func Build(year, month0 int, counts map[int]int, today string) *Grid {
	days := dates.DaysInMonth(year, month0)
	g := &Grid{
		Year:    year,
		Month0:  month0,
		Headers: dates.WeekdayShorts(),
		Leading: dates.FirstWeekdayOfMonth(year, month0),
		Cells:   make([]Cell, 0, days),
	}
	for _, hc := range heat.Cells(counts, days) {
		date := dates.DateOf(year, month0, hc.Day)
		g.Cells = append(g.Cells, Cell{
			Day:    hc.Day,
			Date:   date,
			Count:  hc.Count,
			Level:  hc.Level,
			Today:  date == today,
			Danger: hc.Count >= DangerThreshold,
		})
		g.Max = max(g.Max, hc.Count)
	}
	return g
}

func (g *Grid) Title() string {
	return dates.MonthYear(g.Year, g.Month0)
}

// Weeks returns the grid row by row. Blank slots before day 1 and after
// the last day are nil.
func (g *Grid) Weeks() [][]*Cell {
	var weeks [][]*Cell
	row := make([]*Cell, 7)
	col := g.Leading
	for i := range g.Cells {
		row[col] = &g.Cells[i]
		col++
		if col == 7 {
			weeks = append(weeks, row)
			row = make([]*Cell, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, row)
	}
	return weeks
}

// Cell returns the cell for a date in this month.
func (g *Grid) Cell(date string) (*Cell, bool) {
	for i := range g.Cells {
		if g.Cells[i].Date == date {
			return &g.Cells[i], true
		}
	}
	return nil, false
}

// OnActivate registers the drill-down callback.
func (g *Grid) OnActivate(fn func(date string)) {
	g.onActivate = fn
}

// Activate reports date to the callback. Dates outside the month are
// ignored and return false.
func (g *Grid) Activate(date string) bool {
	if _, ok := g.Cell(date); !ok {
		return false
	}
	if g.onActivate != nil {
		g.onActivate(date)
	}
	return true
}

// Options sizes the drawn grid.
type Options struct {
	CellSize     float64
	Gap          float64
	HeaderHeight float64
	Palette      []string
}

func DefaultOptions() Options {
	return Options{CellSize: 40, Gap: 4, HeaderHeight: 20, Palette: heat.Palette()}
}

// Target is the clickable rectangle of one day.
type Target struct {
	Date string
	Rect chart.Rect
}

const (
	todayColor  = "#2563eb"
	dangerColor = "#ef4444"
	headerColor = "#94a3b8"
	darkText    = "#0f172a"
	lightText   = "#ffffff"
)

// Draw paints the grid onto s and returns one target per day.
func Draw(s chart.Surface, g *Grid, o Options) []Target {
	palette := o.Palette
	if len(palette) < heat.MaxLevel+1 {
		palette = heat.Palette()
	}
	step := o.CellSize + o.Gap
	rows := len(g.Weeks())
	s.Resize(7*step-o.Gap, o.HeaderHeight+float64(rows)*step-o.Gap)

	for i, h := range g.Headers {
		s.Text(h, float64(i)*step+o.CellSize/2, o.HeaderHeight/2, chart.TextStyle{
			Color: headerColor, Size: 11, Align: chart.AlignCenter, Baseline: chart.BaselineMiddle,
		})
	}

	targets := make([]Target, 0, len(g.Cells))
	for i, c := range g.Cells {
		slot := g.Leading + i
		x := float64(slot%7) * step
		y := o.HeaderHeight + float64(slot/7)*step

		s.BeginPath()
		chart.RoundedRect(s, x, y, o.CellSize, o.CellSize, [4]float64{4, 4, 4, 4})
		s.Fill(palette[c.Level])
		if c.Today {
			s.Stroke(todayColor, 2)
		}

		text := darkText
		if c.Level >= 3 {
			text = lightText
		}
		s.Text(strconv.Itoa(c.Day), x+4, y+12, chart.TextStyle{Color: text, Size: 10})
		if c.Count > 0 {
			s.Text(strconv.Itoa(c.Count), x+o.CellSize/2, y+o.CellSize/2+4, chart.TextStyle{
				Color: text, Size: 13, Bold: true, Align: chart.AlignCenter,
			})
		}
		if c.Danger {
			s.BeginPath()
			s.Arc(x+o.CellSize-6, y+6, 3, 0, 2*math.Pi)
			s.Fill(dangerColor)
		}

		targets = append(targets, Target{Date: c.Date, Rect: chart.Rect{X: x, Y: y, W: o.CellSize, H: o.CellSize}})
	}
	return targets
}

// Render builds, wires and draws a month in one call.
func Render(s chart.Surface, year, month0 int, counts map[int]int, today string, onActivate func(date string)) (*Grid, []Target) {
	g := Build(year, month0, counts, today)
	g.OnActivate(onActivate)
	return g, Draw(s, g, DefaultOptions())
}

// HitTest returns the date whose target contains (x, y).
func HitTest(targets []Target, x, y float64) (string, bool) {
	for _, t := range targets {
		r := t.Rect
		if x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H {
			return t.Date, true
		}
	}
	return "", false
}

package report

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/sadopc/absentee/internal/absence"
	"github.com/sadopc/absentee/internal/chart"
	"github.com/sadopc/absentee/internal/dates"
)

const (
	weekdayColor   = "#cbd5e1"
	trendFillAlpha = 0x15
)

// TypeSegments splits the month into planned and unplanned.
func (r *MonthlyReport) TypeSegments() []chart.Segment {
	return []chart.Segment{
		{Label: absence.TypeLabel(absence.Planned), Value: float64(r.Planned), Color: absence.ColorPlanned},
		{Label: absence.TypeLabel(absence.Unplanned), Value: float64(r.Unplanned), Color: absence.ColorUnplanned},
	}
}

func (r *MonthlyReport) ReasonSegments() []chart.Segment {
	segs := make([]chart.Segment, 0, len(r.Reasons))
	for _, b := range r.Reasons {
		segs = append(segs, chart.Segment{Label: b.Label, Value: float64(b.Count), Color: b.Color})
	}
	return segs
}

// DailyBars stacks planned under unplanned for each day. Only every fifth
// day and the last one are labelled.
func (r *MonthlyReport) DailyBars() []chart.Bar {
	bars := make([]chart.Bar, 0, len(r.Days))
	last := len(r.Days)
	for _, d := range r.Days {
		var label string
		if d.Day%5 == 1 || d.Day == last {
			label = strconv.Itoa(d.Day)
		}
		bars = append(bars, chart.Bar{
			Label: label,
			Segments: []chart.Segment{
				{Value: float64(d.Planned), Color: absence.ColorPlanned},
				{Value: float64(d.Unplanned), Color: absence.ColorUnplanned},
			},
		})
	}
	return bars
}

// DailyBarOptions are the options the daily chart is drawn with.
func DailyBarOptions() chart.Options {
	o := chart.DefaultBarOptions()
	o.Stacked = true
	o.ShowValues = false
	o.Height = 200
	return o
}

// WeekdayBars highlights the peak weekday.
func (r *MonthlyReport) WeekdayBars() []chart.Bar {
	bars := make([]chart.Bar, 7)
	for i, c := range r.ByWeekday {
		color := weekdayColor
		if i == r.PeakWeekday {
			color = absence.ColorPlanned
		}
		bars[i] = chart.Bar{Label: dates.WeekdayShort(i), Value: float64(c), Color: color}
	}
	return bars
}

func (r *MonthlyReport) PlantBars() []chart.Bar {
	bars := make([]chart.Bar, 0, len(r.Plants))
	for _, p := range r.Plants {
		bars = append(bars, chart.Bar{Label: p.Label, Value: float64(p.Count), Color: p.Color})
	}
	return bars
}

// TrendSeries returns the planned and unplanned lines with light fills.
func (r *MonthlyReport) TrendSeries() []chart.Series {
	return []chart.Series{
		{
			Label:     absence.TypeLabel(absence.Planned),
			Data:      floats(r.Trend.Planned),
			Color:     absence.ColorPlanned,
			Fill:      true,
			FillColor: chart.Translucent(absence.ColorPlanned, trendFillAlpha),
		},
		{
			Label:     absence.TypeLabel(absence.Unplanned),
			Data:      floats(r.Trend.Unplanned),
			Color:     absence.ColorUnplanned,
			Fill:      true,
			FillColor: chart.Translucent(absence.ColorUnplanned, trendFillAlpha),
		},
	}
}

// TrendOptions labels the trend chart with the month abbreviations.
func (r *MonthlyReport) TrendOptions() chart.Options {
	o := chart.DefaultLineOptions()
	o.Labels = r.Trend.Labels
	return o
}

func floats(in []int) []float64 {
	return lo.Map(in, func(v int, _ int) float64 { return float64(v) })
}

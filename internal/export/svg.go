package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sadopc/absentee/internal/calendar"
	"github.com/sadopc/absentee/internal/chart"
	"github.com/sadopc/absentee/internal/metrics"
	"github.com/sadopc/absentee/internal/report"
)

// ToSVG renders every chart of a monthly report into dir, one file per
// chart, and returns the paths written. today marks the calendar.
func ToSVG(rep *report.MonthlyReport, today, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	total := fmt.Sprint(rep.Total)
	donut := chart.DefaultDonutOptions()
	donut.CenterText = total

	renders := []struct {
		name string
		draw func(s chart.Surface)
	}{
		{"calendar", func(s chart.Surface) {
			calendar.Draw(s, calendar.Build(rep.Year, rep.Month0, rep.ByDay, today), calendar.DefaultOptions())
		}},
		{"daily", func(s chart.Surface) { chart.RenderBar(s, rep.DailyBars(), report.DailyBarOptions()) }},
		{"type", func(s chart.Surface) { chart.RenderDonut(s, rep.TypeSegments(), donut) }},
		{"reasons", func(s chart.Surface) { chart.RenderDonut(s, rep.ReasonSegments(), donut) }},
		{"weekday", func(s chart.Surface) { chart.RenderBar(s, rep.WeekdayBars(), chart.DefaultBarOptions()) }},
		{"plants", func(s chart.Surface) { chart.RenderBar(s, rep.PlantBars(), chart.DefaultBarOptions()) }},
		{"trend", func(s chart.Surface) { chart.RenderLine(s, rep.TrendSeries(), rep.TrendOptions()) }},
	}

	paths := make([]string, 0, len(renders))
	for _, r := range renders {
		s := chart.NewSVG()
		r.draw(s)
		path := filepath.Join(dir, r.name+".svg")
		if err := os.WriteFile(path, []byte(s.String()), 0o644); err != nil {
			return paths, fmt.Errorf("write %s chart: %w", r.name, err)
		}
		metrics.ChartRendersTotal.WithLabelValues(r.name).Inc()
		paths = append(paths, path)
	}
	done("svg", dir, rep.Total)
	return paths, nil
}

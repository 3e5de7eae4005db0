package tui

import (
	"fmt"
	"strconv"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/sadopc/absentee/internal/absence"
	"github.com/sadopc/absentee/internal/calendar"
	"github.com/sadopc/absentee/internal/chart"
	"github.com/sadopc/absentee/internal/dates"
	"github.com/sadopc/absentee/internal/heat"
	"github.com/sadopc/absentee/internal/report"
)

const calendarCellWidth = 6

type monthlyModel struct {
	agg    *report.Aggregator
	width  int
	height int

	year    int
	month0  int
	today   string
	plantID string
	rep     *report.MonthlyReport
	grid    *calendar.Grid
	cursor  int // day of month under the calendar cursor
	err     error

	// selected is written by the calendar's activate callback and
	// survives value copies of the model.
	selected *string

	dailyChart   barchart.Model
	weekdayChart barchart.Model
	trendChart   barchart.Model
}

func newMonthlyModel(agg *report.Aggregator, today string) monthlyModel {
	year, month0, day, _ := dates.Split(today)
	sel := ""
	return monthlyModel{
		agg:          agg,
		year:         year,
		month0:       month0,
		today:        today,
		plantID:      absence.AllPlants,
		cursor:       max(day, 1),
		selected:     &sel,
		dailyChart:   barchart.New(60, 10),
		weekdayChart: barchart.New(30, 8),
		trendChart:   barchart.New(30, 8),
	}
}

func (m *monthlyModel) setSize(w, h int) {
	m.width = w
	m.height = h
	if m.rep != nil {
		m.buildCharts()
	}
}

type monthlyDataMsg struct {
	year   int
	month0 int
	rep    *report.MonthlyReport
	err    error
}

func (m monthlyModel) refresh() tea.Cmd {
	year, month0, plantID := m.year, m.month0, m.plantID
	return func() tea.Msg {
		rep, err := m.agg.Monthly(year, month0, plantID)
		return monthlyDataMsg{year: year, month0: month0, rep: rep, err: err}
	}
}

func (m monthlyModel) update(msg tea.Msg) (monthlyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case monthlyDataMsg:
		if msg.year != m.year || msg.month0 != m.month0 {
			return m, nil
		}
		m.rep, m.err = msg.rep, msg.err
		if m.rep == nil {
			return m, nil
		}
		m.grid = calendar.Build(m.rep.Year, m.rep.Month0, m.rep.ByDay, m.today)
		sel := m.selected
		m.grid.OnActivate(func(date string) { *sel = date })
		m.cursor = min(max(m.cursor, 1), len(m.grid.Cells))
		m.buildCharts()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Prev):
			return m.shift(-1)
		case key.Matches(msg, keys.Next):
			return m.shift(1)
		case key.Matches(msg, keys.Today):
			year, month0, day, _ := dates.Split(m.today)
			m.year, m.month0, m.cursor = year, month0, day
			*m.selected = ""
			return m, m.refresh()
		case key.Matches(msg, keys.Left):
			m.moveCursor(-1)
		case key.Matches(msg, keys.Right):
			m.moveCursor(1)
		case key.Matches(msg, keys.Up):
			m.moveCursor(-7)
		case key.Matches(msg, keys.Down):
			m.moveCursor(7)
		case key.Matches(msg, keys.Enter):
			if m.grid != nil {
				m.grid.Activate(dates.DateOf(m.year, m.month0, m.cursor))
			}
		case key.Matches(msg, keys.Back):
			*m.selected = ""
		}
	}
	return m, nil
}

func (m monthlyModel) shift(delta int) (monthlyModel, tea.Cmd) {
	m.year, m.month0 = dates.AddMonths(m.year, m.month0, delta)
	m.cursor = 1
	*m.selected = ""
	return m, m.refresh()
}

func (m *monthlyModel) moveCursor(delta int) {
	days := dates.DaysInMonth(m.year, m.month0)
	if next := m.cursor + delta; next >= 1 && next <= days {
		m.cursor = next
	}
}

// buildCharts feeds the report's chart data into the terminal charts.
// Charts without data are left empty and shown as a placeholder.
func (m *monthlyModel) buildCharts() {
	w := max(20, m.width-8)
	h := 10
	if m.height > 50 {
		h = 14
	}
	half := max(20, w/2-2)

	m.dailyChart = barchart.New(w, h)
	m.weekdayChart = barchart.New(half, 8)
	m.trendChart = barchart.New(half, 8)

	if m.rep.Total > 0 {
		m.dailyChart.PushAll(barData(m.rep.DailyBars()))
		m.dailyChart.Draw()
		m.weekdayChart.PushAll(barData(m.rep.WeekdayBars()))
		m.weekdayChart.Draw()
	}
	if trendTotal(m.rep.Trend) > 0 {
		m.trendChart.PushAll(trendData(m.rep.Trend))
		m.trendChart.Draw()
	}
}

func trendTotal(t report.Trend) int {
	return lo.Sum(t.Planned) + lo.Sum(t.Unplanned)
}

func chartView(c barchart.Model, empty bool) string {
	if empty {
		return mutedStyle.Render(chart.NoDataLabel)
	}
	return c.View()
}

// barData converts chart bars to ntcharts bars. Stacked bars keep one
// value per segment.
func barData(bars []chart.Bar) []barchart.BarData {
	out := make([]barchart.BarData, 0, len(bars))
	for _, b := range bars {
		var values []barchart.BarValue
		if len(b.Segments) > 0 {
			for _, s := range b.Segments {
				values = append(values, barValue(s.Label, s.Value, s.Color))
			}
		} else {
			values = append(values, barValue(b.Label, b.Value, b.Color))
		}
		out = append(out, barchart.BarData{Label: b.Label, Values: values})
	}
	return out
}

func trendData(t report.Trend) []barchart.BarData {
	out := make([]barchart.BarData, 0, len(t.Labels))
	for i, label := range t.Labels {
		out = append(out, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				barValue(absence.TypeLabel(absence.Planned), float64(t.Planned[i]), absence.ColorPlanned),
				barValue(absence.TypeLabel(absence.Unplanned), float64(t.Unplanned[i]), absence.ColorUnplanned),
			},
		})
	}
	return out
}

func barValue(name string, v float64, color string) barchart.BarValue {
	if color == "" {
		color = chart.DefaultColor
	}
	return barchart.BarValue{
		Name:  name,
		Value: v,
		Style: lipgloss.NewStyle().Foreground(lipgloss.Color(color)),
	}
}

func (m monthlyModel) view() string {
	w := m.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Monthly Report"), "  ",
		mutedStyle.Render(dates.MonthYear(m.year, m.month0)),
	)

	if m.err != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", errorStyle.Render(m.err.Error())),
		)
	}
	if m.rep == nil || m.grid == nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", mutedStyle.Render("  Loading...")),
		)
	}

	side := m.renderDetail()
	if *m.selected == "" {
		side = lipgloss.JoinVertical(lipgloss.Left, m.renderTypeSplit(), "", m.renderReasons())
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, m.renderCalendar(), "    ", side)

	legend := plannedStyle.Render("● Planned") + "  " + unplannedStyle.Render("● Unplanned")
	daily := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Absences per day")+"  "+legend, chartView(m.dailyChart, m.rep.Total == 0),
	)

	weekday := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("By weekday"), chartView(m.weekdayChart, m.rep.Total == 0))
	trend := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Six month trend"), chartView(m.trendChart, trendTotal(m.rep.Trend) == 0))
	charts := lipgloss.JoinHorizontal(lipgloss.Top, weekday, "    ", trend)

	lists := lipgloss.JoinHorizontal(lipgloss.Top, m.renderPlants(), "    ", m.renderEmployees())

	nav := mutedStyle.Render("  [/]: month  t: today  arrows: day  enter: details  esc: close")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.renderStats(), "", top, "", daily, "", charts, "", lists, "", nav,
		),
	)
}

func (m monthlyModel) renderStats() string {
	r := m.rep
	return lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total", fmt.Sprint(r.Total), r.Delta.String()),
		statCard("Planned", plannedStyle.Render(fmt.Sprint(r.Planned)), fmt.Sprintf("%d%%", r.PlannedPct)),
		statCard("Unplanned", unplannedStyle.Render(fmt.Sprint(r.Unplanned)), fmt.Sprintf("%d%%", r.UnplannedPct())),
		statCard("Avg / working day", r.AvgPerWorkingDay, fmt.Sprintf("%d working days", r.WorkingDays)),
		statCard("Peak day", r.Peak.Label(r.Month0), ""),
		statCard("Top reason", r.TopReasonLabel(), countSub(r.TopReasonCount)),
		statCard("Hours lost", formatHours(r.HoursLost), ""),
	)
}

func countSub(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d absences", n)
}

func (m monthlyModel) renderCalendar() string {
	palette := heat.Palette()

	var head []string
	for _, h := range m.grid.Headers {
		head = append(head, mutedStyle.Width(calendarCellWidth).Align(lipgloss.Center).Render(h))
	}
	rows := []string{
		titleStyle.Render(m.grid.Title()),
		lipgloss.JoinHorizontal(lipgloss.Top, head...),
	}

	blank := lipgloss.NewStyle().Width(calendarCellWidth).Height(2).Render("")
	for _, week := range m.grid.Weeks() {
		var cells []string
		for _, c := range week {
			if c == nil {
				cells = append(cells, blank)
				continue
			}
			cells = append(cells, m.renderCell(c, palette))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m monthlyModel) renderCell(c *calendar.Cell, palette []string) string {
	fg := lipgloss.Color("#0F172A")
	if c.Level >= 3 {
		fg = lipgloss.Color("#FFFFFF")
	}
	style := lipgloss.NewStyle().
		Width(calendarCellWidth).
		Height(2).
		Align(lipgloss.Center).
		Foreground(fg).
		Background(lipgloss.Color(palette[c.Level]))
	if c.Today {
		style = style.Underline(true)
	}
	if c.Day == m.cursor {
		style = style.Reverse(true).Bold(true)
	}

	day := strconv.Itoa(c.Day)
	if c.Danger {
		day += "!"
	}
	count := ""
	if c.Count > 0 {
		count = strconv.Itoa(c.Count)
	}
	return style.Render(day + "\n" + count)
}

// renderDetail lists the absences of the activated day.
func (m monthlyModel) renderDetail() string {
	date := *m.selected
	records := m.rep.RecordsOn(date)

	rows := []string{
		titleStyle.Render(dates.DisplayDate(date)) + mutedStyle.Render(fmt.Sprintf("  %d absent", len(records))),
		"",
	}
	if len(records) == 0 {
		rows = append(rows, mutedStyle.Render("No absences"))
	}
	for _, r := range records {
		rows = append(rows, fmt.Sprintf("%s %s  %s  %s",
			typeStyle(r.Type).Render("●"),
			pad(r.EmployeeName, 20),
			pad(absence.ReasonLabel(r.Reason), 17),
			mutedStyle.Render(absence.DurationLabel(r.Duration)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m monthlyModel) renderTypeSplit() string {
	rows := []string{titleStyle.Render("Planned vs unplanned")}
	for _, s := range m.rep.TypeSegments() {
		share := report.RateOf(int(s.Value), m.rep.Total)
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("●")
		rows = append(rows, fmt.Sprintf("%s %-10s %4d  %s", dot, s.Label, int(s.Value), share))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m monthlyModel) renderReasons() string {
	return breakdownList("By reason", m.rep.Reasons)
}

func (m monthlyModel) renderPlants() string {
	return breakdownList("By plant", m.rep.Plants)
}

func breakdownList(title string, items []report.Breakdown) string {
	rows := []string{titleStyle.Render(title)}
	if len(items) == 0 {
		rows = append(rows, mutedStyle.Render(chart.NoDataLabel))
	}
	top := 0
	for _, b := range items {
		top = max(top, b.Count)
	}
	for _, b := range items {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color))
		rows = append(rows, fmt.Sprintf("%s %s %4d %s",
			style.Render("●"), pad(b.Label, 17), b.Count, style.Render(bar(b.Count, top, 20)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m monthlyModel) renderEmployees() string {
	rows := []string{titleStyle.Render("Top absentees")}
	if len(m.rep.Employees) == 0 {
		rows = append(rows, mutedStyle.Render(chart.NoDataLabel))
	}
	for i, e := range m.rep.Employees {
		rows = append(rows, fmt.Sprintf("%d. %s %s", i+1, pad(e.Key, 20), highlightStyle.Render(strconv.Itoa(e.Count))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/absentee/internal/absence"
	"github.com/sadopc/absentee/internal/dates"
	"github.com/sadopc/absentee/internal/report"
	"github.com/sadopc/absentee/internal/store"
)

// dailyColumn is one column of the absence table.
type dailyColumn struct {
	col   report.Column
	title string
	width int
}

var dailyColumns = []dailyColumn{
	{report.ByEmployee, "Employee", 20},
	{report.ByPlant, "Plant", 14},
	{report.ByType, "Type", 10},
	{report.ByLabor, "Labor", 9},
	{report.ByShift, "Shift", 6},
	{report.ByReason, "Reason", 17},
	{report.ByDuration, "Duration", 14},
}

type dailyModel struct {
	agg    *report.Aggregator
	store  *store.Store
	width  int
	height int

	date    string
	today   string
	plantID string
	sort    report.Sort
	rep     *report.DailyReport
	cursor  int
	err     error

	// Delete confirmation
	confirming bool
	confirm    *huh.Form
	confirmed  *bool
	pending    absence.Record
}

func newDailyModel(agg *report.Aggregator, s *store.Store, today string) dailyModel {
	confirmed := false
	return dailyModel{
		agg:       agg,
		store:     s,
		date:      today,
		today:     today,
		plantID:   absence.AllPlants,
		sort:      report.DefaultSort(),
		confirmed: &confirmed,
	}
}

func (d *dailyModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dailyDataMsg struct {
	date string
	rep  *report.DailyReport
	err  error
}

func (d dailyModel) refresh() tea.Cmd {
	date, plantID, sort := d.date, d.plantID, d.sort
	return func() tea.Msg {
		rep, err := d.agg.Daily(date, plantID, sort)
		return dailyDataMsg{date: date, rep: rep, err: err}
	}
}

func (d dailyModel) update(msg tea.Msg) (dailyModel, tea.Cmd) {
	if d.confirming && d.confirm != nil {
		return d.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case dailyDataMsg:
		// A response for a day we already navigated away from.
		if msg.date != d.date {
			return d, nil
		}
		d.rep, d.err = msg.rep, msg.err
		if d.rep != nil && d.cursor >= len(d.rep.Rows) {
			d.cursor = max(0, len(d.rep.Rows)-1)
		}
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Prev), key.Matches(msg, keys.Left):
			return d.shift(-1)
		case key.Matches(msg, keys.Next), key.Matches(msg, keys.Right):
			return d.shift(1)
		case key.Matches(msg, keys.Today):
			d.date = d.today
			d.cursor = 0
			return d, d.refresh()
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.rep != nil && d.cursor < len(d.rep.Rows)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Sort):
			i := slices.Index(report.Columns, d.sort.Column)
			d.sort = d.sort.Toggle(report.Columns[(i+1)%len(report.Columns)])
			return d, d.refresh()
		case key.Matches(msg, keys.Reverse):
			d.sort = d.sort.Toggle(d.sort.Column)
			return d, d.refresh()
		case key.Matches(msg, keys.Enter):
			if rec, ok := d.selected(); ok {
				return d, func() tea.Msg { return editRecordMsg{record: rec} }
			}
		case key.Matches(msg, keys.Delete):
			if rec, ok := d.selected(); ok {
				return d.showConfirm(rec)
			}
		}
	}
	return d, nil
}

func (d dailyModel) shift(delta int) (dailyModel, tea.Cmd) {
	next, err := dates.AddDays(d.date, delta)
	if err != nil {
		return d, func() tea.Msg { return errStatus("Navigate", err) }
	}
	d.date = next
	d.cursor = 0
	return d, d.refresh()
}

func (d dailyModel) selected() (absence.Record, bool) {
	if d.rep == nil || d.cursor >= len(d.rep.Rows) {
		return absence.Record{}, false
	}
	return d.rep.Rows[d.cursor].Record, true
}

func (d dailyModel) showConfirm(rec absence.Record) (dailyModel, tea.Cmd) {
	*d.confirmed = false
	d.pending = rec
	d.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete the absence of %s on %s?", rec.EmployeeName, dates.DisplayDate(rec.Date))).
				Affirmative("Delete").
				Negative("Cancel").
				Value(d.confirmed),
		),
	).WithShowHelp(true)
	d.confirming = true
	return d, d.confirm.Init()
}

func (d dailyModel) updateConfirm(msg tea.Msg) (dailyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.confirming = false
			d.confirm = nil
			return d, nil
		}
	}

	form, cmd := d.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.confirm = f
	}

	switch d.confirm.State {
	case huh.StateCompleted:
		d.confirming = false
		d.confirm = nil
		if *d.confirmed {
			return d, d.deleteRecord(d.pending)
		}
		return d, nil
	case huh.StateAborted:
		d.confirming = false
		d.confirm = nil
		return d, nil
	}
	return d, cmd
}

func (d dailyModel) deleteRecord(rec absence.Record) tea.Cmd {
	return func() tea.Msg {
		if err := d.store.DeleteAbsence(rec.ID); err != nil {
			return errStatus("Delete absence", err)
		}
		return recordDeletedMsg{employee: rec.EmployeeName}
	}
}

func (d dailyModel) view() string {
	w := d.width - 4

	title := titleStyle.Render("Daily Report")
	when := mutedStyle.Render(dates.DisplayDate(d.date))
	if d.date == d.today {
		when += successStyle.Render("  today")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", when)

	if d.confirming && d.confirm != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", d.confirm.View()),
		)
	}

	if d.err != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", errorStyle.Render(d.err.Error())),
		)
	}

	nav := mutedStyle.Render("  [/]: day  t: today  s/r: sort  enter: edit  d: delete")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", d.renderStats(), "", d.renderTable(w), "", nav,
		),
	)
}

func (d dailyModel) renderStats() string {
	if d.rep == nil {
		return ""
	}
	r := d.rep
	return lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Absent", fmt.Sprint(r.Total), ""),
		statCard("Planned", plannedStyle.Render(fmt.Sprint(r.Planned)), ""),
		statCard("Unplanned", unplannedStyle.Render(fmt.Sprint(r.Unplanned)), r.UnplannedRate.String()),
		statCard("Plants affected", fmt.Sprint(r.PlantsAffected), ""),
		statCard("Hours lost", formatHours(r.HoursLost), ""),
	)
}

func (d dailyModel) renderTable(w int) string {
	if d.rep == nil || len(d.rep.Rows) == 0 {
		return mutedStyle.Render("  No absences recorded for this day")
	}

	var head []string
	width := 0
	for _, c := range dailyColumns {
		t := c.title
		if c.col == d.sort.Column {
			if d.sort.Desc {
				t += " ▼"
			} else {
				t += " ▲"
			}
		}
		head = append(head, pad(t, c.width))
		width += c.width + 1
	}

	var rows []string
	rows = append(rows, mutedStyle.Render("  "+strings.Join(head, " ")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(max(w-6, 1), width))))

	start, end := d.window(len(d.rep.Rows))
	for i := start; i < end; i++ {
		row := d.rep.Rows[i]
		cells := []string{
			pad(row.EmployeeName, dailyColumns[0].width),
			pad(row.Plant, dailyColumns[1].width),
			typeStyle(row.Type).Render(pad(absence.TypeLabel(row.Type), dailyColumns[2].width)),
			pad(absence.LaborLabel(row.LaborType), dailyColumns[3].width),
			pad(absence.ShiftLabel(row.Shift), dailyColumns[4].width),
			pad(absence.ReasonLabel(row.Reason), dailyColumns[5].width),
			pad(absence.DurationLabel(row.Duration), dailyColumns[6].width),
		}
		line := strings.Join(cells, " ")
		if i == d.cursor {
			rows = append(rows, selectedItemStyle.Render("> ")+line)
		} else {
			rows = append(rows, "  "+line)
		}
	}
	if end-start < len(d.rep.Rows) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(d.rep.Rows))))
	}
	return strings.Join(rows, "\n")
}

// window returns the slice of rows that fits the panel and keeps the
// cursor visible.
func (d dailyModel) window(n int) (int, int) {
	visible := n
	if d.height > 0 {
		visible = max(3, d.height-16)
	}
	if n <= visible {
		return 0, n
	}
	start := max(0, d.cursor-visible+1)
	return start, start + visible
}

func pad(s string, w int) string {
	return fmt.Sprintf("%-*s", w, truncate(s, w))
}

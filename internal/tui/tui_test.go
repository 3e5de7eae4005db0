package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/sadopc/absentee/internal/absence"
	"github.com/sadopc/absentee/internal/chart"
	"github.com/sadopc/absentee/internal/export"
	"github.com/sadopc/absentee/internal/report"
	"github.com/sadopc/absentee/internal/store"
)

const testToday = "2024-03-15"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type fixture struct {
	store  *store.Store
	plantA *absence.Plant
	plantB *absence.Plant
	carol  *absence.Record
}

// newFixture adds two plants to the three the schema seeds and stores
// three March 2024 absences.
func newFixture(t *testing.T) fixture {
	t.Helper()
	s := newTestStore(t)
	a, err := s.CreatePlant("Plant A")
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.CreatePlant("Plant B")
	if err != nil {
		t.Fatal(err)
	}

	add := func(rec absence.Record) *absence.Record {
		t.Helper()
		saved, err := s.AddAbsence(rec)
		if err != nil {
			t.Fatalf("add absence: %v", err)
		}
		return saved
	}
	add(absence.Record{EmployeeName: "Alice", PlantID: a.ID, Date: "2024-03-05", Type: absence.Planned, Reason: absence.Vacation, Duration: absence.Full})
	add(absence.Record{EmployeeName: "Bob", PlantID: b.ID, Date: "2024-03-05", Type: absence.Unplanned, Reason: absence.Sick, Duration: absence.HalfAM})
	carol := add(absence.Record{EmployeeName: "Carol", PlantID: a.ID, Date: "2024-03-12", Type: absence.Unplanned, Reason: absence.Personal, Duration: absence.Custom, DurationHours: 2.5})

	return fixture{store: s, plantA: a, plantB: b, carol: carol}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return app, cmd
}

// run executes cmd and feeds its messages back into the app until no
// command is left. Only use it for data commands.
func run(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	if cmd == nil {
		return a
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			a = run(t, a, c)
		}
		return a
	}
	a, next := send(t, a, msg)
	return run(t, a, next)
}

func loadedApp(t *testing.T, f fixture) App {
	t.Helper()
	a := newApp(f.store, t.TempDir(), testToday)
	return run(t, a, a.Init())
}

// ============================================================
// Daily view
// ============================================================

func loadedDaily(t *testing.T, f fixture, date string) dailyModel {
	t.Helper()
	d := newDailyModel(report.New(f.store), f.store, testToday)
	d.date = date
	d, _ = d.update(d.refresh()())
	if d.err != nil {
		t.Fatal(d.err)
	}
	return d
}

func TestDailyRefresh(t *testing.T) {
	f := newFixture(t)
	d := loadedDaily(t, f, "2024-03-05")

	if d.rep == nil {
		t.Fatal("report should be loaded")
	}
	if d.rep.Total != 2 || d.rep.Planned != 1 || d.rep.Unplanned != 1 {
		t.Fatalf("unexpected totals: %+v", d.rep)
	}
	if d.rep.Rows[0].EmployeeName != "Alice" || d.rep.Rows[1].EmployeeName != "Bob" {
		t.Fatal("rows should be sorted by employee")
	}
	if d.rep.PlantsAffected != 2 {
		t.Fatalf("expected 2 plants affected, got %d", d.rep.PlantsAffected)
	}
}

func TestDailyPlantFilter(t *testing.T) {
	f := newFixture(t)
	d := newDailyModel(report.New(f.store), f.store, testToday)
	d.date = "2024-03-05"
	d.plantID = f.plantA.ID
	d, _ = d.update(d.refresh()())

	if d.rep.Total != 1 || d.rep.Rows[0].EmployeeName != "Alice" {
		t.Fatal("filter should keep only Plant A")
	}
}

func TestDailyNavigation(t *testing.T) {
	f := newFixture(t)
	d := newDailyModel(report.New(f.store), f.store, testToday)

	d, cmd := d.update(keyMsg("]"))
	if d.date != "2024-03-16" {
		t.Fatalf("expected next day, got %s", d.date)
	}
	if cmd == nil {
		t.Fatal("navigation should refresh")
	}

	d, _ = d.update(keyMsg("["))
	d, _ = d.update(keyMsg("left"))
	if d.date != "2024-03-14" {
		t.Fatalf("expected previous day, got %s", d.date)
	}

	d, _ = d.update(keyMsg("t"))
	if d.date != testToday {
		t.Fatal("t should jump back to today")
	}
}

func TestDailyNavigationCrossesMonth(t *testing.T) {
	f := newFixture(t)
	d := newDailyModel(report.New(f.store), f.store, "2024-03-01")

	d, _ = d.update(keyMsg("["))
	if d.date != "2024-02-29" {
		t.Fatalf("expected leap day, got %s", d.date)
	}
}

func TestDailyIgnoresStaleData(t *testing.T) {
	f := newFixture(t)
	d := newDailyModel(report.New(f.store), f.store, "2024-03-05")

	stale := d.refresh()()
	d, _ = d.update(keyMsg("]"))
	d, _ = d.update(stale)

	if d.rep != nil {
		t.Fatal("data for a previous day should be dropped")
	}
}

func TestDailySortKeys(t *testing.T) {
	f := newFixture(t)
	d := loadedDaily(t, f, "2024-03-05")

	d, _ = d.update(keyMsg("s"))
	if d.sort.Column != report.ByPlant || d.sort.Desc {
		t.Fatalf("s should move to the plant column, got %+v", d.sort)
	}

	d, cmd := d.update(keyMsg("r"))
	if !d.sort.Desc {
		t.Fatal("r should reverse the order")
	}
	d, _ = d.update(cmd())
	if d.rep.Rows[0].EmployeeName != "Bob" {
		t.Fatal("descending plant order should put Plant B first")
	}
}

func TestDailySortWrapsAround(t *testing.T) {
	f := newFixture(t)
	d := newDailyModel(report.New(f.store), f.store, testToday)

	for range report.Columns {
		d, _ = d.update(keyMsg("s"))
	}
	if d.sort.Column != report.ByEmployee {
		t.Fatalf("cycling every column should return to employee, got %s", d.sort.Column)
	}
}

func TestDailyEnterEditsSelectedRow(t *testing.T) {
	f := newFixture(t)
	d := loadedDaily(t, f, "2024-03-05")

	d, _ = d.update(keyMsg("down"))
	_, cmd := d.update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("enter should emit an edit command")
	}
	msg, ok := cmd().(editRecordMsg)
	if !ok {
		t.Fatal("expected editRecordMsg")
	}
	if msg.record.EmployeeName != "Bob" {
		t.Fatalf("expected Bob, got %s", msg.record.EmployeeName)
	}
}

func TestDailyEnterOnEmptyDay(t *testing.T) {
	f := newFixture(t)
	d := loadedDaily(t, f, "2024-03-20")

	_, cmd := d.update(keyMsg("enter"))
	if cmd != nil {
		t.Fatal("enter on an empty day should do nothing")
	}
}

func TestDailyDeleteConfirmCancel(t *testing.T) {
	f := newFixture(t)
	d := loadedDaily(t, f, "2024-03-05")

	d, _ = d.update(keyMsg("d"))
	if !d.confirming {
		t.Fatal("d should ask for confirmation")
	}
	if d.pending.EmployeeName != "Alice" {
		t.Fatal("pending record should be the selected row")
	}

	d, _ = d.update(keyMsg("esc"))
	if d.confirming {
		t.Fatal("esc should cancel the confirmation")
	}
	if n, _ := f.store.CountAbsences(); n != 3 {
		t.Fatalf("nothing should be deleted, have %d", n)
	}
}

func TestDailyDeleteRecord(t *testing.T) {
	f := newFixture(t)
	d := loadedDaily(t, f, "2024-03-12")

	msg := d.deleteRecord(d.rep.Rows[0].Record)()
	deleted, ok := msg.(recordDeletedMsg)
	if !ok {
		t.Fatalf("expected recordDeletedMsg, got %T", msg)
	}
	if deleted.employee != "Carol" {
		t.Fatal("deleted message should name the employee")
	}
	if n, _ := f.store.CountAbsences(); n != 2 {
		t.Fatalf("expected 2 absences left, got %d", n)
	}

	// Deleting again reports an error
	if st, ok := d.deleteRecord(*f.carol)().(statusMsg); !ok || !st.isError {
		t.Fatal("deleting a missing record should report an error")
	}
}

func TestDailyView(t *testing.T) {
	f := newFixture(t)
	d := loadedDaily(t, f, "2024-03-05")
	d.setSize(140, 40)

	out := d.view()
	for _, want := range []string{"Daily Report", "Mar 5, 2024", "Alice", "Bob", "Employee ▲"} {
		if !strings.Contains(out, want) {
			t.Fatalf("daily view missing %q", want)
		}
	}

	empty := loadedDaily(t, f, "2024-03-20")
	empty.setSize(140, 40)
	if !strings.Contains(empty.view(), "No absences recorded") {
		t.Fatal("empty day should say so")
	}
}

func TestDailyWindowKeepsCursorVisible(t *testing.T) {
	d := dailyModel{height: 20, cursor: 9}
	start, end := d.window(12)
	if end-start != 4 {
		t.Fatalf("expected 4 visible rows, got %d", end-start)
	}
	if d.cursor < start || d.cursor >= end {
		t.Fatal("cursor should be inside the window")
	}

	d.height = 0
	if start, end := d.window(12); start != 0 || end != 12 {
		t.Fatal("unsized view shows every row")
	}
}

// ============================================================
// Monthly view
// ============================================================

func loadedMonthly(t *testing.T, f fixture, today string) monthlyModel {
	t.Helper()
	m := newMonthlyModel(report.New(f.store), today)
	m.setSize(140, 60)
	m, _ = m.update(m.refresh()())
	if m.err != nil {
		t.Fatal(m.err)
	}
	return m
}

func TestMonthlyRefresh(t *testing.T) {
	f := newFixture(t)
	m := loadedMonthly(t, f, testToday)

	if m.rep == nil || m.grid == nil {
		t.Fatal("report and grid should be loaded")
	}
	if m.rep.Total != 3 {
		t.Fatalf("expected 3 absences, got %d", m.rep.Total)
	}
	if m.cursor != 15 {
		t.Fatalf("cursor should start on today, got %d", m.cursor)
	}
	c, ok := m.grid.Cell("2024-03-05")
	if !ok || c.Count != 2 {
		t.Fatal("calendar should count two absences on the 5th")
	}
}

func TestMonthlyCalendarDrillDown(t *testing.T) {
	f := newFixture(t)
	m := loadedMonthly(t, f, testToday)

	m, _ = m.update(keyMsg("up"))
	for range 3 {
		m, _ = m.update(keyMsg("left"))
	}
	if m.cursor != 5 {
		t.Fatalf("expected cursor on the 5th, got %d", m.cursor)
	}

	m, _ = m.update(keyMsg("enter"))
	if *m.selected != "2024-03-05" {
		t.Fatalf("enter should select the day, got %q", *m.selected)
	}
	out := m.view()
	if !strings.Contains(out, "2 absent") || !strings.Contains(out, "Alice") {
		t.Fatal("detail should list the day's absences")
	}

	m, _ = m.update(keyMsg("esc"))
	if *m.selected != "" {
		t.Fatal("esc should close the detail")
	}
}

func TestMonthlyCursorStaysInMonth(t *testing.T) {
	f := newFixture(t)
	m := loadedMonthly(t, f, "2024-03-01")

	m, _ = m.update(keyMsg("left"))
	m, _ = m.update(keyMsg("up"))
	if m.cursor != 1 {
		t.Fatalf("cursor should not leave the month, got %d", m.cursor)
	}

	m.cursor = 31
	m, _ = m.update(keyMsg("right"))
	m, _ = m.update(keyMsg("down"))
	if m.cursor != 31 {
		t.Fatalf("cursor should stop at the last day, got %d", m.cursor)
	}
}

func TestMonthlyNavigation(t *testing.T) {
	f := newFixture(t)
	m := loadedMonthly(t, f, testToday)

	stale := m.refresh()()
	m, _ = m.update(keyMsg("["))
	if m.year != 2024 || m.month0 != 1 {
		t.Fatalf("expected February 2024, got %d-%d", m.year, m.month0)
	}
	if m.cursor != 1 {
		t.Fatal("cursor should reset to the first day")
	}

	before := m.rep
	m, _ = m.update(stale)
	if m.rep != before {
		t.Fatal("data for another month should be dropped")
	}

	m, _ = m.update(keyMsg("t"))
	if m.year != 2024 || m.month0 != 2 || m.cursor != 15 {
		t.Fatal("t should return to today")
	}
}

func TestMonthlyNavigationWrapsYear(t *testing.T) {
	f := newFixture(t)
	m := newMonthlyModel(report.New(f.store), "2024-01-10")

	m, _ = m.update(keyMsg("["))
	if m.year != 2023 || m.month0 != 11 {
		t.Fatalf("expected December 2023, got %d-%d", m.year, m.month0)
	}
	m, _ = m.update(keyMsg("]"))
	m, _ = m.update(keyMsg("]"))
	if m.year != 2024 || m.month0 != 1 {
		t.Fatalf("expected February 2024, got %d-%d", m.year, m.month0)
	}
}

func TestMonthlyView(t *testing.T) {
	f := newFixture(t)
	m := loadedMonthly(t, f, testToday)

	out := m.view()
	for _, want := range []string{"March 2024", "Planned vs unplanned", "By reason", "By plant", "Top absentees", "Carol"} {
		if !strings.Contains(out, want) {
			t.Fatalf("monthly view missing %q", want)
		}
	}
}

func TestMonthlyEmptyMonth(t *testing.T) {
	f := newFixture(t)
	m := loadedMonthly(t, f, "2023-07-04")

	if m.rep.Total != 0 {
		t.Fatal("July 2023 has no absences")
	}
	if !strings.Contains(m.view(), chart.NoDataLabel) {
		t.Fatal("empty breakdowns should say there is no data")
	}
}

func TestBarData(t *testing.T) {
	bars := []chart.Bar{
		{Label: "1", Segments: []chart.Segment{{Value: 1, Color: "#2563eb"}, {Value: 2, Color: "#ef4444"}}},
		{Label: "Mon", Value: 4},
	}
	data := barData(bars)
	if len(data) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(data))
	}
	if len(data[0].Values) != 2 || data[0].Values[1].Value != 2 {
		t.Fatal("stacked bar should keep one value per segment")
	}
	if len(data[1].Values) != 1 || data[1].Values[0].Value != 4 {
		t.Fatal("plain bar should carry its value")
	}
}

func TestTrendData(t *testing.T) {
	tr := report.Trend{
		Labels:    []string{"Feb", "Mar"},
		Planned:   []int{1, 2},
		Unplanned: []int{3, 4},
	}
	data := trendData(tr)
	if len(data) != 2 || data[1].Label != "Mar" {
		t.Fatal("one bar per month expected")
	}
	if data[1].Values[0].Value != 2 || data[1].Values[1].Value != 4 {
		t.Fatal("trend bar should stack planned under unplanned")
	}
}

// ============================================================
// Submit form
// ============================================================

func newTestSubmit(t *testing.T, f fixture) submitModel {
	t.Helper()
	plants, err := f.store.ListPlants()
	if err != nil {
		t.Fatal(err)
	}
	m := newSubmitModel(f.store, testToday)
	m.setPlants(plants, absence.AllPlants)
	return m
}

func TestSubmitRecord(t *testing.T) {
	f := newFixture(t)
	m := newTestSubmit(t, f)
	m, _ = m.newForm()

	*m.formName = "  Dave  "
	rec, err := m.record()
	if err != nil {
		t.Fatal(err)
	}
	if rec.EmployeeName != "Dave" {
		t.Fatal("name should be trimmed")
	}
	if rec.PlantID != m.plants[0].ID {
		t.Fatal("first plant should be preselected")
	}
	if rec.Date != testToday {
		t.Fatal("date should default to today")
	}
	if rec.DurationHours != 8 {
		t.Fatalf("full day should be 8 hours, got %v", rec.DurationHours)
	}
}

func TestSubmitRecordCustomHours(t *testing.T) {
	f := newFixture(t)
	m := newTestSubmit(t, f)
	m, _ = m.newForm()

	*m.formName = "Dave"
	*m.formDuration = absence.Custom
	*m.formHours = "2.5"
	rec, err := m.record()
	if err != nil {
		t.Fatal(err)
	}
	if rec.DurationHours != 2.5 {
		t.Fatalf("expected 2.5 hours, got %v", rec.DurationHours)
	}

	*m.formHours = "abc"
	if _, err := m.record(); !errors.Is(err, absence.ErrInvalidRecord) {
		t.Fatalf("bad hours should be invalid, got %v", err)
	}
}

func TestSubmitRecordRequiresName(t *testing.T) {
	f := newFixture(t)
	m := newTestSubmit(t, f)
	m, _ = m.newForm()

	*m.formName = "   "
	if _, err := m.record(); !errors.Is(err, absence.ErrInvalidRecord) {
		t.Fatalf("blank name should be invalid, got %v", err)
	}
}

func TestSubmitSave(t *testing.T) {
	f := newFixture(t)
	m := newTestSubmit(t, f)

	rec := absence.Record{EmployeeName: "Dave", PlantID: f.plantB.ID, Date: "2024-03-20", Type: absence.Planned, Reason: absence.JuryDuty, Duration: absence.Full}
	msg, ok := m.save(rec, "")().(recordSavedMsg)
	if !ok {
		t.Fatal("expected recordSavedMsg")
	}
	if msg.edited || msg.record.ID == "" {
		t.Fatal("new record should be added with an id")
	}
	if n, _ := f.store.CountAbsences(); n != 4 {
		t.Fatalf("expected 4 absences, got %d", n)
	}
}

func TestSubmitSaveEdit(t *testing.T) {
	f := newFixture(t)
	m := newTestSubmit(t, f)

	rec := *f.carol
	rec.EmployeeName = "Caroline"
	msg, ok := m.save(rec, f.carol.ID)().(recordSavedMsg)
	if !ok {
		t.Fatal("expected recordSavedMsg")
	}
	if !msg.edited {
		t.Fatal("update should be marked as edited")
	}
	got, err := f.store.GetAbsence(f.carol.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.EmployeeName != "Caroline" {
		t.Fatal("update not persisted")
	}
}

func TestSubmitSaveInvalid(t *testing.T) {
	f := newFixture(t)
	m := newTestSubmit(t, f)

	st, ok := m.save(absence.Record{PlantID: f.plantA.ID}, "")().(statusMsg)
	if !ok || !st.isError {
		t.Fatal("invalid record should report an error")
	}
}

func TestSubmitEditLoadsRecord(t *testing.T) {
	f := newFixture(t)
	m := newTestSubmit(t, f)

	m, _ = m.edit(*f.carol)
	if !m.formActive || m.editingID != f.carol.ID {
		t.Fatal("edit should open the form on the record")
	}
	if *m.formName != "Carol" || *m.formHours != "2.5" || *m.formDuration != absence.Custom {
		t.Fatal("form fields should hold the record")
	}
	if !strings.Contains(m.view(), "Edit Absence") {
		t.Fatal("view should show the edit title")
	}

	m, _ = m.update(keyMsg("esc"))
	if m.formActive || m.editingID != "" {
		t.Fatal("esc should close the form")
	}
}

func TestSubmitWithoutPlants(t *testing.T) {
	s := newTestStore(t)
	m := newSubmitModel(s, testToday)

	m, cmd := m.newForm()
	if m.formActive {
		t.Fatal("form should not open without plants")
	}
	st, ok := cmd().(statusMsg)
	if !ok || !st.isError {
		t.Fatal("expected an error status")
	}
	if !strings.Contains(m.view(), "No plants yet") {
		t.Fatal("view should point at the Plants tab")
	}
}

func TestSubmitPreselectsFilteredPlant(t *testing.T) {
	f := newFixture(t)
	plants, _ := f.store.ListPlants()
	m := newSubmitModel(f.store, testToday)
	m.setPlants(plants, f.plantB.ID)

	m, _ = m.newForm()
	if *m.formPlant != f.plantB.ID {
		t.Fatal("filtered plant should be preselected")
	}

	m.setPlants(plants, "plant-gone")
	if m.plantID != "" {
		t.Fatal("unknown filter should not preselect")
	}
}

func TestValidators(t *testing.T) {
	if required("  ") == nil || required("x") != nil {
		t.Fatal("required")
	}
	if validDate("2024-02-30") == nil || validDate("2024-02-29") != nil {
		t.Fatal("validDate")
	}
	for _, bad := range []string{"0", "-1", "25", "x", ""} {
		if validHours(bad) == nil {
			t.Fatalf("validHours(%q) should fail", bad)
		}
	}
	if validHours(" 4.5 ") != nil {
		t.Fatal("4.5 hours should be valid")
	}
}

// ============================================================
// Plants view
// ============================================================

func TestPlantsCreate(t *testing.T) {
	f := newFixture(t)
	p := newPlantsModel(f.store)

	msg, ok := p.createPlant("Plant C")().(plantChangedMsg)
	if !ok || !strings.Contains(msg.text, "Plant C") {
		t.Fatal("expected plantChangedMsg")
	}
	plants, _ := f.store.ListPlants()
	if len(plants) != 6 {
		t.Fatalf("expected 6 plants, got %d", len(plants))
	}

	if st, ok := p.createPlant("  ")().(statusMsg); !ok || !st.isError {
		t.Fatal("blank name should report an error")
	}
}

func TestPlantsRemove(t *testing.T) {
	f := newFixture(t)
	p := newPlantsModel(f.store)

	if _, ok := p.removePlant(*f.plantB)().(plantChangedMsg); !ok {
		t.Fatal("expected plantChangedMsg")
	}
	if name := f.store.PlantName(f.plantB.ID); name != store.UnknownPlant {
		t.Fatalf("removed plant should resolve to Unknown, got %s", name)
	}
	if n, _ := f.store.CountAbsences(); n != 3 {
		t.Fatal("absences should survive plant removal")
	}

	if st, ok := p.removePlant(*f.plantB)().(statusMsg); !ok || !st.isError {
		t.Fatal("removing twice should report an error")
	}
}

func TestPlantsCounts(t *testing.T) {
	f := newFixture(t)
	p := newPlantsModel(f.store)
	p.plants, _ = f.store.ListPlants()

	p, _ = p.update(p.refresh()())
	if p.counts[f.plantA.ID] != 2 || p.counts[f.plantB.ID] != 1 {
		t.Fatalf("unexpected counts: %v", p.counts)
	}

	p.setSize(100, 30)
	out := p.view()
	if !strings.Contains(out, "Plant A") || !strings.Contains(out, "2 absences") {
		t.Fatal("view should list plants with counts")
	}
}

func TestPlantsRemoveConfirm(t *testing.T) {
	f := newFixture(t)
	p := newPlantsModel(f.store)
	p.plants, _ = f.store.ListPlants()

	p.cursor = len(p.plants) - 2
	p, _ = p.update(keyMsg("down"))
	p, _ = p.update(keyMsg("d"))
	if !p.formActive || p.formType != "remove" || p.removing.ID != f.plantB.ID {
		t.Fatal("d should confirm removal of the selected plant")
	}
	p, _ = p.update(keyMsg("esc"))
	if p.formActive {
		t.Fatal("esc should cancel")
	}
}

func TestPlantsClearAbsences(t *testing.T) {
	f := newFixture(t)
	p := newPlantsModel(f.store)
	p.plants, _ = f.store.ListPlants()
	p, _ = p.update(p.refresh()())

	p, _ = p.update(keyMsg("X"))
	if !p.formActive || p.formType != "clear" {
		t.Fatal("X should ask before clearing absences")
	}
	p, _ = p.update(keyMsg("esc"))
	if p.formActive {
		t.Fatal("esc should cancel")
	}
	if n, _ := f.store.CountAbsences(); n != 3 {
		t.Fatal("cancel should keep absences")
	}

	if _, ok := p.clearAbsences()().(plantChangedMsg); !ok {
		t.Fatal("expected plantChangedMsg")
	}
	if n, _ := f.store.CountAbsences(); n != 0 {
		t.Fatalf("expected no absences after clear, got %d", n)
	}
	if plants, _ := f.store.ListPlants(); len(plants) != len(p.plants) {
		t.Fatal("clearing absences should keep plants")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())

	if app.activeView != viewDaily {
		t.Fatal("default view should be daily")
	}
	if app.plantFilter != absence.AllPlants {
		t.Fatal("default filter should be all plants")
	}
	if app.showHelp || app.exportPicking || app.filterPicking {
		t.Fatal("overlays should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppInitLoadsEverything(t *testing.T) {
	f := newFixture(t)
	a := loadedApp(t, f)

	if len(a.plants) != 5 {
		t.Fatalf("expected 5 plants, got %d", len(a.plants))
	}
	if a.daily.rep == nil || a.monthly.rep == nil {
		t.Fatal("daily and monthly reports should be loaded")
	}
	if a.monthly.rep.Total != 3 {
		t.Fatalf("expected 3 absences in March, got %d", a.monthly.rep.Total)
	}
	if a.plantsView.counts[f.plantA.ID] != 2 {
		t.Fatal("plant counts should be loaded")
	}
}

func TestAppTabs(t *testing.T) {
	f := newFixture(t)
	a := loadedApp(t, f)

	a, _ = send(t, a, keyMsg("2"))
	if a.activeView != viewMonthly {
		t.Fatal("2 should open monthly")
	}
	a, _ = send(t, a, keyMsg("4"))
	if a.activeView != viewPlants {
		t.Fatal("4 should open plants")
	}
	a, _ = send(t, a, keyMsg("tab"))
	if a.activeView != viewDaily {
		t.Fatal("tab should wrap to daily")
	}

	a, _ = send(t, a, keyMsg("3"))
	if a.activeView != viewSubmit || !a.isFormActive() {
		t.Fatal("3 should open the submit form")
	}
	a, _ = send(t, a, keyMsg("esc"))
	if a.isFormActive() {
		t.Fatal("esc should close the submit form")
	}
}

func TestAppPlantFilter(t *testing.T) {
	f := newFixture(t)
	a := loadedApp(t, f)

	a, _ = send(t, a, keyMsg("f"))
	if !a.filterPicking || a.filterCursor != 0 {
		t.Fatal("f should open the filter picker on All plants")
	}
	for range 4 {
		a, _ = send(t, a, keyMsg("down"))
	}
	if a.plants[a.filterCursor-1].ID != f.plantA.ID {
		t.Fatal("fourth plant should be Plant A")
	}
	a, cmd := send(t, a, keyMsg("enter"))
	if a.filterPicking {
		t.Fatal("enter should close the picker")
	}
	a = run(t, a, cmd)

	if f.store.PlantFilter() != f.plantA.ID {
		t.Fatal("filter should be saved")
	}
	if a.plantFilter != f.plantA.ID || a.daily.plantID != f.plantA.ID || a.monthly.plantID != f.plantA.ID {
		t.Fatal("filter should reach every view")
	}
	if a.monthly.rep.Total != 2 {
		t.Fatalf("expected 2 Plant A absences, got %d", a.monthly.rep.Total)
	}

	a.width = 120
	if !strings.Contains(a.renderHeader(), "Plant A") {
		t.Fatal("header should name the filtered plant")
	}
}

func TestAppFilterPickerCancel(t *testing.T) {
	f := newFixture(t)
	a := loadedApp(t, f)

	a, _ = send(t, a, keyMsg("f"))
	for range 5 {
		a, _ = send(t, a, keyMsg("down"))
	}
	if a.filterCursor != len(a.plants) {
		t.Fatal("cursor should stop on the last plant")
	}
	a, _ = send(t, a, keyMsg("esc"))
	if a.filterPicking {
		t.Fatal("esc should close the picker")
	}
	if f.store.PlantFilter() != absence.AllPlants {
		t.Fatal("cancel should not save")
	}
}

func TestAppUnknownFilterResets(t *testing.T) {
	f := newFixture(t)
	if err := f.store.SetSetting(store.SettingPlantFilter, "plant-gone"); err != nil {
		t.Fatal(err)
	}
	a := loadedApp(t, f)

	if a.plantFilter != absence.AllPlants {
		t.Fatalf("unknown plant filter should fall back to all, got %s", a.plantFilter)
	}
}

func TestAppRecordSaved(t *testing.T) {
	f := newFixture(t)
	a := loadedApp(t, f)
	a.activeView = viewSubmit

	a, cmd := send(t, a, recordSavedMsg{record: f.carol})
	if a.activeView != viewDaily || a.daily.date != f.carol.Date {
		t.Fatal("saving should show the record's day")
	}
	if !strings.Contains(a.status, "Added absence for Carol") {
		t.Fatalf("unexpected status %q", a.status)
	}
	a = run(t, a, cmd)
	if a.daily.rep == nil || a.daily.rep.Date != f.carol.Date {
		t.Fatal("daily report should reload for the saved day")
	}

	a, _ = send(t, a, recordSavedMsg{record: f.carol, edited: true})
	if !strings.Contains(a.status, "Updated") {
		t.Fatal("edit should say updated")
	}
}

func TestAppEditRecord(t *testing.T) {
	f := newFixture(t)
	a := loadedApp(t, f)

	a, _ = send(t, a, editRecordMsg{record: *f.carol})
	if a.activeView != viewSubmit {
		t.Fatal("edit should open the submit view")
	}
	if !a.submit.formActive || a.submit.editingID != f.carol.ID {
		t.Fatal("submit form should edit the record")
	}
}

func TestAppDataChanged(t *testing.T) {
	f := newFixture(t)
	a := loadedApp(t, f)

	if _, err := f.store.AddAbsence(absence.Record{EmployeeName: "Eve", PlantID: f.plantB.ID, Date: "2024-03-15", Type: absence.Unplanned, Reason: absence.Sick, Duration: absence.Full}); err != nil {
		t.Fatal(err)
	}
	a, cmd := send(t, a, DataChangedMsg{})
	if cmd == nil {
		t.Fatal("data change should trigger a reload")
	}
	a = run(t, a, cmd)

	if a.daily.rep.Total != 1 || a.monthly.rep.Total != 4 {
		t.Fatal("reports should pick up the new absence")
	}
}

func TestAppExportPicker(t *testing.T) {
	f := newFixture(t)
	a := loadedApp(t, f)

	a, _ = send(t, a, keyMsg("e"))
	if !a.exportPicking {
		t.Fatal("e should open the export picker")
	}
	for range 10 {
		a, _ = send(t, a, keyMsg("down"))
	}
	if a.exportCursor != len(export.Formats)-1 {
		t.Fatal("cursor should stop on the last format")
	}
	a, _ = send(t, a, keyMsg("esc"))
	if a.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestAppExportDay(t *testing.T) {
	f := newFixture(t)
	a := loadedApp(t, f)
	a.daily.date = "2024-03-05"

	for _, format := range []export.Format{export.CSV, export.JSON, export.XLSX} {
		msg, ok := a.doExport(format)().(exportDoneMsg)
		if !ok {
			t.Fatalf("%s: expected exportDoneMsg", format)
		}
		want := filepath.Join(a.exportDir, export.DayFileName("2024-03-05", format))
		if msg.path != want {
			t.Fatalf("%s: expected %s, got %s", format, want, msg.path)
		}
		if _, err := os.Stat(msg.path); err != nil {
			t.Fatalf("%s: file not written: %v", format, err)
		}
	}
}

func TestAppExportMonth(t *testing.T) {
	f := newFixture(t)
	a := loadedApp(t, f)
	a.activeView = viewMonthly

	msg, ok := a.doExport(export.CSV)().(exportDoneMsg)
	if !ok {
		t.Fatal("expected exportDoneMsg")
	}
	if filepath.Base(msg.path) != export.MonthFileName(2024, 2, export.CSV) {
		t.Fatalf("unexpected file %s", msg.path)
	}
	data, err := os.ReadFile(msg.path)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(strings.TrimSpace(string(data)), "\n"); lines != 3 {
		t.Fatalf("expected header + 3 rows, got %d newlines", lines)
	}
}

func TestAppExportSVG(t *testing.T) {
	f := newFixture(t)
	a := loadedApp(t, f)

	msg, ok := a.doExport(export.SVG)().(exportDoneMsg)
	if !ok {
		t.Fatal("expected exportDoneMsg")
	}
	if msg.files != 7 {
		t.Fatalf("expected 7 charts, got %d", msg.files)
	}
	if filepath.Base(msg.path) != export.ReportDirName(2024, 2) {
		t.Fatalf("unexpected dir %s", msg.path)
	}

	a, _ = send(t, a, msg)
	if !strings.Contains(a.status, "Exported 7 charts") {
		t.Fatalf("unexpected status %q", a.status)
	}
}

func TestAppExportBadDir(t *testing.T) {
	f := newFixture(t)
	a := loadedApp(t, f)
	a.exportDir = "/nonexistent/dir"

	st, ok := a.doExport(export.CSV)().(statusMsg)
	if !ok || !st.isError {
		t.Fatal("bad export dir should report an error")
	}
}

func TestAppViewStates(t *testing.T) {
	f := newFixture(t)
	a := loadedApp(t, f)
	a, _ = send(t, a, tea.WindowSizeMsg{Width: 140, Height: 50})

	for i := range viewNames {
		a.activeView = viewState(i)
		output := a.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", i)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range append(viewNames, "All plants") {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())
	// Width 0 means not yet sized
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, t.TempDir())
	app.width = 120
	app.height = 40

	app, _ = send(t, app, statusMsg{text: "test status", isError: true})
	if !app.statusErr {
		t.Fatal("error status should be flagged")
	}
	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		w    int
		want string
	}{
		{"Alice", 10, "Alice"},
		{"Alexandria", 5, "Alex…"},
		{"Zoë Åberg", 4, "Zoë…"},
		{"ab", 1, "a"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.w); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}
}

func TestBar(t *testing.T) {
	if bar(0, 10, 20) != "" || bar(3, 0, 20) != "" {
		t.Fatal("zero counts draw nothing")
	}
	if got := bar(10, 10, 20); got != strings.Repeat("█", 20) {
		t.Fatal("maximum should fill the width")
	}
	if got := bar(1, 100, 20); got != "█" {
		t.Fatal("small counts still show one block")
	}
}

func TestPlantLabel(t *testing.T) {
	plants := []absence.Plant{{ID: "p1", Name: "North"}}
	if plantLabel(plants, absence.AllPlants) != "All plants" {
		t.Fatal("all")
	}
	if plantLabel(plants, "p1") != "North" {
		t.Fatal("known plant")
	}
	if plantLabel(plants, "p2") != store.UnknownPlant {
		t.Fatal("unknown plant")
	}
}

func TestFormatHours(t *testing.T) {
	if got := formatHours(decimal.NewFromInt(8)); got != "8.0h" {
		t.Fatalf("got %q", got)
	}
	if got := formatHours(decimal.NewFromFloat(14.5)); got != "14.5h" {
		t.Fatalf("got %q", got)
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != 4 {
		t.Fatalf("expected 4 view names, got %d", len(viewNames))
	}
	if viewNames[viewDaily] != "Daily" || viewNames[viewPlants] != "Plants" {
		t.Fatal("view names out of order")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test: rendering must not panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"planned", func() string { return typeStyle(absence.Planned).Render("test") }},
		{"unplanned", func() string { return typeStyle(absence.Unplanned).Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"statCard", func() string { return statCard("Total", "3", "+50%") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}

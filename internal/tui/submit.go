package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/sadopc/absentee/internal/absence"
	"github.com/sadopc/absentee/internal/dates"
	"github.com/sadopc/absentee/internal/store"
)

var errNoPlants = errors.New("add a plant on the Plants tab first")

type submitModel struct {
	store  *store.Store
	width  int
	height int

	today   string
	plants  []absence.Plant
	plantID string // preselected plant

	formActive bool
	form       *huh.Form
	editingID  string

	// Form field pointers (survive value copies)
	formName     *string
	formPlant    *string
	formDate     *string
	formType     *absence.Type
	formLabor    *absence.LaborType
	formShift    *absence.Shift
	formReason   *absence.Reason
	formDuration *absence.Duration
	formHours    *string
	formNotes    *string
}

func newSubmitModel(s *store.Store, today string) submitModel {
	name, plant, date, hours, notes := "", "", today, "", ""
	typ, labor, shift := absence.Planned, absence.Direct, absence.FirstShift
	reason, dur := absence.Vacation, absence.Full
	return submitModel{
		store:        s,
		today:        today,
		formName:     &name,
		formPlant:    &plant,
		formDate:     &date,
		formType:     &typ,
		formLabor:    &labor,
		formShift:    &shift,
		formReason:   &reason,
		formDuration: &dur,
		formHours:    &hours,
		formNotes:    &notes,
	}
}

func (m *submitModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *submitModel) setPlants(plants []absence.Plant, filter string) {
	m.plants = plants
	m.plantID = ""
	if hasPlant(plants, filter) {
		m.plantID = filter
	}
}

func (m submitModel) update(msg tea.Msg) (submitModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.New), key.Matches(msg, keys.Enter):
			return m.newForm()
		}
	}
	return m, nil
}

// newForm opens an empty form.
func (m submitModel) newForm() (submitModel, tea.Cmd) {
	if len(m.plants) == 0 {
		return m, func() tea.Msg { return errStatus("Cannot submit", errNoPlants) }
	}
	plant := m.plants[0].ID
	if m.plantID != "" {
		plant = m.plantID
	}
	m.editingID = ""
	m.load(absence.Record{
		PlantID:   plant,
		Date:      m.today,
		Type:      absence.Planned,
		LaborType: absence.Direct,
		Shift:     absence.FirstShift,
		Reason:    absence.Vacation,
		Duration:  absence.Full,
	})
	return m.showForm()
}

// edit opens the form on an existing record.
func (m submitModel) edit(rec absence.Record) (submitModel, tea.Cmd) {
	m.editingID = rec.ID
	m.load(rec)
	return m.showForm()
}

func (m submitModel) load(rec absence.Record) {
	*m.formName = rec.EmployeeName
	*m.formPlant = rec.PlantID
	*m.formDate = rec.Date
	*m.formType = rec.Type
	*m.formLabor = rec.LaborType
	*m.formShift = rec.Shift
	*m.formReason = rec.Reason
	*m.formDuration = rec.Duration
	*m.formHours = ""
	if rec.Duration == absence.Custom {
		*m.formHours = decimal.NewFromFloat(rec.DurationHours).String()
	}
	*m.formNotes = rec.Notes
}

func (m submitModel) showForm() (submitModel, tea.Cmd) {
	plantOpts := make([]huh.Option[string], 0, len(m.plants)+1)
	for _, p := range m.plants {
		plantOpts = append(plantOpts, huh.NewOption(p.Name, p.ID))
	}
	// An edited record may point at a removed plant.
	if !hasPlant(m.plants, *m.formPlant) && *m.formPlant != "" {
		plantOpts = append(plantOpts, huh.NewOption(store.UnknownPlant, *m.formPlant))
	}

	typeOpts := []huh.Option[absence.Type]{
		huh.NewOption(absence.TypeLabel(absence.Planned), absence.Planned),
		huh.NewOption(absence.TypeLabel(absence.Unplanned), absence.Unplanned),
	}
	laborOpts := []huh.Option[absence.LaborType]{
		huh.NewOption(absence.LaborLabel(absence.Direct), absence.Direct),
		huh.NewOption(absence.LaborLabel(absence.Indirect), absence.Indirect),
	}
	shiftOpts := []huh.Option[absence.Shift]{
		huh.NewOption(absence.ShiftLabel(absence.FirstShift), absence.FirstShift),
		huh.NewOption(absence.ShiftLabel(absence.SecondShift), absence.SecondShift),
	}
	reasonOpts := make([]huh.Option[absence.Reason], 0, len(absence.Reasons))
	for _, r := range absence.Reasons {
		reasonOpts = append(reasonOpts, huh.NewOption(absence.ReasonLabel(r), r))
	}
	durOpts := make([]huh.Option[absence.Duration], 0, len(absence.Durations))
	for _, d := range absence.Durations {
		durOpts = append(durOpts, huh.NewOption(absence.DurationLabel(d), d))
	}

	dur := m.formDuration
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Employee name").Value(m.formName).Validate(required),
			huh.NewSelect[string]().Title("Plant").Options(plantOpts...).Value(m.formPlant),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(m.formDate).Validate(validDate),
		).Title("Employee"),
		huh.NewGroup(
			huh.NewSelect[absence.Type]().Title("Type").Options(typeOpts...).Value(m.formType),
			huh.NewSelect[absence.Reason]().Title("Reason").Options(reasonOpts...).Value(m.formReason),
			huh.NewSelect[absence.LaborType]().Title("Labor type").Options(laborOpts...).Value(m.formLabor),
			huh.NewSelect[absence.Shift]().Title("Shift").Options(shiftOpts...).Value(m.formShift),
		).Title("Absence"),
		huh.NewGroup(
			huh.NewSelect[absence.Duration]().Title("Duration").Options(durOpts...).Value(m.formDuration),
			huh.NewText().Title("Notes").Value(m.formNotes),
		).Title("Duration"),
		huh.NewGroup(
			huh.NewInput().Title("Hours").Value(m.formHours).Validate(validHours),
		).Title("Custom duration").WithHideFunc(func() bool { return *dur != absence.Custom }),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validDate(s string) error {
	_, err := dates.Parse(strings.TrimSpace(s))
	return err
}

func validHours(s string) error {
	h, err := parseHours(s)
	if err != nil {
		return err
	}
	if h <= 0 || h > 24 {
		return errors.New("hours must be between 0 and 24")
	}
	return nil
}

func parseHours(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return d.InexactFloat64(), nil
}

func (m submitModel) updateForm(msg tea.Msg) (submitModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			m.editingID = ""
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.formActive = false
		m.form = nil
		rec, err := m.record()
		if err != nil {
			return m, func() tea.Msg { return errStatus("Invalid absence", err) }
		}
		id := m.editingID
		m.editingID = ""
		return m, m.save(rec, id)
	case huh.StateAborted:
		m.formActive = false
		m.form = nil
		m.editingID = ""
		return m, nil
	}
	return m, cmd
}

// record assembles a normalized record from the form fields.
func (m submitModel) record() (absence.Record, error) {
	rec := absence.Record{
		EmployeeName: *m.formName,
		PlantID:      *m.formPlant,
		Date:         strings.TrimSpace(*m.formDate),
		Type:         *m.formType,
		LaborType:    *m.formLabor,
		Shift:        *m.formShift,
		Reason:       *m.formReason,
		Duration:     *m.formDuration,
		Notes:        *m.formNotes,
	}
	if rec.Duration == absence.Custom {
		h, err := parseHours(*m.formHours)
		if err != nil {
			return rec, &absence.ValidationError{Field: "duration_hours", Reason: err.Error()}
		}
		rec.DurationHours = h
	}
	return absence.Normalize(rec)
}

func (m submitModel) save(rec absence.Record, id string) tea.Cmd {
	return func() tea.Msg {
		var (
			saved *absence.Record
			err   error
		)
		if id == "" {
			saved, err = m.store.AddAbsence(rec)
		} else {
			saved, err = m.store.UpdateAbsence(id, rec)
		}
		if err != nil {
			return errStatus("Save absence", err)
		}
		return recordSavedMsg{record: saved, edited: id != ""}
	}
}

func (m submitModel) view() string {
	w := m.width - 4

	title := titleStyle.Render("Submit Absence")
	if m.editingID != "" {
		title = titleStyle.Render("Edit Absence")
	}

	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View(), "", mutedStyle.Render("  esc: cancel")),
		)
	}

	hint := mutedStyle.Render("Press n or enter to record an absence")
	if len(m.plants) == 0 {
		hint = warningStyle.Render("No plants yet. Press 4 to add one.")
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", hint))
}

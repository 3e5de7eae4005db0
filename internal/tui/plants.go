package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/absentee/internal/absence"
	"github.com/sadopc/absentee/internal/report"
	"github.com/sadopc/absentee/internal/store"
)

type plantsModel struct {
	store  *store.Store
	width  int
	height int

	plants []absence.Plant
	counts map[string]int
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "add", "remove", "clear"
	removing   absence.Plant

	// Form field pointers (survive value copies)
	formName    *string
	formConfirm *bool
}

func newPlantsModel(s *store.Store) plantsModel {
	name, confirm := "", false
	return plantsModel{
		store:       s,
		formName:    &name,
		formConfirm: &confirm,
	}
}

func (p *plantsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type plantsDataMsg struct {
	counts map[string]int
}

// refresh counts the absences recorded against each plant.
func (p plantsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		records, err := p.store.QueryRecords(absence.Filter{})
		if err != nil {
			return errStatus("Count absences", err)
		}
		t := report.CountByPlant(records)
		counts := make(map[string]int, t.Len())
		for _, id := range t.Keys() {
			counts[id] = t.Count(id)
		}
		return plantsDataMsg{counts: counts}
	}
}

func (p plantsModel) update(msg tea.Msg) (plantsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case plantsDataMsg:
		p.counts = msg.counts
		if p.cursor >= len(p.plants) {
			p.cursor = max(0, len(p.plants)-1)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.plants)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New):
			return p.showAddForm()
		case key.Matches(msg, keys.Delete):
			if p.cursor < len(p.plants) {
				return p.showRemoveForm(p.plants[p.cursor])
			}
		case key.Matches(msg, keys.Clear):
			return p.showClearForm()
		}
	}
	return p, nil
}

func (p plantsModel) showAddForm() (plantsModel, tea.Cmd) {
	*p.formName = ""
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Plant name").Value(p.formName).Validate(required),
		),
	).WithShowHelp(true).WithShowErrors(true)
	p.formType = "add"
	p.formActive = true
	return p, p.form.Init()
}

func (p plantsModel) showRemoveForm(plant absence.Plant) (plantsModel, tea.Cmd) {
	*p.formConfirm = false
	p.removing = plant
	desc := "No absences reference this plant."
	if n := p.counts[plant.ID]; n > 0 {
		desc = fmt.Sprintf("%d absences will show the plant as %q.", n, store.UnknownPlant)
	}
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove %s?", plant.Name)).
				Description(desc).
				Affirmative("Remove").
				Negative("Cancel").
				Value(p.formConfirm),
		),
	).WithShowHelp(true)
	p.formType = "remove"
	p.formActive = true
	return p, p.form.Init()
}

func (p plantsModel) showClearForm() (plantsModel, tea.Cmd) {
	*p.formConfirm = false
	total := 0
	for _, n := range p.counts {
		total += n
	}
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear all absences?").
				Description(fmt.Sprintf("%d absences will be deleted. Plants are kept.", total)).
				Affirmative("Clear").
				Negative("Cancel").
				Value(p.formConfirm),
		),
	).WithShowHelp(true)
	p.formType = "clear"
	p.formActive = true
	return p, p.form.Init()
}

func (p plantsModel) updateForm(msg tea.Msg) (plantsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	switch p.form.State {
	case huh.StateCompleted:
		p.formActive = false
		p.form = nil
		switch p.formType {
		case "add":
			return p, p.createPlant(*p.formName)
		case "remove":
			if *p.formConfirm {
				return p, p.removePlant(p.removing)
			}
		}
		return p, nil
	case huh.StateAborted:
		p.formActive = false
		p.form = nil
		return p, nil
	}
	return p, cmd
}

func (p plantsModel) createPlant(name string) tea.Cmd {
	return func() tea.Msg {
		plant, err := p.store.CreatePlant(name)
		if err != nil {
			return errStatus("Add plant", err)
		}
		return plantChangedMsg{text: "Added plant " + plant.Name}
	}
}

func (p plantsModel) removePlant(plant absence.Plant) tea.Cmd {
	return func() tea.Msg {
		if err := p.store.RemovePlant(plant.ID); err != nil {
			return errStatus("Remove plant", err)
		}
		return plantChangedMsg{text: "Removed plant " + plant.Name}
	}
}

func (p plantsModel) clearAbsences() tea.Cmd {
	return func() tea.Msg {
		if err := p.store.ClearAbsences(); err != nil {
			return errStatus("Clear absences", err)
		}
		return plantChangedMsg{text: "Cleared all absences"}
	}
}

func (p plantsModel) view() string {
	w := p.width - 4
	title := titleStyle.Render("Plants")

	if p.formActive && p.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View()),
		)
	}

	var rows []string
	rows = append(rows, title, "")
	if len(p.plants) == 0 {
		rows = append(rows, mutedStyle.Render("  No plants yet. Press n to add one."))
	}
	for i, plant := range p.plants {
		prefix := "  "
		style := normalItemStyle
		if i == p.cursor {
			prefix = "> "
			style = selectedItemStyle
		}
		count := mutedStyle.Render(fmt.Sprintf("%d absences", p.counts[plant.ID]))
		rows = append(rows, style.Render(prefix+pad(plant.Name, 24))+" "+count)
	}
	rows = append(rows, "", mutedStyle.Render("  n: add plant  d: remove plant  X: clear absences"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/absentee/internal/absence"
	"github.com/sadopc/absentee/internal/dates"
	"github.com/sadopc/absentee/internal/export"
	"github.com/sadopc/absentee/internal/report"
	"github.com/sadopc/absentee/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store     *store.Store
	agg       *report.Aggregator
	exportDir string
	today     string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	filterPicking bool
	filterCursor  int

	plants      []absence.Plant
	plantFilter string

	daily      dailyModel
	monthly    monthlyModel
	submit     submitModel
	plantsView plantsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, exportDir string) App {
	return newApp(s, exportDir, dates.Today(time.Now()))
}

func newApp(s *store.Store, exportDir, today string) App {
	h := help.New()
	h.ShowAll = false

	agg := report.New(s)
	return App{
		store:       s,
		agg:         agg,
		exportDir:   exportDir,
		today:       today,
		activeView:  viewDaily,
		plantFilter: absence.AllPlants,
		daily:       newDailyModel(agg, s, today),
		monthly:     newMonthlyModel(agg, today),
		submit:      newSubmitModel(s, today),
		plantsView:  newPlantsModel(s),
		help:        h,
	}
}

func (a App) Init() tea.Cmd {
	return a.loadPlants()
}

// loadPlants reads the plant list and the saved filter. Every data view
// is refreshed once the result arrives.
func (a App) loadPlants() tea.Cmd {
	return func() tea.Msg {
		plants, err := a.store.ListPlants()
		if err != nil {
			return errStatus("Load plants", err)
		}
		return plantsLoadedMsg{plants: plants, filter: a.store.PlantFilter()}
	}
}

func (a App) setFilter(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.SetSetting(store.SettingPlantFilter, id); err != nil {
			return errStatus("Save filter", err)
		}
		return DataChangedMsg{}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.daily.setSize(a.width, contentHeight)
		a.monthly.setSize(a.width, contentHeight)
		a.submit.setSize(a.width, contentHeight)
		a.plantsView.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.filterPicking {
			return a.updateFilterPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Filter):
			a.filterPicking = true
			a.filterCursor = a.filterIndex()
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewDaily)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewMonthly)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewSubmit)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewPlants)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case DataChangedMsg:
		return a, a.loadPlants()

	case plantsLoadedMsg:
		a.plants = msg.plants
		a.plantFilter = msg.filter
		if a.plantFilter != absence.AllPlants && !hasPlant(a.plants, a.plantFilter) {
			a.plantFilter = absence.AllPlants
		}
		a.daily.plantID = a.plantFilter
		a.monthly.plantID = a.plantFilter
		a.submit.setPlants(a.plants, a.plantFilter)
		a.plantsView.plants = a.plants
		return a, tea.Batch(a.daily.refresh(), a.monthly.refresh(), a.plantsView.refresh())

	case recordSavedMsg:
		verb := "Added"
		if msg.edited {
			verb = "Updated"
		}
		a.status = fmt.Sprintf("%s absence for %s", verb, msg.record.EmployeeName)
		a.statusErr = false
		a.daily.date = msg.record.Date
		a.activeView = viewDaily
		return a, a.loadPlants()

	case recordDeletedMsg:
		a.status = "Deleted absence for " + msg.employee
		a.statusErr = false
		return a, a.loadPlants()

	case plantChangedMsg:
		a.status = msg.text
		a.statusErr = false
		return a, a.loadPlants()

	case editRecordMsg:
		a.activeView = viewSubmit
		var cmd tea.Cmd
		a.submit, cmd = a.submit.edit(msg.record)
		return a, cmd

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		if msg.files > 1 {
			a.status = fmt.Sprintf("Exported %d charts to %s", msg.files, msg.path)
		}
		a.statusErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	if v == viewSubmit {
		if a.submit.formActive {
			return a, nil
		}
		var cmd tea.Cmd
		a.submit, cmd = a.submit.newForm()
		return a, cmd
	}
	return a, a.refreshCurrentView()
}

// updateActiveView routes a message to the visible view. Data messages
// are routed by type so that views refresh while hidden.
func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.(type) {
	case dailyDataMsg:
		a.daily, cmd = a.daily.update(msg)
		return a, cmd
	case monthlyDataMsg:
		a.monthly, cmd = a.monthly.update(msg)
		return a, cmd
	case plantsDataMsg:
		a.plantsView, cmd = a.plantsView.update(msg)
		return a, cmd
	}

	switch a.activeView {
	case viewDaily:
		a.daily, cmd = a.daily.update(msg)
	case viewMonthly:
		a.monthly, cmd = a.monthly.update(msg)
	case viewSubmit:
		a.submit, cmd = a.submit.update(msg)
	case viewPlants:
		a.plantsView, cmd = a.plantsView.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDaily:
		return a.daily.confirming
	case viewSubmit:
		return a.submit.formActive
	case viewPlants:
		return a.plantsView.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDaily:
		return a.daily.refresh()
	case viewMonthly:
		return a.monthly.refresh()
	case viewPlants:
		return a.plantsView.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDaily:
		content = a.daily.view()
	case viewMonthly:
		content = a.monthly.view()
	case viewSubmit:
		content = a.submit.view()
	case viewPlants:
		content = a.plantsView.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	switch {
	case a.exportPicking:
		content = a.renderPicker("Export Format", a.exportOptions(), a.exportCursor, "enter: export  esc: cancel")
	case a.filterPicking:
		content = a.renderPicker("Plant Filter", a.filterOptions(), a.filterCursor, "enter: apply  esc: cancel")
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("absentee")
	filter := highlightStyle.Render("  " + plantLabel(a.plants, a.plantFilter))
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(filter)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, filter, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(status)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderPicker(title string, options []string, cursor int, hint string) string {
	var rows []string
	rows = append(rows, titleStyle.Render(title))
	rows = append(rows, "")
	for i, o := range options {
		prefix := "  "
		style := normalItemStyle
		if i == cursor {
			prefix = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(prefix+o))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  "+hint))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// --- Plant filter ---

func (a App) filterOptions() []string {
	opts := []string{plantLabel(nil, absence.AllPlants)}
	for _, p := range a.plants {
		opts = append(opts, p.Name)
	}
	return opts
}

func (a App) filterIndex() int {
	for i, p := range a.plants {
		if p.ID == a.plantFilter {
			return i + 1
		}
	}
	return 0
}

func (a App) updateFilterPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.filterCursor > 0 {
			a.filterCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.filterCursor < len(a.plants) {
			a.filterCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.filterPicking = false
		id := absence.AllPlants
		if a.filterCursor > 0 {
			id = a.plants[a.filterCursor-1].ID
		}
		return a, a.setFilter(id)
	case key.Matches(msg, keys.Back):
		a.filterPicking = false
	}
	return a, nil
}

// --- Export ---

func (a App) exportOptions() []string {
	scope := "month"
	if a.activeView == viewDaily {
		scope = "day"
	}
	opts := make([]string, 0, len(export.Formats))
	for _, f := range export.Formats {
		switch f {
		case export.SVG:
			opts = append(opts, "SVG charts (month)")
		default:
			opts = append(opts, fmt.Sprintf("%s (%s)", f, scope))
		}
	}
	return opts
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport writes the records behind the visible view: the selected day
// on the Daily tab, the selected month everywhere else.
func (a App) doExport(format export.Format) tea.Cmd {
	daily := a.activeView == viewDaily
	date := a.daily.date
	year, month0 := a.monthly.year, a.monthly.month0
	plantID := a.plantFilter
	plants := export.PlantNames(a.plants)

	return func() tea.Msg {
		if format == export.SVG {
			rep, err := a.agg.Monthly(year, month0, plantID)
			if err != nil {
				return errStatus("Export error", err)
			}
			dir := filepath.Join(a.exportDir, export.ReportDirName(year, month0))
			paths, err := export.ToSVG(rep, a.today, dir)
			if err != nil {
				return errStatus("SVG error", err)
			}
			return exportDoneMsg{path: dir, files: len(paths)}
		}

		filter := absence.ForDate(date, plantID)
		name := export.DayFileName(date, format)
		if !daily {
			from, to := dates.MonthRange(year, month0)
			filter = absence.ForRange(from, to, plantID)
			name = export.MonthFileName(year, month0, format)
		}
		records, err := a.store.QueryRecords(filter)
		if err != nil {
			return errStatus("Export error", err)
		}

		path := filepath.Join(a.exportDir, name)
		switch format {
		case export.CSV:
			err = export.ToCSV(records, plants, path)
		case export.JSON:
			err = export.ToJSON(records, plants, path)
		case export.XLSX:
			err = export.ToXLSX(records, plants, path)
		}
		if err != nil {
			return errStatus(fmt.Sprintf("%s error", format), err)
		}
		return exportDoneMsg{path: path, files: 1}
	}
}

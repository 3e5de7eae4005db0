package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/absentee/internal/absence"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#2563EB")
	colorPlanned   = lipgloss.Color(absence.ColorPlanned)
	colorUnplanned = lipgloss.Color(absence.ColorUnplanned)
	colorMuted     = lipgloss.Color("#64748B")
	colorSuccess   = lipgloss.Color("#10B981")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorFg        = lipgloss.Color("#E2E8F0")
	colorSubtle    = lipgloss.Color("#334155")
	colorHighlight = lipgloss.Color("#93C5FD")
)

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Stat cards
	statStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1).
			MarginRight(1)

	statValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	plannedStyle = lipgloss.NewStyle().
			Foreground(colorPlanned)

	unplannedStyle = lipgloss.NewStyle().
			Foreground(colorUnplanned)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorUnplanned)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)

// typeStyle colours text by absence type.
func typeStyle(t absence.Type) lipgloss.Style {
	if t == absence.Unplanned {
		return unplannedStyle
	}
	return plannedStyle
}

// statCard renders a labelled number box.
func statCard(label, value, sub string) string {
	body := mutedStyle.Render(label) + "\n" + statValueStyle.Render(value)
	if sub != "" {
		body += "\n" + mutedStyle.Render(sub)
	}
	return statStyle.Render(body)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/sadopc/absentee/internal/absence"
	"github.com/sadopc/absentee/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDaily viewState = iota
	viewMonthly
	viewSubmit
	viewPlants
)

var viewNames = []string{"Daily", "Monthly", "Submit", "Plants"}

// --- Messages ---

// DataChangedMsg tells the app that the store was written to from outside
// the Update loop. main forwards store notifications as this message.
type DataChangedMsg struct{}

type plantsLoadedMsg struct {
	plants []absence.Plant
	filter string
}

type recordSavedMsg struct {
	record *absence.Record
	edited bool
}

type recordDeletedMsg struct {
	employee string
}

// editRecordMsg asks the app to open the submit form on an existing record.
type editRecordMsg struct {
	record absence.Record
}

type plantChangedMsg struct {
	text string
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path  string
	files int
}

// --- Helpers ---

func errStatus(prefix string, err error) statusMsg {
	return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
}

func formatHours(d decimal.Decimal) string {
	return d.StringFixed(1) + "h"
}

// truncate cuts s to w cells, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}

// bar renders count as a run of blocks scaled against max.
func bar(count, top, width int) string {
	if top <= 0 || count <= 0 || width <= 0 {
		return ""
	}
	n := count * width / top
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// plantLabel names a plant filter value for the header.
func plantLabel(plants []absence.Plant, id string) string {
	if id == "" || id == absence.AllPlants {
		return "All plants"
	}
	if p, ok := lo.Find(plants, func(p absence.Plant) bool { return p.ID == id }); ok {
		return p.Name
	}
	return store.UnknownPlant
}

func hasPlant(plants []absence.Plant, id string) bool {
	return lo.ContainsBy(plants, func(p absence.Plant) bool { return p.ID == id })
}

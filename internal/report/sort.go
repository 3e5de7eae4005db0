package report

import (
	"slices"
	"strings"

	"github.com/sadopc/absentee/internal/absence"
)

// Column is a sortable column of the daily table.
type Column string

const (
	ByEmployee Column = "employee"
	ByPlant    Column = "plant"
	ByType     Column = "type"
	ByLabor    Column = "labor"
	ByShift    Column = "shift"
	ByReason   Column = "reason"
	ByDuration Column = "duration"
)

// Columns lists the sortable columns in table order.
var Columns = []Column{ByEmployee, ByPlant, ByType, ByLabor, ByShift, ByReason, ByDuration}

// Sort is the daily table order. It is passed to every Daily call rather
// than kept by the aggregator.
type Sort struct {
	Column Column
	Desc   bool
}

func DefaultSort() Sort {
	return Sort{Column: ByEmployee}
}

// Toggle flips the direction when col is already the sort column and
// otherwise sorts ascending by col.
func (s Sort) Toggle(col Column) Sort {
	if s.Column == col {
		return Sort{Column: col, Desc: !s.Desc}
	}
	return Sort{Column: col}
}

// DailyRow is a record with its resolved plant name.
type DailyRow struct {
	absence.Record
	Plant string
}

func (r DailyRow) sortKey(c Column) string {
	var v string
	switch c {
	case ByPlant:
		v = r.Plant
	case ByType:
		v = string(r.Type)
	case ByLabor:
		v = string(r.LaborType)
	case ByShift:
		v = string(r.Shift)
	case ByReason:
		v = string(r.Reason)
	case ByDuration:
		v = string(r.Duration)
	default:
		v = r.EmployeeName
	}
	return strings.ToLower(v)
}

// SortRows orders rows case-insensitively by s. Equal keys keep their
// input order in both directions.
func SortRows(rows []DailyRow, s Sort) {
	slices.SortStableFunc(rows, func(a, b DailyRow) int {
		c := strings.Compare(a.sortKey(s.Column), b.sortKey(s.Column))
		if s.Desc {
			return -c
		}
		return c
	})
}

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sadopc/absentee/internal/absence"
	"github.com/sadopc/absentee/internal/report"
)

const (
	absenceSheet = "Absences"
	summarySheet = "Summary"
)

// ToXLSX writes the records to an Absences sheet and their reason and
// plant counts to a Summary sheet.
func ToXLSX(records []absence.Record, plants map[string]string, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", absenceSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(absenceSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(absenceSheet, "A1", "H1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, r := range records {
		values := row(r, plants)
		cells := make([]any, len(values))
		for j, v := range values {
			cells[j] = v
		}
		cells[6] = r.DurationHours
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(absenceSheet, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(absenceSheet, "A", "H", 16); err != nil {
		return err
	}

	if err := writeSummary(f, records, plants, bold); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx file: %w", err)
	}
	done("xlsx", path, len(records))
	return nil
}

func writeSummary(f *excelize.File, records []absence.Record, plants map[string]string, bold int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	planned, unplanned := report.CountByType(records)
	rows := [][]any{
		{"Total", len(records)},
		{"Planned", planned},
		{"Unplanned", unplanned},
		{"Unplanned Rate", report.RateOf(unplanned, len(records)).String()},
		{"Hours Lost", report.HoursLost(records).InexactFloat64()},
		{},
		{"Reason", "Count"},
	}
	reasons := report.CountByReason(records)
	for _, e := range reasons.Ranked(0) {
		rows = append(rows, []any{absence.ReasonLabel(e.Key), e.Count})
	}
	rows = append(rows, []any{}, []any{"Plant", "Count"})
	for _, e := range report.CountByPlant(records).Ranked(0) {
		rows = append(rows, []any{plantName(plants, e.Key), e.Count})
	}

	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &r); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
		if r[0] == "Reason" || r[0] == "Plant" {
			if err := f.SetCellStyle(summarySheet, cell, cell, bold); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(summarySheet, "A", "A", 20)
}

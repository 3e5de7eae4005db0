package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/absentee/internal/absence"
)

// Columns is the header row shared by the CSV and XLSX exports.
var Columns = []string{"Date", "Employee", "Plant", "Type", "Reason", "Duration", "Hours", "Notes"}

// PlantNames indexes plants by id.
func PlantNames(plants []absence.Plant) map[string]string {
	names := make(map[string]string, len(plants))
	for _, p := range plants {
		names[p.ID] = p.Name
	}
	return names
}

// plantName falls back to the raw id for plants that no longer exist.
func plantName(plants map[string]string, id string) string {
	if name, ok := plants[id]; ok {
		return name
	}
	return id
}

func row(r absence.Record, plants map[string]string) []string {
	return []string{
		r.Date,
		r.EmployeeName,
		plantName(plants, r.PlantID),
		absence.TypeLabel(r.Type),
		absence.ReasonLabel(r.Reason),
		absence.DurationLabel(r.Duration),
		formatHours(r.DurationHours),
		r.Notes,
	}
}

func ToCSV(records []absence.Record, plants map[string]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(Columns); err != nil {
		return err
	}

	for _, r := range records {
		if err := w.Write(row(r, plants)); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	done("csv", path, len(records))
	return nil
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/absentee/internal/absence"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Absences   []jsonAbsence `json:"absences"`
}

type jsonAbsence struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	EmployeeName  string  `json:"employee_name"`
	PlantID       string  `json:"plant_id"`
	Plant         string  `json:"plant"`
	Type          string  `json:"type"`
	LaborType     string  `json:"labor_type"`
	Shift         string  `json:"shift"`
	Reason        string  `json:"reason"`
	Duration      string  `json:"duration"`
	DurationHours float64 `json:"duration_hours"`
	Notes         string  `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

func ToJSON(records []absence.Record, plants map[string]string, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(records),
	}

	for _, r := range records {
		var created string
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.UTC().Format(time.RFC3339)
		}
		export.Absences = append(export.Absences, jsonAbsence{
			ID:            r.ID,
			Date:          r.Date,
			EmployeeName:  r.EmployeeName,
			PlantID:       r.PlantID,
			Plant:         plantName(plants, r.PlantID),
			Type:          string(r.Type),
			LaborType:     string(r.LaborType),
			Shift:         string(r.Shift),
			Reason:        string(r.Reason),
			Duration:      string(r.Duration),
			DurationHours: r.DurationHours,
			Notes:         r.Notes,
			CreatedAt:     created,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	done("json", path, len(records))
	return nil
}

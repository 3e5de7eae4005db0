package absence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() Record {
	return Record{
		EmployeeName: "  Alice Johnson ",
		PlantID:      "plant-001",
		Date:         "2024-03-05",
		Type:         Planned,
		Reason:       Vacation,
		Duration:     Full,
	}
}

func TestNormalizeDefaults(t *testing.T) {
	r, err := Normalize(validRecord())
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", r.EmployeeName)
	assert.Equal(t, Direct, r.LaborType)
	assert.Equal(t, FirstShift, r.Shift)
	assert.Equal(t, 8.0, r.DurationHours)
}

func TestCanonicalHours(t *testing.T) {
	assert.Equal(t, 8.0, CanonicalHours(Full, 3))
	assert.Equal(t, 4.0, CanonicalHours(HalfAM, 7))
	assert.Equal(t, 4.0, CanonicalHours(HalfPM, 0))
	assert.Equal(t, 2.5, CanonicalHours(Custom, 2.5))
}

func TestValidateRejects(t *testing.T) {
	tests := map[string]struct {
		mutate func(*Record)
		field  string
	}{
		"empty name":        {func(r *Record) { r.EmployeeName = " " }, "employee_name"},
		"no plant":          {func(r *Record) { r.PlantID = "" }, "plant_id"},
		"bad date":          {func(r *Record) { r.Date = "2024-02-31" }, "date"},
		"bad type":          {func(r *Record) { r.Type = "maybe" }, "type"},
		"bad reason":        {func(r *Record) { r.Reason = "holiday" }, "reason"},
		"bad duration":      {func(r *Record) { r.Duration = "week" }, "duration"},
		"custom zero hours": {func(r *Record) { r.Duration = Custom; r.DurationHours = 0 }, "duration_hours"},
		"bad shift":         {func(r *Record) { r.Shift = "3rd" }, "shift"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := validRecord()
			tc.mutate(&r)
			_, err := Normalize(r)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRecord))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestFilterMatch(t *testing.T) {
	records := []Record{
		{ID: "1", PlantID: "p1", Date: "2024-03-01", Type: Planned},
		{ID: "2", PlantID: "p2", Date: "2024-03-15", Type: Unplanned},
		{ID: "3", PlantID: "p1", Date: "2024-03-31", Type: Unplanned},
		{ID: "4", PlantID: "p1", Date: "2024-04-01", Type: Planned},
	}

	ids := func(rs []Record) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(Apply(records, Filter{})))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(Apply(records, Filter{PlantID: AllPlants})))
	assert.Equal(t, []string{"1", "3", "4"}, ids(Apply(records, Filter{PlantID: "p1"})))
	assert.Equal(t, []string{"1", "2", "3"}, ids(Apply(records, ForRange("2024-03-01", "2024-03-31", ""))))
	assert.Equal(t, []string{"3"}, ids(Apply(records, Filter{PlantID: "p1", DateFrom: "2024-03-01", DateTo: "2024-03-31", Type: Unplanned})))
	assert.Equal(t, []string{"2"}, ids(Apply(records, ForDate("2024-03-15", AllPlants))))
	assert.Empty(t, Apply(records, Filter{Date: "2025-01-01"}))
}

func TestLabelFallbacks(t *testing.T) {
	assert.Equal(t, "Family Emergency", ReasonLabel(FamilyEmergency))
	assert.Equal(t, "sabbatical", ReasonLabel("sabbatical"))
	assert.Equal(t, "#94a3b8", ReasonColor("sabbatical"))
	assert.Equal(t, "Half Day (AM)", DurationLabel(HalfAM))
	assert.Equal(t, "fortnight", DurationLabel("fortnight"))
	assert.Equal(t, "Direct", LaborLabel(""))
	assert.Equal(t, "1st", ShiftLabel(""))
}

// Package absence defines the absence record, plants and the filter
// predicate shared by the store and the reports.
package absence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/sadopc/absentee/internal/dates"
)

type Type string

const (
	Planned   Type = "planned"
	Unplanned Type = "unplanned"
)

type LaborType string

const (
	Direct   LaborType = "direct"
	Indirect LaborType = "indirect"
)

type Shift string

const (
	FirstShift  Shift = "1st"
	SecondShift Shift = "2nd"
)

type Reason string

const (
	Vacation        Reason = "vacation"
	Sick            Reason = "sick"
	Personal        Reason = "personal"
	FamilyEmergency Reason = "family_emergency"
	JuryDuty        Reason = "jury_duty"
	Bereavement     Reason = "bereavement"
	Other           Reason = "other"
)

// Reasons lists every reason in display order.
var Reasons = []Reason{Vacation, Sick, Personal, FamilyEmergency, JuryDuty, Bereavement, Other}

type Duration string

const (
	Full   Duration = "full"
	HalfAM Duration = "half_am"
	HalfPM Duration = "half_pm"
	Custom Duration = "custom"
)

var Durations = []Duration{Full, HalfAM, HalfPM, Custom}

type Record struct {
	ID            string
	EmployeeName  string
	PlantID       string
	Date          string
	Type          Type
	LaborType     LaborType
	Shift         Shift
	Reason        Reason
	Duration      Duration
	DurationHours float64
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Plant struct {
	ID   string
	Name string
}

// AllPlants is the plant filter value that disables plant restriction.
const AllPlants = "all"

var ErrInvalidRecord = errors.New("invalid absence record")

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidRecord, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRecord
}

// CanonicalHours returns the hours a duration stands for. Only custom
// durations take the caller's value.
func CanonicalHours(d Duration, supplied float64) float64 {
	switch d {
	case Full:
		return 8
	case HalfAM, HalfPM:
		return 4
	}
	return supplied
}

// Normalize trims text fields, applies defaults and canonical hours, then
// validates the result.
func Normalize(r Record) (Record, error) {
	r.EmployeeName = strings.TrimSpace(r.EmployeeName)
	r.Notes = strings.TrimSpace(r.Notes)
	if r.LaborType == "" {
		r.LaborType = Direct
	}
	if r.Shift == "" {
		r.Shift = FirstShift
	}
	r.DurationHours = CanonicalHours(r.Duration, r.DurationHours)
	return r, Validate(r)
}

func Validate(r Record) error {
	if r.EmployeeName == "" {
		return &ValidationError{Field: "employee_name", Reason: "is required"}
	}
	if r.PlantID == "" {
		return &ValidationError{Field: "plant_id", Reason: "is required"}
	}
	if _, err := dates.Parse(r.Date); err != nil {
		return fmt.Errorf("%w: %w", &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}, err)
	}
	if r.Type != Planned && r.Type != Unplanned {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown value %q", r.Type)}
	}
	if r.LaborType != Direct && r.LaborType != Indirect {
		return &ValidationError{Field: "labor_type", Reason: fmt.Sprintf("unknown value %q", r.LaborType)}
	}
	if r.Shift != FirstShift && r.Shift != SecondShift {
		return &ValidationError{Field: "shift", Reason: fmt.Sprintf("unknown value %q", r.Shift)}
	}
	if !lo.Contains(Reasons, r.Reason) {
		return &ValidationError{Field: "reason", Reason: fmt.Sprintf("unknown value %q", r.Reason)}
	}
	if !lo.Contains(Durations, r.Duration) {
		return &ValidationError{Field: "duration", Reason: fmt.Sprintf("unknown value %q", r.Duration)}
	}
	if r.DurationHours <= 0 {
		return &ValidationError{Field: "duration_hours", Reason: "must be positive"}
	}
	return nil
}

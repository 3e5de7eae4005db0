// Package demo generates a plausible six months of absence history for a
// fresh database.
package demo

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/absentee/internal/absence"
	"github.com/sadopc/absentee/internal/dates"
)

// Months is how many months back, current included, get records.
const Months = 6

const (
	minPerMonth = 15
	maxPerMonth = 40
)

var names = []string{
	"Alice Johnson", "Bob Williams", "Carol Davis", "David Martinez",
	"Emily Chen", "Frank Wilson", "Grace Lee", "Henry Brown",
	"Isabella Taylor", "Jack Anderson", "Karen Thomas", "Leo Jackson",
	"Maria Garcia", "Nathan White", "Olivia Harris", "Patrick Clark",
}

// The repeated entries weight the draw 3:2.
var (
	types      = []absence.Type{absence.Planned, absence.Planned, absence.Planned, absence.Unplanned, absence.Unplanned}
	laborTypes = []absence.LaborType{absence.Direct, absence.Direct, absence.Direct, absence.Indirect, absence.Indirect}
	shifts     = []absence.Shift{absence.FirstShift, absence.FirstShift, absence.FirstShift, absence.SecondShift, absence.SecondShift}
	durations  = []absence.Duration{absence.Full, absence.Full, absence.Full, absence.HalfAM, absence.HalfPM}

	plannedReasons   = []absence.Reason{absence.Vacation, absence.Personal, absence.JuryDuty}
	unplannedReasons = []absence.Reason{absence.Sick, absence.FamilyEmergency, absence.Personal, absence.Other}
)

// Generate returns records for the Months months ending with now's month.
// It returns nil when there are no plants to assign.
func Generate(rng *rand.Rand, now time.Time, plantIDs []string) []absence.Record {
	if len(plantIDs) == 0 {
		return nil
	}
	var out []absence.Record
	year, month0 := now.Year(), int(now.Month())-1
	for back := Months - 1; back >= 0; back-- {
		y, m := dates.AddMonths(year, month0, -back)
		days := dates.DaysInMonth(y, m)
		count := minPerMonth + rng.IntN(maxPerMonth-minPerMonth+1)
		for i := 0; i < count; i++ {
			date := dates.DateOf(y, m, 1+rng.IntN(days))
			typ := pick(rng, types)
			reason := pick(rng, plannedReasons)
			if typ == absence.Unplanned {
				reason = pick(rng, unplannedReasons)
			}
			dur := pick(rng, durations)
			stamp, _ := time.ParseInLocation("2006-01-02T15:04", date+"T08:00", now.Location())
			out = append(out, absence.Record{
				EmployeeName:  pick(rng, names),
				PlantID:       pick(rng, plantIDs),
				Date:          date,
				Type:          typ,
				LaborType:     pick(rng, laborTypes),
				Shift:         pick(rng, shifts),
				Reason:        reason,
				Duration:      dur,
				DurationHours: absence.CanonicalHours(dur, 0),
				CreatedAt:     stamp.UTC(),
				UpdatedAt:     stamp.UTC(),
			})
		}
	}
	return out
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

// Target is the store surface seeding needs.
type Target interface {
	CountAbsences() (int, error)
	ListPlants() ([]absence.Plant, error)
	SeedAbsences(recs []absence.Record) error
}

// SeedIfEmpty fills an empty store and reports how many records it wrote.
// A store that already has records is left alone.
func SeedIfEmpty(t Target, rng *rand.Rand, now time.Time) (int, error) {
	n, err := t.CountAbsences()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	plants, err := t.ListPlants()
	if err != nil {
		return 0, fmt.Errorf("list plants: %w", err)
	}
	recs := Generate(rng, now, lo.Map(plants, func(p absence.Plant, _ int) string { return p.ID }))
	if len(recs) == 0 {
		return 0, nil
	}
	if err := t.SeedAbsences(recs); err != nil {
		return 0, fmt.Errorf("seed demo data: %w", err)
	}
	logrus.WithField("records", len(recs)).Info("seeded demo data")
	return len(recs), nil
}

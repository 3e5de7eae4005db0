// Package report derives the daily and monthly statistics from absence
// records. Every call recomputes from the Source; nothing is cached.
package report

import (
	"fmt"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/absentee/internal/absence"
	"github.com/sadopc/absentee/internal/dates"
	"github.com/sadopc/absentee/internal/metrics"
)

// Source supplies records and plant names.
type Source interface {
	QueryRecords(f absence.Filter) ([]absence.Record, error)
	PlantName(id string) string
	ListPlants() ([]absence.Plant, error)
}

// TrendMonths is the length of the trend series, current month included.
const TrendMonths = 6

type Aggregator struct {
	src Source
}

func New(src Source) *Aggregator {
	return &Aggregator{src: src}
}

type DailyReport struct {
	Date           string
	PlantID        string
	Sort           Sort
	Rows           []DailyRow
	Total          int
	Planned        int
	Unplanned      int
	UnplannedRate  Rate
	PlantsAffected int
	HoursLost      decimal.Decimal
}

// Daily builds the report for one date.
func (a *Aggregator) Daily(date, plantID string, s Sort) (*DailyReport, error) {
	if _, err := dates.Parse(date); err != nil {
		return nil, err
	}
	defer a.observe("daily")()

	records, err := a.src.QueryRecords(absence.ForDate(date, plantID))
	if err != nil {
		return nil, fmt.Errorf("query daily records: %w", err)
	}
	metrics.RecordsScannedTotal.Add(float64(len(records)))

	rows := make([]DailyRow, len(records))
	for i, r := range records {
		rows[i] = DailyRow{Record: r, Plant: a.src.PlantName(r.PlantID)}
	}
	SortRows(rows, s)

	planned, unplanned := CountByType(records)
	rep := &DailyReport{
		Date:           date,
		PlantID:        plantID,
		Sort:           s,
		Rows:           rows,
		Total:          len(records),
		Planned:        planned,
		Unplanned:      unplanned,
		UnplannedRate:  RateOf(unplanned, len(records)),
		PlantsAffected: PlantsAffected(records),
		HoursLost:      HoursLost(records),
	}
	logrus.WithFields(logrus.Fields{
		"date":    date,
		"plant":   plantID,
		"records": rep.Total,
	}).Debug("daily report built")
	return rep, nil
}

// Breakdown is one labelled, coloured share of a report.
type Breakdown struct {
	Key   string
	Label string
	Count int
	Color string
}

// Trend holds planned/unplanned totals per month, oldest first.
type Trend struct {
	Labels    []string
	Planned   []int
	Unplanned []int
}

type MonthlyReport struct {
	Year    int
	Month0  int
	PlantID string
	Records []absence.Record

	Total            int
	Planned          int
	Unplanned        int
	PlannedPct       int
	WorkingDays      int
	AvgPerWorkingDay string
	HoursLost        decimal.Decimal
	Peak             Peak
	TopReason        absence.Reason
	TopReasonCount   int
	Delta            Delta

	ByDay       map[int]int
	Days        []DayStack
	ByWeekday   [7]int
	PeakWeekday int
	Reasons     []Breakdown
	Plants      []Breakdown
	Employees   []Entry[string]
	Trend       Trend
}

// Monthly builds the report for a zero-based month.
func (a *Aggregator) Monthly(year, month0 int, plantID string) (*MonthlyReport, error) {
	defer a.observe("monthly")()

	trend, windows, err := a.trend(year, month0, plantID)
	if err != nil {
		return nil, err
	}
	records := windows[TrendMonths-1]
	prev := windows[TrendMonths-2]

	planned, unplanned := CountByType(records)
	total := len(records)
	working := dates.WorkingDaysInMonth(year, month0)
	byDay := CountByDay(records, year, month0)
	byWeekday := CountByWeekday(records)
	reasons := CountByReason(records)

	rep := &MonthlyReport{
		Year:             year,
		Month0:           month0,
		PlantID:          plantID,
		Records:          records,
		Total:            total,
		Planned:          planned,
		Unplanned:        unplanned,
		WorkingDays:      working,
		AvgPerWorkingDay: AveragePerDay(total, working),
		HoursLost:        HoursLost(records),
		Peak:             PeakDay(byDay, dates.DaysInMonth(year, month0)),
		Delta:            MonthOverMonth(total, len(prev)),
		ByDay:            byDay,
		Days:             DailyStacks(records, year, month0),
		ByWeekday:        byWeekday,
		PeakWeekday:      PeakWeekday(byWeekday),
		Employees:        TopEmployees(records, TopEmployeesLimit),
		Trend:            trend,
	}
	if total > 0 {
		rep.PlannedPct = roundPercent(planned, total)
	}
	if r, c, ok := reasons.Top(); ok {
		rep.TopReason, rep.TopReasonCount = r, c
	}
	for _, r := range reasons.Keys() {
		rep.Reasons = append(rep.Reasons, Breakdown{
			Key:   string(r),
			Label: absence.ReasonLabel(r),
			Count: reasons.Count(r),
			Color: absence.ReasonColor(r),
		})
	}
	if rep.Plants, err = a.plantBreakdown(records); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"month":   dates.MonthYear(year, month0),
		"plant":   plantID,
		"records": total,
	}).Debug("monthly report built")
	return rep, nil
}

// UnplannedPct is the complement of PlannedPct, 0 for an empty month.
func (r *MonthlyReport) UnplannedPct() int {
	if r.Total == 0 {
		return 0
	}
	return 100 - r.PlannedPct
}

// TopReasonLabel is the display label of the top reason, or "-".
func (r *MonthlyReport) TopReasonLabel() string {
	if r.TopReasonCount == 0 {
		return "-"
	}
	return absence.ReasonLabel(r.TopReason)
}

// RecordsOn returns the month's records for one date, in store order.
func (r *MonthlyReport) RecordsOn(date string) []absence.Record {
	return absence.Apply(r.Records, absence.Filter{Date: date})
}

// trend queries the trailing months oldest first and returns their
// records alongside the totals.
func (a *Aggregator) trend(year, month0 int, plantID string) (Trend, [][]absence.Record, error) {
	t := Trend{
		Labels:    make([]string, 0, TrendMonths),
		Planned:   make([]int, 0, TrendMonths),
		Unplanned: make([]int, 0, TrendMonths),
	}
	windows := make([][]absence.Record, 0, TrendMonths)
	for i := TrendMonths - 1; i >= 0; i-- {
		y, m := dates.AddMonths(year, month0, -i)
		from, to := dates.MonthRange(y, m)
		recs, err := a.src.QueryRecords(absence.ForRange(from, to, plantID))
		if err != nil {
			return Trend{}, nil, fmt.Errorf("query %s: %w", dates.MonthYear(y, m), err)
		}
		metrics.RecordsScannedTotal.Add(float64(len(recs)))
		p, u := CountByType(recs)
		t.Labels = append(t.Labels, dates.MonthShort(m))
		t.Planned = append(t.Planned, p)
		t.Unplanned = append(t.Unplanned, u)
		windows = append(windows, recs)
	}
	return t, windows, nil
}

// plantBreakdown lists plants with records by descending count. Ties keep
// the plant list order; ids missing from the list follow in first-seen
// order under their fallback name.
func (a *Aggregator) plantBreakdown(records []absence.Record) ([]Breakdown, error) {
	counts := CountByPlant(records)
	if counts.Len() == 0 {
		return nil, nil
	}
	plants, err := a.src.ListPlants()
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}

	var entries []Entry[string]
	known := make(map[string]bool, len(plants))
	for _, p := range plants {
		known[p.ID] = true
		if c := counts.Count(p.ID); c > 0 {
			entries = append(entries, Entry[string]{Key: p.ID, Count: c})
		}
	}
	for _, id := range counts.Keys() {
		if !known[id] {
			entries = append(entries, Entry[string]{Key: id, Count: counts.Count(id)})
		}
	}
	slices.SortStableFunc(entries, func(x, y Entry[string]) int { return y.Count - x.Count })

	out := make([]Breakdown, 0, len(entries))
	for _, e := range entries {
		out = append(out, Breakdown{
			Key:   e.Key,
			Label: a.src.PlantName(e.Key),
			Count: e.Count,
			Color: absence.ColorPlanned,
		})
	}
	return out, nil
}

func (a *Aggregator) observe(kind string) func() {
	timer := prometheus.NewTimer(metrics.AggregationDurationSeconds.WithLabelValues(kind))
	return func() {
		timer.ObserveDuration()
		metrics.AggregationsTotal.WithLabelValues(kind).Inc()
	}
}

package report

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/absentee/internal/absence"
	"github.com/sadopc/absentee/internal/dates"
)

// CountByDay buckets records of the given month by day of month. Every
// day 1..DaysInMonth is present; records of other months are ignored.
func CountByDay(records []absence.Record, year, month0 int) map[int]int {
	days := dates.DaysInMonth(year, month0)
	out := make(map[int]int, days)
	for d := 1; d <= days; d++ {
		out[d] = 0
	}
	for _, r := range records {
		y, m, d, err := dates.Split(r.Date)
		if err != nil {
			logrus.WithField("date", r.Date).Warn("skipping record with malformed date")
			continue
		}
		if y == year && m == month0 {
			out[d]++
		}
	}
	return out
}

// DayStack is the planned/unplanned split of one day.
type DayStack struct {
	Day       int
	Date      string
	Planned   int
	Unplanned int
}

func (d DayStack) Total() int { return d.Planned + d.Unplanned }

// DailyStacks returns one stack per day of the month, day 1 first.
func DailyStacks(records []absence.Record, year, month0 int) []DayStack {
	days := dates.DaysInMonth(year, month0)
	stacks := lo.Times(days, func(i int) DayStack {
		return DayStack{Day: i + 1, Date: dates.DateOf(year, month0, i+1)}
	})
	for _, r := range records {
		y, m, d, err := dates.Split(r.Date)
		if err != nil || y != year || m != month0 {
			continue
		}
		switch r.Type {
		case absence.Planned:
			stacks[d-1].Planned++
		case absence.Unplanned:
			stacks[d-1].Unplanned++
		}
	}
	return stacks
}

// Peak is the busiest day of a month. Day is 0 when every day is empty.
type Peak struct {
	Day   int
	Count int
}

// PeakDay scans days 1..days ascending; the first strict maximum wins.
func PeakDay(byDay map[int]int, days int) Peak {
	var p Peak
	for d := 1; d <= days; d++ {
		if c := byDay[d]; c > p.Count {
			p = Peak{Day: d, Count: c}
		}
	}
	return p
}

// Label renders "Mar 5 (2)", or "-" for an empty month.
func (p Peak) Label(month0 int) string {
	if p.Count == 0 {
		return "-"
	}
	return fmt.Sprintf("%s %d (%d)", dates.MonthShort(month0), p.Day, p.Count)
}

// CountByWeekday buckets records Sunday=0 through Saturday=6.
func CountByWeekday(records []absence.Record) [7]int {
	var out [7]int
	for _, r := range records {
		wd, err := dates.WeekdayIndex(r.Date)
		if err != nil {
			logrus.WithField("date", r.Date).Warn("skipping record with malformed date")
			continue
		}
		out[wd]++
	}
	return out
}

// PeakWeekday returns the busiest slot, lowest index first on ties, or -1
// when every slot is zero.
func PeakWeekday(counts [7]int) int {
	peak, best := -1, 0
	for i, c := range counts {
		if c > best {
			peak, best = i, c
		}
	}
	return peak
}

func CountByReason(records []absence.Record) *Tally[absence.Reason] {
	return TallyBy(records, func(r absence.Record) absence.Reason { return r.Reason })
}

func CountByPlant(records []absence.Record) *Tally[string] {
	return TallyBy(records, func(r absence.Record) string { return r.PlantID })
}

func CountByEmployee(records []absence.Record) *Tally[string] {
	return TallyBy(records, func(r absence.Record) string { return r.EmployeeName })
}

// TopEmployeesLimit is the length of the top absentees list.
const TopEmployeesLimit = 5

func TopEmployees(records []absence.Record, n int) []Entry[string] {
	return CountByEmployee(records).Ranked(n)
}

// CountByType returns the planned and unplanned counts.
func CountByType(records []absence.Record) (planned, unplanned int) {
	planned = lo.CountBy(records, func(r absence.Record) bool { return r.Type == absence.Planned })
	unplanned = lo.CountBy(records, func(r absence.Record) bool { return r.Type == absence.Unplanned })
	return planned, unplanned
}

// PlantsAffected counts distinct plant ids.
func PlantsAffected(records []absence.Record) int {
	return len(lo.Uniq(lo.Map(records, func(r absence.Record, _ int) string { return r.PlantID })))
}

// HoursLost sums DurationHours exactly.
func HoursLost(records []absence.Record) decimal.Decimal {
	return lo.Reduce(records, func(sum decimal.Decimal, r absence.Record, _ int) decimal.Decimal {
		return sum.Add(decimal.NewFromFloat(r.DurationHours))
	}, decimal.Zero)
}

// AveragePerDay formats total/days to one decimal, "0" when days is 0.
func AveragePerDay(total, days int) string {
	if days <= 0 {
		return "0"
	}
	return decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(days))).StringFixed(1)
}

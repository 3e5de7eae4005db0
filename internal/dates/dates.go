// Package dates holds the calendar arithmetic used by the reports. Dates
// travel through the application as ISO "YYYY-MM-DD" strings and months are
// zero-based (January = 0).
package dates

import (
	"errors"
	"fmt"
	"time"
)

const layout = "2006-01-02"

var ErrMalformedDate = errors.New("malformed date")

// DateError reports the input that failed to parse.
type DateError struct {
	Input string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Input)
}

func (e *DateError) Unwrap() error {
	return e.Err
}

var (
	monthNames   = []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}
	weekdayShort = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
)

// Parse returns the date at local noon. Noon keeps the weekday stable when
// the local zone is behind UTC.
func Parse(date string) (time.Time, error) {
	if len(date) != len(layout) {
		return time.Time{}, &DateError{Input: date, Err: ErrMalformedDate}
	}
	t, err := time.ParseInLocation(layout, date, time.Local)
	if err != nil {
		return time.Time{}, &DateError{Input: date, Err: ErrMalformedDate}
	}
	return t.Add(12 * time.Hour), nil
}

func Format(t time.Time) string {
	return t.Format(layout)
}

// Today returns now as an ISO date in now's location.
func Today(now time.Time) string {
	return Format(now)
}

// DateOf builds the ISO string for a day of a zero-based month.
func DateOf(year, month0, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month0+1, day)
}

// DaysInMonth uses the "day 0 of the next month" rule.
func DaysInMonth(year, month0 int) int {
	return time.Date(year, time.Month(month0+2), 0, 12, 0, 0, 0, time.Local).Day()
}

func FirstWeekdayOfMonth(year, month0 int) int {
	return int(time.Date(year, time.Month(month0+1), 1, 12, 0, 0, 0, time.Local).Weekday())
}

// WeekdayIndex returns 0 for Sunday through 6 for Saturday.
func WeekdayIndex(date string) (int, error) {
	t, err := Parse(date)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// AddMonths normalizes month0 into [0, 11], carrying the year in either
// direction.
func AddMonths(year, month0, delta int) (int, int) {
	m := month0 + delta
	y := year + m/12
	m %= 12
	if m < 0 {
		m += 12
		y--
	}
	return y, m
}

func AddDays(date string, delta int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, delta)), nil
}

func IsWeekend(date string) (bool, error) {
	wd, err := WeekdayIndex(date)
	if err != nil {
		return false, err
	}
	return wd == 0 || wd == 6, nil
}

// WorkingDaysInMonth counts Monday-Friday days. Holidays are not considered.
func WorkingDaysInMonth(year, month0 int) int {
	first := FirstWeekdayOfMonth(year, month0)
	n := 0
	for d := 0; d < DaysInMonth(year, month0); d++ {
		wd := (first + d) % 7
		if wd != 0 && wd != 6 {
			n++
		}
	}
	return n
}

// MonthRange returns the first and last ISO dates of a month.
func MonthRange(year, month0 int) (string, string) {
	return DateOf(year, month0, 1), DateOf(year, month0, DaysInMonth(year, month0))
}

// Split returns the numeric parts of an ISO date, month zero-based.
func Split(date string) (year, month0, day int, err error) {
	t, err := Parse(date)
	if err != nil {
		return 0, 0, 0, err
	}
	return t.Year(), int(t.Month()) - 1, t.Day(), nil
}

// DisplayDate renders "Mar 5, 2024". Malformed input is returned unchanged.
func DisplayDate(date string) string {
	t, err := Parse(date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

func MonthYear(year, month0 int) string {
	return fmt.Sprintf("%s %d", MonthName(month0), year)
}

func MonthName(month0 int) string {
	if month0 < 0 || month0 > 11 {
		return ""
	}
	return monthNames[month0]
}

func MonthShort(month0 int) string {
	return MonthName(month0)[:min(3, len(MonthName(month0)))]
}

// WeekdayShorts returns the Sunday-first abbreviations.
func WeekdayShorts() []string {
	out := make([]string, len(weekdayShort))
	copy(out, weekdayShort)
	return out
}

func WeekdayShort(idx int) string {
	if idx < 0 || idx > 6 {
		return ""
	}
	return weekdayShort[idx]
}

package report

import "fmt"

// Rate is a whole percentage. It is invalid when the denominator was 0.
type Rate struct {
	Percent int
	Valid   bool
}

// RateOf computes round(part/total*100), rounding halves up.
func RateOf(part, total int) Rate {
	if total <= 0 {
		return Rate{}
	}
	return Rate{Percent: roundPercent(part, total), Valid: true}
}

func (r Rate) String() string {
	if !r.Valid {
		return "-"
	}
	return fmt.Sprintf("%d%%", r.Percent)
}

// roundPercent is floor(num*100/den + 0.5) in integer arithmetic. den > 0.
func roundPercent(num, den int) int {
	n, d := 200*num+den, 2*den
	q := n / d
	if n%d != 0 && n < 0 {
		q--
	}
	return q
}

type Direction int

const (
	Neutral Direction = iota
	Up
	Down
	NoPriorData
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case NoPriorData:
		return "no_prior_data"
	}
	return "neutral"
}

// Delta compares a month's total with the month before it.
type Delta struct {
	Current   int
	Previous  int
	Percent   int
	Direction Direction
}

// MonthOverMonth compares two totals. A previous total of 0 never yields a
// percentage: it is NoPriorData when current > 0 and Neutral otherwise.
func MonthOverMonth(current, previous int) Delta {
	d := Delta{Current: current, Previous: previous}
	switch {
	case previous > 0:
		d.Percent = roundPercent(current-previous, previous)
		switch {
		case d.Percent > 0:
			d.Direction = Up
		case d.Percent < 0:
			d.Direction = Down
		}
	case current > 0:
		d.Direction = NoPriorData
	}
	return d
}

// String renders "+20% vs last month", "No prior data" or "-".
func (d Delta) String() string {
	switch {
	case d.Direction == NoPriorData:
		return "No prior data"
	case d.Previous == 0:
		return "-"
	case d.Percent > 0:
		return fmt.Sprintf("+%d%% vs last month", d.Percent)
	}
	return fmt.Sprintf("%d%% vs last month", d.Percent)
}

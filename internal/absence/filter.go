package absence

// Filter selects records. Set fields are ANDed; empty fields do not
// restrict. Date bounds are inclusive and compare ISO strings, which sort
// the same way as the dates they encode.
type Filter struct {
	PlantID  string
	DateFrom string
	DateTo   string
	Date     string
	Type     Type
}

// ForDate scopes a filter to a single day.
func ForDate(date, plantID string) Filter {
	return Filter{Date: date, PlantID: plantID}
}

// ForRange scopes a filter to an inclusive date range.
func ForRange(from, to, plantID string) Filter {
	return Filter{DateFrom: from, DateTo: to, PlantID: plantID}
}

// RestrictsPlant reports whether the plant field narrows the result.
func (f Filter) RestrictsPlant() bool {
	return f.PlantID != "" && f.PlantID != AllPlants
}

func (f Filter) Match(r Record) bool {
	if f.RestrictsPlant() && r.PlantID != f.PlantID {
		return false
	}
	if f.DateFrom != "" && r.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && r.Date > f.DateTo {
		return false
	}
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	return true
}

// Apply returns the matching records in input order.
func Apply(records []Record, f Filter) []Record {
	var out []Record
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

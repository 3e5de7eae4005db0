package absence

const (
	ColorPlanned   = "#2563eb"
	ColorUnplanned = "#ef4444"
	colorFallback  = "#94a3b8"
)

var reasonLabels = map[Reason]string{
	Vacation:        "Vacation",
	Sick:            "Sick",
	Personal:        "Personal",
	FamilyEmergency: "Family Emergency",
	JuryDuty:        "Jury Duty",
	Bereavement:     "Bereavement",
	Other:           "Other",
}

var reasonColors = map[Reason]string{
	Vacation:        "#2563eb",
	Sick:            "#ef4444",
	Personal:        "#f59e0b",
	FamilyEmergency: "#8b5cf6",
	JuryDuty:        "#06b6d4",
	Bereavement:     "#64748b",
	Other:           "#ec4899",
}

var durationLabels = map[Duration]string{
	Full:   "Full Day",
	HalfAM: "Half Day (AM)",
	HalfPM: "Half Day (PM)",
	Custom: "Custom",
}

// The label helpers never fail: unknown keys come back verbatim.

func ReasonLabel(r Reason) string {
	if l, ok := reasonLabels[r]; ok {
		return l
	}
	return string(r)
}

func ReasonColor(r Reason) string {
	if c, ok := reasonColors[r]; ok {
		return c
	}
	return colorFallback
}

func DurationLabel(d Duration) string {
	if l, ok := durationLabels[d]; ok {
		return l
	}
	return string(d)
}

func TypeLabel(t Type) string {
	switch t {
	case Planned:
		return "Planned"
	case Unplanned:
		return "Unplanned"
	}
	return string(t)
}

func TypeColor(t Type) string {
	switch t {
	case Planned:
		return ColorPlanned
	case Unplanned:
		return ColorUnplanned
	}
	return colorFallback
}

func LaborLabel(l LaborType) string {
	switch l {
	case Direct, "":
		return "Direct"
	case Indirect:
		return "Indirect"
	}
	return string(l)
}

func ShiftLabel(s Shift) string {
	if s == "" {
		return string(FirstShift)
	}
	return string(s)
}

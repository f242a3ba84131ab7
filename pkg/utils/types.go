package utils

// RosterCodeKind classifies an activity code found on a roster day
type RosterCodeKind int

const (
	// CodeUnknown is a code that matches no known pattern
	CodeUnknown RosterCodeKind = iota
	// CodeDayOff marks the day as unavailable
	CodeDayOff
	// CodePreAssigned is a fixed ground or standby activity
	CodePreAssigned
	// CodeFlight is a flight number the employee already operates
	CodeFlight
)

func (k RosterCodeKind) String() string {
	switch k {
	case CodeDayOff:
		return "day-off"
	case CodePreAssigned:
		return "pre-assigned"
	case CodeFlight:
		return "flight"
	}
	return "unknown"
}

// Layouts
const (
	DATE_LAYOUT     = "2006-01-02"
	CLOCK_LAYOUT    = "15:04"
	DATETIME_LAYOUT = "2006-01-02 15:04"
)

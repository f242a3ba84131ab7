package entity

// AssignmentID is the handle of a flight assignment inside a Schedule
type AssignmentID int

// EmployeeID is the handle of an employee inside a Schedule
type EmployeeID int

// NoEmployee marks an assignment without owner
const NoEmployee EmployeeID = -1

// FlightAssignment is one required seat on one flight. Only Owner changes
// after the schedule is built.
type FlightAssignment struct {
	ID            AssignmentID
	Flight        FlightID
	RequiredSkill string
	SeatIndex     int
	Owner         EmployeeID
}

// IsAssigned reports whether an employee holds the seat
func (a *FlightAssignment) IsAssigned() bool {
	return a.Owner != NoEmployee
}

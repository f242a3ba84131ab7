package entity

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// DutyID is the handle of a duty inside a Schedule
type DutyID int

// Duty codes
const (
	FlightDutyCode = "FLT"
	GroundDutyCode = "GND"
)

// Duty field names reported to change trackers, in write order
const (
	FieldFlightAssignments = "flightAssignments"
	FieldStart             = "start"
	FieldEnd               = "end"
	FieldLastFlightArrival = "lastFlightArrival"
	FieldCode              = "code"
)

// PreAssignment is a ground or standby activity fixed before planning
type PreAssignment struct {
	Code  string
	Start time.Time
	End   time.Time
}

// Duty groups the assignments of one employee departing on one UTC date.
// Start, End, LastFlightArrival and Code are derived; the zero time and the
// empty code mean unset.
type Duty struct {
	ID       DutyID
	Date     civil.Date
	Employee EmployeeID

	// PreAssigned is set for duties loaded with a fixed activity
	PreAssigned *PreAssignment

	Code              string
	Start             time.Time
	End               time.Time
	LastFlightArrival time.Time

	assignments []AssignmentID
}

// DutyFields are the derived values of a duty
type DutyFields struct {
	Start             time.Time
	End               time.Time
	LastFlightArrival time.Time
	Code              string
}

// Assignments returns the assignments ordered by departure, flight number
// and seat. The slice must not be modified.
func (d *Duty) Assignments() []AssignmentID {
	return d.assignments
}

// Len returns the number of assignments, that is the segment count
func (d *Duty) Len() int {
	return len(d.assignments)
}

// IsFlightDuty reports whether the duty holds at least one assignment
func (d *Duty) IsFlightDuty() bool {
	return len(d.assignments) > 0
}

// HasCode reports whether the duty represents an activity at all
func (d *Duty) HasCode() bool {
	return d.Code != ""
}

// IsGround reports whether the duty is a ground duty
func (d *Duty) IsGround() bool {
	return d.Code == GroundDutyCode
}

// First returns the earliest assignment
func (d *Duty) First() (AssignmentID, bool) {
	if len(d.assignments) == 0 {
		return 0, false
	}
	return d.assignments[0], true
}

// Last returns the latest assignment
func (d *Duty) Last() (AssignmentID, bool) {
	if len(d.assignments) == 0 {
		return 0, false
	}
	return d.assignments[len(d.assignments)-1], true
}

// Fields returns the current derived values
func (d *Duty) Fields() DutyFields {
	return DutyFields{
		Start:             d.Start,
		End:               d.End,
		LastFlightArrival: d.LastFlightArrival,
		Code:              d.Code,
	}
}

func (d *Duty) baseFields() DutyFields {
	if d.PreAssigned == nil {
		return DutyFields{}
	}
	return DutyFields{
		Start: d.PreAssigned.Start,
		End:   d.PreAssigned.End,
		Code:  d.PreAssigned.Code,
	}
}

func (d *Duty) clone() *Duty {
	c := *d
	c.assignments = append([]AssignmentID(nil), d.assignments...)
	if d.PreAssigned != nil {
		pre := *d.PreAssigned
		c.PreAssigned = &pre
	}
	return &c
}

func (d *Duty) String() string {
	return fmt.Sprintf("Duty [code=%s, date=%s, employee=%d, segments=%d]", d.Code, d.Date, d.Employee, len(d.assignments))
}

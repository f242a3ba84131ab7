package entity

import (
	"time"

	"cloud.google.com/go/civil"
)

// RosterEntry is one day of an employee roster as published by crew control
type RosterEntry struct {
	Date  civil.Date
	Codes []string `validate:"dive,required"`
	// Start and End are only used by pre-assigned activity codes
	Start time.Time
	End   time.Time
}

// EmployeeRecord is an employee as delivered by the employee source
type EmployeeRecord struct {
	ID                         string
	Name                       string        `validate:"required"`
	HomeAirport                string        `validate:"required"`
	Skills                     []string      `validate:"dive,required"`
	AircraftTypeQualifications []string
	SpecialQualifications      []string
	Roster                     []RosterEntry `validate:"dive"`

	// UnavailableDays is filled from the roster day-off codes
	UnavailableDays []civil.Date
}

// PreAssignedDuty is a fixed activity of an employee
type PreAssignedDuty struct {
	EmployeeName string `validate:"required"`
	Code         string `validate:"required"`
	Start        time.Time
	End          time.Time
}

// Problem is everything needed to build a Schedule
type Problem struct {
	FirstDate   civil.Date
	LastDate    civil.Date
	Airports    []Airport         `validate:"required,min=1,dive"`
	TaxiTimes   []TaxiTime        `validate:"dive"`
	MaxFDP      MaxFDPTable       `validate:"-"`
	IataFlights []IataFlight      `validate:"dive"`
	Flights     []FlightRecord    `validate:"dive"`
	Employees   []EmployeeRecord  `validate:"dive"`
	PreAssigned []PreAssignedDuty `validate:"dive"`
}

// RefKind names the kind of entity a Ref points to
type RefKind string

// RefDuty is the kind of duty references
const RefDuty RefKind = "duty"

// Ref identifies an entity inside a Schedule
type Ref struct {
	Kind RefKind
	ID   int
}

// DutyRef returns the reference of a duty
func DutyRef(id DutyID) Ref {
	return Ref{Kind: RefDuty, ID: int(id)}
}

package entity

import (
	"cloud.google.com/go/civil"
)

// Employee is a crew member with a calendar of duties
type Employee struct {
	ID                         EmployeeID
	Name                       string
	HomeAirport                AirportCode
	Skills                     map[string]bool
	AircraftTypeQualifications map[string]bool
	SpecialQualifications      map[string]bool
	UnavailableDays            map[civil.Date]bool

	calendar map[civil.Date]DutyID
	// dates is the sorted key set of calendar
	dates []civil.Date
}

// HasSkill reports whether the employee holds the skill
func (e *Employee) HasSkill(skill string) bool {
	return e.Skills[skill]
}

// HasAircraftTypeQualification reports whether the employee may fly the type
func (e *Employee) HasAircraftTypeQualification(aircraftType string) bool {
	return e.AircraftTypeQualifications[aircraftType]
}

// IsAvailable reports whether the date is not a day off
func (e *Employee) IsAvailable(date civil.Date) bool {
	return !e.UnavailableDays[date]
}

// DutyOn returns the handle of the duty on the date
func (e *Employee) DutyOn(date civil.Date) (DutyID, bool) {
	id, ok := e.calendar[date]
	return id, ok
}

// Dates returns the calendar dates in ascending order. The slice must not be
// modified.
func (e *Employee) Dates() []civil.Date {
	return e.dates
}

func (e *Employee) clone() *Employee {
	c := *e
	c.calendar = make(map[civil.Date]DutyID, len(e.calendar))
	for date, id := range e.calendar {
		c.calendar[date] = id
	}
	c.dates = append([]civil.Date(nil), e.dates...)
	return &c
}

func (e *Employee) String() string {
	return e.Name
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

package rules

import (
	"crewduty-service/internal/domain/entity"
)

const (
	// UnreachableHomePenalty applies when home cannot be reached by ground
	UnreachableHomePenalty = 10
	// TaxiMinutesPerPoint is the ground transfer time worth one point
	TaxiMinutesPerPoint = 50
)

func homeDistance(s *entity.Schedule, from entity.AirportCode, employee entity.EmployeeID) int {
	e := s.Employee(employee)
	if e == nil {
		return 0
	}
	minutes, ok := s.TaxiMinutes(from, e.HomeAirport)
	if !ok {
		return UnreachableHomePenalty
	}
	return minutes / TaxiMinutesPerPoint
}

// StartingInconvenience scores the ground transfer from home to the first
// departure of the duty
func StartingInconvenience(s *entity.Schedule, d *entity.Duty) int {
	if d == nil || !d.IsFlightDuty() {
		return 0
	}
	first, _ := d.First()
	return homeDistance(s, s.AssignmentFlight(first).DepartureAirport, d.Employee)
}

// ClosingInconvenience scores the ground transfer from the last arrival of
// the duty back home
func ClosingInconvenience(s *entity.Schedule, d *entity.Duty) int {
	if d == nil || !d.IsFlightDuty() {
		return 0
	}
	last, _ := d.Last()
	return homeDistance(s, s.AssignmentFlight(last).ArrivalAirport, d.Employee)
}

// HomeBaseInconvenience is the sum of the starting and closing inconvenience
func HomeBaseInconvenience(s *entity.Schedule, d *entity.Duty) int {
	return StartingInconvenience(s, d) + ClosingInconvenience(s, d)
}

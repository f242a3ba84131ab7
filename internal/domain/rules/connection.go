package rules

import (
	"crewduty-service/internal/domain/entity"
)

// MaxTaxiMinutes is the longest ground transfer accepted between two flights
const MaxTaxiMinutes = 240

// Connection summarizes the ground transfers between the flights of an
// employee
type Connection struct {
	InvalidConnection int
	TaxiMinutes       int
}

// ConnectionStatus scans the assignments of the employee in time order. A
// change of airport without a ground route of at most MaxTaxiMinutes is an
// invalid connection; the others add their taxi time.
func ConnectionStatus(s *entity.Schedule, employee entity.EmployeeID) Connection {
	var status Connection
	var previous *entity.Flight
	for _, id := range s.Timeline(employee) {
		flight := s.AssignmentFlight(id)
		if previous != nil && previous.ArrivalAirport != flight.DepartureAirport {
			minutes, ok := s.TaxiMinutes(previous.ArrivalAirport, flight.DepartureAirport)
			if !ok || minutes > MaxTaxiMinutes {
				status.InvalidConnection++
			} else {
				status.TaxiMinutes += minutes
			}
		}
		previous = flight
	}
	return status
}

// FirstDepartureFromHome reports whether the first flight of the employee
// leaves from home base. An employee without flights is at home.
func FirstDepartureFromHome(s *entity.Schedule, employee entity.EmployeeID) bool {
	timeline := s.Timeline(employee)
	if len(timeline) == 0 {
		return true
	}
	return s.AssignmentFlight(timeline[0]).DepartureAirport == s.Employee(employee).HomeAirport
}

// LastArrivalAtHome reports whether the last flight of the employee lands at
// home base
func LastArrivalAtHome(s *entity.Schedule, employee entity.EmployeeID) bool {
	timeline := s.Timeline(employee)
	if len(timeline) == 0 {
		return true
	}
	return s.AssignmentFlight(timeline[len(timeline)-1]).ArrivalAirport == s.Employee(employee).HomeAirport
}

// FlightMinutesTotal returns the block time of all flights of the employee
func FlightMinutesTotal(s *entity.Schedule, employee entity.EmployeeID) int64 {
	var total int64
	for _, id := range s.Timeline(employee) {
		total += s.AssignmentFlight(id).DurationMinutes()
	}
	return total
}

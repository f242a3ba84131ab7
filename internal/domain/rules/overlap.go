package rules

import (
	"time"

	"crewduty-service/internal/domain/entity"
)

func overlap(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

// OverlapMinutes returns the minutes during which both flights are airborne
func OverlapMinutes(a, b *entity.Flight) int {
	if a == nil || b == nil {
		return 0
	}
	return overlap(a.DepartureUTC, a.ArrivalUTC, b.DepartureUTC, b.ArrivalUTC)
}

// GroundOverlapMinutes returns the minutes during which the flights of a
// duty overlap the pre-assigned activity of the same duty
func GroundOverlapMinutes(s *entity.Schedule, d *entity.Duty) int {
	if d == nil || !d.IsFlightDuty() || d.PreAssigned == nil {
		return 0
	}
	first, _ := d.First()
	last, _ := d.Last()
	return overlap(
		d.PreAssigned.Start, d.PreAssigned.End,
		s.AssignmentFlight(first).DepartureUTC, s.AssignmentFlight(last).ArrivalUTC,
	)
}

// ConflictMinutes returns the total overlap between chronologically
// consecutive assignments of the employee
func ConflictMinutes(s *entity.Schedule, employee entity.EmployeeID) int {
	total := 0
	var previous *entity.Flight
	for _, id := range s.Timeline(employee) {
		flight := s.AssignmentFlight(id)
		total += OverlapMinutes(previous, flight)
		previous = flight
	}
	return total
}

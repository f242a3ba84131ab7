package rules

import (
	"time"

	"cloud.google.com/go/civil"

	"crewduty-service/internal/domain/entity"
)

const (
	// DayOffDepartureCutoff is the local time before which a departure
	// encroaches on a day off the day before
	DayOffDepartureCutoff = 8 * time.Hour
	// DayOffArrivalCutoff is the local time after which an arrival encroaches
	// on a day off the day after
	DayOffArrivalCutoff = 22 * time.Hour
	// DayOffFullPenalty applies when the flight lands on a day off
	DayOffFullPenalty = 24 * 60
)

// DayOffEncroachment returns the minutes by which the assignment intrudes on
// the days off of the employee
func DayOffEncroachment(s *entity.Schedule, e *entity.Employee, id entity.AssignmentID) int {
	flight := s.AssignmentFlight(id)
	if e == nil || flight == nil {
		return 0
	}

	departure := flight.DepartureUTC.In(ReferenceZone)
	if !e.IsAvailable(civil.DateOf(departure).AddDays(-1)) {
		if t := sinceMidnight(departure); t < DayOffDepartureCutoff {
			return int((DayOffDepartureCutoff - t) / time.Minute)
		}
	}

	arrival := flight.ArrivalUTC.In(ReferenceZone)
	if !e.IsAvailable(civil.DateOf(arrival).AddDays(1)) {
		if t := sinceMidnight(arrival); t > DayOffArrivalCutoff {
			return int((t - DayOffArrivalCutoff) / time.Minute)
		}
	}

	if !e.IsAvailable(flight.ArrivalDate()) {
		return DayOffFullPenalty
	}
	return 0
}

// Unavailable reports whether the assignment departs or arrives on a day off
// of its owner
func Unavailable(s *entity.Schedule, id entity.AssignmentID) bool {
	a := s.Assignment(id)
	if a == nil || !a.IsAssigned() {
		return false
	}
	e := s.Employee(a.Owner)
	flight := s.AssignmentFlight(id)
	return !e.IsAvailable(flight.DepartureDate()) || !e.IsAvailable(flight.ArrivalDate())
}

func groundOrHoliday(s *entity.Schedule, d *entity.Duty, offset int) bool {
	if d == nil {
		return false
	}
	e := s.Employee(d.Employee)
	if e == nil {
		return false
	}
	if !e.IsAvailable(d.Date.AddDays(offset)) {
		return true
	}
	adjacent := s.AdjacentDuty(d, offset)
	return adjacent != nil && adjacent.IsGround()
}

// IsDayAfterGroundOrHoliday reports whether the next day is off or a ground
// duty
func IsDayAfterGroundOrHoliday(s *entity.Schedule, d *entity.Duty) bool {
	return groundOrHoliday(s, d, 1)
}

// IsDayBeforeGroundOrHoliday reports whether the previous day is off or a
// ground duty
func IsDayBeforeGroundOrHoliday(s *entity.Schedule, d *entity.Duty) bool {
	return groundOrHoliday(s, d, -1)
}

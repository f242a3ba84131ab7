package rules

import (
	"time"

	"cloud.google.com/go/civil"

	"crewduty-service/internal/domain/entity"
)

const (
	// MinRestAtHome is the minimum rest after a duty ending at home base
	MinRestAtHome = 12 * time.Hour
	// MinRestAway is the minimum rest after a duty ending elsewhere
	MinRestAway = 10 * time.Hour

	// nightDutyStart is the UTC time before which a duty starts at night
	nightDutyStart = 5 * time.Hour
	// lateEnd is the UTC time after which a duty end eats the local night
	lateEnd = 22 * time.Hour
	// earlyStart is the UTC time before which a duty start eats the local night
	earlyStart = 6 * time.Hour
	// localNightRest is the rest that still counts as a local night
	localNightRest = 8 * time.Hour
)

func sinceMidnight(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
}

// RestLack returns the minutes missing from the rest between the duty and
// the next one. Only flight duties followed by a coded duty are checked.
func RestLack(s *entity.Schedule, d, next *entity.Duty) int {
	if d == nil || !d.IsFlightDuty() || next == nil || !next.HasCode() {
		return 0
	}

	rest := next.Start.Sub(d.End)
	dutyDuration := d.End.Sub(d.Start)

	minRest := MinRestAway
	last, _ := d.Last()
	if e := s.Employee(d.Employee); e != nil && s.AssignmentFlight(last).ArrivalAirport == e.HomeAirport {
		minRest = MinRestAtHome
	}
	minRest = max(dutyDuration, minRest)

	if rest >= minRest {
		return 0
	}
	return int((minRest - rest) / time.Minute)
}

// NoLocalNight reports whether the rest between the previous duty and this
// one misses a local night: the previous duty ends after 22:00 and the rest
// is shorter than 8 hours, or this duty starts before 06:00.
func NoLocalNight(previous, d *entity.Duty) bool {
	if previous == nil || d == nil || previous.End.IsZero() || d.Start.IsZero() {
		return false
	}
	if sinceMidnight(previous.End.UTC()) > lateEnd {
		return d.Start.Sub(previous.End) < localNightRest
	}
	return sinceMidnight(d.Start.UTC()) < earlyStart
}

// IsNightDuty reports whether the duty starts before 05:00 UTC
func IsNightDuty(d *entity.Duty) bool {
	if d == nil || d.Start.IsZero() {
		return false
	}
	return sinceMidnight(d.Start.UTC()) < nightDutyStart
}

// IsLateArrival reports whether the duty ends on a later date than its own
func IsLateArrival(d *entity.Duty) bool {
	if d == nil || d.End.IsZero() {
		return false
	}
	return civil.DateOf(d.End.UTC()).After(d.Date)
}

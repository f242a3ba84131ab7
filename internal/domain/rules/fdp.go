package rules

import (
	"time"

	"cloud.google.com/go/civil"

	"crewduty-service/internal/domain/entity"
)

// ReferenceZone is the acclimatized zone of every employee. MaxFDP buckets
// and day-off cutoffs are read in this zone.
var ReferenceZone = time.FixedZone("GMT+2", 2*60*60)

// OverMaxFDPUnit is the number of overage minutes counted as one penalty unit
const OverMaxFDPUnit = 10

// FlightDutyPeriod returns the time from sign-in to the last arrival. It
// reports false while either end is unset.
func FlightDutyPeriod(d *entity.Duty) (time.Duration, bool) {
	if d == nil || d.Start.IsZero() || d.LastFlightArrival.IsZero() {
		return 0, false
	}
	return d.LastFlightArrival.Sub(d.Start), true
}

// OverMaxFDP returns the overage of the flight duty period beyond the
// maximum allowed for the duty's local start and segment count, in units of
// OverMaxFDPUnit minutes.
func OverMaxFDP(d *entity.Duty, table entity.MaxFDPTable) int {
	if d == nil || d.Len() == 0 {
		return 0
	}
	fdp, ok := FlightDutyPeriod(d)
	if !ok {
		return 0
	}

	rule, ok := table.RuleFor(civil.TimeOf(d.Start.In(ReferenceZone)))
	if !ok {
		return 0
	}
	max, ok := rule.Max(d.Len())
	if !ok || fdp <= max {
		return 0
	}
	return int((fdp-max)/time.Minute) / OverMaxFDPUnit
}

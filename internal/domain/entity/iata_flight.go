package entity

import (
	"slices"
	"time"

	"cloud.google.com/go/civil"
)

// IataFlight is a commercial flight an employee can take to reposition
// between airports that are not connected by ground.
type IataFlight struct {
	DepartureAirport AirportCode `validate:"required"`
	ArrivalAirport   AirportCode `validate:"required"`
	DepartureUTCTime civil.Time
	ArrivalUTCTime   civil.Time
	DaysOfWeek       []time.Weekday `validate:"dive,gte=0,lte=6"`
}

// IsAvailable reports whether the flight operates on the given date
func (f *IataFlight) IsAvailable(date civil.Date) bool {
	return slices.Contains(f.DaysOfWeek, date.In(time.UTC).Weekday())
}

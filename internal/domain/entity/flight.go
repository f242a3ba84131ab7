package entity

import (
	"time"

	"cloud.google.com/go/civil"
)

const (
	// SignInDuration is counted as duty time before the departure
	SignInDuration = 30 * time.Minute
	// SignOffDuration is counted as duty time after the arrival
	SignOffDuration = 30 * time.Minute
)

// FlightID is the handle of a flight inside a Schedule
type FlightID int

// Flight is an immutable scheduled leg
type Flight struct {
	ID                   FlightID
	FlightNumber         string
	DepartureAirport     AirportCode
	ArrivalAirport       AirportCode
	DepartureUTC         time.Time
	ArrivalUTC           time.Time
	AircraftType         string
	AircraftRegistration string
}

// DepartureDate is the UTC calendar date of the departure. Duties group
// assignments by this date.
func (f *Flight) DepartureDate() civil.Date {
	return civil.DateOf(f.DepartureUTC.UTC())
}

// ArrivalDate is the UTC calendar date of the arrival
func (f *Flight) ArrivalDate() civil.Date {
	return civil.DateOf(f.ArrivalUTC.UTC())
}

// Duration returns the block time of the flight
func (f *Flight) Duration() time.Duration {
	return f.ArrivalUTC.Sub(f.DepartureUTC)
}

// DurationMinutes returns the block time in whole minutes
func (f *Flight) DurationMinutes() int64 {
	return int64(f.Duration() / time.Minute)
}

func (f *Flight) String() string {
	return f.FlightNumber + "@" + f.DepartureDate().String()
}

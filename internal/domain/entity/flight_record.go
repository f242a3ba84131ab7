// internal/domain/entity/flight_record.go
package entity

import (
	"time"
)

// FlightRecord is a scheduled leg as delivered by the flight source, before
// it is turned into a Flight and its seat assignments.
type FlightRecord struct {
	ID                   string    `bson:"_id,omitempty"`
	FlightKey            string    `bson:"flightKey"` // {flightNumber}@{departureDate} - unique index
	FlightNumber         string    `bson:"flightNumber" validate:"required"`
	DepartureAirport     string    `bson:"departureAirport" validate:"required"`
	ArrivalAirport       string    `bson:"arrivalAirport" validate:"required"`
	DepartureUTC         time.Time `bson:"departureUtc"`
	ArrivalUTC           time.Time `bson:"arrivalUtc"`
	AircraftType         string    `bson:"aircraftType"`
	AircraftRegistration string    `bson:"aircraftRegistration"`
	RequiredSkills       []string  `bson:"requiredSkills,omitempty" validate:"dive,required"`
	CreatedAt            time.Time `bson:"createdAt"`
	UpdatedAt            time.Time `bson:"updatedAt"`
}

// DefaultSeatSkills are the seats created for a flight that lists none:
// captain on seat 0 and first officer on seat 1.
var DefaultSeatSkills = []string{"CP", "FO"}

// SeatSkills returns the skills required by the flight, one per seat.
func (r *FlightRecord) SeatSkills() []string {
	if len(r.RequiredSkills) == 0 {
		return DefaultSeatSkills
	}
	return r.RequiredSkills
}

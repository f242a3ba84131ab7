package entity

// AirportCode is the IATA code of an airport
type AirportCode string

// Airport represents an airport and the ground transfers leaving it
type Airport struct {
	Code      AirportCode `validate:"required"`
	Name      string
	City      string
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`

	// TaxiMinutes holds the driving time to nearby airports. Read-only once
	// the schedule is built.
	TaxiMinutes map[AirportCode]int `validate:"-"`
}

// TaxiTime is one ground transfer between two airports
type TaxiTime struct {
	From    AirportCode `validate:"required"`
	To      AirportCode `validate:"required"`
	Minutes int         `validate:"gte=0"`
}

// TaxiMinutesTo returns the ground transfer time to the given airport. The
// second result is false when the airport cannot be reached by ground.
func (a *Airport) TaxiMinutesTo(code AirportCode) (int, bool) {
	if a.Code == code {
		return 0, true
	}
	minutes, ok := a.TaxiMinutes[code]
	return minutes, ok
}

package rules

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"

	"crewduty-service/internal/domain/entity"
)

var day4 = civil.Date{Year: 2024, Month: time.March, Day: 4}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.March, day, hour, minute, 0, 0, time.UTC)
}

func flight(number, from, to string, dep, arr time.Time) entity.FlightRecord {
	return entity.FlightRecord{
		FlightNumber:     number,
		DepartureAirport: from,
		ArrivalAirport:   to,
		DepartureUTC:     dep,
		ArrivalUTC:       arr,
		AircraftType:     "E190",
		RequiredSkills:   []string{"CP"},
	}
}

// newSchedule builds a schedule over 2024-03-03..2024-03-07 with one employee
// "alice" based in AMS
func newSchedule(t *testing.T, flights []entity.FlightRecord, taxis []entity.TaxiTime, opts ...func(*entity.Problem)) *entity.Schedule {
	t.Helper()
	p := entity.Problem{
		FirstDate: civil.Date{Year: 2024, Month: time.March, Day: 3},
		LastDate:  civil.Date{Year: 2024, Month: time.March, Day: 7},
		Airports: []entity.Airport{
			{Code: "AMS"}, {Code: "RTM"}, {Code: "LHR"}, {Code: "CDG"},
		},
		TaxiTimes: taxis,
		Flights:   flights,
		Employees: []entity.EmployeeRecord{
			{Name: "alice", HomeAirport: "AMS", Skills: []string{"CP"}, AircraftTypeQualifications: []string{"E190"}},
		},
	}
	for _, opt := range opts {
		opt(&p)
	}
	s, err := entity.NewSchedule(p)
	require.NoError(t, err)
	return s
}

// assign gives the first free seat of the flight to the employee and brings
// the duty up to date
func assign(t *testing.T, s *entity.Schedule, flightNumber string, employee entity.EmployeeID) *entity.Duty {
	t.Helper()
	for _, a := range s.Assignments() {
		if a.IsAssigned() || s.Flight(a.Flight).FlightNumber != flightNumber {
			continue
		}
		s.Assignment(a.ID).Owner = employee
		d, _ := s.EnsureDuty(employee, s.Flight(a.Flight).DepartureDate())
		s.AddToDuty(d, a.ID)
		f := s.DeriveDutyFields(d)
		d.Start, d.End, d.LastFlightArrival, d.Code = f.Start, f.End, f.LastFlightArrival, f.Code
		return d
	}
	t.Fatalf("no free seat on %s", flightNumber)
	return nil
}

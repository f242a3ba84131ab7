package entity

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.March, day, hour, minute, 0, 0, time.UTC)
}

func testProblem() Problem {
	return Problem{
		FirstDate: civil.Date{Year: 2024, Month: time.March, Day: 4},
		LastDate:  civil.Date{Year: 2024, Month: time.March, Day: 6},
		Airports: []Airport{
			{Code: "AMS", Name: "Schiphol"},
			{Code: "RTM", Name: "Rotterdam"},
			{Code: "LHR", Name: "Heathrow"},
		},
		TaxiTimes: []TaxiTime{{From: "AMS", To: "RTM", Minutes: 45}},
		Flights: []FlightRecord{
			{FlightNumber: "KL1002", DepartureAirport: "LHR", ArrivalAirport: "AMS", DepartureUTC: at(4, 10, 0), ArrivalUTC: at(4, 11, 0)},
			{FlightNumber: "KL1001", DepartureAirport: "AMS", ArrivalAirport: "LHR", DepartureUTC: at(4, 8, 0), ArrivalUTC: at(4, 9, 0)},
			{FlightNumber: "KL1003", DepartureAirport: "AMS", ArrivalAirport: "LHR", DepartureUTC: at(5, 8, 0), ArrivalUTC: at(5, 9, 0), RequiredSkills: []string{"CP"}},
		},
		Employees: []EmployeeRecord{
			{Name: "alice", HomeAirport: "AMS", Skills: []string{"CP"}},
			{Name: "bob", HomeAirport: "RTM", Skills: []string{"FO"}, UnavailableDays: []civil.Date{{Year: 2024, Month: time.March, Day: 6}}},
		},
	}
}

func TestNewSchedule(t *testing.T) {
	s, err := NewSchedule(testProblem())
	require.NoError(t, err)

	assert.Len(t, s.Flights(), 3)
	// two default seats on the first flights, one on the last
	require.Len(t, s.Assignments(), 5)
	assert.Equal(t, "CP", s.Assignment(0).RequiredSkill)
	assert.Equal(t, "FO", s.Assignment(1).RequiredSkill)
	assert.Equal(t, 1, s.Assignment(1).SeatIndex)
	for _, a := range s.Assignments() {
		assert.False(t, a.IsAssigned())
	}

	minutes, ok := s.TaxiMinutes("AMS", "RTM")
	assert.True(t, ok)
	assert.Equal(t, 45, minutes)
	_, ok = s.TaxiMinutes("AMS", "LHR")
	assert.False(t, ok)

	// dense calendar over the horizon
	alice, ok := s.EmployeeByName("alice")
	require.True(t, ok)
	require.Len(t, alice.Dates(), 3)
	for _, d := range s.EmployeeDuties(alice.ID) {
		assert.False(t, d.IsFlightDuty())
		assert.False(t, d.HasCode())
		assert.Equal(t, alice.ID, d.Employee)
	}

	bob, _ := s.EmployeeByName("bob")
	assert.False(t, bob.IsAvailable(civil.Date{Year: 2024, Month: time.March, Day: 6}))
	assert.True(t, bob.HasSkill("FO"))
}

func TestNewScheduleInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Problem)
	}{
		{"inverted horizon", func(p *Problem) { p.LastDate = p.FirstDate.AddDays(-1) }},
		{"unknown flight airport", func(p *Problem) { p.Flights[0].ArrivalAirport = "CDG" }},
		{"arrival before departure", func(p *Problem) { p.Flights[0].ArrivalUTC = p.Flights[0].DepartureUTC }},
		{"unknown home", func(p *Problem) { p.Employees[0].HomeAirport = "CDG" }},
		{"unknown taxi airport", func(p *Problem) { p.TaxiTimes[0].To = "CDG" }},
		{"unknown iata airport", func(p *Problem) {
			p.IataFlights = []IataFlight{{DepartureAirport: "AMS", ArrivalAirport: "CDG"}}
		}},
		{"unknown pre-assigned employee", func(p *Problem) {
			p.PreAssigned = []PreAssignedDuty{{EmployeeName: "carol", Code: GroundDutyCode, Start: at(4, 8, 0), End: at(4, 16, 0)}}
		}},
		{"duplicate employee", func(p *Problem) { p.Employees[1].Name = "alice" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProblem()
			tt.modify(&p)
			_, err := NewSchedule(p)
			assert.ErrorIs(t, err, ErrInvalidProblem)
		})
	}
}

func TestPreAssignedDuty(t *testing.T) {
	p := testProblem()
	p.PreAssigned = []PreAssignedDuty{
		{EmployeeName: "alice", Code: GroundDutyCode, Start: at(5, 7, 0), End: at(5, 15, 0)},
		{EmployeeName: "alice", Code: "S1E", Start: at(5, 6, 0), End: at(5, 18, 0)},
	}
	s, err := NewSchedule(p)
	require.NoError(t, err)

	alice, _ := s.EmployeeByName("alice")
	d := s.DutyOn(alice.ID, civil.Date{Year: 2024, Month: time.March, Day: 5})
	require.NotNil(t, d)
	assert.True(t, d.IsGround())
	assert.Equal(t, at(5, 7, 0), d.Start)
	assert.Equal(t, at(5, 15, 0), d.End)
	assert.False(t, d.IsFlightDuty())
	assert.Equal(t, d.Fields(), s.DeriveDutyFields(d))
}

func TestAssignmentOrder(t *testing.T) {
	s, err := NewSchedule(testProblem())
	require.NoError(t, err)

	alice, _ := s.EmployeeByName("alice")
	d := s.DutyOn(alice.ID, civil.Date{Year: 2024, Month: time.March, Day: 4})

	// KL1002 (ids 0,1) departs after KL1001 (ids 2,3)
	assert.True(t, s.AddToDuty(d, 1))
	assert.True(t, s.AddToDuty(d, 2))
	assert.True(t, s.AddToDuty(d, 0))
	assert.False(t, s.AddToDuty(d, 0))
	assert.Equal(t, []AssignmentID{2, 0, 1}, d.Assignments())

	f := s.DeriveDutyFields(d)
	assert.Equal(t, at(4, 7, 30), f.Start)
	assert.Equal(t, at(4, 11, 30), f.End)
	assert.Equal(t, at(4, 11, 0), f.LastFlightArrival)
	assert.Equal(t, FlightDutyCode, f.Code)

	assert.True(t, s.RemoveFromDuty(d, 0))
	assert.False(t, s.RemoveFromDuty(d, 0))
	assert.Equal(t, []AssignmentID{2, 1}, d.Assignments())
}

func TestTimelineNeighbours(t *testing.T) {
	s, err := NewSchedule(testProblem())
	require.NoError(t, err)

	alice, _ := s.EmployeeByName("alice")
	for _, id := range []AssignmentID{0, 2, 4} {
		a := s.Assignment(id)
		a.Owner = alice.ID
		d, _ := s.EnsureDuty(alice.ID, s.AssignmentFlight(id).DepartureDate())
		s.AddToDuty(d, id)
	}

	assert.Equal(t, []AssignmentID{2, 0, 4}, s.Timeline(alice.ID))

	prev, ok := s.Previous(4)
	assert.True(t, ok)
	assert.Equal(t, AssignmentID(0), prev)
	next, ok := s.Next(2)
	assert.True(t, ok)
	assert.Equal(t, AssignmentID(0), next)
	_, ok = s.Previous(2)
	assert.False(t, ok)
	_, ok = s.Next(4)
	assert.False(t, ok)
	_, ok = s.Next(1)
	assert.False(t, ok)
}

func TestEnsureDutyOutsideHorizon(t *testing.T) {
	s, err := NewSchedule(testProblem())
	require.NoError(t, err)

	alice, _ := s.EmployeeByName("alice")
	before := civil.Date{Year: 2024, Month: time.March, Day: 1}
	d, created := s.EnsureDuty(alice.ID, before)
	assert.True(t, created)
	assert.Equal(t, before, d.Date)
	assert.Equal(t, before, alice.Dates()[0])

	again, created := s.EnsureDuty(alice.ID, before)
	assert.False(t, created)
	assert.Same(t, d, again)
}

func TestFindAssignment(t *testing.T) {
	s, err := NewSchedule(testProblem())
	require.NoError(t, err)

	date := civil.Date{Year: 2024, Month: time.March, Day: 4}
	id, ok := s.FindAssignment("KL1001", date, "FO")
	require.True(t, ok)
	assert.Equal(t, AssignmentID(3), id)

	s.Assignment(id).Owner = 1
	_, ok = s.FindAssignment("KL1001", date, "FO")
	assert.False(t, ok)
	_, ok = s.FindAssignment("KL1001", date.AddDays(1), "CP")
	assert.False(t, ok)
}

func TestCloneIsIndependent(t *testing.T) {
	s, err := NewSchedule(testProblem())
	require.NoError(t, err)

	alice, _ := s.EmployeeByName("alice")
	c := s.Clone()

	c.Assignment(0).Owner = alice.ID
	d := c.DutyOn(alice.ID, civil.Date{Year: 2024, Month: time.March, Day: 4})
	c.AddToDuty(d, 0)
	c.EnsureDuty(alice.ID, civil.Date{Year: 2024, Month: time.April, Day: 1})

	assert.False(t, s.Assignment(0).IsAssigned())
	assert.Equal(t, 0, s.DutyOn(alice.ID, civil.Date{Year: 2024, Month: time.March, Day: 4}).Len())
	assert.Len(t, alice.Dates(), 3)
	assert.Len(t, c.Employee(alice.ID).Dates(), 4)
	assert.Same(t, s.Airport("AMS"), c.Airport("AMS"))
}

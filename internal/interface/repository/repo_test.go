package repository

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewduty-service/internal/domain/entity"
)

func TestMaxFDPRowsRoundTrip(t *testing.T) {
	rule := entity.MaxFDPRule{Start: civil.Time{Hour: 6}, End: civil.Time{Hour: 13, Minute: 29}}
	rule.SetMax(2, 13*time.Hour)
	rule.SetMax(3, 12*time.Hour+30*time.Minute)
	night := entity.MaxFDPRule{Start: civil.Time{Hour: 22}, End: civil.Time{Hour: 23, Minute: 59}}
	night.SetMax(1, 11*time.Hour)

	rows := fromMaxFDPTable(entity.MaxFDPTable{rule, night})
	require.Len(t, rows, 3)
	assert.Equal(t, "06:00", rows[0].StartTime)
	assert.Equal(t, 2, rows[0].Segments)
	assert.Equal(t, 3, rows[1].Segments)
	assert.Equal(t, 1, rows[2].Position)

	table, err := toMaxFDPTable(rows)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxFDPTable{rule, night}, table)
}

func TestMaxFDPRowsInvalidClock(t *testing.T) {
	_, err := toMaxFDPTable([]MaxFDPRules{{StartTime: "6h", EndTime: "13:29", Segments: 2, MaxMinutes: 600}})
	assert.Error(t, err)
}

func TestIataFlightRow(t *testing.T) {
	f, err := toIataFlight(IataFlights{
		DepartureCode: "AMS",
		ArrivalCode:   "LHR",
		DepartureTime: "07:10",
		ArrivalTime:   "07:25",
		Days:          "12345",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AirportCode("AMS"), f.DepartureAirport)
	assert.Equal(t, civil.Time{Hour: 7, Minute: 10}, f.DepartureUTCTime)
	assert.Len(t, f.DaysOfWeek, 5)

	_, err = toIataFlight(IataFlights{DepartureTime: "07:10", ArrivalTime: "07:25", Days: "9"})
	assert.Error(t, err)
}

func TestEmployeeDocumentRoundTrip(t *testing.T) {
	record := entity.EmployeeRecord{
		ID:          "e1",
		Name:        "alice",
		HomeAirport: "AMS",
		Skills:      []string{"CP"},
		Roster: []entity.RosterEntry{
			{Date: civil.Date{Year: 2024, Month: time.March, Day: 4}, Codes: []string{"KL1001"}},
		},
	}

	doc := newEmployeeDocument(&record)
	assert.Equal(t, "2024-03-04", doc.Roster[0].Date)

	back, err := doc.toEntity()
	require.NoError(t, err)
	assert.Equal(t, record, back)

	doc.Roster[0].Date = "04/03/2024"
	_, err = doc.toEntity()
	assert.Error(t, err)
}

func TestFlightKey(t *testing.T) {
	record := &entity.FlightRecord{
		FlightNumber: "KL1001",
		DepartureUTC: time.Date(2024, time.March, 4, 23, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, "KL1001@2024-03-04", FlightKey(record))
}

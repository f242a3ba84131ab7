package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crewduty-service/internal/domain/entity"
)

func TestConnectionStatus(t *testing.T) {
	tests := []struct {
		name    string
		flights []entity.FlightRecord
		taxis   []entity.TaxiTime
		want    Connection
	}{
		{
			name: "no ground route",
			flights: []entity.FlightRecord{
				flight("KL1", "AMS", "LHR", at(4, 8, 0), at(4, 9, 0)),
				flight("KL2", "CDG", "AMS", at(4, 12, 0), at(4, 13, 0)),
			},
			want: Connection{InvalidConnection: 1, TaxiMinutes: 0},
		},
		{
			name: "taxi route",
			flights: []entity.FlightRecord{
				flight("KL1", "LHR", "RTM", at(4, 8, 0), at(4, 9, 0)),
				flight("KL2", "AMS", "LHR", at(4, 12, 0), at(4, 13, 0)),
			},
			taxis: []entity.TaxiTime{{From: "RTM", To: "AMS", Minutes: 45}},
			want:  Connection{InvalidConnection: 0, TaxiMinutes: 45},
		},
		{
			name: "taxi route too long",
			flights: []entity.FlightRecord{
				flight("KL1", "LHR", "RTM", at(4, 8, 0), at(4, 9, 0)),
				flight("KL2", "AMS", "LHR", at(5, 12, 0), at(5, 13, 0)),
			},
			taxis: []entity.TaxiTime{{From: "RTM", To: "AMS", Minutes: MaxTaxiMinutes + 1}},
			want:  Connection{InvalidConnection: 1},
		},
		{
			name: "same airport",
			flights: []entity.FlightRecord{
				flight("KL1", "AMS", "LHR", at(4, 8, 0), at(4, 9, 0)),
				flight("KL2", "LHR", "AMS", at(4, 12, 0), at(4, 13, 0)),
			},
			want: Connection{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSchedule(t, tt.flights, tt.taxis)
			assign(t, s, "KL1", 0)
			assign(t, s, "KL2", 0)
			assert.Equal(t, tt.want, ConnectionStatus(s, 0))
		})
	}
}

func TestHomeAndFlightTotals(t *testing.T) {
	s := newSchedule(t, []entity.FlightRecord{
		flight("KL1", "AMS", "LHR", at(4, 8, 0), at(4, 9, 0)),
		flight("KL2", "LHR", "CDG", at(5, 12, 0), at(5, 13, 30)),
	}, nil)

	assert.True(t, FirstDepartureFromHome(s, 0))
	assert.True(t, LastArrivalAtHome(s, 0))
	assert.Zero(t, FlightMinutesTotal(s, 0))

	assign(t, s, "KL2", 0)
	assign(t, s, "KL1", 0)

	assert.True(t, FirstDepartureFromHome(s, 0))
	assert.False(t, LastArrivalAtHome(s, 0))
	assert.Equal(t, int64(150), FlightMinutesTotal(s, 0))
}

package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"crewduty-service/internal/domain/entity"
)

func TestRestLack(t *testing.T) {
	tests := []struct {
		name    string
		flights []entity.FlightRecord
		want    int
	}{
		{
			// 9h duty ending in LHR, 9h rest
			name: "away from home",
			flights: []entity.FlightRecord{
				flight("KL1", "AMS", "LHR", at(4, 8, 30), at(4, 16, 30)),
				flight("KL2", "LHR", "AMS", at(5, 2, 30), at(5, 4, 0)),
			},
			want: 60,
		},
		{
			name: "at home",
			flights: []entity.FlightRecord{
				flight("KL1", "LHR", "AMS", at(4, 8, 30), at(4, 16, 30)),
				flight("KL2", "AMS", "LHR", at(5, 2, 30), at(5, 4, 0)),
			},
			want: 180,
		},
		{
			// 13h duty requires 13h of rest, 12h given
			name: "duty longer than the minimum",
			flights: []entity.FlightRecord{
				flight("KL1", "AMS", "LHR", at(4, 6, 30), at(4, 18, 30)),
				flight("KL2", "LHR", "AMS", at(5, 7, 30), at(5, 9, 0)),
			},
			want: 60,
		},
		{
			name: "enough rest",
			flights: []entity.FlightRecord{
				flight("KL1", "AMS", "LHR", at(4, 8, 30), at(4, 16, 30)),
				flight("KL2", "LHR", "AMS", at(5, 3, 30), at(5, 5, 0)),
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSchedule(t, tt.flights, nil)
			d := assign(t, s, "KL1", 0)
			next := assign(t, s, "KL2", 0)
			assert.Equal(t, tt.want, RestLack(s, d, next))
		})
	}
}

func TestRestLackNeutral(t *testing.T) {
	s := newSchedule(t, []entity.FlightRecord{
		flight("KL1", "AMS", "LHR", at(4, 8, 30), at(4, 16, 30)),
	}, nil)
	d := assign(t, s, "KL1", 0)

	assert.Zero(t, RestLack(s, d, nil))
	// placeholder of the next day has no code
	assert.Zero(t, RestLack(s, d, s.AdjacentDuty(d, 1)))
	assert.Zero(t, RestLack(s, s.AdjacentDuty(d, -1), d))
}

func TestRestLackBeforeGroundDuty(t *testing.T) {
	s := newSchedule(t, []entity.FlightRecord{
		flight("KL1", "AMS", "LHR", at(4, 8, 30), at(4, 16, 30)),
	}, nil, func(p *entity.Problem) {
		p.PreAssigned = []entity.PreAssignedDuty{
			{EmployeeName: "alice", Code: entity.GroundDutyCode, Start: at(5, 0, 0), End: at(5, 8, 0)},
		}
	})
	d := assign(t, s, "KL1", 0)

	// 7h of rest where 10h are required
	assert.Equal(t, 180, RestLack(s, d, s.AdjacentDuty(d, 1)))
}

func TestNoLocalNight(t *testing.T) {
	tests := []struct {
		name     string
		previous *entity.Duty
		duty     *entity.Duty
		want     bool
	}{
		{"late end and short rest", &entity.Duty{End: at(4, 22, 30)}, &entity.Duty{Start: at(5, 5, 0)}, true},
		{"late end and long rest", &entity.Duty{End: at(4, 22, 30)}, &entity.Duty{Start: at(5, 7, 0)}, false},
		{"early start", &entity.Duty{End: at(4, 20, 0)}, &entity.Duty{Start: at(5, 5, 30)}, true},
		{"normal day", &entity.Duty{End: at(4, 20, 0)}, &entity.Duty{Start: at(5, 8, 0)}, false},
		{"no previous", nil, &entity.Duty{Start: at(5, 5, 0)}, false},
		{"unset previous", &entity.Duty{}, &entity.Duty{Start: at(5, 5, 0)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NoLocalNight(tt.previous, tt.duty))
		})
	}
}

func TestIsNightDuty(t *testing.T) {
	assert.True(t, IsNightDuty(&entity.Duty{Start: at(4, 4, 59)}))
	assert.False(t, IsNightDuty(&entity.Duty{Start: at(4, 5, 0)}))
	assert.False(t, IsNightDuty(&entity.Duty{}))
	assert.False(t, IsNightDuty(nil))
}

func TestIsLateArrival(t *testing.T) {
	assert.True(t, IsLateArrival(&entity.Duty{Date: day4, End: at(5, 0, 30)}))
	assert.False(t, IsLateArrival(&entity.Duty{Date: day4, End: at(4, 23, 59)}))
	assert.False(t, IsLateArrival(&entity.Duty{Date: day4}))
}

func TestSinceMidnight(t *testing.T) {
	assert.Equal(t, 13*time.Hour+5*time.Minute, sinceMidnight(at(4, 13, 5)))
}

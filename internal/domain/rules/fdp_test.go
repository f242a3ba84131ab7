package rules

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"

	"crewduty-service/internal/domain/entity"
)

func maxFDPTable(segments int, max time.Duration) entity.MaxFDPTable {
	rule := entity.MaxFDPRule{Start: civil.Time{Hour: 6}, End: civil.Time{Hour: 13, Minute: 29}}
	rule.SetMax(segments, max)
	return entity.MaxFDPTable{rule}
}

func TestFlightDutyPeriod(t *testing.T) {
	s := newSchedule(t, []entity.FlightRecord{
		flight("KL1", "AMS", "LHR", at(4, 6, 30), at(4, 8, 0)),
	}, nil)

	_, ok := FlightDutyPeriod(s.DutyOn(0, day4))
	assert.False(t, ok)

	d := assign(t, s, "KL1", 0)
	fdp, ok := FlightDutyPeriod(d)
	assert.True(t, ok)
	assert.Equal(t, 2*time.Hour, fdp)
}

func TestOverMaxFDP(t *testing.T) {
	s := newSchedule(t, []entity.FlightRecord{
		flight("KL1", "AMS", "LHR", at(4, 6, 30), at(4, 8, 0)),
		flight("KL2", "LHR", "AMS", at(4, 9, 0), at(4, 17, 0)),
	}, nil)
	assign(t, s, "KL1", 0)
	d := assign(t, s, "KL2", 0)

	// sign-in at 06:00 UTC is 08:00 local, 11h until the last arrival
	tests := []struct {
		name  string
		table entity.MaxFDPTable
		want  int
	}{
		{"over a 10h maximum", maxFDPTable(2, 10*time.Hour), 6},
		{"exactly at the maximum", maxFDPTable(2, 11*time.Hour), 0},
		{"under the maximum", maxFDPTable(2, 12*time.Hour), 0},
		{"partial units are dropped", maxFDPTable(2, 10*time.Hour+55*time.Minute), 0},
		{"unfilled segment slot", maxFDPTable(4, 10*time.Hour), 0},
		{"empty table", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverMaxFDP(d, tt.table))
		})
	}
}

func TestOverMaxFDPFallsBackToFirstRule(t *testing.T) {
	s := newSchedule(t, []entity.FlightRecord{
		flight("KL1", "AMS", "LHR", at(4, 0, 30), at(4, 11, 0)),
	}, nil)
	d := assign(t, s, "KL1", 0)

	// 02:00 local matches no bucket
	table := maxFDPTable(1, 9*time.Hour)
	late := entity.MaxFDPRule{Start: civil.Time{Hour: 13, Minute: 30}, End: civil.Time{Hour: 21, Minute: 59}}
	late.SetMax(1, 20*time.Hour)
	table = append(table, late)

	assert.Equal(t, 12, OverMaxFDP(d, table))
}

func TestGroundDutyMetricsAreNeutral(t *testing.T) {
	s := newSchedule(t, nil, nil, func(p *entity.Problem) {
		p.PreAssigned = []entity.PreAssignedDuty{
			{EmployeeName: "alice", Code: entity.GroundDutyCode, Start: at(4, 2, 0), End: at(4, 23, 0)},
		}
	})
	d := s.DutyOn(0, day4)
	assert.True(t, d.IsGround())

	assert.Zero(t, OverMaxFDP(d, maxFDPTable(2, time.Hour)))
	assert.Zero(t, HomeBaseInconvenience(s, d))
	assert.Zero(t, GroundOverlapMinutes(s, d))
	assert.Zero(t, RestLack(s, d, s.AdjacentDuty(d, 1)))
}

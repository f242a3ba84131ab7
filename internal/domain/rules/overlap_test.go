package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crewduty-service/internal/domain/entity"
)

func TestOverlapMinutes(t *testing.T) {
	f := &entity.Flight{DepartureUTC: at(4, 8, 0), ArrivalUTC: at(4, 10, 0)}
	tests := []struct {
		name  string
		other *entity.Flight
		want  int
	}{
		{"partial", &entity.Flight{DepartureUTC: at(4, 9, 0), ArrivalUTC: at(4, 11, 0)}, 60},
		{"contained", &entity.Flight{DepartureUTC: at(4, 8, 30), ArrivalUTC: at(4, 9, 0)}, 30},
		{"touching", &entity.Flight{DepartureUTC: at(4, 10, 0), ArrivalUTC: at(4, 11, 0)}, 0},
		{"disjoint", &entity.Flight{DepartureUTC: at(5, 8, 0), ArrivalUTC: at(5, 9, 0)}, 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverlapMinutes(f, tt.other))
			assert.Equal(t, tt.want, OverlapMinutes(tt.other, f))
		})
	}
}

func TestGroundOverlapMinutes(t *testing.T) {
	s := newSchedule(t, []entity.FlightRecord{
		flight("KL1", "AMS", "LHR", at(4, 11, 0), at(4, 13, 0)),
	}, nil, func(p *entity.Problem) {
		p.PreAssigned = []entity.PreAssignedDuty{
			{EmployeeName: "alice", Code: "S1E", Start: at(4, 8, 0), End: at(4, 12, 0)},
		}
	})

	d := s.DutyOn(0, day4)
	assert.Zero(t, GroundOverlapMinutes(s, d))

	d = assign(t, s, "KL1", 0)
	assert.Equal(t, 60, GroundOverlapMinutes(s, d))
	assert.Equal(t, at(4, 8, 0), d.Start)
	assert.Equal(t, at(4, 13, 30), d.End)
}

func TestConflictMinutes(t *testing.T) {
	s := newSchedule(t, []entity.FlightRecord{
		flight("KL1", "AMS", "LHR", at(4, 8, 0), at(4, 10, 0)),
		flight("KL2", "LHR", "AMS", at(4, 9, 0), at(4, 11, 0)),
		flight("KL3", "AMS", "LHR", at(5, 9, 0), at(5, 11, 0)),
	}, nil)
	assign(t, s, "KL1", 0)
	assign(t, s, "KL2", 0)
	assign(t, s, "KL3", 0)

	assert.Equal(t, 60, ConflictMinutes(s, 0))
}

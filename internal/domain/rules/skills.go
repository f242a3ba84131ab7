package rules

import (
	"crewduty-service/internal/domain/entity"
)

// MissingSkill reports whether the owner lacks the skill the seat requires
func MissingSkill(s *entity.Schedule, id entity.AssignmentID) bool {
	a := s.Assignment(id)
	if a == nil || !a.IsAssigned() {
		return false
	}
	return !s.Employee(a.Owner).HasSkill(a.RequiredSkill)
}

// MissingAircraftQualification reports whether the owner is not qualified on
// the aircraft type. Flights without a type need no qualification.
func MissingAircraftQualification(s *entity.Schedule, id entity.AssignmentID) bool {
	a := s.Assignment(id)
	if a == nil || !a.IsAssigned() {
		return false
	}
	aircraftType := s.AssignmentFlight(id).AircraftType
	if aircraftType == "" {
		return false
	}
	return !s.Employee(a.Owner).HasAircraftTypeQualification(aircraftType)
}

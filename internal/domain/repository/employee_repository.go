package repository

import (
	"context"

	"crewduty-service/internal/domain/entity"
)

// EmployeeRepository defines the interface for employees and their rosters
type EmployeeRepository interface {
	ListEmployees(ctx context.Context) ([]entity.EmployeeRecord, error)
	Upsert(ctx context.Context, record *entity.EmployeeRecord) error
}

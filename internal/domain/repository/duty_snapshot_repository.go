package repository

import (
	"context"
	"errors"

	"crewduty-service/internal/domain/entity"
)

// ErrNotFound is returned when a lookup by key matches nothing
var ErrNotFound = errors.New("not found")

// DutySnapshotRepository defines the interface for duty evaluation snapshots
type DutySnapshotRepository interface {
	SaveSnapshots(ctx context.Context, snapshots []entity.DutySnapshot) error
	FindByKey(ctx context.Context, dutyKey string) (*entity.DutySnapshot, error)
	FindByEmployee(ctx context.Context, employeeName string) ([]entity.DutySnapshot, error)
}

package refdata

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/internal/domain/repository"
)

// SnapshotStore keeps duty snapshots in memory keyed by duty key
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]entity.DutySnapshot
	now       func() time.Time
}

var _ repository.DutySnapshotRepository = (*SnapshotStore)(nil)

// NewSnapshotStore creates a new in-memory snapshot store
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snapshots: make(map[string]entity.DutySnapshot),
		now:       time.Now,
	}
}

// SaveSnapshots upserts the snapshots, keeping the creation time of
// existing keys
func (s *SnapshotStore) SaveSnapshots(ctx context.Context, snapshots []entity.DutySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, snap := range snapshots {
		if existing, ok := s.snapshots[snap.DutyKey]; ok {
			snap.ID = existing.ID
			snap.CreatedAt = existing.CreatedAt
		} else {
			snap.CreatedAt = now
		}
		snap.UpdatedAt = now
		s.snapshots[snap.DutyKey] = snap
	}
	return nil
}

func (s *SnapshotStore) FindByKey(ctx context.Context, dutyKey string) (*entity.DutySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[dutyKey]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &snap, nil
}

// FindByEmployee returns the snapshots of the employee ordered by date
func (s *SnapshotStore) FindByEmployee(ctx context.Context, employeeName string) ([]entity.DutySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []entity.DutySnapshot
	for _, snap := range s.snapshots {
		if snap.EmployeeName == employeeName {
			result = append(result, snap)
		}
	}
	slices.SortFunc(result, func(a, b entity.DutySnapshot) int {
		return strings.Compare(a.Date, b.Date)
	})
	return result, nil
}

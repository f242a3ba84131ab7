package repository

import (
	"context"

	"crewduty-service/internal/domain/entity"
)

// MaxFDPRepository defines the interface for the maximum flight duty period
// table. Rule order is significant.
type MaxFDPRepository interface {
	ListRules(ctx context.Context) (entity.MaxFDPTable, error)
	SaveRules(ctx context.Context, table entity.MaxFDPTable) error
}

package repository

import (
	"context"
	"time"

	"crewduty-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight record operations
type FlightRepository interface {
	// ListFlights returns the flights departing in [from, to)
	ListFlights(ctx context.Context, from, to time.Time) ([]entity.FlightRecord, error)
	Upsert(ctx context.Context, record *entity.FlightRecord) error
}

package repository

import (
	"context"

	"crewduty-service/internal/domain/entity"
)

// IataFlightRepository defines the interface for the commercial flight
// catalogue
type IataFlightRepository interface {
	ListIataFlights(ctx context.Context) ([]entity.IataFlight, error)
	SaveIataFlights(ctx context.Context, flights []entity.IataFlight) error
}

package repository

import (
	"context"

	"crewduty-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport reference data
type AirportRepository interface {
	ListAirports(ctx context.Context) ([]entity.Airport, error)
	ListTaxiTimes(ctx context.Context) ([]entity.TaxiTime, error)
	SaveAirports(ctx context.Context, airports []entity.Airport, taxiTimes []entity.TaxiTime) error
}

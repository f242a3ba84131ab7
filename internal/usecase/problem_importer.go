package usecase

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/internal/domain/repository"
	"crewduty-service/pkg/logger"
)

// ImportData is a batch of reference data, flights and employees to store
type ImportData struct {
	Airports    []entity.Airport        `validate:"dive"`
	TaxiTimes   []entity.TaxiTime       `validate:"dive"`
	MaxFDP      entity.MaxFDPTable      `validate:"-"`
	IataFlights []entity.IataFlight     `validate:"dive"`
	Flights     []entity.FlightRecord   `validate:"dive"`
	Employees   []entity.EmployeeRecord `validate:"dive"`
}

// ImportResult counts the stored records
type ImportResult struct {
	Airports    int
	TaxiTimes   int
	MaxFDPRules int
	IataFlights int
	Flights     int
	Employees   int
}

// ProblemImporter writes a batch into the repositories the loader reads
type ProblemImporter struct {
	airportRepo    repository.AirportRepository
	maxFDPRepo     repository.MaxFDPRepository
	iataFlightRepo repository.IataFlightRepository
	flightRepo     repository.FlightRepository
	employeeRepo   repository.EmployeeRepository
	validate       *validator.Validate
	logger         logger.Logger
}

// NewProblemImporter creates a new problem importer
func NewProblemImporter(
	airportRepo repository.AirportRepository,
	maxFDPRepo repository.MaxFDPRepository,
	iataFlightRepo repository.IataFlightRepository,
	flightRepo repository.FlightRepository,
	employeeRepo repository.EmployeeRepository,
	logger logger.Logger,
) *ProblemImporter {
	return &ProblemImporter{
		airportRepo:    airportRepo,
		maxFDPRepo:     maxFDPRepo,
		iataFlightRepo: iataFlightRepo,
		flightRepo:     flightRepo,
		employeeRepo:   employeeRepo,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		logger:         logger,
	}
}

// Import validates the whole batch before writing anything. Reference
// tables are replaced; flights and employees are upserted by key.
func (i *ProblemImporter) Import(ctx context.Context, data ImportData) (ImportResult, error) {
	var result ImportResult
	if err := i.validate.Struct(&data); err != nil {
		return result, fmt.Errorf("%w: %v", entity.ErrInvalidProblem, err)
	}

	if len(data.Airports) > 0 {
		if err := i.airportRepo.SaveAirports(ctx, data.Airports, data.TaxiTimes); err != nil {
			return result, fmt.Errorf("save airports: %w", err)
		}
		result.Airports, result.TaxiTimes = len(data.Airports), len(data.TaxiTimes)
	}
	if len(data.MaxFDP) > 0 {
		if err := i.maxFDPRepo.SaveRules(ctx, data.MaxFDP); err != nil {
			return result, fmt.Errorf("save max fdp rules: %w", err)
		}
		result.MaxFDPRules = len(data.MaxFDP)
	}
	if len(data.IataFlights) > 0 {
		if err := i.iataFlightRepo.SaveIataFlights(ctx, data.IataFlights); err != nil {
			return result, fmt.Errorf("save iata flights: %w", err)
		}
		result.IataFlights = len(data.IataFlights)
	}

	for idx := range data.Flights {
		record := &data.Flights[idx]
		if err := i.flightRepo.Upsert(ctx, record); err != nil {
			return result, fmt.Errorf("upsert flight %s: %w", record.FlightNumber, err)
		}
		result.Flights++
	}
	for idx := range data.Employees {
		record := &data.Employees[idx]
		if err := i.employeeRepo.Upsert(ctx, record); err != nil {
			return result, fmt.Errorf("upsert employee %s: %w", record.Name, err)
		}
		result.Employees++
	}

	i.logger.Info("Problem imported",
		"airports", result.Airports,
		"maxFdpRules", result.MaxFDPRules,
		"iataFlights", result.IataFlights,
		"flights", result.Flights,
		"employees", result.Employees)
	return result, nil
}

package refdata

import (
	"context"
	"slices"
	"sync"
	"time"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/internal/domain/repository"
)

// Source serves a decoded problem file through the repository interfaces so
// the loader can run without a database. Writes stay in memory.
type Source struct {
	mu   sync.RWMutex
	data *Data
}

var (
	_ repository.AirportRepository    = (*Source)(nil)
	_ repository.MaxFDPRepository     = (*Source)(nil)
	_ repository.IataFlightRepository = (*Source)(nil)
	_ repository.FlightRepository     = (*Source)(nil)
	_ repository.EmployeeRepository   = employeeView{}
)

// NewSource creates a new in-memory source over the data
func NewSource(data *Data) *Source {
	if data == nil {
		data = &Data{}
	}
	return &Source{data: data}
}

// OpenSource reads a problem file and serves it
func OpenSource(path string) (*Source, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewSource(data), nil
}

// Data returns the served data
func (s *Source) Data() *Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

func (s *Source) ListAirports(ctx context.Context) ([]entity.Airport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Airports), nil
}

func (s *Source) ListTaxiTimes(ctx context.Context) ([]entity.TaxiTime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.TaxiTimes), nil
}

func (s *Source) SaveAirports(ctx context.Context, airports []entity.Airport, taxiTimes []entity.TaxiTime) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Airports = slices.Clone(airports)
	s.data.TaxiTimes = slices.Clone(taxiTimes)
	return nil
}

func (s *Source) ListRules(ctx context.Context) (entity.MaxFDPTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.MaxFDP), nil
}

func (s *Source) SaveRules(ctx context.Context, table entity.MaxFDPTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.MaxFDP = slices.Clone(table)
	return nil
}

func (s *Source) ListIataFlights(ctx context.Context) ([]entity.IataFlight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.IataFlights), nil
}

func (s *Source) SaveIataFlights(ctx context.Context, flights []entity.IataFlight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.IataFlights = slices.Clone(flights)
	return nil
}

// ListFlights returns the flights departing in [from, to) ordered by
// departure
func (s *Source) ListFlights(ctx context.Context, from, to time.Time) ([]entity.FlightRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var flights []entity.FlightRecord
	for _, f := range s.data.Flights {
		if !f.DepartureUTC.Before(from) && f.DepartureUTC.Before(to) {
			flights = append(flights, f)
		}
	}
	slices.SortStableFunc(flights, func(a, b entity.FlightRecord) int {
		return a.DepartureUTC.Compare(b.DepartureUTC)
	})
	return flights, nil
}

// Upsert replaces the flight with the same number and departure date
func (s *Source) Upsert(ctx context.Context, record *entity.FlightRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := record.DepartureUTC.UTC().Format(time.DateOnly)
	for i, f := range s.data.Flights {
		if f.FlightNumber == record.FlightNumber && f.DepartureUTC.UTC().Format(time.DateOnly) == date {
			s.data.Flights[i] = *record
			return nil
		}
	}
	s.data.Flights = append(s.data.Flights, *record)
	return nil
}

func (s *Source) ListEmployees(ctx context.Context) ([]entity.EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.Employees), nil
}

// Employees returns an EmployeeRepository view of the source. Source cannot
// implement both Upsert methods itself.
func (s *Source) Employees() repository.EmployeeRepository {
	return employeeView{s}
}

type employeeView struct {
	*Source
}

// Upsert replaces the employee with the same name
func (v employeeView) Upsert(ctx context.Context, record *entity.EmployeeRecord) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, e := range v.data.Employees {
		if e.Name == record.Name {
			v.data.Employees[i] = *record
			return nil
		}
	}
	v.data.Employees = append(v.data.Employees, *record)
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/internal/domain/repository"
	"crewduty-service/pkg/logger"
	"crewduty-service/pkg/metrics"
	"crewduty-service/pkg/utils"
)

// rosterFlight is a flight an employee already operates according to the
// roster
type rosterFlight struct {
	employee     string
	flightNumber string
	date         civil.Date
}

// ScheduleLoader reads the repositories and builds a ready to use schedule
type ScheduleLoader struct {
	airportRepo    repository.AirportRepository
	maxFDPRepo     repository.MaxFDPRepository
	iataFlightRepo repository.IataFlightRepository
	flightRepo     repository.FlightRepository
	employeeRepo   repository.EmployeeRepository
	validate       *validator.Validate
	logger         logger.Logger
	metrics        *metrics.Metrics
}

// NewScheduleLoader creates a new schedule loader
func NewScheduleLoader(
	airportRepo repository.AirportRepository,
	maxFDPRepo repository.MaxFDPRepository,
	iataFlightRepo repository.IataFlightRepository,
	flightRepo repository.FlightRepository,
	employeeRepo repository.EmployeeRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *ScheduleLoader {
	return &ScheduleLoader{
		airportRepo:    airportRepo,
		maxFDPRepo:     maxFDPRepo,
		iataFlightRepo: iataFlightRepo,
		flightRepo:     flightRepo,
		employeeRepo:   employeeRepo,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		logger:         logger,
		metrics:        metrics,
	}
}

// Load builds the schedule of the horizon [first, last]. Roster flights are
// given to their employee through a listener so the duties are consistent
// before the first evaluation.
func (l *ScheduleLoader) Load(ctx context.Context, first, last civil.Date) (*entity.Schedule, error) {
	startTime := time.Now()
	l.logger.Info("Loading schedule", "first", first.String(), "last", last.String())

	problem, owned, err := l.buildProblem(ctx, first, last)
	if err != nil {
		l.metrics.IncError("load")
		return nil, err
	}

	schedule, err := entity.NewSchedule(problem)
	if err != nil {
		l.metrics.IncError("load")
		return nil, fmt.Errorf("build schedule: %w", err)
	}

	applied, err := l.applyRosterFlights(schedule, owned)
	if err != nil {
		l.metrics.IncError("load")
		return nil, err
	}

	l.metrics.ObserveLoad(time.Since(startTime).Seconds())
	l.logger.Info("Schedule loaded",
		"flights", len(schedule.Flights()),
		"assignments", len(schedule.Assignments()),
		"employees", len(schedule.Employees()),
		"rosterFlights", applied,
		"duration", time.Since(startTime).String())
	return schedule, nil
}

// buildProblem reads and validates every repository. It also returns the
// roster flights that must be owned once the schedule exists.
func (l *ScheduleLoader) buildProblem(ctx context.Context, first, last civil.Date) (entity.Problem, []rosterFlight, error) {
	if last.Before(first) {
		return entity.Problem{}, nil, fmt.Errorf("%w: horizon ends %s before it starts %s", entity.ErrInvalidProblem, last, first)
	}
	problem := entity.Problem{FirstDate: first, LastDate: last}

	var err error
	if problem.Airports, err = l.airportRepo.ListAirports(ctx); err != nil {
		return entity.Problem{}, nil, fmt.Errorf("list airports: %w", err)
	}
	if problem.TaxiTimes, err = l.airportRepo.ListTaxiTimes(ctx); err != nil {
		return entity.Problem{}, nil, fmt.Errorf("list taxi times: %w", err)
	}
	if problem.MaxFDP, err = l.maxFDPRepo.ListRules(ctx); err != nil {
		return entity.Problem{}, nil, fmt.Errorf("list max fdp rules: %w", err)
	}
	if len(problem.MaxFDP) == 0 {
		l.logger.Warn("Max FDP table is empty, duty periods will not be checked")
	}
	if problem.IataFlights, err = l.iataFlightRepo.ListIataFlights(ctx); err != nil {
		return entity.Problem{}, nil, fmt.Errorf("list iata flights: %w", err)
	}

	from := first.In(time.UTC)
	to := last.AddDays(1).In(time.UTC)
	if problem.Flights, err = l.flightRepo.ListFlights(ctx, from, to); err != nil {
		return entity.Problem{}, nil, fmt.Errorf("list flights: %w", err)
	}

	employees, err := l.employeeRepo.ListEmployees(ctx)
	if err != nil {
		return entity.Problem{}, nil, fmt.Errorf("list employees: %w", err)
	}

	if err := l.validate.Struct(&problem); err != nil {
		return entity.Problem{}, nil, fmt.Errorf("%w: %v", entity.ErrInvalidProblem, err)
	}
	for i := range employees {
		if err := l.validate.Struct(&employees[i]); err != nil {
			return entity.Problem{}, nil, fmt.Errorf("%w: employee %s: %v", entity.ErrInvalidProblem, employees[i].Name, err)
		}
	}

	var owned []rosterFlight
	problem.Employees = make([]entity.EmployeeRecord, 0, len(employees))
	for _, rec := range employees {
		rec, pre, flights := l.classifyRoster(rec)
		problem.Employees = append(problem.Employees, rec)
		problem.PreAssigned = append(problem.PreAssigned, pre...)
		owned = append(owned, flights...)
	}
	return problem, owned, nil
}

// classifyRoster turns roster codes into unavailable days, pre-assigned
// duties and roster flights
func (l *ScheduleLoader) classifyRoster(rec entity.EmployeeRecord) (entity.EmployeeRecord, []entity.PreAssignedDuty, []rosterFlight) {
	var pre []entity.PreAssignedDuty
	var flights []rosterFlight

	for _, entry := range rec.Roster {
		for _, raw := range entry.Codes {
			code := utils.NormalizeCode(raw)
			switch utils.ClassifyRosterCode(code) {
			case utils.CodeDayOff:
				if !slices.Contains(rec.UnavailableDays, entry.Date) {
					rec.UnavailableDays = append(rec.UnavailableDays, entry.Date)
				}
			case utils.CodePreAssigned:
				if entry.Start.IsZero() || entry.End.IsZero() {
					l.logger.Warn("Pre-assigned duty without interval skipped",
						"employee", rec.Name,
						"date", entry.Date.String(),
						"code", code)
					continue
				}
				pre = append(pre, entity.PreAssignedDuty{
					EmployeeName: rec.Name,
					Code:         code,
					Start:        entry.Start,
					End:          entry.End,
				})
			case utils.CodeFlight:
				flights = append(flights, rosterFlight{employee: rec.Name, flightNumber: code, date: entry.Date})
			default:
				l.logger.Warn("Unknown roster code ignored",
					"employee", rec.Name,
					"date", entry.Date.String(),
					"code", raw)
			}
		}
	}
	return rec, pre, flights
}

// applyRosterFlights gives every roster flight to its employee on the first
// free seat matching one of the employee's skills
func (l *ScheduleLoader) applyRosterFlights(s *entity.Schedule, owned []rosterFlight) (int, error) {
	listener := NewDutyListener(s, NopTracker{}, l.logger, l.metrics)

	applied := 0
	for _, rf := range owned {
		employee, ok := s.EmployeeByName(rf.employee)
		if !ok {
			return applied, fmt.Errorf("%w: roster of unknown employee %s", entity.ErrInvalidProblem, rf.employee)
		}

		skills := make([]string, 0, len(employee.Skills))
		for skill := range employee.Skills {
			skills = append(skills, skill)
		}
		slices.Sort(skills)

		found := false
		for _, skill := range skills {
			id, ok := s.FindAssignment(rf.flightNumber, rf.date, skill)
			if !ok {
				continue
			}
			if err := listener.ChangeOwner(id, employee.ID); err != nil {
				return applied, fmt.Errorf("assign %s on %s to %s: %w", rf.flightNumber, rf.date, rf.employee, err)
			}
			found = true
			applied++
			break
		}
		if !found {
			l.logger.Warn("Roster flight has no free seat",
				"employee", rf.employee,
				"flightNumber", rf.flightNumber,
				"date", rf.date.String())
		}
	}
	return applied, nil
}

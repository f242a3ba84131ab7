package usecase

import (
	"slices"
	"time"

	"cloud.google.com/go/civil"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/pkg/logger"
)

// IataOption is a commercial flight on a given day
type IataOption struct {
	Flight    entity.IataFlight
	Departure time.Time
	Arrival   time.Time
}

// Repositioning is a gap in the timeline of an employee: two consecutive
// flights on different days whose airports are not connected by ground
type Repositioning struct {
	EmployeeName string
	// Date is the day after the departure of the earlier flight, when the
	// employee travels
	Date    civil.Date
	From    entity.AirportCode
	To      entity.AirportCode
	After   string
	Before  string
	Options []IataOption
}

// Resolved reports whether a commercial flight can fill the gap
func (r *Repositioning) Resolved() bool {
	return len(r.Options) > 0
}

// RepositioningPlanner looks for the commercial flights crews need between
// their duties. It only reads the schedule.
type RepositioningPlanner struct {
	logger logger.Logger
}

// NewRepositioningPlanner creates a new repositioning planner
func NewRepositioningPlanner(logger logger.Logger) *RepositioningPlanner {
	return &RepositioningPlanner{logger: logger}
}

// Plan returns the repositionings of every employee
func (p *RepositioningPlanner) Plan(s *entity.Schedule) []Repositioning {
	var plan []Repositioning
	for _, e := range s.Employees() {
		plan = append(plan, p.PlanEmployee(s, e.ID)...)
	}
	return plan
}

// PlanEmployee returns the repositionings of one employee in time order
func (p *RepositioningPlanner) PlanEmployee(s *entity.Schedule, employee entity.EmployeeID) []Repositioning {
	e := s.Employee(employee)
	if e == nil {
		return nil
	}

	var plan []Repositioning
	var previous *entity.Flight
	for _, id := range s.Timeline(employee) {
		flight := s.AssignmentFlight(id)
		if previous != nil {
			if r, ok := gap(s, previous, flight); ok {
				r.EmployeeName = e.Name
				if !r.Resolved() {
					p.logger.Warn("No commercial flight fills the gap",
						"employee", e.Name,
						"from", string(r.From),
						"to", string(r.To),
						"date", r.Date.String())
				}
				plan = append(plan, r)
			}
		}
		previous = flight
	}
	return plan
}

func gap(s *entity.Schedule, previous, next *entity.Flight) (Repositioning, bool) {
	from, to := previous.ArrivalAirport, next.DepartureAirport
	if !next.DepartureDate().After(previous.DepartureDate()) || from == to {
		return Repositioning{}, false
	}
	if _, ok := s.TaxiMinutes(from, to); ok {
		return Repositioning{}, false
	}

	r := Repositioning{
		Date:   previous.DepartureDate().AddDays(1),
		From:   from,
		To:     to,
		After:  previous.String(),
		Before: next.String(),
	}
	for _, f := range s.IataFlightsBetween(from, to) {
		if f.IsAvailable(r.Date) {
			r.Options = append(r.Options, option(f, r.Date))
		}
	}
	slices.SortStableFunc(r.Options, func(a, b IataOption) int {
		return a.Departure.Compare(b.Departure)
	})
	return r, true
}

func option(f entity.IataFlight, date civil.Date) IataOption {
	departure := civil.DateTime{Date: date, Time: f.DepartureUTCTime}.In(time.UTC)
	arrival := civil.DateTime{Date: date, Time: f.ArrivalUTCTime}.In(time.UTC)
	// overnight flights land the next day
	if arrival.Before(departure) {
		arrival = arrival.AddDate(0, 0, 1)
	}
	return IataOption{Flight: f, Departure: departure, Arrival: arrival}
}

package entity

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/civil"
)

// ErrInvalidProblem is returned when the input data references unknown
// entities or carries impossible values
var ErrInvalidProblem = errors.New("invalid problem")

type route struct {
	from AirportCode
	to   AirportCode
}

// Schedule is the arena holding every entity of one planning run. Entities
// refer to each other through integer handles. Reference data is immutable
// after NewSchedule; assignments owners, duties and calendars are the mutable
// state.
type Schedule struct {
	FirstDate civil.Date
	LastDate  civil.Date

	airports    map[AirportCode]*Airport
	maxFDP      MaxFDPTable
	iataFlights map[route][]IataFlight
	flights     []Flight
	flightIndex map[string][]AssignmentID
	employeeIdx map[string]EmployeeID

	assignments []FlightAssignment
	employees   []*Employee
	duties      []*Duty
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidProblem, fmt.Sprintf(format, args...))
}

func flightKey(flightNumber string, date civil.Date) string {
	return flightNumber + "@" + date.String()
}

// NewSchedule builds the arena from the problem. Every employee gets an empty
// duty for each date of the horizon, pre-assigned activities are applied and
// all assignments start without owner.
func NewSchedule(p Problem) (*Schedule, error) {
	if p.LastDate.Before(p.FirstDate) {
		return nil, invalid("horizon ends %s before it starts %s", p.LastDate, p.FirstDate)
	}

	s := &Schedule{
		FirstDate:   p.FirstDate,
		LastDate:    p.LastDate,
		airports:    make(map[AirportCode]*Airport, len(p.Airports)),
		maxFDP:      p.MaxFDP,
		iataFlights: make(map[route][]IataFlight),
		flightIndex: make(map[string][]AssignmentID, len(p.Flights)),
		employeeIdx: make(map[string]EmployeeID, len(p.Employees)),
	}

	for _, a := range p.Airports {
		if a.Code == "" {
			return nil, invalid("airport without code")
		}
		if _, dup := s.airports[a.Code]; dup {
			return nil, invalid("duplicate airport %s", a.Code)
		}
		airport := a
		airport.TaxiMinutes = make(map[AirportCode]int, len(a.TaxiMinutes))
		for to, minutes := range a.TaxiMinutes {
			airport.TaxiMinutes[to] = minutes
		}
		s.airports[a.Code] = &airport
	}
	for code, a := range s.airports {
		for to := range a.TaxiMinutes {
			if _, ok := s.airports[to]; !ok {
				return nil, invalid("airport %s has taxi time to unknown airport %s", code, to)
			}
		}
	}
	for _, t := range p.TaxiTimes {
		from, ok := s.airports[t.From]
		if !ok {
			return nil, invalid("taxi time from unknown airport %s", t.From)
		}
		if _, ok := s.airports[t.To]; !ok {
			return nil, invalid("taxi time to unknown airport %s", t.To)
		}
		if t.Minutes < 0 {
			return nil, invalid("negative taxi time %s-%s", t.From, t.To)
		}
		from.TaxiMinutes[t.To] = t.Minutes
	}

	for _, f := range p.IataFlights {
		if err := s.checkAirports(f.DepartureAirport, f.ArrivalAirport); err != nil {
			return nil, fmt.Errorf("iata flight: %w", err)
		}
		r := route{from: f.DepartureAirport, to: f.ArrivalAirport}
		s.iataFlights[r] = append(s.iataFlights[r], f)
	}

	for _, rec := range p.Flights {
		if err := s.addFlight(rec); err != nil {
			return nil, err
		}
	}

	for _, rec := range p.Employees {
		if err := s.addEmployee(rec); err != nil {
			return nil, err
		}
	}

	for _, pre := range p.PreAssigned {
		if err := s.applyPreAssigned(pre); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Schedule) checkAirports(codes ...AirportCode) error {
	for _, code := range codes {
		if _, ok := s.airports[code]; !ok {
			return invalid("unknown airport %q", code)
		}
	}
	return nil
}

func (s *Schedule) addFlight(rec FlightRecord) error {
	dep := AirportCode(rec.DepartureAirport)
	arr := AirportCode(rec.ArrivalAirport)
	if err := s.checkAirports(dep, arr); err != nil {
		return fmt.Errorf("flight %s: %w", rec.FlightNumber, err)
	}
	if !rec.DepartureUTC.Before(rec.ArrivalUTC) {
		return invalid("flight %s departs at %s, not before its arrival at %s",
			rec.FlightNumber, rec.DepartureUTC, rec.ArrivalUTC)
	}

	flight := Flight{
		ID:                   FlightID(len(s.flights)),
		FlightNumber:         rec.FlightNumber,
		DepartureAirport:     dep,
		ArrivalAirport:       arr,
		DepartureUTC:         rec.DepartureUTC.UTC(),
		ArrivalUTC:           rec.ArrivalUTC.UTC(),
		AircraftType:         rec.AircraftType,
		AircraftRegistration: rec.AircraftRegistration,
	}
	s.flights = append(s.flights, flight)

	key := flightKey(flight.FlightNumber, flight.DepartureDate())
	for seat, skill := range rec.SeatSkills() {
		id := AssignmentID(len(s.assignments))
		s.assignments = append(s.assignments, FlightAssignment{
			ID:            id,
			Flight:        flight.ID,
			RequiredSkill: skill,
			SeatIndex:     seat,
			Owner:         NoEmployee,
		})
		s.flightIndex[key] = append(s.flightIndex[key], id)
	}
	return nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.TrimSpace(v)] = true
	}
	return set
}

func (s *Schedule) addEmployee(rec EmployeeRecord) error {
	home := AirportCode(rec.HomeAirport)
	if err := s.checkAirports(home); err != nil {
		return fmt.Errorf("employee %s home: %w", rec.Name, err)
	}
	if _, dup := s.employeeIdx[rec.Name]; dup {
		return invalid("duplicate employee %s", rec.Name)
	}

	e := &Employee{
		ID:                         EmployeeID(len(s.employees)),
		Name:                       rec.Name,
		HomeAirport:                home,
		Skills:                     toSet(rec.Skills),
		AircraftTypeQualifications: toSet(rec.AircraftTypeQualifications),
		SpecialQualifications:      toSet(rec.SpecialQualifications),
		UnavailableDays:            make(map[civil.Date]bool, len(rec.UnavailableDays)),
		calendar:                   make(map[civil.Date]DutyID),
	}
	for _, day := range rec.UnavailableDays {
		e.UnavailableDays[day] = true
	}
	s.employees = append(s.employees, e)
	s.employeeIdx[e.Name] = e.ID

	for date := s.FirstDate; !date.After(s.LastDate); date = date.AddDays(1) {
		s.EnsureDuty(e.ID, date)
	}
	return nil
}

func (s *Schedule) applyPreAssigned(pre PreAssignedDuty) error {
	id, ok := s.employeeIdx[pre.EmployeeName]
	if !ok {
		return invalid("pre-assigned %s for unknown employee %s", pre.Code, pre.EmployeeName)
	}
	if pre.End.Before(pre.Start) {
		return invalid("pre-assigned %s of %s ends before it starts", pre.Code, pre.EmployeeName)
	}

	d, _ := s.EnsureDuty(id, civil.DateOf(pre.Start.UTC()))
	if d.PreAssigned != nil {
		return nil
	}
	d.PreAssigned = &PreAssignment{Code: pre.Code, Start: pre.Start.UTC(), End: pre.End.UTC()}
	base := d.baseFields()
	d.Code, d.Start, d.End = base.Code, base.Start, base.End
	return nil
}

// Airport returns the airport with the code, or nil
func (s *Schedule) Airport(code AirportCode) *Airport {
	return s.airports[code]
}

// TaxiMinutes returns the ground transfer time between two airports. The
// second result is false when there is no ground route.
func (s *Schedule) TaxiMinutes(from, to AirportCode) (int, bool) {
	a, ok := s.airports[from]
	if !ok {
		return 0, false
	}
	return a.TaxiMinutesTo(to)
}

// MaxFDP returns the maximum flight duty period table
func (s *Schedule) MaxFDP() MaxFDPTable {
	return s.maxFDP
}

// IataFlightsBetween returns the commercial flights from one airport to
// another. The slice must not be modified.
func (s *Schedule) IataFlightsBetween(from, to AirportCode) []IataFlight {
	return s.iataFlights[route{from: from, to: to}]
}

// Flight returns the flight with the handle
func (s *Schedule) Flight(id FlightID) *Flight {
	if id < 0 || int(id) >= len(s.flights) {
		return nil
	}
	return &s.flights[id]
}

// Flights returns all flights in load order
func (s *Schedule) Flights() []Flight {
	return s.flights
}

// Assignment returns the assignment with the handle, or nil
func (s *Schedule) Assignment(id AssignmentID) *FlightAssignment {
	if id < 0 || int(id) >= len(s.assignments) {
		return nil
	}
	return &s.assignments[id]
}

// AssignmentFlight returns the flight of an assignment
func (s *Schedule) AssignmentFlight(id AssignmentID) *Flight {
	a := s.Assignment(id)
	if a == nil {
		return nil
	}
	return &s.flights[a.Flight]
}

// Assignments returns all assignments in load order
func (s *Schedule) Assignments() []FlightAssignment {
	return s.assignments
}

// FindAssignment returns the first seat of the flight departing on the date
// that requires the skill and has no owner yet
func (s *Schedule) FindAssignment(flightNumber string, date civil.Date, skill string) (AssignmentID, bool) {
	for _, id := range s.flightIndex[flightKey(flightNumber, date)] {
		a := &s.assignments[id]
		if a.RequiredSkill == skill && !a.IsAssigned() {
			return id, true
		}
	}
	return 0, false
}

// Employee returns the employee with the handle, or nil
func (s *Schedule) Employee(id EmployeeID) *Employee {
	if id < 0 || int(id) >= len(s.employees) {
		return nil
	}
	return s.employees[id]
}

// EmployeeByName returns the employee with the name
func (s *Schedule) EmployeeByName(name string) (*Employee, bool) {
	id, ok := s.employeeIdx[name]
	if !ok {
		return nil, false
	}
	return s.employees[id], true
}

// Employees returns all employees in load order
func (s *Schedule) Employees() []*Employee {
	return s.employees
}

// Duty returns the duty with the handle, or nil
func (s *Schedule) Duty(id DutyID) *Duty {
	if id < 0 || int(id) >= len(s.duties) {
		return nil
	}
	return s.duties[id]
}

// Duties returns all duties in creation order
func (s *Schedule) Duties() []*Duty {
	return s.duties
}

// DutyOn returns the duty of the employee on the date, or nil
func (s *Schedule) DutyOn(employee EmployeeID, date civil.Date) *Duty {
	e := s.Employee(employee)
	if e == nil {
		return nil
	}
	id, ok := e.calendar[date]
	if !ok {
		return nil
	}
	return s.duties[id]
}

// EmployeeDuties returns the duties of the employee in date order
func (s *Schedule) EmployeeDuties(employee EmployeeID) []*Duty {
	e := s.Employee(employee)
	if e == nil {
		return nil
	}
	duties := make([]*Duty, 0, len(e.dates))
	for _, date := range e.dates {
		duties = append(duties, s.duties[e.calendar[date]])
	}
	return duties
}

// EnsureDuty returns the duty of the employee on the date, creating an empty
// one when the calendar has none. The second result reports a creation.
func (s *Schedule) EnsureDuty(employee EmployeeID, date civil.Date) (*Duty, bool) {
	e := s.employees[employee]
	if id, ok := e.calendar[date]; ok {
		return s.duties[id], false
	}

	d := &Duty{ID: DutyID(len(s.duties)), Date: date, Employee: employee}
	s.duties = append(s.duties, d)
	e.calendar[date] = d.ID
	pos, _ := slices.BinarySearchFunc(e.dates, date, compareDates)
	e.dates = slices.Insert(e.dates, pos, date)
	return d, true
}

// AdjacentDuty returns the duty offset days away from the duty, or nil
func (s *Schedule) AdjacentDuty(d *Duty, offset int) *Duty {
	return s.DutyOn(d.Employee, d.Date.AddDays(offset))
}

// CompareAssignments orders assignments by departure instant, flight number
// and seat index. Handles break remaining ties so the order is total.
func (s *Schedule) CompareAssignments(a, b AssignmentID) int {
	x, y := &s.assignments[a], &s.assignments[b]
	fx, fy := &s.flights[x.Flight], &s.flights[y.Flight]
	if c := fx.DepartureUTC.Compare(fy.DepartureUTC); c != 0 {
		return c
	}
	if c := strings.Compare(fx.FlightNumber, fy.FlightNumber); c != 0 {
		return c
	}
	if x.SeatIndex != y.SeatIndex {
		return x.SeatIndex - y.SeatIndex
	}
	return int(a) - int(b)
}

// AddToDuty inserts the assignment at its ordered position. It reports
// false when the duty already holds it.
func (s *Schedule) AddToDuty(d *Duty, id AssignmentID) bool {
	pos, found := slices.BinarySearchFunc(d.assignments, id, s.CompareAssignments)
	if found {
		return false
	}
	d.assignments = slices.Insert(d.assignments, pos, id)
	return true
}

// RemoveFromDuty removes the assignment. It reports false when the duty does
// not hold it.
func (s *Schedule) RemoveFromDuty(d *Duty, id AssignmentID) bool {
	pos, found := slices.BinarySearchFunc(d.assignments, id, s.CompareAssignments)
	if !found {
		return false
	}
	d.assignments = slices.Delete(d.assignments, pos, pos+1)
	return true
}

// DeriveDutyFields computes the fields the duty should hold for its current
// assignments. An empty duty gets its pre-assigned values, or unset ones. A
// pre-assigned code is fixed; flights only widen the pre-assigned interval.
func (s *Schedule) DeriveDutyFields(d *Duty) DutyFields {
	base := d.baseFields()
	if len(d.assignments) == 0 {
		return base
	}

	first := s.AssignmentFlight(d.assignments[0])
	last := s.AssignmentFlight(d.assignments[len(d.assignments)-1])
	f := DutyFields{
		Start:             first.DepartureUTC.Add(-SignInDuration),
		End:               last.ArrivalUTC.Add(SignOffDuration),
		LastFlightArrival: last.ArrivalUTC,
		Code:              FlightDutyCode,
	}
	if d.PreAssigned != nil {
		f.Code = base.Code
		if base.Start.Before(f.Start) {
			f.Start = base.Start
		}
		if base.End.After(f.End) {
			f.End = base.End
		}
	}
	return f
}

// Timeline returns all assignments of the employee in chronological order
func (s *Schedule) Timeline(employee EmployeeID) []AssignmentID {
	var timeline []AssignmentID
	for _, d := range s.EmployeeDuties(employee) {
		timeline = append(timeline, d.assignments...)
	}
	return timeline
}

func (s *Schedule) locate(id AssignmentID) (*Duty, int, bool) {
	a := s.Assignment(id)
	if a == nil || !a.IsAssigned() {
		return nil, 0, false
	}
	d := s.DutyOn(a.Owner, s.flights[a.Flight].DepartureDate())
	if d == nil {
		return nil, 0, false
	}
	pos, found := slices.BinarySearchFunc(d.assignments, id, s.CompareAssignments)
	if !found {
		return nil, 0, false
	}
	return d, pos, true
}

// Previous returns the assignment of the same owner right before this one
func (s *Schedule) Previous(id AssignmentID) (AssignmentID, bool) {
	d, pos, ok := s.locate(id)
	if !ok {
		return 0, false
	}
	if pos > 0 {
		return d.assignments[pos-1], true
	}
	e := s.employees[d.Employee]
	i, _ := slices.BinarySearchFunc(e.dates, d.Date, compareDates)
	for i--; i >= 0; i-- {
		if prev := s.duties[e.calendar[e.dates[i]]]; prev.IsFlightDuty() {
			return prev.Last()
		}
	}
	return 0, false
}

// Next returns the assignment of the same owner right after this one
func (s *Schedule) Next(id AssignmentID) (AssignmentID, bool) {
	d, pos, ok := s.locate(id)
	if !ok {
		return 0, false
	}
	if pos < len(d.assignments)-1 {
		return d.assignments[pos+1], true
	}
	e := s.employees[d.Employee]
	i, _ := slices.BinarySearchFunc(e.dates, d.Date, compareDates)
	for i++; i < len(e.dates); i++ {
		if next := s.duties[e.calendar[e.dates[i]]]; next.IsFlightDuty() {
			return next.First()
		}
	}
	return 0, false
}

// Clone returns an independent copy of the mutable state. Reference data is
// shared between the copies.
func (s *Schedule) Clone() *Schedule {
	c := *s
	c.assignments = slices.Clone(s.assignments)
	c.employees = make([]*Employee, len(s.employees))
	for i, e := range s.employees {
		c.employees[i] = e.clone()
	}
	c.duties = make([]*Duty, len(s.duties))
	for i, d := range s.duties {
		c.duties[i] = d.clone()
	}
	return &c
}

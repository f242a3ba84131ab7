package usecase

import (
	"errors"
	"fmt"
	"slices"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/pkg/logger"
	"crewduty-service/pkg/metrics"
)

var (
	// ErrHookOrder is returned when BeforeOwnerChange and AfterOwnerChange
	// are not called in pairs for the same assignment
	ErrHookOrder = errors.New("owner change hooks called out of order")
	// ErrDutyMissing is returned when an owned assignment is not in the duty
	// of its owner
	ErrDutyMissing = errors.New("assignment missing from its duty")
	// ErrUnknownAssignment is returned for handles outside the schedule
	ErrUnknownAssignment = errors.New("unknown assignment")
	// ErrUnknownEmployee is returned for handles outside the schedule
	ErrUnknownEmployee = errors.New("unknown employee")
)

// ChangeTracker is told before and after every duty field write so it can
// snapshot the dependent state on both sides
type ChangeTracker interface {
	BeforeFieldChange(ref entity.Ref, field string)
	AfterFieldChange(ref entity.Ref, field string)
}

// NopTracker ignores every notification
type NopTracker struct{}

// BeforeFieldChange does nothing
func (NopTracker) BeforeFieldChange(entity.Ref, string) {}

// AfterFieldChange does nothing
func (NopTracker) AfterFieldChange(entity.Ref, string) {}

// DutyListener keeps the duties of a schedule consistent with the owners of
// its assignments. Callers bracket every owner mutation with
// BeforeOwnerChange and AfterOwnerChange; the listener retracts the
// assignment from the old owner's duty and inserts it in the new one.
//
// A DutyListener is bound to one schedule and is not safe for concurrent
// use.
type DutyListener struct {
	schedule *entity.Schedule
	tracker  ChangeTracker
	logger   logger.Logger
	metrics  *metrics.Metrics

	pending  entity.AssignmentID
	inFlight bool
}

// NewDutyListener creates a new duty listener. A nil tracker is replaced by
// NopTracker.
func NewDutyListener(
	schedule *entity.Schedule,
	tracker ChangeTracker,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *DutyListener {
	if tracker == nil {
		tracker = NopTracker{}
	}
	return &DutyListener{
		schedule: schedule,
		tracker:  tracker,
		logger:   logger,
		metrics:  metrics,
	}
}

// Schedule returns the schedule the listener maintains
func (l *DutyListener) Schedule() *entity.Schedule {
	return l.schedule
}

// BeforeOwnerChange retracts the assignment from the duty of its current
// owner, if any
func (l *DutyListener) BeforeOwnerChange(id entity.AssignmentID) error {
	if l.inFlight {
		return fmt.Errorf("%w: before change of %d while %d is pending", ErrHookOrder, id, l.pending)
	}
	a := l.schedule.Assignment(id)
	if a == nil {
		return fmt.Errorf("%w: %d", ErrUnknownAssignment, id)
	}

	if a.IsAssigned() {
		date := l.schedule.AssignmentFlight(id).DepartureDate()
		d := l.schedule.DutyOn(a.Owner, date)
		if d == nil || !slices.Contains(d.Assignments(), id) {
			return fmt.Errorf("%w: assignment %d of employee %d on %s", ErrDutyMissing, id, a.Owner, date)
		}
		l.retract(d, id)
	}

	l.pending, l.inFlight = id, true
	return nil
}

// AfterOwnerChange inserts the assignment in the duty of its new owner, if
// any, creating the duty when the owner has none on the departure date
func (l *DutyListener) AfterOwnerChange(id entity.AssignmentID) error {
	if !l.inFlight {
		return fmt.Errorf("%w: after change of %d without before", ErrHookOrder, id)
	}
	if l.pending != id {
		return fmt.Errorf("%w: after change of %d while %d is pending", ErrHookOrder, id, l.pending)
	}
	l.inFlight = false
	defer l.metrics.IncOwnerChanges()

	a := l.schedule.Assignment(id)
	if !a.IsAssigned() {
		return nil
	}
	if l.schedule.Employee(a.Owner) == nil {
		return fmt.Errorf("%w: %d owns assignment %d", ErrUnknownEmployee, a.Owner, id)
	}

	date := l.schedule.AssignmentFlight(id).DepartureDate()
	d, created := l.schedule.EnsureDuty(a.Owner, date)
	if created {
		l.metrics.IncDutiesCreated()
		l.logger.Debug("Duty created outside the horizon",
			"employee", a.Owner,
			"date", date.String())
	}
	l.insert(d, id)
	return nil
}

// ChangeOwner moves the assignment to the employee, or releases it with
// entity.NoEmployee, running both hooks around the mutation
func (l *DutyListener) ChangeOwner(id entity.AssignmentID, employee entity.EmployeeID) error {
	a := l.schedule.Assignment(id)
	if a == nil {
		return fmt.Errorf("%w: %d", ErrUnknownAssignment, id)
	}
	if employee != entity.NoEmployee && l.schedule.Employee(employee) == nil {
		return fmt.Errorf("%w: %d", ErrUnknownEmployee, employee)
	}
	if a.Owner == employee {
		return nil
	}

	if err := l.BeforeOwnerChange(id); err != nil {
		return err
	}
	a.Owner = employee
	return l.AfterOwnerChange(id)
}

func (l *DutyListener) retract(d *entity.Duty, id entity.AssignmentID) {
	l.write(d, entity.FieldFlightAssignments, func() {
		l.schedule.RemoveFromDuty(d, id)
	})
	l.refresh(d)
}

func (l *DutyListener) insert(d *entity.Duty, id entity.AssignmentID) {
	l.write(d, entity.FieldFlightAssignments, func() {
		l.schedule.AddToDuty(d, id)
	})
	l.refresh(d)
}

// refresh writes the derived fields in their fixed order
func (l *DutyListener) refresh(d *entity.Duty) {
	f := l.schedule.DeriveDutyFields(d)
	l.write(d, entity.FieldStart, func() { d.Start = f.Start })
	l.write(d, entity.FieldEnd, func() { d.End = f.End })
	l.write(d, entity.FieldLastFlightArrival, func() { d.LastFlightArrival = f.LastFlightArrival })
	l.write(d, entity.FieldCode, func() { d.Code = f.Code })
}

func (l *DutyListener) write(d *entity.Duty, field string, set func()) {
	ref := entity.DutyRef(d.ID)
	l.tracker.BeforeFieldChange(ref, field)
	set()
	l.tracker.AfterFieldChange(ref, field)
	l.metrics.AddFieldNotifications(1)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/internal/domain/repository"
	"crewduty-service/internal/domain/rules"
	"crewduty-service/pkg/logger"
	"crewduty-service/pkg/metrics"
)

// ErrNoSnapshotRepository is returned by Persist when the evaluator was built
// without a snapshot repository
var ErrNoSnapshotRepository = errors.New("no snapshot repository")

// DutyReport holds every metric of one coded duty
type DutyReport struct {
	EmployeeName  string
	Date          civil.Date
	Code          string
	Start         time.Time
	End           time.Time
	FlightNumbers []string

	FlightDutyMinutes     int
	OverMaxFDP            int
	RestLack              int
	HomeBaseInconvenience int
	GroundOverlap         int
	DayOffEncroachment    int

	// counts of assignments breaking a hard requirement
	Unavailable          int
	MissingSkill         int
	MissingQualification int

	LateArrival          bool
	NightDuty            bool
	NoLocalNight         bool
	DayAfterGroundOrOff  bool
	DayBeforeGroundOrOff bool
}

// Penalty is the sum of the soft metrics of the duty
func (r *DutyReport) Penalty() int {
	return r.OverMaxFDP + r.RestLack + r.HomeBaseInconvenience + r.GroundOverlap + r.DayOffEncroachment
}

// Violations is the number of broken hard requirements of the duty
func (r *DutyReport) Violations() int {
	return r.Unavailable + r.MissingSkill + r.MissingQualification
}

// EmployeeReport holds the metrics spanning the whole timeline of an
// employee
type EmployeeReport struct {
	Name                   string
	HomeAirport            entity.AirportCode
	Connection             rules.Connection
	ConflictMinutes        int
	FirstDepartureFromHome bool
	LastArrivalAtHome      bool
	FlightMinutes          int64
	Duties                 []DutyReport
}

// Report is the evaluation of a whole schedule
type Report struct {
	RunID       string
	EvaluatedAt time.Time
	FirstDate   civil.Date
	LastDate    civil.Date
	Employees   []EmployeeReport
	// Unassigned is the number of seats without owner
	Unassigned int
}

// Summary aggregates a report
type Summary struct {
	Duties             int
	FlightDuties       int
	Unassigned         int
	InvalidConnections int
	ConflictMinutes    int
	OverMaxFDP         int
	RestLack           int
	Inconvenience      int
	GroundOverlap      int
	DayOffEncroachment int
	Violations         int
}

// Summary returns the totals of the report
func (r *Report) Summary() Summary {
	sum := Summary{Unassigned: r.Unassigned}
	for _, e := range r.Employees {
		sum.InvalidConnections += e.Connection.InvalidConnection
		sum.ConflictMinutes += e.ConflictMinutes
		for _, d := range e.Duties {
			sum.Duties++
			if len(d.FlightNumbers) > 0 {
				sum.FlightDuties++
			}
			sum.OverMaxFDP += d.OverMaxFDP
			sum.RestLack += d.RestLack
			sum.Inconvenience += d.HomeBaseInconvenience
			sum.GroundOverlap += d.GroundOverlap
			sum.DayOffEncroachment += d.DayOffEncroachment
			sum.Violations += d.Violations()
		}
	}
	return sum
}

// Snapshots converts the duty reports into persistable snapshots
func (r *Report) Snapshots() []entity.DutySnapshot {
	var snapshots []entity.DutySnapshot
	for _, e := range r.Employees {
		for _, d := range e.Duties {
			snapshots = append(snapshots, entity.DutySnapshot{
				DutyKey:               entity.DutySnapshotKey(d.EmployeeName, d.Date),
				RunID:                 r.RunID,
				EmployeeName:          d.EmployeeName,
				Date:                  d.Date.String(),
				Code:                  d.Code,
				Start:                 d.Start,
				End:                   d.End,
				FlightNumbers:         d.FlightNumbers,
				FlightDutyMinutes:     d.FlightDutyMinutes,
				OverMaxFDP:            d.OverMaxFDP,
				RestLack:              d.RestLack,
				HomeBaseInconvenience: d.HomeBaseInconvenience,
				GroundOverlap:         d.GroundOverlap,
				DayOffEncroachment:    d.DayOffEncroachment,
				LateArrival:           d.LateArrival,
				NightDuty:             d.NightDuty,
				NoLocalNight:          d.NoLocalNight,
				DayAfterGroundOrOff:   d.DayAfterGroundOrOff,
				DayBeforeGroundOrOff:  d.DayBeforeGroundOrOff,
			})
		}
	}
	return snapshots
}

// DutyEvaluator runs the duty rules over a schedule
type DutyEvaluator struct {
	snapshotRepo repository.DutySnapshotRepository
	logger       logger.Logger
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewDutyEvaluator creates a new duty evaluator. The snapshot repository may
// be nil when reports are not persisted.
func NewDutyEvaluator(
	snapshotRepo repository.DutySnapshotRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *DutyEvaluator {
	return &DutyEvaluator{
		snapshotRepo: snapshotRepo,
		logger:       logger,
		metrics:      metrics,
		now:          time.Now,
	}
}

// Evaluate reports every coded duty of the schedule. Empty placeholder
// duties are left out.
func (e *DutyEvaluator) Evaluate(s *entity.Schedule) *Report {
	startTime := time.Now()

	report := &Report{
		RunID:       uuid.NewString(),
		EvaluatedAt: e.now().UTC(),
		FirstDate:   s.FirstDate,
		LastDate:    s.LastDate,
	}
	for _, a := range s.Assignments() {
		if !a.IsAssigned() {
			report.Unassigned++
		}
	}

	for _, employee := range s.Employees() {
		er := EmployeeReport{
			Name:                   employee.Name,
			HomeAirport:            employee.HomeAirport,
			Connection:             rules.ConnectionStatus(s, employee.ID),
			ConflictMinutes:        rules.ConflictMinutes(s, employee.ID),
			FirstDepartureFromHome: rules.FirstDepartureFromHome(s, employee.ID),
			LastArrivalAtHome:      rules.LastArrivalAtHome(s, employee.ID),
			FlightMinutes:          rules.FlightMinutesTotal(s, employee.ID),
		}
		for _, d := range s.EmployeeDuties(employee.ID) {
			if d.HasCode() {
				er.Duties = append(er.Duties, e.evaluateDuty(s, employee, d))
			}
		}
		report.Employees = append(report.Employees, er)
	}

	e.metrics.ObserveEvaluation(time.Since(startTime).Seconds())
	e.logger.Debug("Schedule evaluated",
		"runId", report.RunID,
		"employees", len(report.Employees),
		"unassigned", report.Unassigned)
	return report
}

func (e *DutyEvaluator) evaluateDuty(s *entity.Schedule, employee *entity.Employee, d *entity.Duty) DutyReport {
	previous := s.AdjacentDuty(d, -1)
	next := s.AdjacentDuty(d, 1)

	r := DutyReport{
		EmployeeName:          employee.Name,
		Date:                  d.Date,
		Code:                  d.Code,
		Start:                 d.Start,
		End:                   d.End,
		OverMaxFDP:            rules.OverMaxFDP(d, s.MaxFDP()),
		RestLack:              rules.RestLack(s, d, next),
		HomeBaseInconvenience: rules.HomeBaseInconvenience(s, d),
		GroundOverlap:         rules.GroundOverlapMinutes(s, d),
		LateArrival:           rules.IsLateArrival(d),
		NightDuty:             rules.IsNightDuty(d),
		NoLocalNight:          rules.NoLocalNight(previous, d),
		DayAfterGroundOrOff:   rules.IsDayAfterGroundOrHoliday(s, d),
		DayBeforeGroundOrOff:  rules.IsDayBeforeGroundOrHoliday(s, d),
	}
	if fdp, ok := rules.FlightDutyPeriod(d); ok {
		r.FlightDutyMinutes = int(fdp / time.Minute)
	}

	for _, id := range d.Assignments() {
		r.FlightNumbers = append(r.FlightNumbers, s.AssignmentFlight(id).FlightNumber)
		r.DayOffEncroachment += rules.DayOffEncroachment(s, employee, id)
		if rules.Unavailable(s, id) {
			r.Unavailable++
		}
		if rules.MissingSkill(s, id) {
			r.MissingSkill++
		}
		if rules.MissingAircraftQualification(s, id) {
			r.MissingQualification++
		}
	}
	return r
}

// Persist saves one snapshot per duty of the report
func (e *DutyEvaluator) Persist(ctx context.Context, report *Report) error {
	if e.snapshotRepo == nil {
		return ErrNoSnapshotRepository
	}

	snapshots := report.Snapshots()
	if len(snapshots) == 0 {
		return nil
	}
	if err := e.snapshotRepo.SaveSnapshots(ctx, snapshots); err != nil {
		e.metrics.IncError("persist")
		return fmt.Errorf("save duty snapshots: %w", err)
	}

	e.metrics.AddSnapshotsSaved(len(snapshots))
	e.logger.Info("Duty snapshots saved", "runId", report.RunID, "count", len(snapshots))
	return nil
}

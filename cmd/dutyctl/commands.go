package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"cloud.google.com/go/civil"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/internal/infrastructure/config"
	"crewduty-service/internal/infrastructure/persistence"
	"crewduty-service/internal/infrastructure/refdata"
	repo "crewduty-service/internal/interface/repository"
	"crewduty-service/internal/usecase"
	"crewduty-service/pkg/logger"
	"crewduty-service/pkg/utils"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
)

// horizon picks the planning dates from the flags, then from the file
func (o *options) horizon(data *refdata.Data) (civil.Date, civil.Date, error) {
	if o.from != "" {
		first, err := utils.ParseDate(o.from)
		if err != nil {
			return civil.Date{}, civil.Date{}, fmt.Errorf("--from: %w", err)
		}
		if o.days < 1 {
			return civil.Date{}, civil.Date{}, fmt.Errorf("--days must be positive, got %d", o.days)
		}
		return first, first.AddDays(o.days - 1), nil
	}
	if data.HasHorizon {
		return data.FirstDate, data.LastDate, nil
	}
	return civil.Date{}, civil.Date{}, errors.New("no horizon in the file, set --from")
}

// loadSchedule reads the problem file and builds its schedule
func (o *options) loadSchedule(ctx context.Context, path string) (*entity.Schedule, error) {
	src, err := refdata.OpenSource(path)
	if err != nil {
		return nil, err
	}
	first, last, err := o.horizon(src.Data())
	if err != nil {
		return nil, err
	}

	log := logger.NewLoggerWithLevel(o.logLevel)
	defer log.Sync()
	loader := usecase.NewScheduleLoader(src, src, src, src, src.Employees(), log, nil)
	return loader.Load(ctx, first, last)
}

func validateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check that a problem file builds a schedule",
		Long: `Load the problem file, check every reference and build the schedule.
Roster flights are given to their employees on the way.

Examples:
  dutyctl validate problem.yaml
  dutyctl validate problem.yaml --from 2024-03-04 --days 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s, err := opts.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				errColor.Fprintln(out, "INVALID")
				return err
			}

			assigned := 0
			for _, a := range s.Assignments() {
				if a.IsAssigned() {
					assigned++
				}
			}
			okColor.Fprint(out, "VALID")
			fmt.Fprintf(out, " %s..%s: %d flights, %d seats (%d assigned), %d employees\n",
				s.FirstDate, s.LastDate, len(s.Flights()), len(s.Assignments()), assigned, len(s.Employees()))
			return nil
		},
	}
}

func evaluateCmd(opts *options) *cobra.Command {
	var employee string

	cmd := &cobra.Command{
		Use:   "evaluate FILE",
		Short: "Report the duty metrics of a problem file",
		Long: `Build the schedule of the problem file and print every coded duty with
its metrics, followed by the totals.

Flags column:
  LATE     duty ends on a later date
  NIGHT    duty starts before 05:00 UTC
  NONIGHT  rest misses the local night
  AFTER    next day is off or a ground duty
  BEFORE   previous day is off or a ground duty
  OFFDAY   a flight departs or lands on a day off
  SKILL    a seat needs a skill the employee lacks
  QUAL     the aircraft type needs a missing qualification

Examples:
  dutyctl evaluate problem.yaml
  dutyctl evaluate problem.yaml --employee alice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			log := logger.NewLoggerWithLevel(opts.logLevel)
			report := usecase.NewDutyEvaluator(nil, log, nil).Evaluate(s)
			displayReport(cmd.OutOrStdout(), report, employee)
			return nil
		},
	}

	cmd.Flags().StringVarP(&employee, "employee", "e", "", "only show this employee")
	return cmd
}

func displayReport(out io.Writer, report *usecase.Report, employee string) {
	fmt.Fprintf(out, "Evaluation %s (%s..%s)\n\n", report.RunID, report.FirstDate, report.LastDate)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EMPLOYEE\tDATE\tCODE\tSTART\tEND\tFLIGHTS\tFDP\tOVER_FDP\tREST_LACK\tINCONV\tDAY_OFF\tFLAGS")
	for _, e := range report.Employees {
		if employee != "" && e.Name != employee {
			continue
		}
		for _, d := range e.Duties {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
				d.EmployeeName,
				d.Date,
				d.Code,
				formatInstant(d.Start),
				formatInstant(d.End),
				strings.Join(d.FlightNumbers, ","),
				d.FlightDutyMinutes,
				d.OverMaxFDP,
				d.RestLack,
				d.HomeBaseInconvenience,
				d.DayOffEncroachment,
				dutyFlags(d),
			)
		}
	}
	w.Flush()
	fmt.Fprintln(out)

	for _, e := range report.Employees {
		if employee != "" && e.Name != employee {
			continue
		}
		if e.Connection.InvalidConnection > 0 || e.ConflictMinutes > 0 {
			warnColor.Fprintf(out, "%s: %d invalid connections, %d minutes of overlapping flights\n",
				e.Name, e.Connection.InvalidConnection, e.ConflictMinutes)
		}
	}

	sum := report.Summary()
	fmt.Fprintln(out, "Summary:")
	printTotal(out, "Duties", sum.Duties, false)
	printTotal(out, "Flight duties", sum.FlightDuties, false)
	printTotal(out, "Unassigned seats", sum.Unassigned, true)
	printTotal(out, "Invalid connections", sum.InvalidConnections, true)
	printTotal(out, "Over max FDP", sum.OverMaxFDP, true)
	printTotal(out, "Rest lack", sum.RestLack, true)
	printTotal(out, "Inconvenience", sum.Inconvenience, true)
	printTotal(out, "Ground overlap", sum.GroundOverlap, true)
	printTotal(out, "Day-off encroachment", sum.DayOffEncroachment, true)
	printTotal(out, "Violations", sum.Violations, true)
}

func printTotal(out io.Writer, label string, value int, penalty bool) {
	fmt.Fprintf(out, "  %s: ", label)
	switch {
	case !penalty:
		fmt.Fprintln(out, value)
	case value == 0:
		okColor.Fprintln(out, value)
	default:
		warnColor.Fprintln(out, value)
	}
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(utils.DATETIME_LAYOUT)
}

func dutyFlags(d usecase.DutyReport) string {
	var flags []string
	for _, f := range []struct {
		set  bool
		name string
	}{
		{d.LateArrival, "LATE"},
		{d.NightDuty, "NIGHT"},
		{d.NoLocalNight, "NONIGHT"},
		{d.DayAfterGroundOrOff, "AFTER"},
		{d.DayBeforeGroundOrOff, "BEFORE"},
		{d.Unavailable > 0, "OFFDAY"},
		{d.MissingSkill > 0, "SKILL"},
		{d.MissingQualification > 0, "QUAL"},
	} {
		if f.set {
			flags = append(flags, f.name)
		}
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func repositionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reposition FILE",
		Short: "List the commercial flights crews need between duties",
		Long: `Look for consecutive flights of an employee on different days whose
airports have no ground route, and list the commercial flights available
on the day after the earlier one.

Examples:
  dutyctl reposition problem.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.loadSchedule(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			log := logger.NewLoggerWithLevel(opts.logLevel)
			plan := usecase.NewRepositioningPlanner(log).Plan(s)
			displayPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
}

func displayPlan(out io.Writer, plan []usecase.Repositioning) {
	if len(plan) == 0 {
		okColor.Fprintln(out, "No repositioning needed")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EMPLOYEE\tDATE\tFROM\tTO\tAFTER\tBEFORE\tOPTIONS")
	for _, r := range plan {
		choices := errColor.Sprint("none")
		if r.Resolved() {
			var list []string
			for _, o := range r.Options {
				list = append(list, o.Departure.Format(utils.CLOCK_LAYOUT)+"-"+o.Arrival.Format(utils.CLOCK_LAYOUT))
			}
			choices = strings.Join(list, " ")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.EmployeeName, r.Date, r.From, r.To, r.After, r.Before, choices)
	}
	w.Flush()
}

func importCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Store a problem file in PostgreSQL and MongoDB",
		Long: `Write the reference data of the file to PostgreSQL and its flights and
employees to MongoDB, using the service configuration (POSTGRES_DSN,
MONGODB_DSN, MONGO_DB). Reference tables are replaced; flights and employees
are upserted.

Examples:
  dutyctl import problem.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := refdata.ReadFile(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			log := logger.NewLoggerWithLevel(opts.logLevel)
			defer log.Sync()

			gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
			if err != nil {
				return err
			}
			defer persistence.ClosePostgresDB(gormDB)
			if err := repo.AutoMigrate(gormDB); err != nil {
				return err
			}

			mongoClient, err := persistence.NewMongoClient(ctx, cfg.Mongo())
			if err != nil {
				return err
			}
			defer mongoClient.Disconnect(context.Background())
			db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

			importer := usecase.NewProblemImporter(
				repo.NewGormAirportRepository(gormDB),
				repo.NewGormMaxFDPRepository(gormDB),
				repo.NewGormIataFlightRepository(gormDB),
				repo.NewMongoFlightRepository(db),
				repo.NewMongoEmployeeRepository(db),
				log,
			)
			result, err := importer.Import(ctx, importData(data))
			if err != nil {
				return err
			}

			okColor.Fprint(cmd.OutOrStdout(), "IMPORTED")
			fmt.Fprintf(cmd.OutOrStdout(), " %d airports, %d taxi times, %d max FDP rules, %d IATA flights, %d flights, %d employees\n",
				result.Airports, result.TaxiTimes, result.MaxFDPRules, result.IataFlights, result.Flights, result.Employees)
			return nil
		},
	}
}

func importData(data *refdata.Data) usecase.ImportData {
	return usecase.ImportData{
		Airports:    data.Airports,
		TaxiTimes:   data.TaxiTimes,
		MaxFDP:      data.MaxFDP,
		IataFlights: data.IataFlights,
		Flights:     data.Flights,
		Employees:   data.Employees,
	}
}

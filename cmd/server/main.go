package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"crewduty-service/internal/domain/repository"
	"crewduty-service/internal/infrastructure/config"
	"crewduty-service/internal/infrastructure/persistence"
	"crewduty-service/internal/infrastructure/refdata"
	repo "crewduty-service/internal/interface/repository"
	"crewduty-service/internal/usecase"
	"crewduty-service/pkg/logger"
	"crewduty-service/pkg/metrics"
)

// repositories groups the data sources of the service
type repositories struct {
	airports    repository.AirportRepository
	maxFDP      repository.MaxFDPRepository
	iataFlights repository.IataFlightRepository
	flights     repository.FlightRepository
	employees   repository.EmployeeRepository
	snapshots   repository.DutySnapshotRepository

	mongoClient *mongo.Client
	gormDB      *gorm.DB
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Crew Duty Service", "version", cfg.AppVersion)

	m := metrics.NewMetrics(cfg.MetricsNamespace, nil)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open repositories", "error", err)
	}

	loader := usecase.NewScheduleLoader(repos.airports, repos.maxFDP, repos.iataFlights, repos.flights, repos.employees, log, m)
	evaluator := usecase.NewDutyEvaluator(repos.snapshots, log, m)
	planner := usecase.NewRepositioningPlanner(log)

	evaluate := func() {
		first, last := cfg.Horizon(time.Now())
		schedule, err := loader.Load(ctx, first, last)
		if err != nil {
			log.Error("Error loading schedule", "error", err)
			return
		}

		report := evaluator.Evaluate(schedule)
		sum := report.Summary()
		log.Info("Schedule evaluated",
			"runId", report.RunID,
			"duties", sum.Duties,
			"unassigned", sum.Unassigned,
			"invalidConnections", sum.InvalidConnections,
			"overMaxFdp", sum.OverMaxFDP,
			"restLack", sum.RestLack,
			"violations", sum.Violations,
			"repositionings", len(planner.Plan(schedule)))

		if err := evaluator.Persist(ctx, report); err != nil {
			log.Error("Error persisting duty snapshots", "error", err)
		}
	}

	// Start evaluation loop in a goroutine
	go func() {
		evaluate()

		evaluateTicker := time.NewTicker(cfg.EvaluateInterval)
		defer evaluateTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Duty evaluation stopped")
				return
			case <-evaluateTicker.C:
				log.Info("Evaluating duties")
				evaluate()
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	if repos.mongoClient != nil {
		if err := repos.mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}
	if repos.gormDB != nil {
		if err := persistence.ClosePostgresDB(repos.gormDB); err != nil {
			log.Error("PostgreSQL close error", "error", err)
		}
	}

	log.Info("Crew Duty Service stopped")
}

// openRepositories serves every repository from the YAML file when one is
// configured, from PostgreSQL and MongoDB otherwise
func openRepositories(ctx context.Context, cfg *config.Config, log logger.Logger) (*repositories, error) {
	if cfg.RefDataFile != "" {
		log.Info("Reading reference data file", "path", cfg.RefDataFile)
		src, err := refdata.OpenSource(cfg.RefDataFile)
		if err != nil {
			return nil, err
		}
		return &repositories{
			airports:    src,
			maxFDP:      src,
			iataFlights: src,
			flights:     src,
			employees:   src.Employees(),
			snapshots:   refdata.NewSnapshotStore(),
		}, nil
	}

	// Set up PostgreSQL connection
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
	if err != nil {
		return nil, err
	}
	if err := repo.AutoMigrate(gormDB); err != nil {
		return nil, err
	}

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.Mongo())
	if err != nil {
		return nil, err
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	return &repositories{
		airports:    repo.NewGormAirportRepository(gormDB),
		maxFDP:      repo.NewGormMaxFDPRepository(gormDB),
		iataFlights: repo.NewGormIataFlightRepository(gormDB),
		flights:     repo.NewMongoFlightRepository(db),
		employees:   repo.NewMongoEmployeeRepository(db),
		snapshots:   repo.NewMongoDutySnapshotRepository(db),
		mongoClient: mongoClient,
		gormDB:      gormDB,
	}, nil
}

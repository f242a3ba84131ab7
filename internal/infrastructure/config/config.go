// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"crewduty-service/internal/infrastructure/persistence"
	"crewduty-service/pkg/utils"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string `env:"APP_VERSION" envDefault:"1.0.0"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	// Server
	Port         string        `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`

	// MongoDB
	MongoURI      string `env:"MONGODB_DSN" envDefault:"mongodb://localhost:27017"`
	MongoDB       string `env:"MONGO_DB" envDefault:"crewduty"`
	MongoUser     string `env:"MONGO_USER"`
	MongoPassword string `env:"MONGO_PASSWORD"`

	MongoConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`

	// PostgreSQL
	PostgresURI string `env:"POSTGRES_DSN" envDefault:"host=localhost user=postgres dbname=crewduty sslmode=disable"`

	// Schedule
	ScheduleStart    string        `env:"SCHEDULE_START"` // YYYY-MM-DD, today when empty
	ScheduleDays     int           `env:"SCHEDULE_DAYS" envDefault:"7"`
	EvaluateInterval time.Duration `env:"EVALUATE_INTERVAL" envDefault:"15m"`

	// Metrics
	MetricsNamespace string `env:"METRICS_NAMESPACE" envDefault:"crewduty"`

	// RefDataFile switches every repository to a YAML file when set
	RefDataFile string `env:"REFDATA_FILE"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{}
	if err := ParseEnv(config); err != nil {
		return nil, err
	}
	if config.ScheduleDays < 1 {
		return nil, fmt.Errorf("SCHEDULE_DAYS must be positive, got %d", config.ScheduleDays)
	}
	if config.ScheduleStart != "" {
		if _, err := utils.ParseDate(config.ScheduleStart); err != nil {
			return nil, fmt.Errorf("SCHEDULE_START: %w", err)
		}
	}
	return config, nil
}

// ParseEnv parses environment variables into the target struct
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Horizon returns the first and last planning dates. An empty start means
// the date of now in UTC.
func (c *Config) Horizon(now time.Time) (civil.Date, civil.Date) {
	first := civil.DateOf(now.UTC())
	if c.ScheduleStart != "" {
		if date, err := utils.ParseDate(c.ScheduleStart); err == nil {
			first = date
		}
	}
	return first, first.AddDays(c.ScheduleDays - 1)
}

// Mongo returns the connection settings of the flight and roster store
func (c *Config) Mongo() persistence.MongoConfig {
	return persistence.MongoConfig{
		URI:            c.MongoURI,
		Username:       c.MongoUser,
		Password:       c.MongoPassword,
		AppName:        "crewduty-service/" + c.AppVersion,
		ConnectTimeout: c.MongoConnectTimeout,
	}
}

package repository

import (
	"context"
	"fmt"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/internal/domain/repository"
	"crewduty-service/pkg/utils"

	"gorm.io/gorm"
)

// GormIataFlightRepository implements the IataFlightRepository interface
type GormIataFlightRepository struct {
	db *gorm.DB
}

// NewGormIataFlightRepository creates a new GORM commercial flight repository
func NewGormIataFlightRepository(db *gorm.DB) repository.IataFlightRepository {
	return &GormIataFlightRepository{
		db: db,
	}
}

// IataFlights GORM model for database mapping
type IataFlights struct {
	gorm.Model
	DepartureCode string `gorm:"column:departure_code;index:idx_iata_route"`
	ArrivalCode   string `gorm:"column:arrival_code;index:idx_iata_route"`
	DepartureTime string `gorm:"column:departure_time"` // 15:04 UTC
	ArrivalTime   string `gorm:"column:arrival_time"`
	Days          string `gorm:"column:days"` // 1 = Monday ... 7 = Sunday
}

// TableName overrides the default table name
func (IataFlights) TableName() string {
	return "m_iata_flights"
}

// ListIataFlights returns the whole catalogue
func (r *GormIataFlightRepository) ListIataFlights(ctx context.Context) ([]entity.IataFlight, error) {
	var rows []IataFlights
	result := r.db.WithContext(ctx).Order("departure_code, arrival_code, departure_time").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	flights := make([]entity.IataFlight, 0, len(rows))
	for _, row := range rows {
		f, err := toIataFlight(row)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, nil
}

// SaveIataFlights replaces the whole catalogue
func (r *GormIataFlightRepository) SaveIataFlights(ctx context.Context, flights []entity.IataFlight) error {
	rows := make([]IataFlights, 0, len(flights))
	for _, f := range flights {
		rows = append(rows, IataFlights{
			DepartureCode: string(f.DepartureAirport),
			ArrivalCode:   string(f.ArrivalAirport),
			DepartureTime: utils.FormatClock(f.DepartureUTCTime),
			ArrivalTime:   utils.FormatClock(f.ArrivalUTCTime),
			Days:          utils.FormatDaysOfWeek(f.DaysOfWeek),
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&IataFlights{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func toIataFlight(row IataFlights) (entity.IataFlight, error) {
	departure, err := utils.ParseClock(row.DepartureTime)
	if err != nil {
		return entity.IataFlight{}, fmt.Errorf("iata flight %s-%s: %w", row.DepartureCode, row.ArrivalCode, err)
	}
	arrival, err := utils.ParseClock(row.ArrivalTime)
	if err != nil {
		return entity.IataFlight{}, fmt.Errorf("iata flight %s-%s: %w", row.DepartureCode, row.ArrivalCode, err)
	}
	days, err := utils.ParseDaysOfWeek(row.Days)
	if err != nil {
		return entity.IataFlight{}, fmt.Errorf("iata flight %s-%s: %w", row.DepartureCode, row.ArrivalCode, err)
	}
	return entity.IataFlight{
		DepartureAirport: entity.AirportCode(row.DepartureCode),
		ArrivalAirport:   entity.AirportCode(row.ArrivalCode),
		DepartureUTCTime: departure,
		ArrivalUTCTime:   arrival,
		DaysOfWeek:       days,
	}, nil
}

// AutoMigrate creates or updates the reference data tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Airports{}, &TaxiTimes{}, &MaxFDPRules{}, &IataFlights{})
}

package repository

import (
	"context"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	gorm.Model
	Code      string  `gorm:"column:code;uniqueIndex"`
	Name      string  `gorm:"column:name"`
	City      string  `gorm:"column:city"`
	Latitude  float64 `gorm:"column:latitude"`
	Longitude float64 `gorm:"column:longitude"`
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

// TaxiTimes GORM model for database mapping
type TaxiTimes struct {
	gorm.Model
	FromCode string `gorm:"column:from_code;uniqueIndex:idx_taxi_route"`
	ToCode   string `gorm:"column:to_code;uniqueIndex:idx_taxi_route"`
	Minutes  int    `gorm:"column:minutes"`
}

// TableName overrides the default table name
func (TaxiTimes) TableName() string {
	return "m_taxi_times"
}

// ListAirports returns every airport ordered by code
func (r *GormAirportRepository) ListAirports(ctx context.Context) ([]entity.Airport, error) {
	var airports []Airports
	result := r.db.WithContext(ctx).Order("code").Find(&airports)
	if result.Error != nil {
		return nil, result.Error
	}

	// Convert GORM models to domain entities
	entities := make([]entity.Airport, 0, len(airports))
	for _, a := range airports {
		entities = append(entities, entity.Airport{
			Code:      entity.AirportCode(a.Code),
			Name:      a.Name,
			City:      a.City,
			Latitude:  a.Latitude,
			Longitude: a.Longitude,
		})
	}
	return entities, nil
}

// ListTaxiTimes returns every ground transfer
func (r *GormAirportRepository) ListTaxiTimes(ctx context.Context) ([]entity.TaxiTime, error) {
	var taxiTimes []TaxiTimes
	result := r.db.WithContext(ctx).Order("from_code, to_code").Find(&taxiTimes)
	if result.Error != nil {
		return nil, result.Error
	}

	entities := make([]entity.TaxiTime, 0, len(taxiTimes))
	for _, t := range taxiTimes {
		entities = append(entities, entity.TaxiTime{
			From:    entity.AirportCode(t.FromCode),
			To:      entity.AirportCode(t.ToCode),
			Minutes: t.Minutes,
		})
	}
	return entities, nil
}

// SaveAirports upserts airports by code and taxi times by route
func (r *GormAirportRepository) SaveAirports(ctx context.Context, airports []entity.Airport, taxiTimes []entity.TaxiTime) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range airports {
			model := Airports{
				Code:      string(a.Code),
				Name:      a.Name,
				City:      a.City,
				Latitude:  a.Latitude,
				Longitude: a.Longitude,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "code"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "city", "latitude", "longitude", "updated_at"}),
			}).Create(&model).Error
			if err != nil {
				return err
			}
		}

		for _, t := range taxiTimes {
			model := TaxiTimes{
				FromCode: string(t.From),
				ToCode:   string(t.To),
				Minutes:  t.Minutes,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "from_code"}, {Name: "to_code"}},
				DoUpdates: clause.AssignmentColumns([]string{"minutes", "updated_at"}),
			}).Create(&model).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

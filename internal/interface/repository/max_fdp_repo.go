package repository

import (
	"context"
	"fmt"
	"time"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/internal/domain/repository"
	"crewduty-service/pkg/utils"

	"gorm.io/gorm"
)

// GormMaxFDPRepository implements the MaxFDPRepository interface
type GormMaxFDPRepository struct {
	db *gorm.DB
}

// NewGormMaxFDPRepository creates a new GORM max FDP repository
func NewGormMaxFDPRepository(db *gorm.DB) repository.MaxFDPRepository {
	return &GormMaxFDPRepository{
		db: db,
	}
}

// MaxFDPRules GORM model for database mapping. One row holds the maximum of
// one segment count; rows sharing a position form one rule.
type MaxFDPRules struct {
	gorm.Model
	Position   int    `gorm:"column:position;uniqueIndex:idx_max_fdp_slot"`
	StartTime  string `gorm:"column:start_time"` // 15:04 local
	EndTime    string `gorm:"column:end_time"`
	Segments   int    `gorm:"column:segments;uniqueIndex:idx_max_fdp_slot"`
	MaxMinutes int    `gorm:"column:max_minutes"`
}

// TableName overrides the default table name
func (MaxFDPRules) TableName() string {
	return "m_max_fdp"
}

// ListRules returns the table in position order
func (r *GormMaxFDPRepository) ListRules(ctx context.Context) (entity.MaxFDPTable, error) {
	var rows []MaxFDPRules
	result := r.db.WithContext(ctx).Order("position, segments").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return toMaxFDPTable(rows)
}

// SaveRules replaces the whole table
func (r *GormMaxFDPRepository) SaveRules(ctx context.Context, table entity.MaxFDPTable) error {
	rows := fromMaxFDPTable(table)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&MaxFDPRules{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func toMaxFDPTable(rows []MaxFDPRules) (entity.MaxFDPTable, error) {
	var table entity.MaxFDPTable
	position := -1
	for _, row := range rows {
		if len(table) == 0 || row.Position != position {
			start, err := utils.ParseClock(row.StartTime)
			if err != nil {
				return nil, fmt.Errorf("max fdp rule %d start: %w", row.Position, err)
			}
			end, err := utils.ParseClock(row.EndTime)
			if err != nil {
				return nil, fmt.Errorf("max fdp rule %d end: %w", row.Position, err)
			}
			table = append(table, entity.MaxFDPRule{Start: start, End: end})
			position = row.Position
		}
		table[len(table)-1].SetMax(row.Segments, time.Duration(row.MaxMinutes)*time.Minute)
	}
	return table, nil
}

func fromMaxFDPTable(table entity.MaxFDPTable) []MaxFDPRules {
	var rows []MaxFDPRules
	for position, rule := range table {
		for i, max := range rule.MaxBySegment {
			if max <= 0 {
				continue
			}
			// slot 0 covers one and two segments
			rows = append(rows, MaxFDPRules{
				Position:   position,
				StartTime:  utils.FormatClock(rule.Start),
				EndTime:    utils.FormatClock(rule.End),
				Segments:   i + 2,
				MaxMinutes: int(max / time.Minute),
			})
		}
	}
	return rows
}

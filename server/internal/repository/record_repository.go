package repository

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/timberintel/timberintel/internal/store"
)

type RecordRepository interface {
	GetRecordsCount(f store.Filter) (int64, error)
}

type gormRecordRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormRecordRepository(db *gorm.DB, logger *slog.Logger) RecordRepository {
	return &gormRecordRepository{db: db, logger: logger.With("component", "repository")}
}

func (grr *gormRecordRepository) GetRecordsCount(f store.Filter) (int64, error) {
	var count int64
	if err := grr.applyFilter(f).Count(&count).Error; err != nil {
		grr.logger.Error("count query failed", "error", err)
		return 0, err
	}
	return count, nil
}

func (grr *gormRecordRepository) applyFilter(f store.Filter) *gorm.DB {
	query := grr.db.Model(&store.TradeRecord{})
	if !f.StartDate.IsZero() {
		query = query.Where("transaction_date >= ?", f.StartDate)
	}
	if !f.EndDate.IsZero() {
		query = query.Where("transaction_date <= ?", f.EndDate)
	}
	if len(f.Origins) > 0 {
		query = query.Where("origin_country_code IN ?", f.Origins)
	}
	if len(f.Dests) > 0 {
		query = query.Where("dest_country_code IN ?", f.Dests)
	}
	return query
}

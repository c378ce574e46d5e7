package store

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Filter narrows queries against the trade_records table. Zero values
// mean "no constraint".
type Filter struct {
	StartDate time.Time
	EndDate   time.Time
	Origins   []string
	Dests     []string
	HSCodes   []string
}

// CursorQuery is one page of an id-cursor bulk read: records with
// unique_record_id strictly below AfterID, newest id first. Cursor
// paging keeps per-request cost flat regardless of how deep the scan
// already is, unlike offset paging.
type CursorQuery struct {
	Filter
	// AfterID is the watermark from the previous page; empty starts from
	// the top.
	AfterID string
	Limit   int
}

// CoverageRow is the column projection coverage scans read. The
// description is only populated when the scan policy allows text
// filtering.
type CoverageRow struct {
	TransactionDate time.Time `gorm:"column:transaction_date"`
	HSCode          string    `gorm:"column:hs_code"`
	ProductDescText string    `gorm:"column:product_desc_text"`
}

// RecordRepository is the durable-store contract the pipeline writes to
// and reads from.
type RecordRepository interface {
	// UpsertRecords writes records keyed on unique_record_id; an existing
	// id is overwritten in place. Returns the number of rows written.
	UpsertRecords(ctx context.Context, records []TradeRecord) (int64, error)

	// CursorPage reads one page of an id-cursor bulk scan.
	CursorPage(ctx context.Context, q CursorQuery) ([]TradeRecord, error)

	// CoverageRows reads at most limit rows of the coverage projection
	// for a date range, newest first. includeDesc controls whether the
	// expensive free-text column is fetched.
	CoverageRows(ctx context.Context, f Filter, limit int, includeDesc bool) ([]CoverageRow, error)

	// Count runs a count-only query, the cheap existence check.
	Count(ctx context.Context, f Filter) (int64, error)
}

// Open connects to Postgres and returns a gorm handle.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

type gormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository wraps a gorm handle in the repository
// contract.
func NewGormRecordRepository(db *gorm.DB) RecordRepository {
	return &gormRecordRepository{db: db}
}

func (r *gormRecordRepository) UpsertRecords(ctx context.Context, records []TradeRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "unique_record_id"}},
		UpdateAll: true,
	}).Create(&records)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *gormRecordRepository) CursorPage(ctx context.Context, q CursorQuery) ([]TradeRecord, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&TradeRecord{}), q.Filter)
	if q.AfterID != "" {
		query = query.Where("unique_record_id < ?", q.AfterID)
	}
	var records []TradeRecord
	err := query.Order("unique_record_id DESC").Limit(q.Limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *gormRecordRepository) CoverageRows(ctx context.Context, f Filter, limit int, includeDesc bool) ([]CoverageRow, error) {
	cols := "transaction_date, hs_code"
	if includeDesc {
		cols += ", product_desc_text"
	}
	query := r.applyFilter(r.db.WithContext(ctx).Model(&TradeRecord{}), f).Select(cols)
	var rows []CoverageRow
	err := query.Order("transaction_date DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRecordRepository) Count(ctx context.Context, f Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&TradeRecord{}), f).Count(&count).Error
	return count, err
}

func (r *gormRecordRepository) applyFilter(query *gorm.DB, f Filter) *gorm.DB {
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
	if len(f.HSCodes) > 0 {
		query = query.Where("hs_code IN ?", f.HSCodes)
	}
	return query
}

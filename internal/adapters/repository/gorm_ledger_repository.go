package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

var (
	_ domain.LedgerRepository  = (*GormLedgerRepository)(nil)
	_ domain.FoodLogRepository = (*GormLedgerRepository)(nil)
)

// OpenSQLite opens (or creates) the SQLite ledger at path and migrates it.
// The pool is capped at one connection: SQLite allows a single writer, and
// queueing in database/sql is preferable to SQLITE_BUSY under load.
func OpenSQLite(path string) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "fithub.db"
	}

	if !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, wrapStoreError("open sqlite", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&dailyLogModel{}, &foodLogModel{}); err != nil {
		return nil, wrapStoreError("migrate sqlite", err)
	}
	return gdb, nil
}

type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

func (r *GormLedgerRepository) RecordWater(ctx context.Context, userID string, day time.Time, amount int) (*domain.DailyAggregate, error) {
	var agg *domain.DailyAggregate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		agg, err = upsertIncrement(tx, userID, day, "water_intake", amount)
		return err
	})
	if err != nil {
		return nil, wrapStoreError("record water", err)
	}
	return agg, nil
}

func (r *GormLedgerRepository) RecordCalories(ctx context.Context, userID string, day time.Time, amount int) (*domain.DailyAggregate, error) {
	var agg *domain.DailyAggregate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		agg, err = upsertIncrement(tx, userID, day, "calories_consumed", amount)
		return err
	})
	if err != nil {
		return nil, wrapStoreError("record calories", err)
	}
	return agg, nil
}

func (r *GormLedgerRepository) LogMeal(ctx context.Context, day time.Time, entry *domain.FoodLogEntry) (*domain.DailyAggregate, error) {
	var agg *domain.DailyAggregate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		agg, err = upsertIncrement(tx, entry.UserID, day, "calories_consumed", entry.Calories)
		if err != nil {
			return err
		}
		return tx.Create(newFoodLogModel(entry)).Error
	})
	if err != nil {
		return nil, wrapStoreError("log meal", err)
	}
	return agg, nil
}

func (r *GormLedgerRepository) GetByDate(ctx context.Context, userID string, day time.Time) (*domain.DailyAggregate, error) {
	var row dailyLogModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, domain.DayKey(day)).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAggregateNotFound
		}
		return nil, wrapStoreError("get aggregate", err)
	}
	return row.toDomain(), nil
}

func (r *GormLedgerRepository) ListLoggedDates(ctx context.Context, userID string) ([]string, error) {
	dates := []string{}
	err := r.db.WithContext(ctx).
		Model(&dailyLogModel{}).
		Where("user_id = ?", userID).
		Distinct("date").
		Order("date DESC").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, wrapStoreError("list logged dates", err)
	}
	return dates, nil
}

func (r *GormLedgerRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyAggregate, error) {
	var rows []dailyLogModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, domain.DayKey(from), domain.DayKey(to)).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapStoreError("list aggregates", err)
	}

	list := make([]*domain.DailyAggregate, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toDomain())
	}
	return list, nil
}

func (r *GormLedgerRepository) Append(ctx context.Context, entry *domain.FoodLogEntry) error {
	if err := r.db.WithContext(ctx).Create(newFoodLogModel(entry)).Error; err != nil {
		return wrapStoreError("append food log", err)
	}
	return nil
}

func (r *GormLedgerRepository) ListForDay(ctx context.Context, userID string, day time.Time) ([]*domain.FoodLogEntry, error) {
	start := domain.StartOfDay(day)
	end := start.AddDate(0, 0, 1)

	var rows []foodLogModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, start.UTC(), end.UTC()).
		Order("logged_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapStoreError("list food logs", err)
	}

	entries := make([]*domain.FoodLogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toDomain())
	}
	return entries, nil
}

// upsertIncrement adds amount to column in one INSERT ... ON CONFLICT DO UPDATE,
// then reads the row back inside the same transaction. The update only fires
// while the sum stays within domain.MaxDailyTotal, so no row is touched when it
// would not.
func upsertIncrement(tx *gorm.DB, userID string, day time.Time, column string, amount int) (*domain.DailyAggregate, error) {
	if _, err := domain.AddToTotal(0, amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := dailyLogModel{
		UserID:    userID,
		Date:      domain.DayKey(day),
		UpdatedAt: now,
	}
	switch column {
	case "water_intake":
		row.WaterIntake = amount
	case "calories_consumed":
		row.CaloriesConsumed = amount
	default:
		return nil, errors.New("unknown ledger column " + column)
	}

	res := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		Where: clause.Where{Exprs: []clause.Expression{
			gorm.Expr(column+" <= ?", domain.MaxDailyTotal-amount),
		}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column:       gorm.Expr(column+" + ?", amount),
			"updated_at": now,
		}),
	}).Create(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrDailyTotalExceeded
	}

	var stored dailyLogModel
	if err := tx.Where("user_id = ? AND date = ?", row.UserID, row.Date).Take(&stored).Error; err != nil {
		return nil, err
	}
	return stored.toDomain(), nil
}

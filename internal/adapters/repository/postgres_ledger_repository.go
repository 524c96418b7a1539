package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

var _ domain.LedgerRepository = (*PostgresLedgerRepository)(nil)

type PostgresLedgerRepository struct {
	db *sqlx.DB
}

func NewPostgresLedgerRepository(db *sqlx.DB) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{db: db}
}

const aggregateColumns = `user_id, to_char(date, 'YYYY-MM-DD') AS date, water_intake, calories_consumed, updated_at`

// Both increments are a single statement. The row lock taken by ON CONFLICT
// DO UPDATE serializes concurrent writers on the same (user_id, date). A sum
// past the INTEGER range fails with 22003, which wrapStoreError reports as
// domain.ErrDailyTotalExceeded.
const (
	incrementWaterQuery = `
		INSERT INTO daily_logs (user_id, date, water_intake, calories_consumed, updated_at)
		VALUES ($1, $2::date, $3, 0, $4)
		ON CONFLICT (user_id, date) DO UPDATE
		SET water_intake = daily_logs.water_intake + EXCLUDED.water_intake,
		    updated_at   = EXCLUDED.updated_at
		RETURNING ` + aggregateColumns

	incrementCaloriesQuery = `
		INSERT INTO daily_logs (user_id, date, water_intake, calories_consumed, updated_at)
		VALUES ($1, $2::date, 0, $3, $4)
		ON CONFLICT (user_id, date) DO UPDATE
		SET calories_consumed = daily_logs.calories_consumed + EXCLUDED.calories_consumed,
		    updated_at        = EXCLUDED.updated_at
		RETURNING ` + aggregateColumns
)

func (r *PostgresLedgerRepository) RecordWater(ctx context.Context, userID string, day time.Time, amount int) (*domain.DailyAggregate, error) {
	agg, err := increment(ctx, r.db, incrementWaterQuery, userID, day, amount)
	if err != nil {
		return nil, wrapStoreError("record water", err)
	}
	return agg, nil
}

func (r *PostgresLedgerRepository) RecordCalories(ctx context.Context, userID string, day time.Time, amount int) (*domain.DailyAggregate, error) {
	agg, err := increment(ctx, r.db, incrementCaloriesQuery, userID, day, amount)
	if err != nil {
		return nil, wrapStoreError("record calories", err)
	}
	return agg, nil
}

func (r *PostgresLedgerRepository) LogMeal(ctx context.Context, day time.Time, entry *domain.FoodLogEntry) (*domain.DailyAggregate, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, wrapStoreError("begin meal transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	agg, err := increment(ctx, tx, incrementCaloriesQuery, entry.UserID, day, entry.Calories)
	if err != nil {
		return nil, wrapStoreError("log meal calories", err)
	}

	if err := insertFoodLog(ctx, tx, entry); err != nil {
		return nil, wrapStoreError("log meal entry", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapStoreError("commit meal transaction", err)
	}
	return agg, nil
}

func (r *PostgresLedgerRepository) GetByDate(ctx context.Context, userID string, day time.Time) (*domain.DailyAggregate, error) {
	var agg domain.DailyAggregate
	query := `SELECT ` + aggregateColumns + ` FROM daily_logs WHERE user_id = $1 AND date = $2::date`

	err := r.db.GetContext(ctx, &agg, query, userID, domain.DayKey(day))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAggregateNotFound
		}
		return nil, wrapStoreError("get aggregate", err)
	}
	return &agg, nil
}

func (r *PostgresLedgerRepository) ListLoggedDates(ctx context.Context, userID string) ([]string, error) {
	dates := []string{}

	query := `
		SELECT DISTINCT to_char(date, 'YYYY-MM-DD') AS day
		FROM daily_logs
		WHERE user_id = $1
		ORDER BY day DESC`

	if err := r.db.SelectContext(ctx, &dates, query, userID); err != nil {
		return nil, wrapStoreError("list logged dates", err)
	}
	return dates, nil
}

func (r *PostgresLedgerRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyAggregate, error) {
	list := []*domain.DailyAggregate{}

	query := `
		SELECT ` + aggregateColumns + `
		FROM daily_logs
		WHERE user_id = $1
		  AND date >= $2::date
		  AND date <= $3::date
		ORDER BY date ASC`

	if err := r.db.SelectContext(ctx, &list, query, userID, domain.DayKey(from), domain.DayKey(to)); err != nil {
		return nil, wrapStoreError("list aggregates", err)
	}
	return list, nil
}

func increment(ctx context.Context, q sqlx.QueryerContext, query, userID string, day time.Time, amount int) (*domain.DailyAggregate, error) {
	if _, err := domain.AddToTotal(0, amount); err != nil {
		return nil, err
	}

	var agg domain.DailyAggregate
	if err := sqlx.GetContext(ctx, q, &agg, query, userID, domain.DayKey(day), amount, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &agg, nil
}

package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

var _ domain.FoodLogRepository = (*PostgresFoodLogRepository)(nil)

type PostgresFoodLogRepository struct {
	db *sqlx.DB
}

func NewPostgresFoodLogRepository(db *sqlx.DB) *PostgresFoodLogRepository {
	return &PostgresFoodLogRepository{db: db}
}

func (r *PostgresFoodLogRepository) Append(ctx context.Context, entry *domain.FoodLogEntry) error {
	return wrapStoreError("append food log", insertFoodLog(ctx, r.db, entry))
}

func (r *PostgresFoodLogRepository) ListForDay(ctx context.Context, userID string, day time.Time) ([]*domain.FoodLogEntry, error) {
	entries := []*domain.FoodLogEntry{}

	start := domain.StartOfDay(day)
	end := start.AddDate(0, 0, 1)

	query := `
		SELECT id, user_id, meal_name, calories, logged_at
		FROM food_logs
		WHERE user_id = $1
		  AND logged_at >= $2
		  AND logged_at < $3
		ORDER BY logged_at DESC, id DESC`

	if err := r.db.SelectContext(ctx, &entries, query, userID, start.UTC(), end.UTC()); err != nil {
		return nil, wrapStoreError("list food logs", err)
	}

	for _, e := range entries {
		e.Timestamp = e.Timestamp.UTC()
	}
	return entries, nil
}

func insertFoodLog(ctx context.Context, ext sqlx.ExtContext, entry *domain.FoodLogEntry) error {
	query := `
		INSERT INTO food_logs (id, user_id, meal_name, calories, logged_at)
		VALUES (:id, :user_id, :meal_name, :calories, :logged_at)`

	_, err := sqlx.NamedExecContext(ctx, ext, query, entry)
	return err
}

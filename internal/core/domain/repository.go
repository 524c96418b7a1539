package domain

import (
	"context"
	"time"
)

// Every day argument below is midnight of a calendar day in the ledger's
// location. Adapters key aggregates by DayKey(day).

type LedgerRepository interface {
	// RecordWater adds amount to the day's water intake, creating the row if
	// needed. It must be a single atomic upsert-and-increment.
	RecordWater(ctx context.Context, userID string, day time.Time, amount int) (*DailyAggregate, error)

	// RecordCalories is the calorie counterpart of RecordWater.
	RecordCalories(ctx context.Context, userID string, day time.Time, amount int) (*DailyAggregate, error)

	// LogMeal increments the calories of the entry's day and appends the entry
	// in one transaction.
	LogMeal(ctx context.Context, day time.Time, entry *FoodLogEntry) (*DailyAggregate, error)

	// GetByDate returns ErrAggregateNotFound when the user has no row for day.
	GetByDate(ctx context.Context, userID string, day time.Time) (*DailyAggregate, error)

	// ListLoggedDates returns the distinct days with an aggregate, newest first.
	ListLoggedDates(ctx context.Context, userID string) ([]string, error)

	// ListRange returns the aggregates between from and to inclusive, oldest first.
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]*DailyAggregate, error)
}

type FoodLogRepository interface {
	// Append always inserts a new entry and leaves the daily totals alone.
	// Logging a meal goes through LedgerRepository.LogMeal, which adds the
	// calories and appends the entry in one transaction; Append is the bare
	// event-log write for entries whose calories are already counted.
	Append(ctx context.Context, entry *FoodLogEntry) error

	// ListForDay returns entries with day <= timestamp < day+1, newest first.
	ListForDay(ctx context.Context, userID string, day time.Time) ([]*FoodLogEntry, error)
}

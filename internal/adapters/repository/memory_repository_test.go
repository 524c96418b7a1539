package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

func TestInMemoryLedgerRepository_Contract(t *testing.T) {
	runLedgerContract(t, NewInMemoryLedgerRepository())
}

func TestInMemoryLedgerRepository_ReturnsCopies(t *testing.T) {
	repo := NewInMemoryLedgerRepository()
	ctx := context.Background()
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	agg, err := repo.RecordWater(ctx, "user-1", day, 4)
	require.NoError(t, err)
	agg.WaterIntake = 999

	stored, err := repo.GetByDate(ctx, "user-1", day)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.WaterIntake, "callers must not be able to mutate stored aggregates")

	entry, err := domain.NewFoodLogEntry("user-1", "Toast", 150, day.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, entry))
	entry.Calories = 1

	list, err := repo.ListForDay(ctx, "user-1", day)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 150, list[0].Calories, "entries are immutable once appended")
}

func TestInMemoryLedgerRepository_DayInLocation(t *testing.T) {
	repo := NewInMemoryLedgerRepository()
	ctx := context.Background()
	loc := time.FixedZone("UTC+2", 2*60*60)
	localDay := time.Date(2026, 3, 15, 0, 0, 0, 0, loc)

	// 2026-03-14 23:30 UTC is already the 15th in UTC+2.
	entry, err := domain.NewFoodLogEntry("user-1", "Late Snack", 80, time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	agg, err := repo.LogMeal(ctx, localDay, entry)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", agg.Date)

	list, err := repo.ListForDay(ctx, "user-1", localDay)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

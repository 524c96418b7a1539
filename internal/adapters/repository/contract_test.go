package repository

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

type ledgerStore interface {
	domain.LedgerRepository
	domain.FoodLogRepository
}

// runLedgerContract exercises the behavior every ledger adapter must share.
// Each subtest uses its own user id so stores never need truncating between them.
func runLedgerContract(t *testing.T, store ledgerStore) {
	t.Helper()

	ctx := context.Background()
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Round trip: water increments add up", func(t *testing.T) {
		uid := uuid.NewString()

		first, err := store.RecordWater(ctx, uid, day, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, first.WaterIntake)
		assert.Equal(t, 0, first.CaloriesConsumed)
		assert.Equal(t, "2026-03-15", first.Date)

		second, err := store.RecordWater(ctx, uid, day, 3)
		require.NoError(t, err)
		assert.Equal(t, 8, second.WaterIntake)

		found, err := store.GetByDate(ctx, uid, day)
		require.NoError(t, err)
		assert.Equal(t, uid, found.UserID)
		assert.Equal(t, 8, found.WaterIntake)
		assert.Equal(t, 0, found.CaloriesConsumed)
	})

	t.Run("Calories create the row lazily with zero water", func(t *testing.T) {
		uid := uuid.NewString()

		agg, err := store.RecordCalories(ctx, uid, day, 450)
		require.NoError(t, err)
		assert.Equal(t, 450, agg.CaloriesConsumed)
		assert.Equal(t, 0, agg.WaterIntake)

		agg, err = store.RecordWater(ctx, uid, day, 2)
		require.NoError(t, err)
		assert.Equal(t, 450, agg.CaloriesConsumed, "water must not touch calories")
		assert.Equal(t, 2, agg.WaterIntake)
	})

	t.Run("Missing aggregate is ErrAggregateNotFound", func(t *testing.T) {
		_, err := store.GetByDate(ctx, uuid.NewString(), day)
		assert.ErrorIs(t, err, domain.ErrAggregateNotFound)
	})

	t.Run("Concurrent increments are never lost", func(t *testing.T) {
		uid := uuid.NewString()
		workers, perWorker := 10, 5

		var wg sync.WaitGroup
		errs := make(chan error, workers*perWorker*2)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					if _, err := store.RecordWater(ctx, uid, day, 1); err != nil {
						errs <- err
					}
					if _, err := store.RecordCalories(ctx, uid, day, 2); err != nil {
						errs <- err
					}
				}
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}

		agg, err := store.GetByDate(ctx, uid, day)
		require.NoError(t, err)
		assert.Equal(t, workers*perWorker, agg.WaterIntake)
		assert.Equal(t, workers*perWorker*2, agg.CaloriesConsumed)
	})

	t.Run("LogMeal keeps aggregate and event log in step", func(t *testing.T) {
		uid := uuid.NewString()

		var submitted []*domain.FoodLogEntry
		for i := 0; i < 5; i++ {
			e, err := domain.NewFoodLogEntry(uid, fmt.Sprintf("Meal %d", i), 100+i, day.Add(8*time.Hour+time.Duration(i)*time.Minute))
			require.NoError(t, err)

			agg, err := store.LogMeal(ctx, day, e)
			require.NoError(t, err)
			submitted = append(submitted, e)

			expected := 0
			for _, s := range submitted {
				expected += s.Calories
			}
			assert.Equal(t, expected, agg.CaloriesConsumed, "running total after meal %d", i)
		}

		list, err := store.ListForDay(ctx, uid, day)
		require.NoError(t, err)
		require.Len(t, list, len(submitted))

		for i, got := range list {
			want := submitted[len(submitted)-1-i]
			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.UserID, got.UserID)
			assert.Equal(t, want.MealName, got.MealName)
			assert.Equal(t, want.Calories, got.Calories)
			assert.True(t, want.Timestamp.Equal(got.Timestamp), "timestamp %v != %v", want.Timestamp, got.Timestamp)
		}
	})

	t.Run("Totals never pass MaxDailyTotal", func(t *testing.T) {
		uid := uuid.NewString()

		_, err := store.RecordWater(ctx, uid, day, math.MaxInt)
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = store.GetByDate(ctx, uid, day)
		assert.ErrorIs(t, err, domain.ErrAggregateNotFound, "a rejected first write must not create the row")

		agg, err := store.RecordWater(ctx, uid, day, domain.MaxDailyTotal)
		require.NoError(t, err)
		assert.Equal(t, domain.MaxDailyTotal, agg.WaterIntake)

		_, err = store.RecordWater(ctx, uid, day, 2)
		assert.ErrorIs(t, err, domain.ErrDailyTotalExceeded)
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = store.RecordCalories(ctx, uid, day, domain.MaxDailyTotal)
		require.NoError(t, err)

		meal, err := domain.NewFoodLogEntry(uid, "One more bite", 1, day.Add(12*time.Hour))
		require.NoError(t, err)
		_, err = store.LogMeal(ctx, day, meal)
		assert.ErrorIs(t, err, domain.ErrDailyTotalExceeded)

		found, err := store.GetByDate(ctx, uid, day)
		require.NoError(t, err)
		assert.Equal(t, domain.MaxDailyTotal, found.WaterIntake)
		assert.Equal(t, domain.MaxDailyTotal, found.CaloriesConsumed)

		list, err := store.ListForDay(ctx, uid, day)
		require.NoError(t, err)
		assert.Empty(t, list, "the rejected meal must not reach the event log")
	})

	t.Run("Append never rejects duplicate content", func(t *testing.T) {
		uid := uuid.NewString()
		at := day.Add(12 * time.Hour)

		for i := 0; i < 2; i++ {
			e, err := domain.NewFoodLogEntry(uid, "Salad", 200, at)
			require.NoError(t, err)
			require.NoError(t, store.Append(ctx, e))
		}

		list, err := store.ListForDay(ctx, uid, day)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("ListForDay filters by user and day boundaries", func(t *testing.T) {
		uid := uuid.NewString()
		other := uuid.NewString()

		stamps := []time.Time{
			day.Add(-time.Second),
			day,
			day.Add(24*time.Hour - time.Second),
			day.Add(24 * time.Hour),
		}
		for _, ts := range stamps {
			e, err := domain.NewFoodLogEntry(uid, "Snack", 50, ts)
			require.NoError(t, err)
			require.NoError(t, store.Append(ctx, e))
		}
		e, err := domain.NewFoodLogEntry(other, "Snack", 50, day.Add(time.Hour))
		require.NoError(t, err)
		require.NoError(t, store.Append(ctx, e))

		list, err := store.ListForDay(ctx, uid, day)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.True(t, list[0].Timestamp.Equal(stamps[2]))
		assert.True(t, list[1].Timestamp.Equal(stamps[1]))
	})

	t.Run("ListForDay on an empty day is an empty slice", func(t *testing.T) {
		list, err := store.ListForDay(ctx, uuid.NewString(), day)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("ListLoggedDates is distinct and newest first", func(t *testing.T) {
		uid := uuid.NewString()

		for _, offset := range []int{-3, 0, -1, 0, -3} {
			_, err := store.RecordWater(ctx, uid, day.AddDate(0, 0, offset), 1)
			require.NoError(t, err)
		}

		dates, err := store.ListLoggedDates(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-03-15", "2026-03-14", "2026-03-12"}, dates)

		empty, err := store.ListLoggedDates(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("ListRange is inclusive and oldest first", func(t *testing.T) {
		uid := uuid.NewString()

		for offset := -5; offset <= 0; offset++ {
			_, err := store.RecordCalories(ctx, uid, day.AddDate(0, 0, offset), 10*(offset+6))
			require.NoError(t, err)
		}

		list, err := store.ListRange(ctx, uid, day.AddDate(0, 0, -3), day.AddDate(0, 0, -1))
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "2026-03-12", list[0].Date)
		assert.Equal(t, "2026-03-14", list[2].Date)
		assert.Equal(t, 30, list[0].CaloriesConsumed)
	})
}

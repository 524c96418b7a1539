package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fithub/ledger-engine/internal/core/domain"
	"github.com/fithub/ledger-engine/internal/core/services"
)

func TestHistoryService_GetHistory(t *testing.T) {
	ctx := context.Background()
	uid := "user-history"

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	t.Run("Success: fills missing days with zeros", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		svc := services.NewHistoryService(repo, fixedCalendar())

		repo.On("ListRange", ctx, uid, start, end).Return([]*domain.DailyAggregate{
			{UserID: uid, Date: "2026-03-10", WaterIntake: 4, CaloriesConsumed: 1500},
			{UserID: uid, Date: "2026-03-12", WaterIntake: 2, CaloriesConsumed: 2500},
		}, nil)

		h, err := svc.GetHistory(ctx, domain.HistoryInput{UserID: uid, StartDate: start, EndDate: end})

		require.NoError(t, err)
		assert.Equal(t, "2026-03-10", h.StartDate)
		assert.Equal(t, "2026-03-12", h.EndDate)
		assert.Equal(t, 2, h.DaysLogged)
		assert.Equal(t, 6, h.TotalWater)
		assert.Equal(t, 4000, h.TotalCalories)
		assert.InDelta(t, 2000.0, h.AverageCalories, 0.001)

		require.Len(t, h.Days, 3)
		assert.Equal(t, domain.DaySummary{Date: "2026-03-10", Water: 4, Calories: 1500, Logged: true}, h.Days[0])
		assert.Equal(t, domain.DaySummary{Date: "2026-03-11"}, h.Days[1])
		assert.Equal(t, domain.DaySummary{Date: "2026-03-12", Water: 2, Calories: 2500, Logged: true}, h.Days[2])
	})

	t.Run("Edge Case: no activity returns a zero series", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		svc := services.NewHistoryService(repo, fixedCalendar())

		repo.On("ListRange", ctx, uid, start, start).Return([]*domain.DailyAggregate{}, nil)

		h, err := svc.GetHistory(ctx, domain.HistoryInput{UserID: uid, StartDate: start, EndDate: start})

		require.NoError(t, err)
		assert.Len(t, h.Days, 1)
		assert.Zero(t, h.DaysLogged)
		assert.Zero(t, h.AverageCalories)
	})

	t.Run("Fail: inverted range", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		svc := services.NewHistoryService(repo, fixedCalendar())

		_, err := svc.GetHistory(ctx, domain.HistoryInput{UserID: uid, StartDate: end, EndDate: start})

		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
		repo.AssertNotCalled(t, "ListRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Fail: store error propagates", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		svc := services.NewHistoryService(repo, fixedCalendar())

		repo.On("ListRange", ctx, uid, start, end).Return(nil, domain.ErrStoreUnavailable)

		_, err := svc.GetHistory(ctx, domain.HistoryInput{UserID: uid, StartDate: start, EndDate: end})
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestHistoryService_DefaultRange(t *testing.T) {
	svc := services.NewHistoryService(new(MockLedgerRepo), fixedCalendar())

	from, to := svc.DefaultRange()

	assert.Equal(t, "2026-03-09", domain.DayKey(from))
	assert.Equal(t, "2026-03-15", domain.DayKey(to))
	assert.Equal(t, time.UTC, svc.Location())
}

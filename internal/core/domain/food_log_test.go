package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

func TestNewFoodLogEntry(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Rome")
	if loc == nil {
		loc = time.UTC
	}
	loggedAt := time.Date(2026, 1, 28, 12, 30, 15, 123456789, loc)

	t.Run("Success: Sets fields and normalizes timestamp to UTC", func(t *testing.T) {
		e, err := domain.NewFoodLogEntry("user-1", "  Oatmeal with Berries ", 350, loggedAt)
		require.NoError(t, err)

		assert.Equal(t, "user-1", e.UserID)
		assert.Equal(t, "Oatmeal with Berries", e.MealName)
		assert.Equal(t, 350, e.Calories)
		assert.Equal(t, "UTC", e.Timestamp.Location().String())
		assert.True(t, loggedAt.Truncate(time.Microsecond).Equal(e.Timestamp))

		parsed, err := uuid.Parse(e.ID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())
	})

	t.Run("Success: Empty meal name falls back to placeholder", func(t *testing.T) {
		e, err := domain.NewFoodLogEntry("user-1", "   ", 120, loggedAt)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultMealName, e.MealName)
	})

	t.Run("Success: Zero calories are allowed", func(t *testing.T) {
		e, err := domain.NewFoodLogEntry("user-1", "Black Coffee", 0, loggedAt)
		require.NoError(t, err)
		assert.Equal(t, 0, e.Calories)
	})

	t.Run("Success: Ids are time ordered", func(t *testing.T) {
		first, err := domain.NewFoodLogEntry("user-1", "", 1, loggedAt)
		require.NoError(t, err)
		second, err := domain.NewFoodLogEntry("user-1", "", 1, loggedAt)
		require.NoError(t, err)
		assert.Less(t, first.ID, second.ID)
	})

	t.Run("Error: Missing user", func(t *testing.T) {
		_, err := domain.NewFoodLogEntry("  ", "Salad", 100, loggedAt)
		assert.ErrorIs(t, err, domain.ErrInvalidUserID)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Error: Negative calories", func(t *testing.T) {
		_, err := domain.NewFoodLogEntry("user-1", "Salad", -5, loggedAt)
		assert.ErrorIs(t, err, domain.ErrInvalidCalories)
	})

	t.Run("Success: User id is stored as given", func(t *testing.T) {
		e, err := domain.NewFoodLogEntry(" user-1", "Salad", 100, loggedAt)
		require.NoError(t, err)
		assert.Equal(t, " user-1", e.UserID)
	})

	t.Run("Error: Calories above the per-entry cap", func(t *testing.T) {
		_, err := domain.NewFoodLogEntry("user-1", "Feast", domain.MaxCalories+1, loggedAt)
		assert.ErrorIs(t, err, domain.ErrCaloriesTooLarge)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Error: Meal name too long", func(t *testing.T) {
		_, err := domain.NewFoodLogEntry("user-1", strings.Repeat("a", domain.MaxMealNameLen+1), 100, loggedAt)
		assert.ErrorIs(t, err, domain.ErrMealNameTooLong)
	})

	t.Run("Error: Zero timestamp", func(t *testing.T) {
		_, err := domain.NewFoodLogEntry("user-1", "Salad", 100, time.Time{})
		assert.ErrorIs(t, err, domain.ErrInvalidTimestamp)
	})
}

package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	DefaultMealName = "Quick Add"
	MaxMealNameLen  = 100
)

// FoodLogEntry is one immutable meal-logging event.
type FoodLogEntry struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	MealName  string    `json:"meal_name" db:"meal_name"`
	Calories  int       `json:"calories" db:"calories"`
	Timestamp time.Time `json:"timestamp" db:"logged_at"`
}

// NewFoodLogEntry builds an entry stamped at loggedAt. Ids are UUIDv7 so they
// sort in creation order.
func NewFoodLogEntry(userID, mealName string, calories int, loggedAt time.Time) (*FoodLogEntry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(mealName)
	if name == "" {
		name = DefaultMealName
	}

	entry := &FoodLogEntry{
		ID:        id.String(),
		UserID:    userID,
		MealName:  name,
		Calories:  calories,
		Timestamp: loggedAt.UTC().Truncate(time.Microsecond),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

func (e *FoodLogEntry) Validate() error {
	if err := ValidateUserID(e.UserID); err != nil {
		return err
	}
	if e.Calories < 0 {
		return ErrInvalidCalories
	}
	if e.Calories > MaxCalories {
		return ErrCaloriesTooLarge
	}
	if utf8.RuneCountInString(e.MealName) > MaxMealNameLen {
		return ErrMealNameTooLong
	}
	if e.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	return nil
}

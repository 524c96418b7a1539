package domain

import (
	"math"
	"strings"
	"time"
)

// DateLayout is the canonical textual form of a calendar day.
const DateLayout = "2006-01-02"

const (
	// MaxDailyTotal bounds each daily counter. It is the range of the
	// INTEGER columns in the Postgres schema.
	MaxDailyTotal = math.MaxInt32

	MaxCalories    = 100_000
	MaxWaterAmount = 100_000
)

// DailyAggregate is the single summary row kept per (user, calendar day).
type DailyAggregate struct {
	UserID           string    `json:"user_id" db:"user_id"`
	Date             string    `json:"date" db:"date"`
	WaterIntake      int       `json:"water_intake" db:"water_intake"`
	CaloriesConsumed int       `json:"calories_consumed" db:"calories_consumed"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// EmptyAggregate is what a day with no logged activity looks like.
func EmptyAggregate(userID string, day time.Time) *DailyAggregate {
	return &DailyAggregate{
		UserID: userID,
		Date:   DayKey(day),
	}
}

// AddToTotal returns total+amount, or ErrDailyTotalExceeded when the sum
// would leave [0, MaxDailyTotal].
func AddToTotal(total, amount int) (int, error) {
	if amount < 0 || total > MaxDailyTotal-amount {
		return total, ErrDailyTotalExceeded
	}
	return total + amount, nil
}

// StartOfDay returns midnight of t's calendar day in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayKey formats the calendar day of t, as seen from t's location.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDay parses a YYYY-MM-DD string into midnight of that day in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUserID
	}
	return nil
}

package domain

import "time"

// MaxHistoryDays is the most calendar days a history query may span, both
// ends included.
const MaxHistoryDays = 366

type HistoryInput struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
}

type History struct {
	StartDate       string       `json:"start_date"`
	EndDate         string       `json:"end_date"`
	DaysLogged      int          `json:"days_logged"`
	TotalWater      int          `json:"total_water"`
	TotalCalories   int          `json:"total_calories"`
	AverageCalories float64      `json:"average_calories"`
	Days            []DaySummary `json:"days"`
}

type DaySummary struct {
	Date     string `json:"date"`
	Water    int    `json:"water"`
	Calories int    `json:"calories"`
	Logged   bool   `json:"logged"`
}

func (in HistoryInput) Validate() error {
	if err := ValidateUserID(in.UserID); err != nil {
		return err
	}
	start := calendarDay(in.StartDate)
	end := calendarDay(in.EndDate)
	if in.StartDate.IsZero() || in.EndDate.IsZero() || start.After(end) {
		return ErrInvalidDateRange
	}
	if daysBetween(start, end)+1 > MaxHistoryDays {
		return ErrInvalidDateRange
	}
	return nil
}

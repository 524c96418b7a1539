package repository

import (
	"time"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

// dailyLogModel mirrors the daily_logs table of the SQLite store. Date is kept
// as YYYY-MM-DD text so it sorts chronologically.
type dailyLogModel struct {
	ID               uint      `gorm:"primaryKey"`
	UserID           string    `gorm:"not null;uniqueIndex:idx_daily_logs_user_date"`
	Date             string    `gorm:"type:text;not null;uniqueIndex:idx_daily_logs_user_date"`
	WaterIntake      int       `gorm:"not null"`
	CaloriesConsumed int       `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (dailyLogModel) TableName() string {
	return "daily_logs"
}

func (m dailyLogModel) toDomain() *domain.DailyAggregate {
	return &domain.DailyAggregate{
		UserID:           m.UserID,
		Date:             m.Date,
		WaterIntake:      m.WaterIntake,
		CaloriesConsumed: m.CaloriesConsumed,
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

type foodLogModel struct {
	ID       string    `gorm:"primaryKey;type:text"`
	UserID   string    `gorm:"not null;index:idx_food_logs_user_logged_at,priority:1"`
	MealName string    `gorm:"not null"`
	Calories int       `gorm:"not null"`
	LoggedAt time.Time `gorm:"not null;index:idx_food_logs_user_logged_at,priority:2"`
}

func (foodLogModel) TableName() string {
	return "food_logs"
}

func newFoodLogModel(e *domain.FoodLogEntry) *foodLogModel {
	return &foodLogModel{
		ID:       e.ID,
		UserID:   e.UserID,
		MealName: e.MealName,
		Calories: e.Calories,
		LoggedAt: e.Timestamp.UTC(),
	}
}

func (m foodLogModel) toDomain() *domain.FoodLogEntry {
	return &domain.FoodLogEntry{
		ID:        m.ID,
		UserID:    m.UserID,
		MealName:  m.MealName,
		Calories:  m.Calories,
		Timestamp: m.LoggedAt.UTC(),
	}
}

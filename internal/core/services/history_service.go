package services

import (
	"context"
	"time"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

// DefaultHistoryDays is the window used when the caller gives no range.
const DefaultHistoryDays = 7

type HistoryService struct {
	ledger   domain.LedgerRepository
	calendar Calendar
}

func NewHistoryService(ledger domain.LedgerRepository, calendar Calendar) *HistoryService {
	return &HistoryService{
		ledger:   ledger,
		calendar: calendar,
	}
}

// DefaultRange covers the last DefaultHistoryDays days, today included.
func (s *HistoryService) DefaultRange() (time.Time, time.Time) {
	today := s.calendar.Today()
	return today.AddDate(0, 0, -(DefaultHistoryDays - 1)), today
}

func (s *HistoryService) Location() *time.Location {
	return s.calendar.Location()
}

func (s *HistoryService) GetHistory(ctx context.Context, input domain.HistoryInput) (*domain.History, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	startDate := domain.StartOfDay(input.StartDate)
	endDate := domain.StartOfDay(input.EndDate)

	aggregates, err := s.ledger.ListRange(ctx, input.UserID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*domain.DailyAggregate, len(aggregates))
	for _, a := range aggregates {
		byDay[a.Date] = a
	}

	history := &domain.History{
		StartDate: domain.DayKey(startDate),
		EndDate:   domain.DayKey(endDate),
		Days:      make([]domain.DaySummary, 0),
	}

	for current := startDate; !current.After(endDate); current = current.AddDate(0, 0, 1) {
		key := domain.DayKey(current)
		day := domain.DaySummary{Date: key}

		if a, ok := byDay[key]; ok {
			day.Water = a.WaterIntake
			day.Calories = a.CaloriesConsumed
			day.Logged = true

			history.DaysLogged++
			history.TotalWater += a.WaterIntake
			history.TotalCalories += a.CaloriesConsumed
		}

		history.Days = append(history.Days, day)
	}

	if history.DaysLogged > 0 {
		history.AverageCalories = float64(history.TotalCalories) / float64(history.DaysLogged)
	}

	return history, nil
}

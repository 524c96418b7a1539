package services

import (
	"context"
	"errors"
	"time"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

type LedgerService struct {
	ledger   domain.LedgerRepository
	foodLogs domain.FoodLogRepository
	calendar Calendar
}

func NewLedgerService(ledger domain.LedgerRepository, foodLogs domain.FoodLogRepository, calendar Calendar) *LedgerService {
	return &LedgerService{
		ledger:   ledger,
		foodLogs: foodLogs,
		calendar: calendar,
	}
}

type LogMealInput struct {
	UserID   string
	MealName string
	Calories int
}

type LogWaterInput struct {
	UserID string
	Amount int
}

type MealLogResult struct {
	Entry     *domain.FoodLogEntry
	Aggregate *domain.DailyAggregate
	NewTotal  int
}

func (s *LedgerService) LogMeal(ctx context.Context, input LogMealInput) (*MealLogResult, error) {
	if err := domain.ValidateUserID(input.UserID); err != nil {
		return nil, err
	}
	if input.Calories < 0 {
		return nil, domain.ErrInvalidCalories
	}
	if input.Calories > domain.MaxCalories {
		return nil, domain.ErrCaloriesTooLarge
	}

	now := s.calendar.Now()
	entry, err := domain.NewFoodLogEntry(input.UserID, input.MealName, input.Calories, now)
	if err != nil {
		return nil, err
	}

	agg, err := s.ledger.LogMeal(ctx, domain.StartOfDay(now), entry)
	if err != nil {
		return nil, err
	}

	return &MealLogResult{
		Entry:     entry,
		Aggregate: agg,
		NewTotal:  agg.CaloriesConsumed,
	}, nil
}

func (s *LedgerService) LogWater(ctx context.Context, input LogWaterInput) (*domain.DailyAggregate, error) {
	if err := domain.ValidateUserID(input.UserID); err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidWaterAmount
	}
	if input.Amount > domain.MaxWaterAmount {
		return nil, domain.ErrWaterTooLarge
	}

	return s.ledger.RecordWater(ctx, input.UserID, s.calendar.Today(), input.Amount)
}

// GetToday never reports a missing row: a day without activity is all zeros.
func (s *LedgerService) GetToday(ctx context.Context, userID string) (*domain.DailyAggregate, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	return getAggregate(ctx, s.ledger, userID, s.calendar.Today())
}

func (s *LedgerService) TodayDetail(ctx context.Context, userID string) ([]*domain.FoodLogEntry, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	return s.foodLogs.ListForDay(ctx, userID, s.calendar.Today())
}

func getAggregate(ctx context.Context, ledger domain.LedgerRepository, userID string, day time.Time) (*domain.DailyAggregate, error) {
	agg, err := ledger.GetByDate(ctx, userID, day)
	if err != nil {
		if errors.Is(err, domain.ErrAggregateNotFound) {
			return domain.EmptyAggregate(userID, day), nil
		}
		return nil, err
	}
	return agg, nil
}

package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) RecordWater(ctx context.Context, userID string, day time.Time, amount int) (*domain.DailyAggregate, error) {
	args := m.Called(ctx, userID, day, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyAggregate), args.Error(1)
}

func (m *MockLedgerRepo) RecordCalories(ctx context.Context, userID string, day time.Time, amount int) (*domain.DailyAggregate, error) {
	args := m.Called(ctx, userID, day, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyAggregate), args.Error(1)
}

func (m *MockLedgerRepo) LogMeal(ctx context.Context, day time.Time, entry *domain.FoodLogEntry) (*domain.DailyAggregate, error) {
	args := m.Called(ctx, day, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyAggregate), args.Error(1)
}

func (m *MockLedgerRepo) GetByDate(ctx context.Context, userID string, day time.Time) (*domain.DailyAggregate, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyAggregate), args.Error(1)
}

func (m *MockLedgerRepo) ListLoggedDates(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLedgerRepo) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyAggregate, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyAggregate), args.Error(1)
}

type MockFoodLogRepo struct {
	mock.Mock
}

func (m *MockFoodLogRepo) Append(ctx context.Context, entry *domain.FoodLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFoodLogRepo) ListForDay(ctx context.Context, userID string, day time.Time) ([]*domain.FoodLogEntry, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FoodLogEntry), args.Error(1)
}

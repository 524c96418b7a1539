package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

var (
	_ domain.LedgerRepository  = (*InMemoryLedgerRepository)(nil)
	_ domain.FoodLogRepository = (*InMemoryLedgerRepository)(nil)
)

// InMemoryLedgerRepository keeps aggregates and food logs in process memory.
// A single mutex serializes every write, which makes each increment atomic.
type InMemoryLedgerRepository struct {
	aggregates map[aggregateKey]*domain.DailyAggregate
	foodLogs   []*domain.FoodLogEntry

	mu sync.RWMutex
}

type aggregateKey struct {
	userID string
	date   string
}

func NewInMemoryLedgerRepository() *InMemoryLedgerRepository {
	return &InMemoryLedgerRepository{
		aggregates: make(map[aggregateKey]*domain.DailyAggregate),
	}
}

func (r *InMemoryLedgerRepository) RecordWater(ctx context.Context, userID string, day time.Time, amount int) (*domain.DailyAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.current(userID, day)
	total, err := domain.AddToTotal(current.WaterIntake, amount)
	if err != nil {
		return nil, err
	}

	agg := r.upsert(userID, day)
	agg.WaterIntake = total
	copied := *agg
	return &copied, nil
}

func (r *InMemoryLedgerRepository) RecordCalories(ctx context.Context, userID string, day time.Time, amount int) (*domain.DailyAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.current(userID, day)
	total, err := domain.AddToTotal(current.CaloriesConsumed, amount)
	if err != nil {
		return nil, err
	}

	agg := r.upsert(userID, day)
	agg.CaloriesConsumed = total
	copied := *agg
	return &copied, nil
}

func (r *InMemoryLedgerRepository) LogMeal(ctx context.Context, day time.Time, entry *domain.FoodLogEntry) (*domain.DailyAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.current(entry.UserID, day)
	total, err := domain.AddToTotal(current.CaloriesConsumed, entry.Calories)
	if err != nil {
		return nil, err
	}

	agg := r.upsert(entry.UserID, day)
	agg.CaloriesConsumed = total

	stored := *entry
	r.foodLogs = append(r.foodLogs, &stored)

	copied := *agg
	return &copied, nil
}

func (r *InMemoryLedgerRepository) GetByDate(ctx context.Context, userID string, day time.Time) (*domain.DailyAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agg, ok := r.aggregates[aggregateKey{userID: userID, date: domain.DayKey(day)}]
	if !ok {
		return nil, domain.ErrAggregateNotFound
	}
	copied := *agg
	return &copied, nil
}

func (r *InMemoryLedgerRepository) ListLoggedDates(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dates := []string{}
	for k := range r.aggregates {
		if k.userID == userID {
			dates = append(dates, k.date)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

func (r *InMemoryLedgerRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fromKey, toKey := domain.DayKey(from), domain.DayKey(to)

	list := []*domain.DailyAggregate{}
	for k, agg := range r.aggregates {
		if k.userID == userID && k.date >= fromKey && k.date <= toKey {
			copied := *agg
			list = append(list, &copied)
		}
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Date < list[j].Date
	})
	return list, nil
}

func (r *InMemoryLedgerRepository) Append(ctx context.Context, entry *domain.FoodLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *entry
	r.foodLogs = append(r.foodLogs, &stored)
	return nil
}

func (r *InMemoryLedgerRepository) ListForDay(ctx context.Context, userID string, day time.Time) ([]*domain.FoodLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start := domain.StartOfDay(day)
	end := start.AddDate(0, 0, 1)

	list := []*domain.FoodLogEntry{}
	for _, e := range r.foodLogs {
		if e.UserID == userID && !e.Timestamp.Before(start) && e.Timestamp.Before(end) {
			copied := *e
			list = append(list, &copied)
		}
	}

	sortNewestFirst(list)
	return list, nil
}

// current returns the stored aggregate for the day, or a zero one, without
// creating a row. Callers hold the lock.
func (r *InMemoryLedgerRepository) current(userID string, day time.Time) domain.DailyAggregate {
	if agg, ok := r.aggregates[aggregateKey{userID: userID, date: domain.DayKey(day)}]; ok {
		return *agg
	}
	return *domain.EmptyAggregate(userID, day)
}

// upsert must be called with the write lock held.
func (r *InMemoryLedgerRepository) upsert(userID string, day time.Time) *domain.DailyAggregate {
	key := aggregateKey{userID: userID, date: domain.DayKey(day)}

	agg, ok := r.aggregates[key]
	if !ok {
		agg = domain.EmptyAggregate(userID, day)
		r.aggregates[key] = agg
	}
	agg.UpdatedAt = time.Now().UTC()
	return agg
}

func sortNewestFirst(entries []*domain.FoodLogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		return entries[i].ID > entries[j].ID
	})
}

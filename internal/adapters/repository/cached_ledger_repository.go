package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

var _ domain.LedgerRepository = (*CachedLedgerRepository)(nil)

// CachedLedgerRepository caches the logged-date list that every dashboard read
// needs for the streak. Entries are keyed by a per-user generation that every
// write bumps after it commits, so a list loaded before a write can only be
// stored under a generation nobody reads any more.
type CachedLedgerRepository struct {
	next   domain.LedgerRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewCachedLedgerRepository(next domain.LedgerRepository, cache *redis.Client, ttl time.Duration, logger *log.Logger) *CachedLedgerRepository {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CachedLedgerRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CachedLedgerRepository) generationKey(userID string) string {
	return fmt.Sprintf("ledger:dates-gen:%s", userID)
}

func (r *CachedLedgerRepository) cacheKey(userID string, gen int64) string {
	return fmt.Sprintf("ledger:dates:%d:%s", gen, userID)
}

// generation is 0 until the user's first write through the decorator.
func (r *CachedLedgerRepository) generation(ctx context.Context, userID string) (int64, error) {
	gen, err := r.cache.Get(ctx, r.generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// invalidate retires every list cached for the user. The generation key has
// no TTL: letting it lapse would reuse old generations.
func (r *CachedLedgerRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Incr(ctx, r.generationKey(userID)).Err(); err != nil {
		r.logger.Warn("cache invalidation failed", "user_id", userID, "err", err)
	}
}

func (r *CachedLedgerRepository) fill(ctx context.Context, key string, dates []string) {
	data, err := json.Marshal(dates)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("redis set error", "err", err)
	}
}

func (r *CachedLedgerRepository) ListLoggedDates(ctx context.Context, userID string) ([]string, error) {
	gen, err := r.generation(ctx, userID)
	if err != nil {
		r.logger.Warn("redis read error", "err", err)
		return r.next.ListLoggedDates(ctx, userID)
	}
	key := r.cacheKey(userID, gen)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var dates []string
		if err := json.Unmarshal([]byte(val), &dates); err == nil {
			return dates, nil
		}

		r.logger.Warn("corrupted cached dates, cleaning up key", "user_id", userID)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("redis read error", "err", err)
	}

	dates, err := r.next.ListLoggedDates(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.fill(ctx, key, dates)
	return dates, nil
}

func (r *CachedLedgerRepository) RecordWater(ctx context.Context, userID string, day time.Time, amount int) (*domain.DailyAggregate, error) {
	agg, err := r.next.RecordWater(ctx, userID, day, amount)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, userID)
	return agg, nil
}

func (r *CachedLedgerRepository) RecordCalories(ctx context.Context, userID string, day time.Time, amount int) (*domain.DailyAggregate, error) {
	agg, err := r.next.RecordCalories(ctx, userID, day, amount)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, userID)
	return agg, nil
}

func (r *CachedLedgerRepository) LogMeal(ctx context.Context, day time.Time, entry *domain.FoodLogEntry) (*domain.DailyAggregate, error) {
	agg, err := r.next.LogMeal(ctx, day, entry)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, entry.UserID)
	return agg, nil
}

func (r *CachedLedgerRepository) GetByDate(ctx context.Context, userID string, day time.Time) (*domain.DailyAggregate, error) {
	return r.next.GetByDate(ctx, userID, day)
}

func (r *CachedLedgerRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyAggregate, error) {
	return r.next.ListRange(ctx, userID, from, to)
}

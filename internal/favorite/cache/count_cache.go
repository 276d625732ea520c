// Package cache keeps per-property favorite counts in Redis in front of the
// favorite repository.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/pkg/logger"
)

// DefaultTTL is used when no TTL is configured
const DefaultTTL = 5 * time.Minute

// CountKey returns the Redis key holding the favorite count of a property
func CountKey(propertyID uint) string {
	return fmt.Sprintf("favorites:count:property:%d", propertyID)
}

// GenerationKey returns the Redis key bumped on every write to a property's
// favorites. Loads watch it so a count read before a write is never stored.
func GenerationKey(propertyID uint) string {
	return CountKey(propertyID) + ":gen"
}

// CountCachingRepository serves CountByPropertyID from Redis and drops cached
// counts on every write that can change them. Redis failures fall through to
// the wrapped repository.
type CountCachingRepository struct {
	domain.FavoriteRepository
	redis *redis.Client
	ttl   time.Duration
}

// NewCountCachingRepository wraps next with a Redis count cache
func NewCountCachingRepository(next domain.FavoriteRepository, client *redis.Client, ttl time.Duration) *CountCachingRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CountCachingRepository{
		FavoriteRepository: next,
		redis:              client,
		ttl:                ttl,
	}
}

// CountByPropertyID returns the cached count, loading it on a miss
func (r *CountCachingRepository) CountByPropertyID(ctx context.Context, propertyID uint) (int64, error) {
	key := CountKey(propertyID)

	cached, err := r.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		if count, convErr := strconv.ParseInt(cached, 10, 64); convErr == nil {
			logger.Debug(ctx).Str("cache_key", key).Msg("Cache hit")
			return count, nil
		}
		logger.Warn(ctx).Str("cache_key", key).Str("value", cached).Msg("Discarding malformed cached count")
	case errors.Is(err, redis.Nil):
		logger.Debug(ctx).Str("cache_key", key).Msg("Cache miss")
	default:
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to read cached count")
		return r.FavoriteRepository.CountByPropertyID(ctx, propertyID)
	}

	return r.load(ctx, propertyID)
}

// load counts from storage and caches the result unless a write to the
// property landed while the count was being read
func (r *CountCachingRepository) load(ctx context.Context, propertyID uint) (int64, error) {
	key := CountKey(propertyID)

	var (
		count  int64
		loaded bool
		dbErr  error
	)
	err := r.redis.Watch(ctx, func(tx *redis.Tx) error {
		count, dbErr = r.FavoriteRepository.CountByPropertyID(ctx, propertyID)
		if dbErr != nil {
			return dbErr
		}
		loaded = true

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, count, r.ttl)
			return nil
		})
		return err
	}, GenerationKey(propertyID))

	switch {
	case dbErr != nil:
		return 0, dbErr
	case !loaded:
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to watch cached count")
		return r.FavoriteRepository.CountByPropertyID(ctx, propertyID)
	case errors.Is(err, redis.TxFailedErr):
		logger.Debug(ctx).Str("cache_key", key).Msg("Favorites changed during load, count not cached")
	case err != nil:
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to cache count")
	}
	return count, nil
}

// Create inserts the favorite and invalidates its property's count
func (r *CountCachingRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	if err := r.FavoriteRepository.Create(ctx, favorite); err != nil {
		return err
	}
	r.invalidate(ctx, favorite.PropertyID)
	return nil
}

// Delete removes the favorite and invalidates its property's count
func (r *CountCachingRepository) Delete(ctx context.Context, favorite *domain.Favorite) error {
	if err := r.FavoriteRepository.Delete(ctx, favorite); err != nil {
		return err
	}
	r.invalidate(ctx, favorite.PropertyID)
	return nil
}

// DeleteByID removes a favorite by id and invalidates its property's count
func (r *CountCachingRepository) DeleteByID(ctx context.Context, id uint) error {
	favorite, err := r.FavoriteRepository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.FavoriteRepository.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, favorite.PropertyID)
	return nil
}

// DeleteByUserID removes the user's favorites and invalidates every property
// that lost one
func (r *CountCachingRepository) DeleteByUserID(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	deleted, err := r.FavoriteRepository.DeleteByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	propertyIDs := make([]uint, 0, len(deleted))
	for _, f := range deleted {
		propertyIDs = append(propertyIDs, f.PropertyID)
	}
	r.invalidate(ctx, propertyIDs...)
	return deleted, nil
}

// DeleteByPropertyID removes the property's favorites and invalidates its count
func (r *CountCachingRepository) DeleteByPropertyID(ctx context.Context, propertyID uint) (int64, error) {
	deleted, err := r.FavoriteRepository.DeleteByPropertyID(ctx, propertyID)
	if err != nil {
		return 0, err
	}
	r.invalidate(ctx, propertyID)
	return deleted, nil
}

// invalidate drops the cached counts and bumps their generations in one
// transaction, aborting any load that is watching them
func (r *CountCachingRepository) invalidate(ctx context.Context, propertyIDs ...uint) {
	if len(propertyIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(propertyIDs))
	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range propertyIDs {
			key := CountKey(id)
			keys = append(keys, key)
			pipe.Del(ctx, key)
			pipe.Incr(ctx, GenerationKey(id))
			pipe.Expire(ctx, GenerationKey(id), r.ttl)
		}
		return nil
	})
	if err != nil {
		logger.Warn(ctx).Err(err).Strs("cache_keys", keys).Msg("Failed to invalidate cached counts")
		return
	}
	logger.Debug(ctx).Int("count", len(keys)).Msg("Cache invalidated")
}

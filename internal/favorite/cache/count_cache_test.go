package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tair/realestate-favorites/internal/favorite/cache"
	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/internal/favorite/repository"
	"github.com/tair/realestate-favorites/internal/testutil"
)

type cacheFixture struct {
	db    *gorm.DB
	mr    *miniredis.Miniredis
	repo  *cache.CountCachingRepository
	user  *domain.User
	other *domain.User
	house *domain.Property
	flat  *domain.Property
}

func newCacheFixture(t *testing.T) *cacheFixture {
	db := testutil.NewDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return &cacheFixture{
		db:    db,
		mr:    mr,
		repo:  cache.NewCountCachingRepository(repository.NewGormFavoriteRepository(db), client, time.Minute),
		user:  testutil.SeedUser(t, db, "carol"),
		other: testutil.SeedUser(t, db, "dave"),
		house: testutil.SeedProperty(t, db, "House"),
		flat:  testutil.SeedProperty(t, db, "Flat"),
	}
}

func (f *cacheFixture) add(t *testing.T, user *domain.User, property *domain.Property) *domain.Favorite {
	t.Helper()
	now := time.Now()
	fav := &domain.Favorite{UserID: user.ID, PropertyID: property.ID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.repo.Create(context.Background(), fav))
	return fav
}

func TestCountIsReadThrough(t *testing.T) {
	f := newCacheFixture(t)
	ctx := context.Background()

	f.add(t, f.user, f.house)

	count, err := f.repo.CountByPropertyID(ctx, f.house.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	cached, err := f.mr.Get(cache.CountKey(f.house.ID))
	require.NoError(t, err)
	assert.Equal(t, "1", cached)
	assert.Equal(t, time.Minute, f.mr.TTL(cache.CountKey(f.house.ID)))

	// A row written behind the cache's back is not visible until invalidation.
	require.NoError(t, f.db.Create(&domain.Favorite{UserID: f.other.ID, PropertyID: f.house.ID, CreatedAt: time.Now(), UpdatedAt: time.Now()}).Error)

	count, err = f.repo.CountByPropertyID(ctx, f.house.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateInvalidates(t *testing.T) {
	f := newCacheFixture(t)
	ctx := context.Background()

	count, err := f.repo.CountByPropertyID(ctx, f.house.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	f.add(t, f.user, f.house)
	assert.False(t, f.mr.Exists(cache.CountKey(f.house.ID)))

	count, err = f.repo.CountByPropertyID(ctx, f.house.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeletesInvalidate(t *testing.T) {
	f := newCacheFixture(t)
	ctx := context.Background()

	warm := func() {
		for _, p := range []*domain.Property{f.house, f.flat} {
			_, err := f.repo.CountByPropertyID(ctx, p.ID)
			require.NoError(t, err)
		}
	}

	byID := f.add(t, f.user, f.house)
	byPair := f.add(t, f.other, f.house)
	f.add(t, f.user, f.flat)

	warm()
	require.NoError(t, f.repo.DeleteByID(ctx, byID.ID))
	assert.False(t, f.mr.Exists(cache.CountKey(f.house.ID)))
	assert.True(t, f.mr.Exists(cache.CountKey(f.flat.ID)))

	warm()
	require.NoError(t, f.repo.Delete(ctx, byPair))
	assert.False(t, f.mr.Exists(cache.CountKey(f.house.ID)))

	warm()
	removed, err := f.repo.DeleteByUserID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, removed, 1)
	assert.False(t, f.mr.Exists(cache.CountKey(f.flat.ID)))

	f.add(t, f.other, f.flat)
	warm()
	deleted, err := f.repo.DeleteByPropertyID(ctx, f.flat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.False(t, f.mr.Exists(cache.CountKey(f.flat.ID)))

	count, err := f.repo.CountByPropertyID(ctx, f.flat.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteByIDMissingKeepsCache(t *testing.T) {
	f := newCacheFixture(t)
	ctx := context.Background()

	_, err := f.repo.CountByPropertyID(ctx, f.house.ID)
	require.NoError(t, err)

	err = f.repo.DeleteByID(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, f.mr.Exists(cache.CountKey(f.house.ID)))
}

func TestRedisUnavailableFallsThrough(t *testing.T) {
	f := newCacheFixture(t)
	ctx := context.Background()

	f.add(t, f.user, f.house)
	f.mr.Close()

	count, err := f.repo.CountByPropertyID(ctx, f.house.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	f.add(t, f.other, f.house)
	count, err = f.repo.CountByPropertyID(ctx, f.house.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMalformedCachedValueIsReloaded(t *testing.T) {
	f := newCacheFixture(t)
	ctx := context.Background()

	f.add(t, f.user, f.house)
	require.NoError(t, f.mr.Set(cache.CountKey(f.house.ID), "not-a-number"))

	count, err := f.repo.CountByPropertyID(ctx, f.house.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// writeDuringCount runs onCount once, right after the wrapped count has been read
type writeDuringCount struct {
	domain.FavoriteRepository
	onCount func()
}

func (w *writeDuringCount) CountByPropertyID(ctx context.Context, propertyID uint) (int64, error) {
	count, err := w.FavoriteRepository.CountByPropertyID(ctx, propertyID)
	if fn := w.onCount; fn != nil {
		w.onCount = nil
		fn()
	}
	return count, err
}

func TestWriteDuringLoadIsNotCached(t *testing.T) {
	db := testutil.NewDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	ctx := context.Background()

	user := testutil.SeedUser(t, db, "erin")
	house := testutil.SeedProperty(t, db, "House")

	racing := &writeDuringCount{FavoriteRepository: repository.NewGormFavoriteRepository(db)}
	repo := cache.NewCountCachingRepository(racing, client, time.Minute)

	racing.onCount = func() {
		now := time.Now()
		require.NoError(t, repo.Create(ctx, &domain.Favorite{UserID: user.ID, PropertyID: house.ID, CreatedAt: now, UpdatedAt: now}))
	}

	count, err := repo.CountByPropertyID(ctx, house.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.False(t, mr.Exists(cache.CountKey(house.ID)))

	count, err = repo.CountByPropertyID(ctx, house.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	cached, err := mr.Get(cache.CountKey(house.ID))
	require.NoError(t, err)
	assert.Equal(t, "1", cached)
}

func TestDeleteByUserIDInvalidatesRemovedRows(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	ctx := context.Background()

	inner := &testutil.MockFavoriteRepository{}
	inner.On("DeleteByUserID", mock.Anything, uint(3)).Return([]domain.Favorite{
		{ID: 10, UserID: 3, PropertyID: 21},
		{ID: 11, UserID: 3, PropertyID: 22},
	}, nil)
	repo := cache.NewCountCachingRepository(inner, client, time.Minute)

	for _, id := range []uint{21, 22, 23} {
		require.NoError(t, mr.Set(cache.CountKey(id), "4"))
	}

	removed, err := repo.DeleteByUserID(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	assert.False(t, mr.Exists(cache.CountKey(21)))
	assert.False(t, mr.Exists(cache.CountKey(22)))
	assert.True(t, mr.Exists(cache.CountKey(23)))
	inner.AssertExpectations(t)
	inner.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
}

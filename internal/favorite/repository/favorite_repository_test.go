package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/internal/favorite/repository"
	"github.com/tair/realestate-favorites/internal/testutil"
)

type fixture struct {
	db    *gorm.DB
	repo  *repository.GormFavoriteRepository
	alice *domain.User
	bob   *domain.User
	loft  *domain.Property
	barn  *domain.Property
	villa *domain.Property
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	return &fixture{
		db:    db,
		repo:  repository.NewGormFavoriteRepository(db),
		alice: testutil.SeedUser(t, db, "alice"),
		bob:   testutil.SeedUser(t, db, "bob"),
		loft: testutil.SeedProperty(t, db, "Loft",
			domain.PropertyImage{ImageURL: "loft-1.jpg"},
			domain.PropertyImage{ImageURL: "loft-2.jpg", IsPrimary: true},
		),
		barn:  testutil.SeedProperty(t, db, "Barn", domain.PropertyImage{ImageURL: "barn.jpg"}),
		villa: testutil.SeedProperty(t, db, "Villa"),
	}
}

func (f *fixture) favorite(t *testing.T, user *domain.User, property *domain.Property, notes string, createdAt time.Time) *domain.Favorite {
	t.Helper()
	fav := &domain.Favorite{
		UserID:     user.ID,
		PropertyID: property.ID,
		Notes:      notes,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	require.NoError(t, f.repo.Create(context.Background(), fav))
	return fav
}

func TestCreateAndFindByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fav := f.favorite(t, f.alice, f.loft, "nice", time.Now())
	require.NotZero(t, fav.ID)

	found, err := f.repo.FindByID(ctx, fav.ID)
	require.NoError(t, err)
	assert.Equal(t, "nice", found.Notes)
	require.NotNil(t, found.User)
	assert.Equal(t, "alice", found.User.Username)
	require.NotNil(t, found.Property)
	require.Len(t, found.Property.Images, 2)
	assert.Equal(t, "loft-1.jpg", found.Property.Images[0].ImageURL)
	assert.Equal(t, "loft-2.jpg", *found.Property.PrimaryImageURL())
}

func TestCreateDuplicateIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.favorite(t, f.alice, f.loft, "", time.Now())

	err := f.repo.Create(ctx, &domain.Favorite{UserID: f.alice.ID, PropertyID: f.loft.ID, CreatedAt: time.Now(), UpdatedAt: time.Now()})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	count, err := f.repo.CountByPropertyID(ctx, f.loft.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFindByUserAndProperty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fav := f.favorite(t, f.alice, f.barn, "", time.Now())

	found, err := f.repo.FindByUserAndProperty(ctx, f.alice.ID, f.barn.ID)
	require.NoError(t, err)
	assert.Equal(t, fav.ID, found.ID)

	_, err = f.repo.FindByUserAndProperty(ctx, f.bob.ID, f.barn.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fav := f.favorite(t, f.alice, f.loft, "", time.Now())

	ok, err := f.repo.ExistsByID(ctx, fav.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.repo.ExistsByID(ctx, fav.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.repo.ExistsByUserAndProperty(ctx, f.alice.ID, f.loft.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.repo.ExistsByUserAndProperty(ctx, f.bob.ID, f.loft.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindByUserIDNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	f.favorite(t, f.alice, f.loft, "first", base)
	f.favorite(t, f.alice, f.barn, "second", base.Add(time.Minute))
	f.favorite(t, f.bob, f.villa, "other user", base)

	favorites, err := f.repo.FindByUserID(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 2)
	assert.Equal(t, "second", favorites[0].Notes)
	assert.Equal(t, "first", favorites[1].Notes)

	favorites, err = f.repo.FindByUserID(ctx, 4242)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestFindPageByUserID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	f.favorite(t, f.alice, f.loft, "b", base)
	f.favorite(t, f.alice, f.barn, "c", base.Add(time.Minute))
	f.favorite(t, f.alice, f.villa, "a", base.Add(2*time.Minute))

	t.Run("createdAt desc first page", func(t *testing.T) {
		favorites, total, err := f.repo.FindPageByUserID(ctx, f.alice.ID, domain.NewPageRequest(0, 2, "createdAt", "DESC"))
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, favorites, 2)
		assert.Equal(t, "a", favorites[0].Notes)
		assert.Equal(t, "c", favorites[1].Notes)
		assert.NotNil(t, favorites[0].Property)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		favorites, _, err := f.repo.FindPageByUserID(ctx, f.alice.ID, domain.NewPageRequest(1, 2, "createdAt", "DESC"))
		require.NoError(t, err)
		require.Len(t, favorites, 1)
		assert.Equal(t, "b", favorites[0].Notes)
	})

	t.Run("notes ascending", func(t *testing.T) {
		favorites, _, err := f.repo.FindPageByUserID(ctx, f.alice.ID, domain.NewPageRequest(0, 10, "notes", "asc"))
		require.NoError(t, err)
		require.Len(t, favorites, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{favorites[0].Notes, favorites[1].Notes, favorites[2].Notes})
	})

	t.Run("unknown sort field", func(t *testing.T) {
		_, _, err := f.repo.FindPageByUserID(ctx, f.alice.ID, domain.NewPageRequest(0, 10, "price; DROP TABLE favorites", "asc"))
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestFindPropertiesByUserID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	f.favorite(t, f.alice, f.barn, "", base)
	f.favorite(t, f.alice, f.loft, "", base.Add(time.Minute))

	properties, err := f.repo.FindPropertiesByUserID(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, properties, 2)
	assert.Equal(t, "Loft", properties[0].Title)
	assert.Len(t, properties[0].Images, 2)
	assert.Equal(t, "Barn", properties[1].Title)

	properties, err = f.repo.FindPropertiesByUserID(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, properties)
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := time.Now().Add(-time.Hour).Truncate(time.Second)

	fav := f.favorite(t, f.alice, f.loft, "old", created)
	fav.Notes = ""
	fav.UpdatedAt = time.Now()
	require.NoError(t, f.repo.Update(ctx, fav))

	found, err := f.repo.FindByID(ctx, fav.ID)
	require.NoError(t, err)
	assert.Equal(t, "", found.Notes)
	assert.True(t, found.CreatedAt.Equal(created))
	assert.True(t, found.UpdatedAt.After(created))

	err = f.repo.Update(ctx, &domain.Favorite{ID: 777})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()

	a1 := f.favorite(t, f.alice, f.loft, "", now)
	f.favorite(t, f.alice, f.barn, "", now)
	f.favorite(t, f.bob, f.loft, "", now)
	f.favorite(t, f.bob, f.villa, "", now)

	require.NoError(t, f.repo.Delete(ctx, a1))
	assert.ErrorIs(t, f.repo.DeleteByID(ctx, a1.ID), domain.ErrNotFound)

	deleted, err := f.repo.DeleteByPropertyID(ctx, f.loft.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	removed, err := f.repo.DeleteByUserID(ctx, f.bob.ID)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, f.bob.ID, removed[0].UserID)
	assert.Equal(t, f.villa.ID, removed[0].PropertyID)

	removed, err = f.repo.DeleteByUserID(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, removed)

	remaining, err := f.repo.FindByUserID(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, f.barn.ID, remaining[0].PropertyID)
}

func TestUserAndPropertyLookups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	users := repository.NewTracingUserRepository(repository.NewGormUserRepository(f.db))
	properties := repository.NewTracingPropertyRepository(repository.NewGormPropertyRepository(f.db))

	user, err := users.FindByID(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = users.FindByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "User not found with id: 999")

	property, err := properties.FindByID(ctx, f.loft.ID)
	require.NoError(t, err)
	assert.Len(t, property.Images, 2)

	_, err = properties.FindByID(ctx, 999)
	assert.EqualError(t, err, "Property not found with id: 999")
}

package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/internal/favorite/repository"
	"github.com/tair/realestate-favorites/internal/favorite/usecase/command"
	"github.com/tair/realestate-favorites/internal/favorite/usecase/query"
	"github.com/tair/realestate-favorites/internal/testutil"
)

func ptr(s string) *string { return &s }

type suite struct {
	db        *gorm.DB
	favorites *repository.GormFavoriteRepository
	events    *testutil.MockEventPublisher

	add      *command.AddFavoriteHandler
	remove   *command.RemoveFavoriteHandler
	removeID *command.RemoveFavoriteByIDHandler
	toggle   *command.ToggleFavoriteHandler
	notes    *command.UpdateNotesHandler
	byUser   *command.DeleteUserFavoritesHandler
	byProp   *command.DeletePropertyFavoritesHandler

	user     *domain.User
	property *domain.Property
}

func newSuite(t *testing.T) *suite {
	db := testutil.NewDB(t)
	favorites := repository.NewGormFavoriteRepository(db)
	users := repository.NewGormUserRepository(db)
	properties := repository.NewGormPropertyRepository(db)

	events := &testutil.MockEventPublisher{}
	events.On("PublishFavoriteAdded", mock.Anything, mock.Anything).Return(nil).Maybe()
	events.On("PublishFavoriteRemoved", mock.Anything, mock.Anything).Return(nil).Maybe()
	events.On("PublishFavoriteUpdated", mock.Anything, mock.Anything).Return(nil).Maybe()

	add := command.NewAddFavoriteHandler(favorites, users, properties, events)
	return &suite{
		db:        db,
		favorites: favorites,
		events:    events,
		add:       add,
		remove:    command.NewRemoveFavoriteHandler(favorites, events),
		removeID:  command.NewRemoveFavoriteByIDHandler(favorites, events),
		toggle:    command.NewToggleFavoriteHandler(favorites, add, events),
		notes:     command.NewUpdateNotesHandler(favorites, events),
		byUser:    command.NewDeleteUserFavoritesHandler(favorites),
		byProp:    command.NewDeletePropertyFavoritesHandler(favorites),
		user:      testutil.SeedUser(t, db, "erin"),
		property: testutil.SeedProperty(t, db, "Bungalow",
			domain.PropertyImage{ImageURL: "front.jpg"},
			domain.PropertyImage{ImageURL: "garden.jpg", IsPrimary: true},
		),
	}
}

func (s *suite) rows(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(&domain.Favorite{}).Count(&n).Error)
	return n
}

func TestAddFavorite(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	favorite, err := s.add.Handle(ctx, command.AddFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID, Notes: ptr("  close to school  ")})
	require.NoError(t, err)
	assert.NotZero(t, favorite.ID)
	assert.Equal(t, "close to school", favorite.Notes)
	assert.False(t, favorite.CreatedAt.IsZero())
	require.NotNil(t, favorite.Property)

	summary := domain.ToFavoriteResponse(favorite)
	require.NotNil(t, summary.Property.ImageURL)
	assert.Equal(t, "garden.jpg", *summary.Property.ImageURL)

	exists, err := query.NewIsFavoritedHandler(s.favorites).Handle(ctx, query.IsFavoritedQuery{UserID: s.user.ID, PropertyID: s.property.ID})
	require.NoError(t, err)
	assert.True(t, exists)

	s.events.AssertCalled(t, "PublishFavoriteAdded", mock.Anything, favorite)
}

func TestAddFavoriteWithoutNotes(t *testing.T) {
	s := newSuite(t)

	favorite, err := s.add.Handle(context.Background(), command.AddFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID})
	require.NoError(t, err)
	assert.Equal(t, "", favorite.Notes)
}

func TestAddFavoriteMissingReferences(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	_, err := s.add.Handle(ctx, command.AddFavoriteCommand{UserID: 99, PropertyID: s.property.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "User not found with id: 99")

	_, err = s.add.Handle(ctx, command.AddFavoriteCommand{UserID: s.user.ID, PropertyID: 98})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Property not found with id: 98")

	_, err = s.add.Handle(ctx, command.AddFavoriteCommand{UserID: 0, PropertyID: s.property.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	assert.Zero(t, s.rows(t))
	s.events.AssertNotCalled(t, "PublishFavoriteAdded", mock.Anything, mock.Anything)
}

func TestAddFavoriteTwiceIsConflict(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	cmd := command.AddFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID, Notes: ptr("first")}

	first, err := s.add.Handle(ctx, cmd)
	require.NoError(t, err)

	_, err = s.add.Handle(ctx, command.AddFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID, Notes: ptr("second")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Property is already in favorites for this user")

	assert.Equal(t, int64(1), s.rows(t))
	stored, err := s.favorites.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", stored.Notes)
}

func TestAddFavoriteStorageDuplicateIsConflict(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	// The pre-check sees nothing, as when a concurrent insert lands in between.
	favorites := &testutil.MockFavoriteRepository{}
	favorites.On("ExistsByUserAndProperty", mock.Anything, s.user.ID, s.property.ID).Return(false, nil)
	favorites.On("Create", mock.Anything, mock.Anything).
		Return(&domain.ConflictError{UserID: s.user.ID, PropertyID: s.property.ID})

	add := command.NewAddFavoriteHandler(favorites,
		repository.NewGormUserRepository(s.db),
		repository.NewGormPropertyRepository(s.db),
		s.events,
	)

	_, err := add.Handle(ctx, command.AddFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)
	favorites.AssertExpectations(t)
	s.events.AssertNotCalled(t, "PublishFavoriteAdded", mock.Anything, mock.Anything)
}

func TestAddFavoriteStorageFailureIsWrapped(t *testing.T) {
	s := newSuite(t)

	favorites := &testutil.MockFavoriteRepository{}
	favorites.On("ExistsByUserAndProperty", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	favorites.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	add := command.NewAddFavoriteHandler(favorites,
		repository.NewGormUserRepository(s.db),
		repository.NewGormPropertyRepository(s.db),
		nil,
	)

	_, err := add.Handle(context.Background(), command.AddFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "failed to create favorite")
}

func TestPublishFailureDoesNotFailCommand(t *testing.T) {
	s := newSuite(t)

	events := &testutil.MockEventPublisher{}
	events.On("PublishFavoriteAdded", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	add := command.NewAddFavoriteHandler(s.favorites,
		repository.NewGormUserRepository(s.db),
		repository.NewGormPropertyRepository(s.db),
		events,
	)

	_, err := add.Handle(context.Background(), command.AddFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.rows(t))
	events.AssertExpectations(t)
}

func TestRemoveFavorite(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	err := s.remove.Handle(ctx, command.RemoveFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	favorite, err := s.add.Handle(ctx, command.AddFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID})
	require.NoError(t, err)

	require.NoError(t, s.remove.Handle(ctx, command.RemoveFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID}))
	assert.Zero(t, s.rows(t))
	s.events.AssertCalled(t, "PublishFavoriteRemoved", mock.Anything, mock.MatchedBy(func(f *domain.Favorite) bool {
		return f.ID == favorite.ID
	}))
}

func TestRemoveFavoriteByID(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	favorite, err := s.add.Handle(ctx, command.AddFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID})
	require.NoError(t, err)

	err = s.removeID.Handle(ctx, command.RemoveFavoriteByIDCommand{ID: favorite.ID + 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(1), s.rows(t))

	require.NoError(t, s.removeID.Handle(ctx, command.RemoveFavoriteByIDCommand{ID: favorite.ID}))
	assert.Zero(t, s.rows(t))
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	cmd := command.ToggleFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID}

	result, err := s.toggle.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.Added)
	require.NotNil(t, result.Favorite)
	assert.Equal(t, "", result.Favorite.Notes)
	firstID := result.Favorite.ID

	result, err = s.toggle.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, result.Added)
	assert.Nil(t, result.Favorite)
	assert.Zero(t, s.rows(t))

	result, err = s.toggle.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.Added)
	assert.NotEqual(t, firstID, result.Favorite.ID)
}

func TestToggleMissingReference(t *testing.T) {
	s := newSuite(t)

	_, err := s.toggle.Handle(context.Background(), command.ToggleFavoriteCommand{UserID: s.user.ID, PropertyID: 404})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, s.rows(t))
}

func TestUpdateNotes(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	favorite, err := s.add.Handle(ctx, command.AddFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID, Notes: ptr("draft")})
	require.NoError(t, err)

	updated, err := s.notes.Handle(ctx, command.UpdateNotesCommand{ID: favorite.ID, Notes: ptr("  padded  ")})
	require.NoError(t, err)
	assert.Equal(t, "padded", updated.Notes)
	assert.False(t, updated.UpdatedAt.Before(favorite.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(favorite.CreatedAt))
	require.NotNil(t, updated.Property)

	updated, err = s.notes.Handle(ctx, command.UpdateNotesCommand{ID: favorite.ID, Notes: nil})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Notes)

	stored, err := s.favorites.FindByID(ctx, favorite.ID)
	require.NoError(t, err)
	assert.Equal(t, "", stored.Notes)

	_, err = s.notes.Handle(ctx, command.UpdateNotesCommand{ID: favorite.ID + 50, Notes: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s.events.AssertNumberOfCalls(t, "PublishFavoriteUpdated", 2)
}

func TestBulkDeletes(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	other := testutil.SeedUser(t, s.db, "frank")
	second := testutil.SeedProperty(t, s.db, "Cabin")

	for _, c := range []command.AddFavoriteCommand{
		{UserID: s.user.ID, PropertyID: s.property.ID},
		{UserID: s.user.ID, PropertyID: second.ID},
		{UserID: other.ID, PropertyID: s.property.ID},
	} {
		_, err := s.add.Handle(ctx, c)
		require.NoError(t, err)
	}

	deleted, err := s.byUser.Handle(ctx, command.DeleteUserFavoritesCommand{UserID: s.user.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	deleted, err = s.byUser.Handle(ctx, command.DeleteUserFavoritesCommand{UserID: s.user.ID})
	require.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = s.byProp.Handle(ctx, command.DeletePropertyFavoritesCommand{PropertyID: s.property.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = s.byProp.Handle(ctx, command.DeletePropertyFavoritesCommand{PropertyID: 12345})
	require.NoError(t, err)
	assert.Zero(t, deleted)

	assert.Zero(t, s.rows(t))
}

func TestAddCountToggleScenario(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	count := query.NewGetFavoriteCountHandler(s.favorites)

	favorite, err := s.add.Handle(ctx, command.AddFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID, Notes: ptr("nice")})
	require.NoError(t, err)
	assert.Equal(t, "nice", favorite.Notes)

	n, err := count.Handle(ctx, query.GetFavoriteCountQuery{PropertyID: s.property.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	result, err := s.toggle.Handle(ctx, command.ToggleFavoriteCommand{UserID: s.user.ID, PropertyID: s.property.ID})
	require.NoError(t, err)
	assert.False(t, result.Added)

	n, err = count.Handle(ctx, query.GetFavoriteCountQuery{PropertyID: s.property.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
}

package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/pkg/logger"
)

// AddFavoriteCommand represents the command to favorite a property
type AddFavoriteCommand struct {
	UserID     uint
	PropertyID uint
	Notes      *string
}

// AddFavoriteHandler handles add favorite command
type AddFavoriteHandler struct {
	favorites  domain.FavoriteRepository
	users      domain.UserRepository
	properties domain.PropertyRepository
	events     EventPublisher
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(
	favorites domain.FavoriteRepository,
	users domain.UserRepository,
	properties domain.PropertyRepository,
	events EventPublisher,
) *AddFavoriteHandler {
	return &AddFavoriteHandler{
		favorites:  favorites,
		users:      users,
		properties: properties,
		events:     events,
	}
}

// Handle executes the add favorite command. The returned favorite carries the
// resolved user and property.
func (h *AddFavoriteHandler) Handle(ctx context.Context, cmd AddFavoriteCommand) (*domain.Favorite, error) {
	if cmd.UserID == 0 {
		return nil, domain.InvalidArgumentf("invalid userId")
	}
	if cmd.PropertyID == 0 {
		return nil, domain.InvalidArgumentf("invalid propertyId")
	}

	user, err := h.users.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, wrapUnlessNotFound(err, "failed to find user")
	}

	property, err := h.properties.FindByID(ctx, cmd.PropertyID)
	if err != nil {
		return nil, wrapUnlessNotFound(err, "failed to find property")
	}

	exists, err := h.favorites.ExistsByUserAndProperty(ctx, cmd.UserID, cmd.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}
	if exists {
		return nil, &domain.ConflictError{UserID: cmd.UserID, PropertyID: cmd.PropertyID}
	}

	now := time.Now()
	favorite := &domain.Favorite{
		UserID:     cmd.UserID,
		PropertyID: cmd.PropertyID,
		Notes:      domain.NormalizeNotes(cmd.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// The unique index still rejects a concurrent insert that passed the check above
	if err := h.favorites.Create(ctx, favorite); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	favorite.User = user
	favorite.Property = property

	logger.Info(ctx).
		Uint("favorite_id", favorite.ID).
		Uint("user_id", favorite.UserID).
		Uint("property_id", favorite.PropertyID).
		Msg("Favorite added")

	publishEvent(ctx, h.events, favorite, favoriteAdded)
	return favorite, nil
}

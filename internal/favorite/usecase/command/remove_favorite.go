package command

import (
	"context"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/pkg/logger"
)

// RemoveFavoriteCommand represents the command to unfavorite a property
type RemoveFavoriteCommand struct {
	UserID     uint
	PropertyID uint
}

// RemoveFavoriteHandler handles remove favorite command
type RemoveFavoriteHandler struct {
	favorites domain.FavoriteRepository
	events    EventPublisher
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(favorites domain.FavoriteRepository, events EventPublisher) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{favorites: favorites, events: events}
}

// Handle executes the remove favorite command
func (h *RemoveFavoriteHandler) Handle(ctx context.Context, cmd RemoveFavoriteCommand) error {
	favorite, err := h.favorites.FindByUserAndProperty(ctx, cmd.UserID, cmd.PropertyID)
	if err != nil {
		return wrapUnlessNotFound(err, "failed to find favorite")
	}
	return removeFavorite(ctx, h.favorites, h.events, favorite)
}

// RemoveFavoriteByIDCommand represents the command to delete a favorite by id
type RemoveFavoriteByIDCommand struct {
	ID uint
}

// RemoveFavoriteByIDHandler handles remove favorite by id command
type RemoveFavoriteByIDHandler struct {
	favorites domain.FavoriteRepository
	events    EventPublisher
}

// NewRemoveFavoriteByIDHandler creates a new remove favorite by id handler
func NewRemoveFavoriteByIDHandler(favorites domain.FavoriteRepository, events EventPublisher) *RemoveFavoriteByIDHandler {
	return &RemoveFavoriteByIDHandler{favorites: favorites, events: events}
}

// Handle executes the remove favorite by id command
func (h *RemoveFavoriteByIDHandler) Handle(ctx context.Context, cmd RemoveFavoriteByIDCommand) error {
	favorite, err := h.favorites.FindByID(ctx, cmd.ID)
	if err != nil {
		return wrapUnlessNotFound(err, "failed to find favorite")
	}
	return removeFavorite(ctx, h.favorites, h.events, favorite)
}

func removeFavorite(ctx context.Context, favorites domain.FavoriteRepository, events EventPublisher, favorite *domain.Favorite) error {
	if err := favorites.Delete(ctx, favorite); err != nil {
		return wrapUnlessNotFound(err, "failed to delete favorite")
	}

	logger.Info(ctx).
		Uint("favorite_id", favorite.ID).
		Uint("user_id", favorite.UserID).
		Uint("property_id", favorite.PropertyID).
		Msg("Favorite removed")

	publishEvent(ctx, events, favorite, favoriteRemoved)
	return nil
}

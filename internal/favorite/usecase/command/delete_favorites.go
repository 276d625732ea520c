package command

import (
	"context"
	"fmt"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/pkg/logger"
)

// DeleteUserFavoritesCommand removes every favorite owned by a deleted user
type DeleteUserFavoritesCommand struct {
	UserID uint
}

// DeleteUserFavoritesHandler handles delete user favorites command
type DeleteUserFavoritesHandler struct {
	favorites domain.FavoriteRepository
}

// NewDeleteUserFavoritesHandler creates a new delete user favorites handler
func NewDeleteUserFavoritesHandler(favorites domain.FavoriteRepository) *DeleteUserFavoritesHandler {
	return &DeleteUserFavoritesHandler{favorites: favorites}
}

// Handle executes the command and returns how many favorites were removed.
// A user without favorites is not an error.
func (h *DeleteUserFavoritesHandler) Handle(ctx context.Context, cmd DeleteUserFavoritesCommand) (int64, error) {
	removed, err := h.favorites.DeleteByUserID(ctx, cmd.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete favorites of user %d: %w", cmd.UserID, err)
	}
	deleted := int64(len(removed))

	logger.Info(ctx).
		Uint("user_id", cmd.UserID).
		Int64("deleted", deleted).
		Msg("User favorites deleted")
	return deleted, nil
}

// DeletePropertyFavoritesCommand removes every favorite of a deleted property
type DeletePropertyFavoritesCommand struct {
	PropertyID uint
}

// DeletePropertyFavoritesHandler handles delete property favorites command
type DeletePropertyFavoritesHandler struct {
	favorites domain.FavoriteRepository
}

// NewDeletePropertyFavoritesHandler creates a new delete property favorites handler
func NewDeletePropertyFavoritesHandler(favorites domain.FavoriteRepository) *DeletePropertyFavoritesHandler {
	return &DeletePropertyFavoritesHandler{favorites: favorites}
}

// Handle executes the command and returns how many favorites were removed.
// A property without favorites is not an error.
func (h *DeletePropertyFavoritesHandler) Handle(ctx context.Context, cmd DeletePropertyFavoritesCommand) (int64, error) {
	deleted, err := h.favorites.DeleteByPropertyID(ctx, cmd.PropertyID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete favorites of property %d: %w", cmd.PropertyID, err)
	}

	logger.Info(ctx).
		Uint("property_id", cmd.PropertyID).
		Int64("deleted", deleted).
		Msg("Property favorites deleted")
	return deleted, nil
}

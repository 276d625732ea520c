package command

import (
	"context"
	"errors"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
)

// ToggleFavoriteCommand represents the command to flip a favorite on or off
type ToggleFavoriteCommand struct {
	UserID     uint
	PropertyID uint
}

// ToggleResult reports which way the toggle went. Favorite is nil when removed.
type ToggleResult struct {
	Added    bool
	Favorite *domain.Favorite
}

// ToggleFavoriteHandler handles toggle favorite command.
// The existence check and the following write are not serialized; concurrent
// toggles of one pair end in whichever write commits last.
type ToggleFavoriteHandler struct {
	favorites domain.FavoriteRepository
	add       *AddFavoriteHandler
	events    EventPublisher
}

// NewToggleFavoriteHandler creates a new toggle favorite handler
func NewToggleFavoriteHandler(favorites domain.FavoriteRepository, add *AddFavoriteHandler, events EventPublisher) *ToggleFavoriteHandler {
	return &ToggleFavoriteHandler{favorites: favorites, add: add, events: events}
}

// Handle executes the toggle favorite command
func (h *ToggleFavoriteHandler) Handle(ctx context.Context, cmd ToggleFavoriteCommand) (*ToggleResult, error) {
	existing, err := h.favorites.FindByUserAndProperty(ctx, cmd.UserID, cmd.PropertyID)
	switch {
	case err == nil:
		if err := removeFavorite(ctx, h.favorites, h.events, existing); err != nil {
			return nil, err
		}
		return &ToggleResult{Added: false}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, wrapUnlessNotFound(err, "failed to find favorite")
	}

	favorite, err := h.add.Handle(ctx, AddFavoriteCommand{UserID: cmd.UserID, PropertyID: cmd.PropertyID})
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Added: true, Favorite: favorite}, nil
}

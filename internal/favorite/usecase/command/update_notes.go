package command

import (
	"context"
	"time"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/pkg/logger"
)

// UpdateNotesCommand represents the command to replace a favorite's notes
type UpdateNotesCommand struct {
	ID    uint
	Notes *string
}

// UpdateNotesHandler handles update notes command
type UpdateNotesHandler struct {
	favorites domain.FavoriteRepository
	events    EventPublisher
}

// NewUpdateNotesHandler creates a new update notes handler
func NewUpdateNotesHandler(favorites domain.FavoriteRepository, events EventPublisher) *UpdateNotesHandler {
	return &UpdateNotesHandler{favorites: favorites, events: events}
}

// Handle executes the update notes command
func (h *UpdateNotesHandler) Handle(ctx context.Context, cmd UpdateNotesCommand) (*domain.Favorite, error) {
	favorite, err := h.favorites.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, wrapUnlessNotFound(err, "failed to find favorite")
	}

	favorite.UpdateNotes(cmd.Notes, time.Now())

	if err := h.favorites.Update(ctx, favorite); err != nil {
		return nil, wrapUnlessNotFound(err, "failed to update favorite")
	}

	logger.Info(ctx).
		Uint("favorite_id", favorite.ID).
		Bool("has_notes", favorite.HasNotes()).
		Msg("Favorite notes updated")

	publishEvent(ctx, h.events, favorite, favoriteUpdated)
	return favorite, nil
}

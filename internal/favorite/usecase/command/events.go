package command

import (
	"context"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/pkg/logger"
)

// EventPublisher announces favorite changes to other services
type EventPublisher interface {
	PublishFavoriteAdded(ctx context.Context, favorite *domain.Favorite) error
	PublishFavoriteRemoved(ctx context.Context, favorite *domain.Favorite) error
	PublishFavoriteUpdated(ctx context.Context, favorite *domain.Favorite) error
}

// publishEvent runs publish when a publisher is configured. Failures are logged
// and never fail the command that already committed.
func publishEvent(ctx context.Context, events EventPublisher, favorite *domain.Favorite, publish func(EventPublisher, context.Context, *domain.Favorite) error) {
	if events == nil {
		return
	}
	if err := publish(events, ctx, favorite); err != nil {
		logger.Warn(ctx).
			Err(err).
			Uint("favorite_id", favorite.ID).
			Msg("Failed to publish favorite event")
	}
}

var (
	favoriteAdded   = EventPublisher.PublishFavoriteAdded
	favoriteRemoved = EventPublisher.PublishFavoriteRemoved
	favoriteUpdated = EventPublisher.PublishFavoriteUpdated
)

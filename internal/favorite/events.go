package favorite

import (
	"context"

	"github.com/tair/realestate-favorites/internal/favorite/usecase/command"
	"github.com/tair/realestate-favorites/kafka"
)

// DeletionEventHandlers maps upstream deletion events to the bulk deletes
func DeletionEventHandlers(d *DeletionHandlers) map[string]kafka.EventHandler {
	return map[string]kafka.EventHandler{
		kafka.EventTypeUserDeleted: func(ctx context.Context, event kafka.EntityDeletedEvent) error {
			_, err := d.UserFavorites.Handle(ctx, command.DeleteUserFavoritesCommand{UserID: event.EntityID})
			return err
		},
		kafka.EventTypePropertyDeleted: func(ctx context.Context, event kafka.EntityDeletedEvent) error {
			_, err := d.PropertyFavorites.Handle(ctx, command.DeletePropertyFavoritesCommand{PropertyID: event.EntityID})
			return err
		},
	}
}

// RegisterDeletionHandlers subscribes consumer to user and property deletions
func RegisterDeletionHandlers(consumer *kafka.Consumer, d *DeletionHandlers) {
	for eventType, handler := range DeletionEventHandlers(d) {
		consumer.RegisterHandler(eventType, handler)
	}
}

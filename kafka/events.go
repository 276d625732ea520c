package kafka

import "time"

// FavoriteEvent is published after a favorite is added, removed or updated
type FavoriteEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	FavoriteID uint      `json:"favorite_id"`
	UserID     uint      `json:"user_id"`
	PropertyID uint      `json:"property_id"`
	Notes      string    `json:"notes"`
	Timestamp  time.Time `json:"timestamp"`
}

// EntityDeletedEvent announces that a user or property was deleted upstream
type EntityDeletedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	EntityID  uint      `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeFavoriteAdded   = "favorite.added"
	EventTypeFavoriteRemoved = "favorite.removed"
	EventTypeFavoriteUpdated = "favorite.updated"
	EventTypeUserDeleted     = "user.deleted"
	EventTypePropertyDeleted = "property.deleted"
)

// Kafka topics
const (
	TopicFavoriteEvents  = "favorite-events"
	TopicUserDeleted     = "user-deleted"
	TopicPropertyDeleted = "property-deleted"
)

// DeletionTopics are the topics the favorite service consumes
var DeletionTopics = []string{TopicUserDeleted, TopicPropertyDeleted}

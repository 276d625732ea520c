package query

import (
	"context"
	"fmt"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
)

// IsFavoritedQuery represents the query to check whether a user favorited a property
type IsFavoritedQuery struct {
	UserID     uint
	PropertyID uint
}

// IsFavoritedHandler handles is favorited query
type IsFavoritedHandler struct {
	repo domain.FavoriteRepository
}

// NewIsFavoritedHandler creates a new is favorited handler
func NewIsFavoritedHandler(repo domain.FavoriteRepository) *IsFavoritedHandler {
	return &IsFavoritedHandler{repo: repo}
}

// Handle executes the is favorited query
func (h *IsFavoritedHandler) Handle(ctx context.Context, query IsFavoritedQuery) (bool, error) {
	exists, err := h.repo.ExistsByUserAndProperty(ctx, query.UserID, query.PropertyID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

// GetFavoriteCountQuery represents the query to count a property's favorites
type GetFavoriteCountQuery struct {
	PropertyID uint
}

// GetFavoriteCountHandler handles get favorite count query.
// Unknown properties count 0; no existence check is made.
type GetFavoriteCountHandler struct {
	repo domain.FavoriteRepository
}

// NewGetFavoriteCountHandler creates a new get favorite count handler
func NewGetFavoriteCountHandler(repo domain.FavoriteRepository) *GetFavoriteCountHandler {
	return &GetFavoriteCountHandler{repo: repo}
}

// Handle executes the get favorite count query
func (h *GetFavoriteCountHandler) Handle(ctx context.Context, query GetFavoriteCountQuery) (int64, error) {
	count, err := h.repo.CountByPropertyID(ctx, query.PropertyID)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}

package query

import (
	"context"
	"fmt"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
)

// GetUserFavoritesQuery represents the query to list a user's favorites
type GetUserFavoritesQuery struct {
	UserID uint
}

// GetUserFavoritesHandler handles get user favorites query.
// Unknown users yield an empty list, not an error.
type GetUserFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewGetUserFavoritesHandler creates a new get user favorites handler
func NewGetUserFavoritesHandler(repo domain.FavoriteRepository) *GetUserFavoritesHandler {
	return &GetUserFavoritesHandler{repo: repo}
}

// Handle returns the user's favorites, newest first
func (h *GetUserFavoritesHandler) Handle(ctx context.Context, query GetUserFavoritesQuery) ([]domain.Favorite, error) {
	favorites, err := h.repo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if favorites == nil {
		favorites = []domain.Favorite{}
	}
	return favorites, nil
}

// HandleSummaries returns the user's favorites as summaries, newest first
func (h *GetUserFavoritesHandler) HandleSummaries(ctx context.Context, query GetUserFavoritesQuery) ([]domain.FavoriteSummary, error) {
	favorites, err := h.Handle(ctx, query)
	if err != nil {
		return nil, err
	}
	return domain.ToFavoriteResponses(favorites), nil
}

// GetUserFavoritePropertiesQuery represents the query to list the properties a user favorited
type GetUserFavoritePropertiesQuery struct {
	UserID uint
}

// GetUserFavoritePropertiesHandler handles get user favorite properties query
type GetUserFavoritePropertiesHandler struct {
	repo domain.FavoriteRepository
}

// NewGetUserFavoritePropertiesHandler creates a new get user favorite properties handler
func NewGetUserFavoritePropertiesHandler(repo domain.FavoriteRepository) *GetUserFavoritePropertiesHandler {
	return &GetUserFavoritePropertiesHandler{repo: repo}
}

// Handle returns the favorited properties, most recently favorited first
func (h *GetUserFavoritePropertiesHandler) Handle(ctx context.Context, query GetUserFavoritePropertiesQuery) ([]domain.Property, error) {
	properties, err := h.repo.FindPropertiesByUserID(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite properties: %w", err)
	}
	if properties == nil {
		properties = []domain.Property{}
	}
	return properties, nil
}

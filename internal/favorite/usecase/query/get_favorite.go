package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
)

// GetFavoriteQuery represents the query to get a favorite by ID
type GetFavoriteQuery struct {
	ID uint
}

// GetFavoriteHandler handles get favorite query
type GetFavoriteHandler struct {
	repo domain.FavoriteRepository
}

// NewGetFavoriteHandler creates a new get favorite handler
func NewGetFavoriteHandler(repo domain.FavoriteRepository) *GetFavoriteHandler {
	return &GetFavoriteHandler{repo: repo}
}

// Handle executes the get favorite query
func (h *GetFavoriteHandler) Handle(ctx context.Context, query GetFavoriteQuery) (*domain.Favorite, error) {
	favorite, err := h.repo.FindByID(ctx, query.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}
	return favorite, nil
}

// GetPropertyFavoritesQuery represents the query to list who favorited a property
type GetPropertyFavoritesQuery struct {
	PropertyID uint
}

// GetPropertyFavoritesHandler handles get property favorites query
type GetPropertyFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewGetPropertyFavoritesHandler creates a new get property favorites handler
func NewGetPropertyFavoritesHandler(repo domain.FavoriteRepository) *GetPropertyFavoritesHandler {
	return &GetPropertyFavoritesHandler{repo: repo}
}

// Handle executes the get property favorites query
func (h *GetPropertyFavoritesHandler) Handle(ctx context.Context, query GetPropertyFavoritesQuery) ([]domain.Favorite, error) {
	favorites, err := h.repo.FindByPropertyID(ctx, query.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list property favorites: %w", err)
	}
	if favorites == nil {
		favorites = []domain.Favorite{}
	}
	return favorites, nil
}

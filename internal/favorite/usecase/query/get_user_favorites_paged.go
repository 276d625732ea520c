package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
)

// GetUserFavoritesPagedQuery represents the query for one page of a user's favorites.
// Page and Size are clamped; SortBy is validated by the repository.
type GetUserFavoritesPagedQuery struct {
	UserID    uint
	Page      int
	Size      int
	SortBy    string
	Direction string
}

// GetUserFavoritesPagedHandler handles get user favorites paged query
type GetUserFavoritesPagedHandler struct {
	repo domain.FavoriteRepository
}

// NewGetUserFavoritesPagedHandler creates a new get user favorites paged handler
func NewGetUserFavoritesPagedHandler(repo domain.FavoriteRepository) *GetUserFavoritesPagedHandler {
	return &GetUserFavoritesPagedHandler{repo: repo}
}

// Handle executes the get user favorites paged query
func (h *GetUserFavoritesPagedHandler) Handle(ctx context.Context, query GetUserFavoritesPagedQuery) (*domain.Page, error) {
	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = domain.DefaultSortBy
	}
	req := domain.NewPageRequest(query.Page, query.Size, sortBy, query.Direction)

	favorites, total, err := h.repo.FindPageByUserID(ctx, query.UserID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to list favorites page: %w", err)
	}

	page := domain.NewPage(domain.ToFavoriteResponses(favorites), req, total)
	return &page, nil
}

package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestToFavoriteResponseImageSelection(t *testing.T) {
	tests := []struct {
		name   string
		images []PropertyImage
		want   *string
	}{
		{
			name: "primary image wins over earlier images",
			images: []PropertyImage{
				{ImageURL: "a", IsPrimary: false},
				{ImageURL: "b", IsPrimary: true},
			},
			want: strPtr("b"),
		},
		{
			name:   "falls back to first image",
			images: []PropertyImage{{ImageURL: "a", IsPrimary: false}},
			want:   strPtr("a"),
		},
		{
			name:   "first of several primaries",
			images: []PropertyImage{{ImageURL: "x"}, {ImageURL: "p1", IsPrimary: true}, {ImageURL: "p2", IsPrimary: true}},
			want:   strPtr("p1"),
		},
		{
			name:   "no images",
			images: []PropertyImage{},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fav := &Favorite{
				ID:         3,
				UserID:     1,
				PropertyID: 5,
				Property:   &Property{ID: 5, Images: tt.images},
			}

			summary := ToFavoriteResponse(fav)

			assert.Equal(t, tt.want, summary.Property.ImageURL)
		})
	}
}

func TestToFavoriteResponseCopiesFields(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fav := &Favorite{
		ID:         9,
		UserID:     1,
		PropertyID: 5,
		Notes:      "nice",
		CreatedAt:  created,
		UpdatedAt:  created,
		Property: &Property{
			ID: 5, Title: "Loft", Address: "1 Main St", City: "Austin", State: "TX",
			Price: 350000, Bedrooms: 2, Bathrooms: 1, SquareFeet: 900,
			ListingType: "SALE", PropertyType: "APARTMENT",
		},
	}

	s := ToFavoriteResponse(fav)

	assert.Equal(t, uint(9), s.ID)
	assert.Equal(t, uint(1), s.UserID)
	assert.Equal(t, uint(5), s.PropertyID)
	assert.Equal(t, "nice", s.Notes)
	assert.Equal(t, created, s.CreatedAt)
	assert.Equal(t, PropertySummary{
		ID: 5, Title: "Loft", Address: "1 Main St", City: "Austin", State: "TX",
		Price: 350000, Bedrooms: 2, Bathrooms: 1, SquareFeet: 900,
		ListingType: "SALE", PropertyType: "APARTMENT",
	}, s.Property)
}

func TestToFavoriteResponseWithoutProperty(t *testing.T) {
	s := ToFavoriteResponse(&Favorite{ID: 1, PropertyID: 42})
	assert.Equal(t, uint(42), s.Property.ID)
	assert.Nil(t, s.Property.ImageURL)
}

func TestNormalizeNotes(t *testing.T) {
	assert.Equal(t, "", NormalizeNotes(nil))
	assert.Equal(t, "padded", NormalizeNotes(strPtr("  padded  ")))
	assert.Equal(t, "", NormalizeNotes(strPtr("   ")))
}

func TestFavoriteUpdateNotes(t *testing.T) {
	now := time.Now()
	f := &Favorite{Notes: "old"}

	f.UpdateNotes(nil, now)
	assert.Equal(t, "", f.Notes)
	assert.False(t, f.HasNotes())
	assert.Equal(t, now, f.UpdatedAt)

	f.UpdateNotes(strPtr(" south facing "), now)
	assert.Equal(t, "south facing", f.Notes)
	assert.True(t, f.HasNotes())
}

func TestNewPageRequestClamps(t *testing.T) {
	assert.Equal(t, NewPageRequest(0, 10, "createdAt", "DESC"), NewPageRequest(-5, 0, "createdAt", "DESC"))
	assert.Equal(t, NewPageRequest(2, 100, "createdAt", "DESC"), NewPageRequest(2, 500, "createdAt", "DESC"))

	req := NewPageRequest(3, 20, "notes", "asc")
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 20, req.Size)
	assert.Equal(t, "notes", req.SortBy)
	assert.Equal(t, SortAsc, req.Direction)
	assert.Equal(t, 60, req.Offset())
}

func TestParseSortDirection(t *testing.T) {
	assert.Equal(t, SortAsc, ParseSortDirection("ASC"))
	assert.Equal(t, SortAsc, ParseSortDirection("aSc"))
	assert.Equal(t, SortDesc, ParseSortDirection("desc"))
	assert.Equal(t, SortDesc, ParseSortDirection("sideways"))
	assert.Equal(t, SortDesc, ParseSortDirection(""))
}

func TestNewPage(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		p := NewPage(nil, NewPageRequest(0, 10, "", ""), 0)
		assert.NotNil(t, p.Content)
		assert.Equal(t, 0, p.TotalPages)
		assert.True(t, p.First)
		assert.True(t, p.Last)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrevious)
	})

	t.Run("middle page", func(t *testing.T) {
		p := NewPage([]FavoriteSummary{{ID: 1}}, NewPageRequest(1, 10, "", ""), 25)
		assert.Equal(t, 3, p.TotalPages)
		assert.False(t, p.First)
		assert.False(t, p.Last)
		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrevious)
	})

	t.Run("last page", func(t *testing.T) {
		p := NewPage([]FavoriteSummary{{ID: 1}}, NewPageRequest(2, 10, "", ""), 25)
		assert.True(t, p.Last)
		assert.False(t, p.HasNext)
	})
}

func TestErrorKinds(t *testing.T) {
	nf := NewNotFoundError("User", "id", uint(7))
	assert.True(t, errors.Is(nf, ErrNotFound))
	assert.False(t, errors.Is(nf, ErrConflict))
	assert.Equal(t, "User not found with id: 7", nf.Error())

	wrapped := fmt.Errorf("lookup failed: %w", NewFavoritePairNotFoundError(1, 5))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	var target *NotFoundError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "Favorite", target.Resource)

	conflict := &ConflictError{UserID: 1, PropertyID: 5}
	assert.True(t, errors.Is(conflict, ErrConflict))

	invalid := InvalidArgumentf("unknown sort field %q", "price")
	assert.True(t, errors.Is(invalid, ErrInvalidArgument))
	assert.Contains(t, invalid.Error(), `"price"`)
}

package domain

import "time"

// FavoriteSummary is the presentation read-model of a favorite and its property
type FavoriteSummary struct {
	ID         uint            `json:"id"`
	UserID     uint            `json:"userId"`
	PropertyID uint            `json:"propertyId"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Property   PropertySummary `json:"property"`
}

// PropertySummary is the subset of property attributes shown next to a favorite
type PropertySummary struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Price        float64 `json:"price"`
	ImageURL     *string `json:"imageUrl"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	SquareFeet   int     `json:"squareFeet"`
	ListingType  string  `json:"listingType"`
	PropertyType string  `json:"propertyType"`
}

// ToFavoriteResponse projects a favorite with its loaded property into a summary.
// A favorite whose property was not loaded yields a summary carrying only the property id.
func ToFavoriteResponse(f *Favorite) FavoriteSummary {
	summary := FavoriteSummary{
		ID:         f.ID,
		UserID:     f.UserID,
		PropertyID: f.PropertyID,
		Notes:      f.Notes,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
		Property:   PropertySummary{ID: f.PropertyID},
	}

	if p := f.Property; p != nil {
		summary.Property = PropertySummary{
			ID:           p.ID,
			Title:        p.Title,
			Address:      p.Address,
			City:         p.City,
			State:        p.State,
			Price:        p.Price,
			ImageURL:     p.PrimaryImageURL(),
			Bedrooms:     p.Bedrooms,
			Bathrooms:    p.Bathrooms,
			SquareFeet:   p.SquareFeet,
			ListingType:  p.ListingType,
			PropertyType: p.PropertyType,
		}
	}

	return summary
}

// ToFavoriteResponses projects a list of favorites, preserving order
func ToFavoriteResponses(favorites []Favorite) []FavoriteSummary {
	out := make([]FavoriteSummary, 0, len(favorites))
	for i := range favorites {
		out = append(out, ToFavoriteResponse(&favorites[i]))
	}
	return out
}

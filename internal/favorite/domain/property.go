package domain

import (
	"context"
	"time"
)

// Property represents a real-estate listing
type Property struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Title        string          `json:"title" gorm:"not null"`
	Description  string          `json:"description" gorm:"type:text"`
	Address      string          `json:"address"`
	City         string          `json:"city" gorm:"index"`
	State        string          `json:"state"`
	Price        float64         `json:"price"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	SquareFeet   int             `json:"squareFeet"`
	ListingType  string          `json:"listingType"`
	PropertyType string          `json:"propertyType"`
	Images       []PropertyImage `json:"images,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// TableName specifies the table name
func (Property) TableName() string {
	return "properties"
}

// PropertyImage is one picture of a property. Stored order is (SortOrder, ID).
type PropertyImage struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	PropertyID uint   `json:"propertyId" gorm:"not null;index"`
	ImageURL   string `json:"imageUrl" gorm:"type:text;not null"`
	IsPrimary  bool   `json:"isPrimary" gorm:"not null;default:false"`
	SortOrder  int    `json:"sortOrder" gorm:"not null;default:0"`
}

// TableName specifies the table name
func (PropertyImage) TableName() string {
	return "property_images"
}

// PrimaryImageURL returns the image flagged primary, else the first image in
// stored order, else nil when the property has no images.
func (p *Property) PrimaryImageURL() *string {
	if len(p.Images) == 0 {
		return nil
	}
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			url := p.Images[i].ImageURL
			return &url
		}
	}
	url := p.Images[0].ImageURL
	return &url
}

// PropertyRepository is the property lookup capability the favorite service needs
type PropertyRepository interface {
	FindByID(ctx context.Context, id uint) (*Property, error)
}

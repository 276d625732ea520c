package domain

import (
	"context"
	"strings"
	"time"
)

// Favorite records that a user has favorited a property. At most one row
// exists per (UserID, PropertyID).
type Favorite struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"not null;uniqueIndex:uk_user_property_favorite,priority:1;index"`
	PropertyID uint      `json:"propertyId" gorm:"not null;uniqueIndex:uk_user_property_favorite,priority:2;index"`
	User       *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Property   *Property `json:"-" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Notes      string    `json:"notes" gorm:"type:text;not null;default:''"`
	CreatedAt  time.Time `json:"createdAt" gorm:"not null;<-:create"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"not null"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// NormalizeNotes trims notes; nil becomes the empty string
func NormalizeNotes(notes *string) string {
	if notes == nil {
		return ""
	}
	return strings.TrimSpace(*notes)
}

// UpdateNotes replaces the notes and refreshes the update timestamp
func (f *Favorite) UpdateNotes(notes *string, now time.Time) {
	f.Notes = NormalizeNotes(notes)
	f.UpdatedAt = now
}

// HasNotes reports whether the favorite carries non-blank notes
func (f *Favorite) HasNotes() bool {
	return strings.TrimSpace(f.Notes) != ""
}

// FavoriteRepository defines the contract for favorite data access.
// Create reports a duplicate (UserID, PropertyID) pair as a *ConflictError.
// Lookups of a single favorite report absence as a *NotFoundError.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *Favorite) error
	Update(ctx context.Context, favorite *Favorite) error

	FindByID(ctx context.Context, id uint) (*Favorite, error)
	FindByUserAndProperty(ctx context.Context, userID, propertyID uint) (*Favorite, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByUserAndProperty(ctx context.Context, userID, propertyID uint) (bool, error)

	FindByUserID(ctx context.Context, userID uint) ([]Favorite, error)
	FindPageByUserID(ctx context.Context, userID uint, req PageRequest) ([]Favorite, int64, error)
	FindByPropertyID(ctx context.Context, propertyID uint) ([]Favorite, error)
	FindPropertiesByUserID(ctx context.Context, userID uint) ([]Property, error)
	CountByPropertyID(ctx context.Context, propertyID uint) (int64, error)

	Delete(ctx context.Context, favorite *Favorite) error
	DeleteByID(ctx context.Context, id uint) error
	// DeleteByUserID returns the rows it removed so callers can tell which
	// properties lost a favorite.
	DeleteByUserID(ctx context.Context, userID uint) ([]Favorite, error)
	DeleteByPropertyID(ctx context.Context, propertyID uint) (int64, error)
}

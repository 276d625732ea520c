package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
)

// sortColumns maps the sort fields accepted from clients to favorites columns
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"created_at":  "created_at",
	"updatedAt":   "updated_at",
	"updated_at":  "updated_at",
	"id":          "id",
	"notes":       "notes",
	"propertyId":  "property_id",
	"property_id": "property_id",
	"userId":      "user_id",
	"user_id":     "user_id",
}

// GormFavoriteRepository implements domain.FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// withDetails preloads the user and the property with its images in stored order
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Property").
		Preload("Property.Images", orderImages)
}

func orderImages(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("id ASC")
}

// Create inserts a new favorite. Associations are referenced by id only.
func (r *GormFavoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(favorite).Error
	if err != nil {
		if isDuplicateKey(err) {
			return &domain.ConflictError{UserID: favorite.UserID, PropertyID: favorite.PropertyID}
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

// Update persists the mutable columns of a favorite
func (r *GormFavoriteRepository) Update(ctx context.Context, favorite *domain.Favorite) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("id = ?", favorite.ID).
		Updates(map[string]interface{}{
			"notes":      favorite.Notes,
			"updated_at": favorite.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Favorite", "id", favorite.ID)
	}
	return nil
}

// FindByID retrieves a favorite with its user and property
func (r *GormFavoriteRepository) FindByID(ctx context.Context, id uint) (*domain.Favorite, error) {
	var favorite domain.Favorite
	if err := withDetails(r.db.WithContext(ctx)).First(&favorite, id).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, domain.NewNotFoundError("Favorite", "id", id)
		}
		return nil, fmt.Errorf("failed to find favorite: %w", err)
	}
	return &favorite, nil
}

// FindByUserAndProperty retrieves the favorite for a user/property pair
func (r *GormFavoriteRepository) FindByUserAndProperty(ctx context.Context, userID, propertyID uint) (*domain.Favorite, error) {
	var favorite domain.Favorite
	err := withDetails(r.db.WithContext(ctx)).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		First(&favorite).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, domain.NewFavoritePairNotFoundError(userID, propertyID)
		}
		return nil, fmt.Errorf("failed to find favorite: %w", err)
	}
	return &favorite, nil
}

// ExistsByID reports whether a favorite with the id exists
func (r *GormFavoriteRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Favorite{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// ExistsByUserAndProperty reports whether the user has favorited the property
func (r *GormFavoriteRepository) ExistsByUserAndProperty(ctx context.Context, userID, propertyID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// FindByUserID retrieves all favorites of a user, newest first
func (r *GormFavoriteRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	err := withDetails(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find favorites by user: %w", err)
	}
	return favorites, nil
}

// FindPageByUserID retrieves one page of a user's favorites and the user's total count.
// An unknown sort field is rejected with domain.ErrInvalidArgument.
func (r *GormFavoriteRepository) FindPageByUserID(ctx context.Context, userID uint, req domain.PageRequest) ([]domain.Favorite, int64, error) {
	column, ok := sortColumns[req.SortBy]
	if !ok {
		return nil, 0, domain.InvalidArgumentf("unknown sort field %q", req.SortBy)
	}

	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&domain.Favorite{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count favorites by user: %w", err)
	}

	query := withDetails(db).
		Where("user_id = ?", userID).
		Order(clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   req.Direction == domain.SortDesc,
		})
	if column != "id" {
		query = query.Order("id ASC")
	}

	var favorites []domain.Favorite
	if err := query.Limit(req.Size).Offset(req.Offset()).Find(&favorites).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find favorites page: %w", err)
	}
	return favorites, total, nil
}

// FindByPropertyID retrieves every favorite referencing a property
func (r *GormFavoriteRepository) FindByPropertyID(ctx context.Context, propertyID uint) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	err := withDetails(r.db.WithContext(ctx)).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find favorites by property: %w", err)
	}
	return favorites, nil
}

// FindPropertiesByUserID retrieves the properties a user has favorited, most recently favorited first
func (r *GormFavoriteRepository) FindPropertiesByUserID(ctx context.Context, userID uint) ([]domain.Property, error) {
	var properties []domain.Property
	err := r.db.WithContext(ctx).
		Model(&domain.Property{}).
		Select("properties.*").
		Joins("JOIN favorites ON favorites.property_id = properties.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Preload("Images", orderImages).
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find favorite properties: %w", err)
	}
	return properties, nil
}

// CountByPropertyID returns how many users favorited a property
func (r *GormFavoriteRepository) CountByPropertyID(ctx context.Context, propertyID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Favorite{}).Where("property_id = ?", propertyID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}

// Delete removes the given favorite
func (r *GormFavoriteRepository) Delete(ctx context.Context, favorite *domain.Favorite) error {
	return r.DeleteByID(ctx, favorite.ID)
}

// DeleteByID removes a favorite by id
func (r *GormFavoriteRepository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Favorite{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Favorite", "id", id)
	}
	return nil
}

// DeleteByUserID removes all favorites of a user in one statement and
// returns the removed rows
func (r *GormFavoriteRepository) DeleteByUserID(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	deleted := make([]domain.Favorite, 0)
	err := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("user_id = ?", userID).
		Delete(&deleted).Error
	if err != nil {
		return nil, fmt.Errorf("failed to delete favorites by user: %w", err)
	}
	return deleted, nil
}

// DeleteByPropertyID removes all favorites of a property and returns how many were removed
func (r *GormFavoriteRepository) DeleteByPropertyID(ctx context.Context, propertyID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("property_id = ?", propertyID).Delete(&domain.Favorite{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete favorites by property: %w", result.Error)
	}
	return result.RowsAffected, nil
}

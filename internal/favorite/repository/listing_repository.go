package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
)

// GormUserRepository implements domain.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, domain.NewNotFoundError("User", "id", id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// GormPropertyRepository implements domain.PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GORM property repository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// Create inserts a property together with its images
func (r *GormPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	if err := r.db.WithContext(ctx).Create(property).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// FindByID retrieves a property with its images in stored order
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uint) (*domain.Property, error) {
	var property domain.Property
	if err := r.db.WithContext(ctx).Preload("Images", orderImages).First(&property, id).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, domain.NewNotFoundError("Property", "id", id)
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return &property, nil
}

// AutoMigrate runs database migrations for every table the service touches
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Property{},
		&domain.PropertyImage{},
		&domain.Favorite{},
	)
}

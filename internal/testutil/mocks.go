package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
)

// MockEventPublisher records published favorite events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishFavoriteAdded(ctx context.Context, favorite *domain.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}

func (m *MockEventPublisher) PublishFavoriteRemoved(ctx context.Context, favorite *domain.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}

func (m *MockEventPublisher) PublishFavoriteUpdated(ctx context.Context, favorite *domain.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}

// MockFavoriteRepository is a testify mock of domain.FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}

func (m *MockFavoriteRepository) Update(ctx context.Context, favorite *domain.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}

func (m *MockFavoriteRepository) FindByID(ctx context.Context, id uint) (*domain.Favorite, error) {
	args := m.Called(ctx, id)
	favorite, _ := args.Get(0).(*domain.Favorite)
	return favorite, args.Error(1)
}

func (m *MockFavoriteRepository) FindByUserAndProperty(ctx context.Context, userID, propertyID uint) (*domain.Favorite, error) {
	args := m.Called(ctx, userID, propertyID)
	favorite, _ := args.Get(0).(*domain.Favorite)
	return favorite, args.Error(1)
}

func (m *MockFavoriteRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ExistsByUserAndProperty(ctx context.Context, userID, propertyID uint) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	args := m.Called(ctx, userID)
	favorites, _ := args.Get(0).([]domain.Favorite)
	return favorites, args.Error(1)
}

func (m *MockFavoriteRepository) FindPageByUserID(ctx context.Context, userID uint, req domain.PageRequest) ([]domain.Favorite, int64, error) {
	args := m.Called(ctx, userID, req)
	favorites, _ := args.Get(0).([]domain.Favorite)
	return favorites, args.Get(1).(int64), args.Error(2)
}

func (m *MockFavoriteRepository) FindByPropertyID(ctx context.Context, propertyID uint) ([]domain.Favorite, error) {
	args := m.Called(ctx, propertyID)
	favorites, _ := args.Get(0).([]domain.Favorite)
	return favorites, args.Error(1)
}

func (m *MockFavoriteRepository) FindPropertiesByUserID(ctx context.Context, userID uint) ([]domain.Property, error) {
	args := m.Called(ctx, userID)
	properties, _ := args.Get(0).([]domain.Property)
	return properties, args.Error(1)
}

func (m *MockFavoriteRepository) CountByPropertyID(ctx context.Context, propertyID uint) (int64, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, favorite *domain.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}

func (m *MockFavoriteRepository) DeleteByID(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFavoriteRepository) DeleteByUserID(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) DeleteByPropertyID(ctx context.Context, propertyID uint) (int64, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).(int64), args.Error(1)
}

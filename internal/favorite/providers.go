package favorite

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/realestate-favorites/internal/config"
	"github.com/tair/realestate-favorites/internal/favorite/cache"
	"github.com/tair/realestate-favorites/internal/favorite/delivery/http"
	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/internal/favorite/repository"
	"github.com/tair/realestate-favorites/internal/favorite/usecase/command"
	"github.com/tair/realestate-favorites/internal/favorite/usecase/query"
	"github.com/tair/realestate-favorites/kafka"
)

// ProvideFavoriteRepository provides the traced favorite repository, fronted
// by the Redis count cache when a client is configured
func ProvideFavoriteRepository(db *gorm.DB, client *redis.Client, cfg *config.Config) domain.FavoriteRepository {
	var repo domain.FavoriteRepository = repository.NewTracingFavoriteRepository(repository.NewGormFavoriteRepository(db))
	if client == nil {
		return repo
	}
	return cache.NewCountCachingRepository(repo, client, cfg.CountCacheTTL)
}

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewTracingUserRepository(repository.NewGormUserRepository(db))
}

// ProvidePropertyRepository provides the property repository
func ProvidePropertyRepository(db *gorm.DB) domain.PropertyRepository {
	return repository.NewTracingPropertyRepository(repository.NewGormPropertyRepository(db))
}

// ProvideEventPublisher adapts an optional Kafka publisher. A nil publisher
// yields a nil interface so handlers skip publishing.
func ProvideEventPublisher(publisher *kafka.Publisher) command.EventPublisher {
	if publisher == nil {
		return nil
	}
	return publisher
}

// ProvideMetrics provides the HTTP metrics registered with reg
func ProvideMetrics(reg prometheus.Registerer) *http.Metrics {
	return http.NewMetrics(reg)
}

// Command Handlers Providers
func ProvideAddFavoriteHandler(
	favorites domain.FavoriteRepository,
	users domain.UserRepository,
	properties domain.PropertyRepository,
	events command.EventPublisher,
) *command.AddFavoriteHandler {
	return command.NewAddFavoriteHandler(favorites, users, properties, events)
}

func ProvideRemoveFavoriteHandler(favorites domain.FavoriteRepository, events command.EventPublisher) *command.RemoveFavoriteHandler {
	return command.NewRemoveFavoriteHandler(favorites, events)
}

func ProvideRemoveFavoriteByIDHandler(favorites domain.FavoriteRepository, events command.EventPublisher) *command.RemoveFavoriteByIDHandler {
	return command.NewRemoveFavoriteByIDHandler(favorites, events)
}

func ProvideToggleFavoriteHandler(
	favorites domain.FavoriteRepository,
	add *command.AddFavoriteHandler,
	events command.EventPublisher,
) *command.ToggleFavoriteHandler {
	return command.NewToggleFavoriteHandler(favorites, add, events)
}

func ProvideUpdateNotesHandler(favorites domain.FavoriteRepository, events command.EventPublisher) *command.UpdateNotesHandler {
	return command.NewUpdateNotesHandler(favorites, events)
}

func ProvideDeleteUserFavoritesHandler(favorites domain.FavoriteRepository) *command.DeleteUserFavoritesHandler {
	return command.NewDeleteUserFavoritesHandler(favorites)
}

func ProvideDeletePropertyFavoritesHandler(favorites domain.FavoriteRepository) *command.DeletePropertyFavoritesHandler {
	return command.NewDeletePropertyFavoritesHandler(favorites)
}

// Query Handlers Providers
func ProvideGetUserFavoritesHandler(repo domain.FavoriteRepository) *query.GetUserFavoritesHandler {
	return query.NewGetUserFavoritesHandler(repo)
}

func ProvideGetUserFavoritesPagedHandler(repo domain.FavoriteRepository) *query.GetUserFavoritesPagedHandler {
	return query.NewGetUserFavoritesPagedHandler(repo)
}

func ProvideGetUserFavoritePropertiesHandler(repo domain.FavoriteRepository) *query.GetUserFavoritePropertiesHandler {
	return query.NewGetUserFavoritePropertiesHandler(repo)
}

func ProvideIsFavoritedHandler(repo domain.FavoriteRepository) *query.IsFavoritedHandler {
	return query.NewIsFavoritedHandler(repo)
}

func ProvideGetFavoriteCountHandler(repo domain.FavoriteRepository) *query.GetFavoriteCountHandler {
	return query.NewGetFavoriteCountHandler(repo)
}

func ProvideGetFavoriteHandler(repo domain.FavoriteRepository) *query.GetFavoriteHandler {
	return query.NewGetFavoriteHandler(repo)
}

func ProvideGetPropertyFavoritesHandler(repo domain.FavoriteRepository) *query.GetPropertyFavoritesHandler {
	return query.NewGetPropertyFavoritesHandler(repo)
}

// DeletionHandlers holds the bulk deletes driven by deletion events
type DeletionHandlers struct {
	UserFavorites     *command.DeleteUserFavoritesHandler
	PropertyFavorites *command.DeletePropertyFavoritesHandler
}

// ProvideDeletionHandlers provides the deletion handlers
func ProvideDeletionHandlers(
	userFavorites *command.DeleteUserFavoritesHandler,
	propertyFavorites *command.DeletePropertyFavoritesHandler,
) *DeletionHandlers {
	return &DeletionHandlers{
		UserFavorites:     userFavorites,
		PropertyFavorites: propertyFavorites,
	}
}

// Service is the assembled favorite service
type Service struct {
	Handler   *http.FavoriteHandler
	Deletions *DeletionHandlers
}

// ProvideService provides the assembled service
func ProvideService(handler *http.FavoriteHandler, deletions *DeletionHandlers) *Service {
	return &Service{Handler: handler, Deletions: deletions}
}

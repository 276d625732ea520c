//go:build wireinject
// +build wireinject

package favorite

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/realestate-favorites/internal/config"
	"github.com/tair/realestate-favorites/internal/favorite/delivery/http"
	"github.com/tair/realestate-favorites/kafka"
)

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideFavoriteRepository,
	ProvideUserRepository,
	ProvidePropertyRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideEventPublisher,
	ProvideAddFavoriteHandler,
	ProvideRemoveFavoriteHandler,
	ProvideRemoveFavoriteByIDHandler,
	ProvideToggleFavoriteHandler,
	ProvideUpdateNotesHandler,
	ProvideDeleteUserFavoritesHandler,
	ProvideDeletePropertyFavoritesHandler,
	ProvideDeletionHandlers,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetUserFavoritesHandler,
	ProvideGetUserFavoritesPagedHandler,
	ProvideGetUserFavoritePropertiesHandler,
	ProvideIsFavoritedHandler,
	ProvideGetFavoriteCountHandler,
	ProvideGetFavoriteHandler,
	ProvideGetPropertyFavoritesHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeService wires the favorite service. client and publisher may be nil.
func InitializeService(
	db *gorm.DB,
	client *redis.Client,
	publisher *kafka.Publisher,
	cfg *config.Config,
	reg prometheus.Registerer,
) (*Service, error) {
	wire.Build(
		AllHandlersSet,
		ProvideMetrics,
		http.NewFavoriteHandlerWithDI,
		ProvideService,
	)
	return nil, nil
}

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/internal/favorite/usecase/command"
	"github.com/tair/realestate-favorites/internal/favorite/usecase/query"
)

// FavoriteHandler handles HTTP requests for favorites using CQRS pattern
type FavoriteHandler struct {
	// Command handlers
	addHandler         *command.AddFavoriteHandler
	removeHandler      *command.RemoveFavoriteHandler
	removeByIDHandler  *command.RemoveFavoriteByIDHandler
	toggleHandler      *command.ToggleFavoriteHandler
	updateNotesHandler *command.UpdateNotesHandler

	// Query handlers
	userFavoritesHandler *query.GetUserFavoritesHandler
	pagedHandler         *query.GetUserFavoritesPagedHandler
	propertiesHandler    *query.GetUserFavoritePropertiesHandler
	isFavoritedHandler   *query.IsFavoritedHandler
	countHandler         *query.GetFavoriteCountHandler
	getHandler           *query.GetFavoriteHandler
	propertyHandler      *query.GetPropertyFavoritesHandler

	metrics *Metrics
}

// NewFavoriteHandlerWithDI creates a new favorite handler using dependency injection
func NewFavoriteHandlerWithDI(
	addHandler *command.AddFavoriteHandler,
	removeHandler *command.RemoveFavoriteHandler,
	removeByIDHandler *command.RemoveFavoriteByIDHandler,
	toggleHandler *command.ToggleFavoriteHandler,
	updateNotesHandler *command.UpdateNotesHandler,
	userFavoritesHandler *query.GetUserFavoritesHandler,
	pagedHandler *query.GetUserFavoritesPagedHandler,
	propertiesHandler *query.GetUserFavoritePropertiesHandler,
	isFavoritedHandler *query.IsFavoritedHandler,
	countHandler *query.GetFavoriteCountHandler,
	getHandler *query.GetFavoriteHandler,
	propertyHandler *query.GetPropertyFavoritesHandler,
	metrics *Metrics,
) *FavoriteHandler {
	return &FavoriteHandler{
		addHandler:           addHandler,
		removeHandler:        removeHandler,
		removeByIDHandler:    removeByIDHandler,
		toggleHandler:        toggleHandler,
		updateNotesHandler:   updateNotesHandler,
		userFavoritesHandler: userFavoritesHandler,
		pagedHandler:         pagedHandler,
		propertiesHandler:    propertiesHandler,
		isFavoritedHandler:   isFavoritedHandler,
		countHandler:         countHandler,
		getHandler:           getHandler,
		propertyHandler:      propertyHandler,
		metrics:              metrics,
	}
}

// GetUserFavorites godoc
// @Summary List a user's favorites
// @Description Favorites of the user with property details, newest first. Unknown users yield an empty list.
// @Tags Favorites
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} Response{data=[]domain.FavoriteSummary}
// @Failure 400 {object} ErrorResponse
// @Router /api/favorites/user/{userId} [get]
func (h *FavoriteHandler) GetUserFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid userId")
		return
	}

	summaries, err := h.userFavoritesHandler.HandleSummaries(r.Context(), query.GetUserFavoritesQuery{UserID: userID})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Favorites retrieved successfully", summaries)
}

// GetUserFavoritesPaged godoc
// @Summary Page through a user's favorites
// @Tags Favorites
// @Produce json
// @Param userId path int true "User ID"
// @Param page query int false "Page index, clamped to >= 0" default(0)
// @Param size query int false "Page size, clamped to 1..100" default(10)
// @Param sortBy query string false "Sort field" default(createdAt)
// @Param direction query string false "ASC or DESC" default(DESC)
// @Success 200 {object} Response{data=domain.Page}
// @Failure 400 {object} ErrorResponse
// @Router /api/favorites/user/{userId}/paged [get]
func (h *FavoriteHandler) GetUserFavoritesPaged(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid userId")
		return
	}
	page, ok := queryInt(r, "page", 0)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid page")
		return
	}
	size, ok := queryInt(r, "size", domain.DefaultPageSize)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid size")
		return
	}

	result, err := h.pagedHandler.Handle(r.Context(), query.GetUserFavoritesPagedQuery{
		UserID:    userID,
		Page:      page,
		Size:      size,
		SortBy:    queryString(r, "sortBy", domain.DefaultSortBy),
		Direction: queryString(r, "direction", string(domain.SortDesc)),
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Favorites retrieved successfully", result)
}

// GetUserFavoriteProperties godoc
// @Summary List the properties a user favorited
// @Tags Favorites
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} Response{data=[]domain.Property}
// @Failure 400 {object} ErrorResponse
// @Router /api/favorites/user/{userId}/properties [get]
func (h *FavoriteHandler) GetUserFavoriteProperties(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid userId")
		return
	}

	properties, err := h.propertiesHandler.Handle(r.Context(), query.GetUserFavoritePropertiesQuery{UserID: userID})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Favorite properties retrieved successfully", properties)
}

// GetPropertyFavorites godoc
// @Summary List the favorites of a property
// @Description Unknown properties yield an empty list.
// @Tags Favorites
// @Produce json
// @Param propertyId path int true "Property ID"
// @Success 200 {object} Response{data=[]domain.FavoriteSummary}
// @Failure 400 {object} ErrorResponse
// @Router /api/favorites/property/{propertyId} [get]
func (h *FavoriteHandler) GetPropertyFavorites(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathID(r, "propertyId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid propertyId")
		return
	}

	favorites, err := h.propertyHandler.Handle(r.Context(), query.GetPropertyFavoritesQuery{PropertyID: propertyID})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Favorites retrieved successfully", domain.ToFavoriteResponses(favorites))
}

// AddFavorite godoc
// @Summary Add a property to a user's favorites
// @Description Parameters come from the query string or a JSON body {userId, propertyId, notes}.
// @Tags Favorites
// @Accept json
// @Produce json
// @Param userId query int false "User ID"
// @Param propertyId query int false "Property ID"
// @Param notes query string false "Notes"
// @Success 201 {object} Response{data=domain.FavoriteSummary}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/favorites [post]
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	params, ok := h.params(w, r)
	if !ok {
		return
	}
	userID, propertyID, ok := pairIDs(w, params)
	if !ok {
		return
	}

	favorite, err := h.addHandler.Handle(r.Context(), command.AddFavoriteCommand{
		UserID:     userID,
		PropertyID: propertyID,
		Notes:      params.notes(),
	})
	h.metrics.observeOperation("add", err)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Property added to favorites", domain.ToFavoriteResponse(favorite))
}

// RemoveFavorite godoc
// @Summary Remove a property from a user's favorites
// @Tags Favorites
// @Produce json
// @Param userId query int true "User ID"
// @Param propertyId query int true "Property ID"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/favorites [delete]
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	params, ok := h.params(w, r)
	if !ok {
		return
	}
	userID, propertyID, ok := pairIDs(w, params)
	if !ok {
		return
	}

	err := h.removeHandler.Handle(r.Context(), command.RemoveFavoriteCommand{UserID: userID, PropertyID: propertyID})
	h.metrics.observeOperation("remove", err)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Property removed from favorites", nil)
}

// RemoveFavoriteByID godoc
// @Summary Delete a favorite by id
// @Tags Favorites
// @Produce json
// @Param favoriteId path int true "Favorite ID"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/favorites/{favoriteId} [delete]
func (h *FavoriteHandler) RemoveFavoriteByID(w http.ResponseWriter, r *http.Request) {
	favoriteID, ok := pathID(r, "favoriteId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid favoriteId")
		return
	}

	err := h.removeByIDHandler.Handle(r.Context(), command.RemoveFavoriteByIDCommand{ID: favoriteID})
	h.metrics.observeOperation("remove", err)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Favorite removed successfully", nil)
}

// CheckFavorite godoc
// @Summary Check whether a user favorited a property
// @Tags Favorites
// @Produce json
// @Param userId query int true "User ID"
// @Param propertyId query int true "Property ID"
// @Success 200 {object} Response{data=object{isFavorited=bool,userId=int,propertyId=int}}
// @Failure 400 {object} ErrorResponse
// @Router /api/favorites/check [get]
func (h *FavoriteHandler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	params, ok := h.params(w, r)
	if !ok {
		return
	}
	userID, propertyID, ok := pairIDs(w, params)
	if !ok {
		return
	}

	favorited, err := h.isFavoritedHandler.Handle(r.Context(), query.IsFavoritedQuery{UserID: userID, PropertyID: propertyID})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Favorite status retrieved", map[string]interface{}{
		"isFavorited": favorited,
		"userId":      userID,
		"propertyId":  propertyID,
	})
}

// GetFavoriteCount godoc
// @Summary Count how many users favorited a property
// @Description Unknown properties count 0.
// @Tags Favorites
// @Produce json
// @Param propertyId path int true "Property ID"
// @Success 200 {object} Response{data=object{propertyId=int,favoriteCount=int}}
// @Failure 400 {object} ErrorResponse
// @Router /api/favorites/count/{propertyId} [get]
func (h *FavoriteHandler) GetFavoriteCount(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathID(r, "propertyId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid propertyId")
		return
	}

	count, err := h.countHandler.Handle(r.Context(), query.GetFavoriteCountQuery{PropertyID: propertyID})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Favorite count retrieved", map[string]interface{}{
		"propertyId":    propertyID,
		"favoriteCount": count,
	})
}

// ToggleFavorite godoc
// @Summary Add the favorite when absent, remove it when present
// @Tags Favorites
// @Accept json
// @Produce json
// @Param userId query int false "User ID"
// @Param propertyId query int false "Property ID"
// @Success 200 {object} Response{data=object{action=string,isFavorited=bool,userId=int,propertyId=int,favorite=domain.FavoriteSummary}}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/favorites/toggle [post]
func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	params, ok := h.params(w, r)
	if !ok {
		return
	}
	userID, propertyID, ok := pairIDs(w, params)
	if !ok {
		return
	}

	result, err := h.toggleHandler.Handle(r.Context(), command.ToggleFavoriteCommand{UserID: userID, PropertyID: propertyID})
	h.metrics.observeOperation("toggle", err)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	data := map[string]interface{}{
		"action":      "removed",
		"isFavorited": result.Added,
		"userId":      userID,
		"propertyId":  propertyID,
	}
	message := "Property removed from favorites"
	if result.Added {
		data["action"] = "added"
		data["favorite"] = domain.ToFavoriteResponse(result.Favorite)
		message = "Property added to favorites"
	}

	respondSuccess(w, http.StatusOK, message, data)
}

// UpdateNotes godoc
// @Summary Replace a favorite's notes
// @Description Notes come from the query string or a JSON body {notes}. Omitting notes clears them.
// @Tags Favorites
// @Accept json
// @Produce json
// @Param favoriteId path int true "Favorite ID"
// @Param notes query string false "Notes"
// @Success 200 {object} Response{data=domain.FavoriteSummary}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/favorites/{favoriteId}/notes [patch]
// @Router /api/favorites/{favoriteId}/notes [put]
func (h *FavoriteHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	favoriteID, ok := pathID(r, "favoriteId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid favoriteId")
		return
	}
	params, ok := h.params(w, r)
	if !ok {
		return
	}

	favorite, err := h.updateNotesHandler.Handle(r.Context(), command.UpdateNotesCommand{ID: favoriteID, Notes: params.notes()})
	h.metrics.observeOperation("update_notes", err)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Notes updated successfully", domain.ToFavoriteResponse(favorite))
}

// GetFavorite godoc
// @Summary Get a favorite by id
// @Tags Favorites
// @Produce json
// @Param favoriteId path int true "Favorite ID"
// @Success 200 {object} Response{data=domain.FavoriteSummary}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/favorites/{favoriteId} [get]
func (h *FavoriteHandler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	favoriteID, ok := pathID(r, "favoriteId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid favoriteId")
		return
	}

	favorite, err := h.getHandler.Handle(r.Context(), query.GetFavoriteQuery{ID: favoriteID})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Favorite retrieved successfully", domain.ToFavoriteResponse(favorite))
}

func (h *FavoriteHandler) params(w http.ResponseWriter, r *http.Request) (*requestParams, bool) {
	params, err := readParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return params, true
}

func pairIDs(w http.ResponseWriter, params *requestParams) (uint, uint, bool) {
	userID, ok := params.id("userId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid userId")
		return 0, 0, false
	}
	propertyID, ok := params.id("propertyId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid propertyId")
		return 0, 0, false
	}
	return userID, propertyID, true
}

// RegisterRoutes registers all favorite routes. Fixed segments are registered
// before /{favoriteId} so they are not captured by it.
func (h *FavoriteHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/favorites").Subrouter()
	api.Use(h.metrics.Middleware)

	api.HandleFunc("/user/{userId}", h.GetUserFavorites).Methods(http.MethodGet)
	api.HandleFunc("/user/{userId}/paged", h.GetUserFavoritesPaged).Methods(http.MethodGet)
	api.HandleFunc("/user/{userId}/properties", h.GetUserFavoriteProperties).Methods(http.MethodGet)
	api.HandleFunc("/check", h.CheckFavorite).Methods(http.MethodGet)
	api.HandleFunc("/count/{propertyId}", h.GetFavoriteCount).Methods(http.MethodGet)
	api.HandleFunc("/property/{propertyId}", h.GetPropertyFavorites).Methods(http.MethodGet)
	api.HandleFunc("/toggle", h.ToggleFavorite).Methods(http.MethodPost)
	api.HandleFunc("", h.AddFavorite).Methods(http.MethodPost)
	api.HandleFunc("", h.RemoveFavorite).Methods(http.MethodDelete)
	api.HandleFunc("/{favoriteId}/notes", h.UpdateNotes).Methods(http.MethodPatch, http.MethodPut)
	api.HandleFunc("/{favoriteId}", h.GetFavorite).Methods(http.MethodGet)
	api.HandleFunc("/{favoriteId}", h.RemoveFavoriteByID).Methods(http.MethodDelete)
}

// Pinger reports database reachability
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RegisterHealthCheck registers health check endpoint
func (h *FavoriteHandler) RegisterHealthCheck(router *mux.Router, db Pinger) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respondError(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}

		respondSuccess(w, http.StatusOK, "Favorite service is healthy", nil)
	}).Methods(http.MethodGet)
}

// RegisterMetrics exposes the collectors of gatherer on /metrics
func (h *FavoriteHandler) RegisterMetrics(router *mux.Router, gatherer prometheus.Gatherer) {
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// NewRouter assembles the routes, middlewares and CORS handling of the service
func NewRouter(h *FavoriteHandler, config *MiddlewareConfig, db Pinger, gatherer prometheus.Gatherer) http.Handler {
	router := mux.NewRouter()
	RegisterMiddlewares(router, config)

	h.RegisterRoutes(router)
	h.RegisterHealthCheck(router, db)
	h.RegisterMetrics(router, gatherer)
	RegisterSwaggerDocs(router)

	return SetupCORS(config)(router)
}

package http

import (
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	// Registers the generated OpenAPI document with swag
	_ "github.com/tair/realestate-favorites/docs"
)

// RegisterSwaggerDocs registers Swagger documentation routes
func RegisterSwaggerDocs(router *mux.Router) {
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}

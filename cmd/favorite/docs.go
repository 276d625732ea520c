package main

// @title Favorite Service API
// @version 1.0
// @description Saved-property favorites for the real-estate listing platform, with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/tair/realestate-favorites
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/tair/realestate-favorites/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @tag.name Favorites
// @tag.description Saved properties of a user

// @tag.name Health
// @tag.description Health check endpoints

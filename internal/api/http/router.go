package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/poseidon-api/internal/api/http/handlers"
	"github.com/spec-kit/poseidon-api/internal/auth"
)

// EntityRoutes is implemented by handlers.CRUDHandler for every entity type.
type EntityRoutes interface {
	Resource() string
	Mount(r fiber.Router)
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Login          *handlers.LoginHandler
	Entities       []EntityRoutes
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/login", cfg.Login.Login)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	for _, entity := range cfg.Entities {
		entity.Mount(api)
	}
}

package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/nischal-shetty2/DSAStats/internal/handler"
	"github.com/nischal-shetty2/DSAStats/internal/middleware"
	"github.com/nischal-shetty2/DSAStats/pkg/token"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	User        *handler.UserHandler
	Platform    *handler.PlatformHandler
	Leaderboard *handler.LeaderboardHandler
	Health      *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, issuer *token.Issuer, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	requireAuth := middleware.RequireAuth(issuer)

	// Health + metrics (no auth)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", middleware.MetricsHandler())

	// Public routes
	app.Get("/preview/:userid", h.Platform.Preview)
	app.Post("/leaderboard/:page", h.Leaderboard.Page)

	// API routes
	api := app.Group("/api")

	// Account routes
	api.Post("/user/register", h.User.Register)
	api.Post("/user/login", h.User.Login)
	api.Get("/user/verify", h.User.Verify, requireAuth)
	api.Put("/user/usernames", h.User.UpdateUsernames, requireAuth)

	// Platform data routes
	api.Get("/platform/data", h.Platform.GetData, requireAuth)
	api.Post("/platform/img", h.Platform.Images)
}

package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/sentreats/sentreats-server/internal/config"
	"github.com/sentreats/sentreats-server/internal/handlers"
	"github.com/sentreats/sentreats-server/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	eateryHandler *handlers.EateryHandler,
	reviewHandler *handlers.ReviewHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Profile and account (JWT required)
	api.Put("/users/profile", middleware.JWTProtected(cfg), userHandler.UpdateProfile)
	api.Put("/users/password", middleware.JWTProtected(cfg), userHandler.ChangePassword)
	api.Delete("/users/account", middleware.JWTProtected(cfg), userHandler.DeleteAccount)
	api.Get("/users/stats", middleware.JWTProtected(cfg), userHandler.Stats)

	// Eateries: listing is public, mutation requires a token
	api.Get("/eateries", eateryHandler.List)
	api.Post("/eateries", middleware.JWTProtected(cfg), eateryHandler.Create)
	api.Delete("/eateries/:id", middleware.JWTProtected(cfg), eateryHandler.Delete)

	// Reviews: same split
	api.Get("/reviews/eatery/:eateryId", reviewHandler.ByEatery)
	api.Get("/reviews/user/:userId", reviewHandler.ByUser)
	api.Post("/reviews", middleware.JWTProtected(cfg), reviewHandler.Create)
	api.Delete("/reviews/:id", middleware.JWTProtected(cfg), reviewHandler.Delete)
}

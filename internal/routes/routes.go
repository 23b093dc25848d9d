package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/config"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	healthHandler *handlers.HealthHandler,
	moderationHandler *handlers.ModerationHandler,
) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Members file reports
	api.Post("/reports", middleware.JWTProtected(cfg), moderationHandler.CreateReport)

	// Moderation panel (JWT + staff role required)
	admin := api.Group("/admin/moderation", middleware.JWTProtected(cfg), middleware.StaffRequired(db, cfg))
	admin.Get("/reports", moderationHandler.ListReports)
	admin.Post("/reports/:id/actions", moderationHandler.Dispatch)
	admin.Get("/reports/:id/actions", moderationHandler.ListActions)
}

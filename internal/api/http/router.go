package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/accreditation-service/internal/api/http/handlers"
	"github.com/spec-kit/accreditation-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Intake         *handlers.IntakeHandler
	Review         *handlers.ReviewHandler
	Notifications  *handlers.NotificationsHandler
	Reviewers      *handlers.ReviewersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The intake endpoint is public; the
// review workspace sits behind reviewer authentication.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/accreditations", cfg.Intake.Submit)
	app.Post("/auth/reviewers/login", cfg.Reviewers.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/auth/reviewers/logout", cfg.Reviewers.Logout)
	protected.Get("/accreditations", cfg.Review.List)
	protected.Get("/accreditations/export", cfg.Review.Export)
	protected.Patch("/accreditations/:id/status", cfg.Review.UpdateStatus)
	protected.Patch("/accreditations/:id/zone", cfg.Review.UpdateZone)
	protected.Post("/accreditations/:id/approve", cfg.Review.Approve)
	protected.Post("/approval-notifications", cfg.Notifications.Send)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdeskpro/helpdesk-service/internal/api/http/handlers"
	"github.com/helpdeskpro/helpdesk-service/internal/auth"
	"github.com/helpdeskpro/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	Reminders      *handlers.RemindersHandler
	AuthMiddleware *auth.Middleware
	CronSecret     string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/register", cfg.Auth.Register)
	app.Post("/auth/login", cfg.Auth.Login)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", auth.RequireRole(domain.RoleClient), cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id", auth.RequireRole(domain.RoleAgent), cfg.Tickets.Update)
	tickets.Delete("/:id", cfg.Tickets.Delete)

	comments := app.Group("/comments", cfg.AuthMiddleware.Handle)
	comments.Get("/", cfg.Comments.List)
	comments.Post("/", cfg.Comments.Create)

	app.Get("/cron/reminders", auth.RequireSharedSecret(cfg.CronSecret), cfg.Reminders.Run)
}

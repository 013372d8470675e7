package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pytracker/tracker-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Users    *handlers.UsersHandler
	Projects *handlers.ProjectsHandler
	Tickets  *handlers.TicketsHandler
	Admin    *handlers.AdminHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/register", cfg.Auth.Register)

	app.Get("/users", cfg.Users.List)

	app.Get("/projects", cfg.Projects.List)
	app.Post("/projects", cfg.Projects.Create)

	app.Get("/tickets", cfg.Tickets.List)
	app.Post("/tickets", cfg.Tickets.Create)
	app.Patch("/tickets/:id", cfg.Tickets.Update)
	app.Delete("/tickets/:id", cfg.Tickets.Delete)

	// The reset hook exists for demos and tests only.
	if cfg.Admin != nil {
		app.Post("/admin/reset", cfg.Admin.Reset)
	}
}

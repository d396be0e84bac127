package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repair-service/internal/api/http/handlers"
	"github.com/spec-kit/repair-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health              *handlers.HealthHandler
	Auth                *handlers.AuthHandler
	Admin               *handlers.AdminHandler
	Members             *handlers.MembersHandler
	Repairs             *handlers.RepairsHandler
	AuthMiddleware      *auth.Middleware
	WorkspaceMiddleware *auth.WorkspaceMiddleware
	BootstrapToken      string
}

// RegisterRoutes wires HTTP routes under the /repair prefix.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	root := app.Group("/repair")

	v1 := root.Group("/v1")
	v1.Get("/health/live", cfg.Health.Live)
	v1.Get("/health/ready", cfg.Health.Ready)

	v1.Post("/auth/login", cfg.Auth.Login)
	v1.Get("/auth/me", cfg.AuthMiddleware.Authenticate, cfg.Auth.Me)

	admin := root.Group("/admin/v1")
	admin.Post("/superadmin/bootstrap", auth.RequireBootstrapToken(cfg.BootstrapToken), cfg.Admin.Bootstrap)
	admin.Post("/workspaces", cfg.AuthMiddleware.Authenticate, auth.RequireSuperadmin(), cfg.Admin.CreateWorkspace)

	v1.Get("/workspaces", cfg.AuthMiddleware.Authenticate, cfg.Auth.ListWorkspaces)

	// Everything below is scoped to a workspace the caller belongs to.
	ws := v1.Group("/workspaces/:workspace_id", cfg.AuthMiddleware.Authenticate, cfg.WorkspaceMiddleware.RequireMember)

	ws.Get("/members", cfg.Members.List)
	ws.Post("/members", auth.RequireAdmin(), cfg.Members.Add)
	ws.Delete("/members/:member_id", auth.RequireAdmin(), cfg.Members.Remove)

	ws.Get("/repairs", cfg.Repairs.List)
	ws.Post("/repairs", cfg.Repairs.Create)
	ws.Get("/repairs/:repair_id", cfg.Repairs.Get)
	ws.Post("/repairs/:repair_id/complete", cfg.Repairs.Complete)
	ws.Post("/repairs/:repair_id/message", cfg.Repairs.SendMessage)
	ws.Post("/repairs/:repair_id/notes", cfg.Repairs.AddNote)
	ws.Get("/repairs/:repair_id/activity", cfg.Repairs.ListActivity)
}

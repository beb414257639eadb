package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-onboarding/internal/api/http/handlers"
	"github.com/spec-kit/agent-onboarding/internal/auth"
	"github.com/spec-kit/agent-onboarding/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Agents         *handlers.AgentsHandler
	Approvals      *handlers.ApprovalsHandler
	Batches        *handlers.BatchesHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Users.Login)

	api := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())

	agents := api.Group("/agents")
	agents.Get("/check-duplicate", cfg.Agents.CheckDuplicate)
	agents.Post("", cfg.Agents.CreateAgent)
	agents.Get("", cfg.Agents.ListAgents)
	agents.Get("/:id", cfg.Agents.GetAgent)
	agents.Put("/:id", cfg.Agents.UpdateAgent)

	approvals := api.Group("/approvals")
	approvals.Post("", cfg.Approvals.CreateRequest)
	approvals.Get("", cfg.Approvals.ListRequests)
	approvals.Get("/:id", cfg.Approvals.GetRequest)

	// Resolving approvals is restricted to supervisory roles.
	resolvers := auth.RequireRole(domain.RoleAdmin, domain.RoleManager)
	approvals.Post("/:id/approve", resolvers, cfg.Approvals.Approve)
	approvals.Post("/:id/reject", resolvers, cfg.Approvals.Reject)

	batches := api.Group("/batches")
	batches.Post("", cfg.Batches.CreateBatch)
	batches.Get("", cfg.Batches.ListBatches)
	batches.Get("/:id", cfg.Batches.GetBatch)
	batches.Post("/:id/execute", auth.RequireRole(domain.RoleAdmin), cfg.Batches.Execute)

	api.Get("/dashboard/stats", cfg.Dashboard.Stats)
}

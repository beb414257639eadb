package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-onboarding/internal/service"
)

// DashboardHandler serves aggregated pipeline counters.
type DashboardHandler struct {
	service *service.StatsService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(statsService *service.StatsService) *DashboardHandler {
	return &DashboardHandler{service: statsService}
}

// Stats GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mubashirbm/laibix-admin/internal/services"
)

// DashboardHandler serves the console's landing statistics.
type DashboardHandler struct {
	service *services.StatsService
	now     func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *services.StatsService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		now:     time.Now,
	}
}

// RegisterRoutes registers the dashboard route with the Fiber app.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleGetDashboard)
}

// HandleGetDashboard returns product count and today's orders and revenue.
func (h *DashboardHandler) HandleGetDashboard(c *fiber.Ctx) error {
	stats, err := h.service.Dashboard(c.UserContext(), h.now())
	if err != nil {
		return respondError(c, err, "Could not load dashboard")
	}
	return c.JSON(stats)
}

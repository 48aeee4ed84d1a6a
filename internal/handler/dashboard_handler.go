package handler

import (
	"go-stocktrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.ReportService
}

func NewDashboardHandler(s service.ReportService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboardStats returns the analytics snapshot, aggregated fresh per call
// GET /api/v1/reports/dashboard-stats
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

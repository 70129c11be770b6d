package handler

import (
	"strconv"

	"perfume-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboardStats returns overview statistics
// Query params: boutique_id
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	scope, err := narrowScope(c, currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	stats, err := h.service.GetDashboardStats(c.UserContext(), scope)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}

func (h *DashboardHandler) GetBoutiqueSummary(c *fiber.Ctx) error {
	scope, err := narrowScope(c, currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.service.BoutiqueSummary(c.UserContext(), scope)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch boutique summary"})
	}
	return c.JSON(summary)
}

func (h *DashboardHandler) GetClerkPerformance(c *fiber.Ctx) error {
	scope, err := narrowScope(c, currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	clerks, err := h.service.ClerkPerformance(c.UserContext(), scope)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch clerk performance"})
	}
	return c.JSON(clerks)
}

// GetDailyReport returns one calendar day of sales and orders
// Query params: date (YYYY-MM-DD, default today), boutique_id
func (h *DashboardHandler) GetDailyReport(c *fiber.Ctx) error {
	scope, err := narrowScope(c, currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	day, err := parseDay(c, "date")
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.service.DailyReport(c.UserContext(), day, scope)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch daily report"})
	}
	return c.JSON(report)
}

// GetStockMovement returns stock movement data for charts
// Query params: days (default 7), boutique_id
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 || days > 90 {
		days = 7
	}
	scope, err := narrowScope(c, currentUser(c))
	if err != nil {
		return respondError(c, err)
	}

	data, err := h.service.GetStockMovement(c.UserContext(), days, scope)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock movement"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

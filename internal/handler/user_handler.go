package handler

import (
	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
	dashboard   service.DashboardService
}

func NewUserHandler(userService service.UserService, dashboard service.DashboardService) *UserHandler {
	return &UserHandler{userService: userService, dashboard: dashboard}
}

// GetMe returns the logged-in account, including points or sales progress.
// GET /api/v1/me
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	return c.JSON(currentUser(c).ToResponse())
}

// GetMyLoyalty returns the logged-in customer's points and tier progress.
// GET /api/v1/me/loyalty
func (h *UserHandler) GetMyLoyalty(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.Role != model.RoleCustomer {
		return c.Status(403).JSON(fiber.Map{"error": "Loyalty is only available to customers"})
	}
	summary, err := h.dashboard.LoyaltySummary(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetCustomers backs the customer picker at checkout.
// Query params: search
func (h *UserHandler) GetCustomers(c *fiber.Ctx) error {
	customers, err := h.userService.ListCustomers(c.UserContext(), c.Query("search"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch customers"})
	}
	return c.JSON(customers)
}

func (h *UserHandler) GetCustomer(c *fiber.Ctx) error {
	customerID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	summary, err := h.dashboard.LoyaltySummary(c.UserContext(), customerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

package handler

import (
	"strings"

	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository"
	"perfume-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errOutOfScope = fiber.NewError(fiber.StatusForbidden, "Forbidden: boutique outside your scope")

type TransactionHandler struct {
	service service.TransactionService
	users   service.UserService
}

func NewTransactionHandler(s service.TransactionService, users service.UserService) *TransactionHandler {
	return &TransactionHandler{service: s, users: users}
}

type PlaceOrderRequest struct {
	BoutiqueID uuid.UUID                 `json:"boutique_id"`
	Items      []service.CartItemRequest `json:"items"`
}

type RecordSaleRequest struct {
	BoutiqueID    uuid.UUID                 `json:"boutique_id"`
	CustomerID    *uuid.UUID                `json:"customer_id"`
	CustomerName  string                    `json:"customer_name"`
	PaymentMethod model.PaymentMethod       `json:"payment_method"`
	Items         []service.CartItemRequest `json:"items"`
}

type UpdateStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// PlaceOrder reserves a cart for pickup on behalf of the logged-in customer.
// POST /api/v1/orders
func (h *TransactionHandler) PlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	user := currentUser(c)
	ctx := c.UserContext()

	lines, err := h.service.ComposeCart(ctx, req.Items)
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.service.PlaceOrder(ctx, service.PlaceOrderInput{
		CustomerID:   user.ID,
		CustomerName: user.Name,
		BoutiqueID:   req.BoutiqueID,
		Lines:        lines,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Order placed", "data": order})
}

// GetOrders lists the caller's own orders, or every order in a staff member's boutiques.
// Query params: status, boutique_id
func (h *TransactionHandler) GetOrders(c *fiber.Ctx) error {
	user := currentUser(c)
	filter := repository.OrderFilter{Status: model.OrderStatus(c.Query("status"))}
	if filter.Status != "" && !filter.Status.Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid status"})
	}

	if user.Role.IsStaff() {
		scope, err := narrowScope(c, user)
		if err != nil {
			return respondError(c, err)
		}
		filter.BoutiqueIDs = scope
	} else {
		filter.CustomerID = &user.ID
	}

	orders, err := h.service.ListOrders(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *TransactionHandler) GetOrder(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.service.GetOrder(c.UserContext(), orderID)
	if err != nil {
		return respondError(c, err)
	}
	if !canSeeOrder(currentUser(c), order) {
		return c.Status(404).JSON(fiber.Map{"error": "Order not found"})
	}
	return c.JSON(order)
}

// UpdateOrderStatus advances an order's fulfillment status.
// PATCH /api/v1/orders/:id/status
func (h *TransactionHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ctx := c.UserContext()
	order, err := h.service.GetOrder(ctx, orderID)
	if err != nil {
		return respondError(c, err)
	}
	if !currentUser(c).ManagesBoutique(order.BoutiqueID) {
		return respondError(c, errOutOfScope)
	}

	updated, err := h.service.AdvanceOrderStatus(ctx, orderID, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order status updated", "data": updated})
}

// RecordSale finalizes a point-of-sale transaction by the logged-in clerk.
// POST /api/v1/sales
func (h *TransactionHandler) RecordSale(c *fiber.Ctx) error {
	var req RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	user := currentUser(c)
	ctx := c.UserContext()

	if req.BoutiqueID != uuid.Nil && !user.ManagesBoutique(req.BoutiqueID) {
		return respondError(c, errOutOfScope)
	}

	// A registered customer's name is filled in when the clerk only picked the account.
	if req.CustomerID != nil && strings.TrimSpace(req.CustomerName) == "" {
		customer, err := h.users.GetUserByID(ctx, *req.CustomerID)
		if err != nil {
			return respondError(c, err)
		}
		req.CustomerName = customer.Name
	}

	lines, err := h.service.ComposeCart(ctx, req.Items)
	if err != nil {
		return respondError(c, err)
	}
	sale, err := h.service.RecordSale(ctx, service.RecordSaleInput{
		BoutiqueID:    req.BoutiqueID,
		ClerkID:       user.ID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		Lines:         lines,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

// GetSales lists sales within the caller's boutiques.
// Query params: boutique_id, clerk_id, date (YYYY-MM-DD)
func (h *TransactionHandler) GetSales(c *fiber.Ctx) error {
	user := currentUser(c)
	scope, err := narrowScope(c, user)
	if err != nil {
		return respondError(c, err)
	}
	filter := repository.SaleFilter{BoutiqueIDs: scope}

	if raw := c.Query("clerk_id"); raw != "" {
		clerkID, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid clerk ID"})
		}
		filter.ClerkID = &clerkID
	}
	if c.Query("date") != "" {
		day, err := parseDay(c, "date")
		if err != nil {
			return respondError(c, err)
		}
		filter.From, filter.To = dayWindow(day)
	}

	sales, err := h.service.ListSales(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

func (h *TransactionHandler) GetSale(c *fiber.Ctx) error {
	saleID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.service.GetSale(c.UserContext(), saleID)
	if err != nil {
		return respondError(c, err)
	}
	if !currentUser(c).ManagesBoutique(sale.BoutiqueID) {
		return c.Status(404).JSON(fiber.Map{"error": "Sale not found"})
	}
	return c.JSON(sale)
}

func canSeeOrder(user *model.User, order *model.Order) bool {
	if user.Role.IsStaff() {
		return user.ManagesBoutique(order.BoutiqueID)
	}
	return order.CustomerID == user.ID
}

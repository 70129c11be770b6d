package handler

import (
	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository"
	"perfume-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// GetProducts lists the catalog with per-size price and stock.
// Query params: category (homme|femme|mixte), search
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext(), repository.ProductFilter{
		Category: model.Category(c.Query("category")),
		Search:   c.Query("search"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	product, err := h.service.GetProduct(c.UserContext(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

func (h *CatalogHandler) GetBoutiques(c *fiber.Ctx) error {
	boutiques, err := h.service.ListBoutiques(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(boutiques)
}

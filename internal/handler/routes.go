package handler

import (
	"perfume-boutique-ws/internal/middleware"
	"perfume-boutique-ws/internal/model"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth         *AuthHandler
	Catalog      *CatalogHandler
	Transactions *TransactionHandler
	Dashboard    *DashboardHandler
	Users        *UserHandler
}

// RegisterRoutes mounts the REST API under /api/v1.
func RegisterRoutes(app *fiber.App, h Handlers, requireAuth fiber.Handler) {
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Post("/auth/login", h.Auth.Login)
	api.Get("/products", h.Catalog.GetProducts)
	api.Get("/products/:id", h.Catalog.GetProduct)
	api.Get("/boutiques", h.Catalog.GetBoutiques)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	protected.Get("/me", h.Users.GetMe)
	protected.Get("/me/loyalty", h.Users.GetMyLoyalty)

	// Order Routes
	protected.Post("/orders", middleware.RequirePrivilege(model.PrivOrderCreate), h.Transactions.PlaceOrder)
	protected.Get("/orders", middleware.RequirePrivilege(model.PrivOrderView), h.Transactions.GetOrders)
	protected.Get("/orders/:id", middleware.RequirePrivilege(model.PrivOrderView), h.Transactions.GetOrder)
	protected.Patch("/orders/:id/status", middleware.RequirePrivilege(model.PrivOrderUpdateStatus), h.Transactions.UpdateOrderStatus)

	// Sale Routes
	protected.Post("/sales", middleware.RequirePrivilege(model.PrivSaleCreate), h.Transactions.RecordSale)
	protected.Get("/sales", middleware.RequirePrivilege(model.PrivSaleView), h.Transactions.GetSales)
	protected.Get("/sales/:id", middleware.RequirePrivilege(model.PrivSaleView), h.Transactions.GetSale)

	// Customer Routes
	protected.Get("/customers", middleware.RequirePrivilege(model.PrivCustomerView), h.Users.GetCustomers)
	protected.Get("/customers/:id", middleware.RequirePrivilege(model.PrivCustomerView), h.Users.GetCustomer)

	// Dashboard Routes
	dashboard := protected.Group("/dashboard", middleware.RequirePrivilege(model.PrivReportView))
	dashboard.Get("/stats", h.Dashboard.GetDashboardStats)
	dashboard.Get("/boutiques", h.Dashboard.GetBoutiqueSummary)
	dashboard.Get("/clerks", h.Dashboard.GetClerkPerformance)
	dashboard.Get("/daily", h.Dashboard.GetDailyReport)
	dashboard.Get("/stock-movement", h.Dashboard.GetStockMovement)
}

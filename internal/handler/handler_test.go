package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"perfume-boutique-ws/internal/handler"
	"perfume-boutique-ws/internal/middleware"
	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository/memory"
	"perfume-boutique-ws/internal/seed"
	"perfume-boutique-ws/internal/service"
	"perfume-boutique-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	_, err := seed.Run(context.Background(), store, zap.NewNop())
	require.NoError(t, err)

	repos := store.Repos()
	tokens := jwt.NewManager("test-secret", time.Hour)
	users := service.NewUserService(repos.Users)
	dashboard := service.NewDashboardService(repos, 5)

	app := fiber.New()
	handler.RegisterRoutes(app, handler.Handlers{
		Auth:         handler.NewAuthHandler(service.NewAuthService(repos.Users, tokens, zap.NewNop())),
		Catalog:      handler.NewCatalogHandler(service.NewCatalogService(repos.Products, repos.Boutiques)),
		Transactions: handler.NewTransactionHandler(service.NewTransactionService(store, nil, zap.NewNop(), service.TransactionOptions{}), users),
		Dashboard:    handler.NewDashboardHandler(dashboard),
		Users:        handler.NewUserHandler(users, dashboard),
	}, middleware.RequireAuth(tokens, repos.Users))
	return app, store
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	var resp service.LoginResponse
	status := call(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{"email": email, "password": password}, &resp)
	require.Equal(t, 200, status)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app, _ := newApp(t)
	status := call(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{"email": "client@email.com", "password": "nope"}, nil)
	assert.Equal(t, 401, status)

	status = call(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{"email": "client@email.com"}, nil)
	assert.Equal(t, 400, status)
}

func TestCatalogIsPublic(t *testing.T) {
	app, _ := newApp(t)
	var products []model.Product
	status := call(t, app, "GET", "/api/v1/products?category=mixte", "", nil, &products)
	require.Equal(t, 200, status)
	require.Len(t, products, 1)
	assert.Equal(t, "CK One", products[0].Name)

	status = call(t, app, "GET", "/api/v1/products?category=enfant", "", nil, nil)
	assert.Equal(t, 400, status)

	status = call(t, app, "GET", "/api/v1/products/not-a-uuid", "", nil, nil)
	assert.Equal(t, 400, status)
}

func TestOrderLifecycle(t *testing.T) {
	app, _ := newApp(t)
	customer := login(t, app, "client@email.com", "client123")
	clerk := login(t, app, "vendeur1@nefertiti.com", "vendeur123")
	otherClerk := login(t, app, "vendeur2@nefertiti.com", "vendeur123")

	var placed struct {
		Data model.Order `json:"data"`
	}
	status := call(t, app, "POST", "/api/v1/orders", customer, fiber.Map{
		"boutique_id": seed.ID("boutique1"),
		"items":       []fiber.Map{{"product_id": seed.ID("prod1"), "size": "30ml", "quantity": 2}},
	}, &placed)
	require.Equal(t, 201, status)
	assert.Equal(t, int64(1098), placed.Data.Total)
	assert.Equal(t, int64(109), placed.Data.PointsEarned)

	status = call(t, app, "POST", "/api/v1/orders", customer, fiber.Map{
		"items": []fiber.Map{{"product_id": seed.ID("prod1"), "size": "30ml", "quantity": 1}},
	}, nil)
	assert.Equal(t, 400, status, "boutique is required")

	status = call(t, app, "POST", "/api/v1/orders", clerk, fiber.Map{}, nil)
	assert.Equal(t, 403, status, "clerks do not place orders")

	path := "/api/v1/orders/" + placed.Data.ID.String() + "/status"
	status = call(t, app, "PATCH", path, customer, fiber.Map{"status": "confirmed"}, nil)
	assert.Equal(t, 403, status)

	status = call(t, app, "PATCH", path, otherClerk, fiber.Map{"status": "confirmed"}, nil)
	assert.Equal(t, 403, status, "order belongs to another boutique")

	status = call(t, app, "PATCH", path, clerk, fiber.Map{"status": "collected"}, nil)
	assert.Equal(t, 409, status)

	status = call(t, app, "PATCH", path, clerk, fiber.Map{"status": "confirmed"}, nil)
	assert.Equal(t, 200, status)

	var mine []model.Order
	status = call(t, app, "GET", "/api/v1/orders", customer, nil, &mine)
	require.Equal(t, 200, status)
	require.Len(t, mine, 1)
	assert.Equal(t, model.OrderConfirmed, mine[0].Status)

	var theirs []model.Order
	status = call(t, app, "GET", "/api/v1/orders", otherClerk, nil, &theirs)
	require.Equal(t, 200, status)
	assert.Empty(t, theirs)

	var me model.UserResponse
	status = call(t, app, "GET", "/api/v1/me", customer, nil, &me)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(450+109), me.LoyaltyPoints)
}

func TestRecordSale(t *testing.T) {
	app, store := newApp(t)
	clerk := login(t, app, "vendeur1@nefertiti.com", "vendeur123")
	manager := login(t, app, "gerant@nefertiti.com", "gerant123")

	var recorded struct {
		Data model.Sale `json:"data"`
	}
	status := call(t, app, "POST", "/api/v1/sales", clerk, fiber.Map{
		"customer_id":    seed.ID("client2"),
		"payment_method": "card",
		"items":          []fiber.Map{{"product_id": seed.ID("prod2"), "size": "100ml", "quantity": 1}},
	}, &recorded)
	require.Equal(t, 201, status)
	assert.Equal(t, "Sarah Alami", recorded.Data.CustomerName)
	assert.Equal(t, int64(175), recorded.Data.PointsAwarded)

	product, err := store.Repos().Products.FindByID(context.Background(), seed.ID("prod2"))
	require.NoError(t, err)
	assert.Equal(t, 14, product.Size("100ml").Stock)

	var stockErr map[string]interface{}
	status = call(t, app, "POST", "/api/v1/sales", clerk, fiber.Map{
		"customer_name":  "Walk-in",
		"payment_method": "cash",
		"items":          []fiber.Map{{"product_id": seed.ID("prod2"), "size": "100ml", "quantity": 99}},
	}, &stockErr)
	assert.Equal(t, 409, status)
	assert.EqualValues(t, 14, stockErr["available"])

	status = call(t, app, "POST", "/api/v1/sales", clerk, fiber.Map{
		"payment_method": "cash",
		"items":          []fiber.Map{{"product_id": seed.ID("prod2"), "size": "100ml", "quantity": 1}},
	}, nil)
	assert.Equal(t, 400, status, "walk-in sale needs a name")

	status = call(t, app, "POST", "/api/v1/sales", clerk, fiber.Map{
		"boutique_id":    seed.ID("boutique3"),
		"customer_name":  "Walk-in",
		"payment_method": "cash",
		"items":          []fiber.Map{{"product_id": seed.ID("prod2"), "size": "15ml", "quantity": 1}},
	}, nil)
	assert.Equal(t, 403, status)

	status = call(t, app, "POST", "/api/v1/sales", manager, fiber.Map{}, nil)
	assert.Equal(t, 403, status, "managers do not ring up sales")

	var sales []model.Sale
	status = call(t, app, "GET", "/api/v1/sales?date="+time.Now().Format("2006-01-02"), manager, nil, &sales)
	require.Equal(t, 200, status)
	assert.Len(t, sales, 1)

	var stats service.DashboardStats
	status = call(t, app, "GET", "/api/v1/dashboard/stats", manager, nil, &stats)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(1750), stats.Revenue)

	status = call(t, app, "GET", "/api/v1/dashboard/stats?boutique_id="+seed.ID("boutique3").String(), manager, nil, nil)
	assert.Equal(t, 403, status)

	status = call(t, app, "GET", "/api/v1/dashboard/stats", clerk, nil, nil)
	assert.Equal(t, 403, status)
}

func TestLoyaltyEndpoints(t *testing.T) {
	app, _ := newApp(t)
	customer := login(t, app, "sarah@email.com", "client123")
	clerk := login(t, app, "vendeur2@nefertiti.com", "vendeur123")

	var summary service.LoyaltySummary
	status := call(t, app, "GET", "/api/v1/me/loyalty", customer, nil, &summary)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(230), summary.Points)
	assert.Equal(t, int64(270), summary.PointsToNextTier)

	status = call(t, app, "GET", "/api/v1/me/loyalty", clerk, nil, nil)
	assert.Equal(t, 403, status)

	var customers []model.UserResponse
	status = call(t, app, "GET", "/api/v1/customers?search=amina", clerk, nil, &customers)
	require.Equal(t, 200, status)
	require.Len(t, customers, 1)
	assert.Equal(t, "Amina Chakri", customers[0].Name)

	status = call(t, app, "GET", "/api/v1/customers", customer, nil, nil)
	assert.Equal(t, 403, status)
}

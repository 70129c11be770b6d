package middleware_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"perfume-boutique-ws/internal/middleware"
	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository/memory"
	"perfume-boutique-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*fiber.App, *jwt.Manager, *model.User) {
	t.Helper()
	store := memory.NewStore()
	clerk := &model.User{Email: "clerk@example.com", Name: "Clerk", Role: model.RoleClerk}
	require.NoError(t, store.Repos().Users.Create(context.Background(), clerk))

	tokens := jwt.NewManager("secret", time.Hour)
	app := fiber.New()
	app.Use(middleware.RequireAuth(tokens, store.Repos().Users))
	app.Get("/sales", middleware.RequirePrivilege(model.PrivSaleCreate), func(c *fiber.Ctx) error {
		return c.SendString(middleware.CurrentUser(c).Name)
	})
	app.Get("/reports", middleware.RequirePrivilege(model.PrivReportView), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, tokens, clerk
}

func get(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestRequireAuth(t *testing.T) {
	app, tokens, clerk := setup(t)

	status, _ := get(t, app, "/sales", "")
	assert.Equal(t, 401, status)

	status, _ = get(t, app, "/sales", "not-a-token")
	assert.Equal(t, 401, status)

	token, err := tokens.GenerateToken(jwt.Claims{UserID: clerk.ID, Email: clerk.Email, Role: string(clerk.Role)})
	require.NoError(t, err)

	status, body := get(t, app, "/sales", token)
	assert.Equal(t, 200, status)
	assert.Equal(t, "Clerk", body)

	status, body = get(t, app, "/reports", token)
	assert.Equal(t, 403, status)
	assert.Contains(t, body, "report:view")
}

func TestRequireAuthUnknownUser(t *testing.T) {
	app, tokens, _ := setup(t)
	token, err := tokens.GenerateToken(jwt.Claims{Email: "ghost@example.com"})
	require.NoError(t, err)

	status, _ := get(t, app, "/sales", token)
	assert.Equal(t, 401, status)
}

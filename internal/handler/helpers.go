package handler

import (
	"errors"
	"time"

	"perfume-boutique-ws/internal/middleware"
	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Helper untuk parse UUID dari string
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// errorStatus maps engine and service errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidTransition), errors.Is(err, model.ErrInsufficientStock):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	body := fiber.Map{"error": err.Error()}
	var stockErr *model.InsufficientStockError
	if errors.As(err, &stockErr) {
		body["product_id"] = stockErr.ProductID
		body["size"] = stockErr.Size
		body["available"] = stockErr.Available
		body["requested"] = stockErr.Requested
	}
	return c.Status(status).JSON(body)
}

// boutiqueScope lists the boutiques a staff member may see; nil means all of them.
// Staff without an assignment get a scope that matches nothing.
func boutiqueScope(user *model.User) []uuid.UUID {
	switch user.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleClerk:
		if user.BoutiqueID == nil {
			return []uuid.UUID{uuid.Nil}
		}
		return []uuid.UUID{*user.BoutiqueID}
	case model.RoleManager:
		if len(user.Boutiques) == 0 {
			return []uuid.UUID{uuid.Nil}
		}
		ids := make([]uuid.UUID, 0, len(user.Boutiques))
		for _, b := range user.Boutiques {
			ids = append(ids, b.ID)
		}
		return ids
	}
	return []uuid.UUID{uuid.Nil}
}

// narrowScope applies an optional boutique_id query parameter to the caller's scope.
func narrowScope(c *fiber.Ctx, user *model.User) ([]uuid.UUID, error) {
	scope := boutiqueScope(user)
	raw := c.Query("boutique_id")
	if raw == "" {
		return scope, nil
	}
	id, err := parseUUID(raw)
	if err != nil {
		return nil, &model.ValidationError{Field: "boutique_id", Reason: "must be a UUID"}
	}
	if !user.ManagesBoutique(id) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Forbidden: boutique outside your scope")
	}
	return []uuid.UUID{id}, nil
}

// parseDay reads a YYYY-MM-DD query parameter in local time, defaulting to today.
func parseDay(c *fiber.Ctx, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Now(), nil
	}
	day, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, &model.ValidationError{Field: key, Reason: "must be formatted YYYY-MM-DD"}
	}
	return day, nil
}

func dayWindow(day time.Time) (time.Time, time.Time) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return from, from.AddDate(0, 0, 1)
}

func currentUser(c *fiber.Ctx) *model.User {
	return middleware.CurrentUser(c)
}

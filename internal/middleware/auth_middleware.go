package middleware

import (
	"strings"

	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository"
	"perfume-boutique-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUser       = "user"
	LocalUserID     = "user_id"
	LocalPrivileges = "user_privileges"
)

// RequireAuth is middleware that validates JWT token and sets user info in context
func RequireAuth(tokens *jwt.Manager, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Role and boutique assignments are read fresh so changes apply without a new token.
		user, err := userRepo.FindByID(c.UserContext(), claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		c.Locals(LocalUser, user)
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalPrivileges, model.PrivilegeCodes(user.Role.Privileges()))

		return c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(LocalUser).(*model.User)
	return user
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(required model.Privilege) fiber.Handler {
	return RequireAnyPrivilege(required)
}

// RequireAnyPrivilege checks if the user has at least one of the specified privileges
func RequireAnyPrivilege(required ...model.Privilege) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals(LocalPrivileges).([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No privileges found"})
		}

		for _, userPriv := range privileges {
			for _, reqPriv := range required {
				if userPriv == string(reqPriv) {
					return c.Next()
				}
			}
		}

		codes := model.PrivilegeCodes(required)
		if len(codes) == 1 {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: requires '" + codes[0] + "' privilege"})
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires one of " + strings.Join(codes, ", ") + " privileges",
		})
	}
}

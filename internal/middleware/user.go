package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/principal"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ResolveUser maps the authenticated caller to its local shadow user and
// stores it in locals for the handlers. Must run after JWTProtected.
func ResolveUser(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := principal.UserName(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		user, err := users.FindOrCreateByName(c.UserContext(), name)
		switch {
		case err == nil:
			principal.SetLocalUser(c, user)
			return c.Next()
		case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrInvalidUserName):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unknown user",
			})
		case errors.Is(err, services.ErrProviderUnavailable):
			slog.Error("user reconciliation failed", "user", name, "action", "resolve_user",
				"request_id", c.Locals("requestid"), "error", err)
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "Identity provider unavailable",
			})
		default:
			slog.Error("user reconciliation failed", "user", name, "action", "resolve_user",
				"request_id", c.Locals("requestid"), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
	}
}

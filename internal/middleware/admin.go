package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/config"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/principal"
	"github.com/gofiber/fiber/v2"
)

const adminAuthority = "ROLE_ADMIN"

// AdminRequired lets a request through when any of these hold:
// 1. X-Admin-Token matches the configured token
// 2. the token carries the ROLE_ADMIN authority
// 3. the caller's user name is listed in ADMIN_USERS
func AdminRequired(cfg *config.Config) fiber.Handler {
	adminUsers := parseCSV(cfg.AdminUsers)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		name, err := principal.UserName(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if contains(principal.Authorities(c), adminAuthority) || contains(adminUsers, name) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}

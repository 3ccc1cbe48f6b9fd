// Package principal reads the authenticated caller out of a Fiber context.
package principal

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const localUserKey = "local_user"

var ErrNoPrincipal = errors.New("no authenticated user in context")

// Claims returns the JWT claims placed in locals by the JWT middleware.
func Claims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoPrincipal
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// UserName is the identity provider login of the caller: the user_name
// claim, or sub when the token has none.
func UserName(c *fiber.Ctx) (string, error) {
	claims, err := Claims(c)
	if err != nil {
		return "", err
	}
	if name, ok := claims["user_name"].(string); ok && name != "" {
		return name, nil
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}
	return "", errors.New("missing user_name claim")
}

// Authorities lists the granted roles from the authorities claim.
func Authorities(c *fiber.Ctx) []string {
	claims, err := Claims(c)
	if err != nil {
		return nil
	}
	raw, ok := claims["authorities"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}

func SetLocalUser(c *fiber.Ctx, user *models.User) {
	c.Locals(localUserKey, user)
}

// LocalUser returns the shadow user resolved for this request, if any.
func LocalUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUserKey).(*models.User)
	return user
}

package handlers

import (
	"strconv"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/models"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/principal"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the caller's local user, resolved by middleware.ResolveUser.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user := principal.LocalUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	return c.JSON(toUserResponse(user))
}

// ByExternalID reconciles an arbitrary external user id.
func (h *UserHandler) ByExternalID(c *fiber.Ctx) error {
	externalID, err := strconv.ParseInt(c.Params("externalId"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid external user id")
	}

	user, err := h.userService.FindOrCreateByID(c.UserContext(), externalID)
	if err != nil {
		return fail(c, err, "find_or_create_user")
	}
	return c.JSON(toUserResponse(user))
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             user.ID,
		ExternalUserID: user.ExternalUserID,
		CreatedAt:      user.CreatedAt,
	}
}

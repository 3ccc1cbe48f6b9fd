package handlers

import (
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/principal"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ActionHandler struct {
	actionService *services.ActionService
}

func NewActionHandler(actionService *services.ActionService) *ActionHandler {
	return &ActionHandler{actionService: actionService}
}

func (h *ActionHandler) List(c *fiber.Ctx) error {
	limit, offset := paging(c)
	actions, total, err := h.actionService.List(c.UserContext(), limit, offset)
	if err != nil {
		return fail(c, err, "list_actions")
	}
	return c.JSON(fiber.Map{"actions": actions, "total": total, "limit": limit, "offset": offset})
}

func (h *ActionHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid action ID")
	}
	action, err := h.actionService.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "get_action")
	}
	return c.JSON(action)
}

func (h *ActionHandler) Create(c *fiber.Ctx) error {
	var req dto.ActionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	action, err := h.actionService.Create(c.UserContext(), principal.LocalUser(c), &req)
	if err != nil {
		return fail(c, err, "create_action")
	}
	return c.Status(fiber.StatusCreated).JSON(action)
}

func (h *ActionHandler) Update(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid action ID")
	}
	var req dto.ActionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	action, err := h.actionService.Update(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err, "update_action")
	}
	return c.JSON(action)
}

func (h *ActionHandler) Delete(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid action ID")
	}
	if err := h.actionService.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "delete_action")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package handlers

import (
	"strconv"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/principal"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DisasterHandler struct {
	disasterService *services.DisasterService
	actionService   *services.ActionService
}

func NewDisasterHandler(disasterService *services.DisasterService, actionService *services.ActionService) *DisasterHandler {
	return &DisasterHandler{disasterService: disasterService, actionService: actionService}
}

func (h *DisasterHandler) ListTypes(c *fiber.Ctx) error {
	limit, offset := paging(c)
	types, total, err := h.disasterService.ListTypes(c.UserContext(), limit, offset)
	if err != nil {
		return fail(c, err, "list_disaster_types")
	}
	return c.JSON(fiber.Map{"disaster_types": types, "total": total, "limit": limit, "offset": offset})
}

func (h *DisasterHandler) GetType(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid disaster type ID")
	}
	disasterType, err := h.disasterService.GetType(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "get_disaster_type")
	}
	return c.JSON(disasterType)
}

func (h *DisasterHandler) GetTypeByName(c *fiber.Ctx) error {
	disasterType, err := h.disasterService.GetTypeByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return fail(c, err, "get_disaster_type_by_name")
	}
	return c.JSON(disasterType)
}

func (h *DisasterHandler) CreateType(c *fiber.Ctx) error {
	var req dto.DisasterTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	disasterType, err := h.disasterService.CreateType(c.UserContext(), &req)
	if err != nil {
		return fail(c, err, "create_disaster_type")
	}
	return c.Status(fiber.StatusCreated).JSON(disasterType)
}

func (h *DisasterHandler) UpdateType(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid disaster type ID")
	}
	var req dto.DisasterTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	disasterType, err := h.disasterService.UpdateType(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err, "update_disaster_type")
	}
	return c.JSON(disasterType)
}

func (h *DisasterHandler) DeleteType(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid disaster type ID")
	}
	if err := h.disasterService.DeleteType(c.UserContext(), id); err != nil {
		return fail(c, err, "delete_disaster_type")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List accepts ?expired=true|false to filter on the expiry flag.
func (h *DisasterHandler) List(c *fiber.Ctx) error {
	limit, offset := paging(c)

	var expired *bool
	if raw := c.Query("expired"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "Invalid expired flag")
		}
		expired = &v
	}

	disasters, total, err := h.disasterService.List(c.UserContext(), expired, limit, offset)
	if err != nil {
		return fail(c, err, "list_disasters")
	}
	return c.JSON(fiber.Map{"disasters": disasters, "total": total, "limit": limit, "offset": offset})
}

func (h *DisasterHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid disaster ID")
	}
	disaster, err := h.disasterService.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "get_disaster")
	}
	return c.JSON(disaster)
}

func (h *DisasterHandler) ListActions(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid disaster ID")
	}
	limit, offset := paging(c)
	actions, total, err := h.actionService.ListByDisaster(c.UserContext(), id, limit, offset)
	if err != nil {
		return fail(c, err, "list_disaster_actions")
	}
	return c.JSON(fiber.Map{"actions": actions, "total": total, "limit": limit, "offset": offset})
}

func (h *DisasterHandler) Create(c *fiber.Ctx) error {
	var req dto.DisasterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	disaster, err := h.disasterService.Create(c.UserContext(), principal.LocalUser(c), &req)
	if err != nil {
		return fail(c, err, "create_disaster")
	}
	return c.Status(fiber.StatusCreated).JSON(disaster)
}

func (h *DisasterHandler) Update(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid disaster ID")
	}
	var req dto.DisasterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	disaster, err := h.disasterService.Update(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err, "update_disaster")
	}
	return c.JSON(disaster)
}

func (h *DisasterHandler) Delete(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid disaster ID")
	}
	if err := h.disasterService.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "delete_disaster")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

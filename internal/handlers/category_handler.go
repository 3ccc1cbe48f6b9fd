package handlers

import (
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	limit, offset := paging(c)
	categories, total, err := h.categoryService.ListCategories(c.UserContext(), limit, offset)
	if err != nil {
		return fail(c, err, "list_categories")
	}
	return c.JSON(fiber.Map{"categories": categories, "total": total, "limit": limit, "offset": offset})
}

func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid category ID")
	}
	category, err := h.categoryService.GetCategory(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "get_category")
	}
	return c.JSON(category)
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	category, err := h.categoryService.CreateCategory(c.UserContext(), &req)
	if err != nil {
		return fail(c, err, "create_category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid category ID")
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	category, err := h.categoryService.UpdateCategory(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err, "update_category")
	}
	return c.JSON(category)
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid category ID")
	}
	if err := h.categoryService.DeleteCategory(c.UserContext(), id); err != nil {
		return fail(c, err, "delete_category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CategoryHandler) ListActionObjects(c *fiber.Ctx) error {
	limit, offset := paging(c)

	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "Invalid category_id")
		}
		categoryID = &id
	}

	objects, total, err := h.categoryService.ListActionObjects(c.UserContext(), categoryID, limit, offset)
	if err != nil {
		return fail(c, err, "list_action_objects")
	}
	return c.JSON(fiber.Map{"action_objects": objects, "total": total, "limit": limit, "offset": offset})
}

func (h *CategoryHandler) GetActionObject(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid action object ID")
	}
	object, err := h.categoryService.GetActionObject(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "get_action_object")
	}
	return c.JSON(object)
}

func (h *CategoryHandler) CreateActionObject(c *fiber.Ctx) error {
	var req dto.ActionObjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	object, err := h.categoryService.CreateActionObject(c.UserContext(), &req)
	if err != nil {
		return fail(c, err, "create_action_object")
	}
	return c.Status(fiber.StatusCreated).JSON(object)
}

func (h *CategoryHandler) UpdateActionObject(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid action object ID")
	}
	var req dto.ActionObjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	object, err := h.categoryService.UpdateActionObject(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err, "update_action_object")
	}
	return c.JSON(object)
}

func (h *CategoryHandler) DeleteActionObject(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid action object ID")
	}
	if err := h.categoryService.DeleteActionObject(c.UserContext(), id); err != nil {
		return fail(c, err, "delete_action_object")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

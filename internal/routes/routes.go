package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/config"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	User     *handlers.UserHandler
	Category *handlers.CategoryHandler
	Disaster *handlers.DisasterHandler
	Action   *handlers.ActionHandler
}

func Setup(app *fiber.App, cfg *config.Config, userService *services.UserService, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Writes need a token; the caller is reconciled to a local user so
	// new rows can carry an owner.
	authed := middleware.JWTProtected(cfg)
	owner := middleware.ResolveUser(userService)
	admin := middleware.AdminRequired(cfg)

	api.Get("/users/me", authed, owner, h.User.Me)
	api.Get("/users/:externalId", authed, admin, h.User.ByExternalID)

	api.Get("/categories", h.Category.ListCategories)
	api.Get("/categories/:id", h.Category.GetCategory)
	api.Post("/categories", authed, h.Category.CreateCategory)
	api.Put("/categories/:id", authed, h.Category.UpdateCategory)
	api.Delete("/categories/:id", authed, admin, h.Category.DeleteCategory)

	api.Get("/action-objects", h.Category.ListActionObjects)
	api.Get("/action-objects/:id", h.Category.GetActionObject)
	api.Post("/action-objects", authed, h.Category.CreateActionObject)
	api.Put("/action-objects/:id", authed, h.Category.UpdateActionObject)
	api.Delete("/action-objects/:id", authed, h.Category.DeleteActionObject)

	api.Get("/disaster-types", h.Disaster.ListTypes)
	api.Get("/disaster-types/name/:name", h.Disaster.GetTypeByName)
	api.Get("/disaster-types/:id", h.Disaster.GetType)
	api.Post("/disaster-types", authed, h.Disaster.CreateType)
	api.Put("/disaster-types/:id", authed, h.Disaster.UpdateType)
	api.Delete("/disaster-types/:id", authed, admin, h.Disaster.DeleteType)

	api.Get("/disasters", h.Disaster.List)
	api.Get("/disasters/:id", h.Disaster.Get)
	api.Get("/disasters/:id/actions", h.Disaster.ListActions)
	api.Post("/disasters", authed, owner, h.Disaster.Create)
	api.Put("/disasters/:id", authed, h.Disaster.Update)
	api.Delete("/disasters/:id", authed, h.Disaster.Delete)

	api.Get("/actions", h.Action.List)
	api.Get("/actions/:id", h.Action.Get)
	api.Post("/actions", authed, owner, h.Action.Create)
	api.Put("/actions/:id", authed, h.Action.Update)
	api.Delete("/actions/:id", authed, h.Action.Delete)
}

package api

import (
	"github.com/fitapp/fitapp/internal/db"
	"github.com/fitapp/fitapp/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// requestServices is the service graph for one request, bound to a gorm
// session that carries the request context.
type requestServices struct {
	accounts    *services.AccountService
	foods       *services.FoodService
	consumption *services.ConsumptionService
}

func (handler *Handler) newRequestServices(database *gorm.DB) *requestServices {
	repositories := db.NewRepositories(database)
	foods := services.NewFoodService(repositories.Foods, repositories.Consumption)

	return &requestServices{
		accounts:    services.NewAccountService(repositories.Users, repositories.Recommendations, handler.passwordCost),
		foods:       foods,
		consumption: services.NewConsumptionService(repositories.Consumption, repositories.Users, foods, handler.location),
	}
}

// DatabaseSession scopes storage access to the lifetime of the request.
func (handler *Handler) DatabaseSession(c *fiber.Ctx) error {
	c.Locals(contextServicesKey, handler.newRequestServices(handler.db.WithContext(c.UserContext())))
	return c.Next()
}

func (handler *Handler) services(c *fiber.Ctx) *requestServices {
	if scoped, ok := c.Locals(contextServicesKey).(*requestServices); ok && scoped != nil {
		return scoped
	}
	return handler.newRequestServices(handler.db.WithContext(c.UserContext()))
}

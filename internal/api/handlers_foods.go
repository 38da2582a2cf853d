package api

import (
	"github.com/fitapp/fitapp/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListFoods(c *fiber.Ctx) error {
	page, err := services.ParsePage(c.Query("skip"), c.Query("limit"))
	if err != nil {
		return respondServiceError(c, err)
	}

	foods, err := handler.services(c).foods.List(page)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(foods)
}

func (handler *Handler) SearchFoods(c *fiber.Ctx) error {
	foods, err := handler.services(c).foods.Search(c.Query("name"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(foods)
}

// CreateFood inserts a catalog food, or runs the log-food flow when the body
// names a user.
func (handler *Handler) CreateFood(c *fiber.Ctx) error {
	input := foodInput{}
	if err := parseRequest(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid_request_body")
	}

	food := services.FoodInput{
		Name:     input.Name,
		Calories: input.Calories,
		Protein:  input.Protein,
		Fat:      input.Fat,
		Carbs:    input.Carbs,
	}
	scoped := handler.services(c)

	if input.UserID == nil {
		created, err := scoped.foods.Create(food)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}

	consumption, err := consumptionInput(*input.UserID, input.Grams, input.ConsumedAt)
	if err != nil {
		return respondServiceError(c, err)
	}

	logged, err := scoped.consumption.LogFood(consumption, food)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"food":         logged.Food,
		"food_created": logged.FoodCreated,
		"log":          newLogEntryResponse(logged.Entry),
	})
}

func (handler *Handler) DeleteFood(c *fiber.Ctx) error {
	foodID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid_food_id")
	}

	if err := handler.services(c).foods.Delete(foodID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Food deleted successfully"})
}

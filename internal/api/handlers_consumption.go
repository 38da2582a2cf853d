package api

import (
	"strings"

	"github.com/fitapp/fitapp/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListUserFoods(c *fiber.Ctx) error {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid_user_id")
	}

	start, end, err := services.ParseConsumptionRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondServiceError(c, err)
	}

	entries, err := handler.services(c).consumption.List(userID, start, end)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(newLogEntryResponses(entries))
}

func (handler *Handler) CreateUserFood(c *fiber.Ctx) error {
	input := userFoodInput{}
	if err := parseRequest(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid_request_body")
	}
	if input.FoodID == 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid_food_id")
	}

	grams := input.Grams
	consumption, err := consumptionInput(input.UserID, &grams, input.ConsumedAt)
	if err != nil {
		return respondServiceError(c, err)
	}

	entry, err := handler.services(c).consumption.Append(consumption, input.FoodID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newLogEntryResponse(entry))
}

func consumptionInput(userID uint, grams *float64, rawConsumedAt string) (services.ConsumptionInput, error) {
	input := services.ConsumptionInput{UserID: userID}
	if grams == nil {
		return services.ConsumptionInput{}, services.ErrInvalidGrams
	}
	input.Grams = *grams

	if strings.TrimSpace(rawConsumedAt) != "" {
		consumedAt, err := services.ParseCalendarDate(rawConsumedAt)
		if err != nil {
			return services.ConsumptionInput{}, err
		}
		input.ConsumedAt = &consumedAt
	}
	return input, nil
}

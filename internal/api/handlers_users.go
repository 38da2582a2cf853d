package api

import (
	"github.com/fitapp/fitapp/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	page, err := services.ParsePage(c.Query("skip"), c.Query("limit"))
	if err != nil {
		return respondServiceError(c, err)
	}

	users, err := handler.services(c).accounts.ListUsers(page)
	if err != nil {
		return respondServiceError(c, err)
	}

	response := make([]userSummaryResponse, 0, len(users))
	for _, user := range users {
		response = append(response, newUserSummary(user))
	}
	return c.JSON(response)
}

func (handler *Handler) GetUser(c *fiber.Ctx) error {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid_user_id")
	}

	user, profile, err := handler.services(c).accounts.LoadProfile(userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(newProfileResponse(user, profile))
}

// UpdateUser merges the supplied fields and always recomputes the
// recommendation.
func (handler *Handler) UpdateUser(c *fiber.Ctx) error {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid_user_id")
	}

	input := updateUserInput{}
	if err := parseRequest(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid_request_body")
	}

	accounts := handler.services(c).accounts
	profile, macros, err := accounts.UpdateAccount(userID, services.AccountUpdate{
		Email:         input.Email,
		Password:      input.Password,
		Height:        input.Height,
		Weight:        input.Weight,
		Age:           input.Age,
		Gender:        input.Gender,
		Username:      input.Username,
		ActivityLevel: input.ActivityLevel,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := accounts.FindUser(userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":     "User updated successfully",
		"profile":     newProfileResponse(user, profile),
		"recommended": macros,
	})
}

func (handler *Handler) DeleteUser(c *fiber.Ctx) error {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid_user_id")
	}

	if err := handler.services(c).accounts.DeleteAccount(userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func (handler *Handler) GetRecommendation(c *fiber.Ctx) error {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid_user_id")
	}

	macros, err := handler.services(c).accounts.LoadRecommendation(userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(macros)
}

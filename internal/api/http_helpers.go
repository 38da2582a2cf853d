package api

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/fitapp/fitapp/internal/services"
	"github.com/gofiber/fiber/v2"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type serviceErrorMapping struct {
	err    error
	status int
	code   string
}

var serviceErrorMappings = []serviceErrorMapping{
	{err: services.ErrDuplicateEmail, status: fiber.StatusConflict, code: "email_already_registered"},
	{err: services.ErrInvalidCredentials, status: fiber.StatusUnauthorized, code: "invalid_credentials"},
	{err: services.ErrAuthCredentialsInvalid, status: fiber.StatusBadRequest, code: "invalid_credentials_input"},
	{err: services.ErrUserNotFound, status: fiber.StatusNotFound, code: "user_not_found"},
	{err: services.ErrProfileNotFound, status: fiber.StatusNotFound, code: "profile_not_found"},
	{err: services.ErrRecommendationNotFound, status: fiber.StatusNotFound, code: "recommendation_not_found"},
	{err: services.ErrFoodNotFound, status: fiber.StatusNotFound, code: "food_not_found"},
	{err: services.ErrFoodInUse, status: fiber.StatusConflict, code: "food_in_use"},
	{err: services.ErrInvalidHeight, status: fiber.StatusBadRequest, code: "invalid_height"},
	{err: services.ErrInvalidWeight, status: fiber.StatusBadRequest, code: "invalid_weight"},
	{err: services.ErrInvalidAge, status: fiber.StatusBadRequest, code: "invalid_age"},
	{err: services.ErrInvalidGender, status: fiber.StatusBadRequest, code: "invalid_gender"},
	{err: services.ErrInvalidUsername, status: fiber.StatusBadRequest, code: "invalid_username"},
	{err: services.ErrInvalidActivityLevel, status: fiber.StatusBadRequest, code: "invalid_activity_level"},
	{err: services.ErrInvalidFoodName, status: fiber.StatusBadRequest, code: "invalid_food_name"},
	{err: services.ErrInvalidFoodMacros, status: fiber.StatusBadRequest, code: "invalid_food_macros"},
	{err: services.ErrInvalidSearchQuery, status: fiber.StatusBadRequest, code: "invalid_search_query"},
	{err: services.ErrInvalidGrams, status: fiber.StatusBadRequest, code: "invalid_grams"},
	{err: services.ErrConsumptionDateInvalid, status: fiber.StatusBadRequest, code: "invalid_consumption_date"},
	{err: services.ErrConsumptionStartDateInvalid, status: fiber.StatusBadRequest, code: "invalid_start_date"},
	{err: services.ErrConsumptionEndDateInvalid, status: fiber.StatusBadRequest, code: "invalid_end_date"},
	{err: services.ErrInvalidPage, status: fiber.StatusBadRequest, code: "invalid_paging"},
}

// apiError writes the JSON error body. code is stable; message follows the
// request language.
func apiError(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(errorResponse{
		Error:   code,
		Message: localizedMessage(c, code),
	})
}

func serviceErrorStatus(err error) (int, string) {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.err) {
			return mapping.status, mapping.code
		}
	}
	return fiber.StatusInternalServerError, "internal_error"
}

func respondServiceError(c *fiber.Ctx, err error) error {
	status, code := serviceErrorStatus(err)
	if status >= fiber.StatusInternalServerError {
		log.Printf("request %s >> %d | %s | %s | error: %v", currentRequestID(c), status, c.Method(), c.Path(), err)
	}
	return apiError(c, status, code)
}

// ErrorHandler renders errors that escape handlers, recovered panics
// included, in the JSON error shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "internal_error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		switch {
		case status == fiber.StatusNotFound:
			code = "not_found"
		case status < fiber.StatusInternalServerError:
			code = "invalid_request_body"
		}
	}

	if status >= fiber.StatusInternalServerError {
		log.Printf("request %s >> %d | %s | %s | error: %v", currentRequestID(c), status, c.Method(), c.Path(), err)
	}
	return apiError(c, status, code)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

// parseRequest fills payload from the JSON or form body, or from the query
// string when the body is empty.
func parseRequest(c *fiber.Ctx, payload any) error {
	if len(c.Body()) == 0 {
		return c.QueryParser(payload)
	}
	return c.BodyParser(payload)
}

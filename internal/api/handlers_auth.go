package api

import (
	"errors"
	"math"
	"strconv"

	"github.com/fitapp/fitapp/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := parseRequest(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid_request_body")
	}

	user, err := handler.services(c).accounts.Register(services.RegistrationInput{
		Email:    input.Email,
		Password: input.Password,
		Profile: services.ProfileInput{
			Height:        input.Height,
			Weight:        input.Weight,
			Age:           input.Age,
			Gender:        input.Gender,
			Username:      input.Username,
			ActivityLevel: input.ActivityLevel,
		},
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user_id": user.ID,
	})
}

// Login checks the password only; no token or session is issued. Failed
// attempts are throttled per client address.
func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if wait := handler.loginLimiter.retryAfter(limiterKey, now); wait > 0 {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return apiError(c, fiber.StatusTooManyRequests, "too_many_login_attempts")
	}

	input := loginInput{}
	if err := parseRequest(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid_request_body")
	}

	user, err := handler.services(c).accounts.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.addFailure(limiterKey, now)
		}
		return respondServiceError(c, err)
	}

	handler.loginLimiter.reset(limiterKey)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user_id": user.ID,
	})
}

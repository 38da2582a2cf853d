package api

import (
	"errors"
	"time"

	"github.com/fitapp/fitapp/internal/i18n"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	defaultLoginAttemptLimit  = 10
	defaultLoginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	db           *gorm.DB
	location     *time.Location
	i18n         *i18n.Manager
	passwordCost int
	loginLimiter *attemptLimiter
	now          func() time.Time
}

type HandlerOptions struct {
	Location           *time.Location
	PasswordCost       int
	LoginAttemptLimit  int
	LoginAttemptWindow time.Duration
}

func NewHandler(database *gorm.DB, i18nManager *i18n.Manager, options HandlerOptions) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}

	location := options.Location
	if location == nil {
		location = time.UTC
	}
	limit := options.LoginAttemptLimit
	if limit <= 0 {
		limit = defaultLoginAttemptLimit
	}
	window := options.LoginAttemptWindow
	if window <= 0 {
		window = defaultLoginAttemptWindow
	}

	return &Handler{
		db:           database,
		location:     location,
		i18n:         i18nManager,
		passwordCost: options.PasswordCost,
		loginLimiter: newAttemptLimiter(limit, window),
		now:          time.Now,
	}, nil
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not_found")
}

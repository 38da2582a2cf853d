package api

import (
	"log"
	"strings"

	"github.com/fitapp/fitapp/internal/i18n"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	requestIDHeader     = "X-Request-ID"
	contextRequestIDKey = "requestid"
	contextLanguageKey  = "language"
	contextMessagesKey  = "messages"
	contextServicesKey  = "services"
)

// RequestID tags every request with a UUID. A well-formed incoming
// X-Request-ID is kept so callers can correlate logs.
func RequestID(c *fiber.Ctx) error {
	requestID := strings.TrimSpace(c.Get(requestIDHeader))
	if _, err := uuid.Parse(requestID); err != nil || requestID == "" {
		generated, err := uuid.NewRandom()
		if err != nil {
			log.Printf("generate request id: %v", err)
			return apiError(c, fiber.StatusInternalServerError, "internal_error")
		}
		requestID = generated.String()
	}

	c.Locals(contextRequestIDKey, requestID)
	c.Set(requestIDHeader, requestID)
	return c.Next()
}

func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	c.Locals(contextLanguageKey, handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage)))
	c.Locals(contextMessagesKey, handler.i18n)
	return c.Next()
}

func currentRequestID(c *fiber.Ctx) string {
	requestID, _ := c.Locals(contextRequestIDKey).(string)
	return requestID
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}

// localizedMessage resolves an error code for the request language. Requests
// that bypassed the language middleware get the code back.
func localizedMessage(c *fiber.Ctx, code string) string {
	manager, ok := c.Locals(contextMessagesKey).(*i18n.Manager)
	if !ok || manager == nil {
		return code
	}
	key := "error." + code
	if message := manager.Translate(currentLanguage(c), key); message != key {
		return message
	}
	return code
}

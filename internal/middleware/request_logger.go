package middleware

import (
	"time"

	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	// RequestIDKey is the fiber.Ctx local holding the request ID.
	RequestIDKey = "request_id"
	// RequestIDHeader is read from the request when present and always set
	// on the response.
	RequestIDHeader = "X-Request-ID"
)

// RequestLogger assigns a request ID and logs every HTTP request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = util.NewULID()
		}
		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDHeader, requestID)

		err := c.Next()
		if err != nil {
			// Run the error handler now so the logged status is the one sent.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.Get().Info("HTTP Request",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return nil
	}
}

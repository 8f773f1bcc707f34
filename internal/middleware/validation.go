package middleware

import (
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidatedURLKey is the fiber.Ctx local holding the validated *dto.URLRequest.
const ValidatedURLKey = "validated_url"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateURLBody parses a {"url": "..."} body. A missing or malformed body
// and a blank url are rejected with INVALID_INPUT before the handler runs.
func (vm *ValidationMiddleware) ValidateURLBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(c.Body()) == 0 {
			return domain.NewInvalidInputError("Request body is required")
		}

		var req dto.URLRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.NewError(domain.CodeInvalidInput, "Invalid request body", err)
		}

		if err := vm.validator.ValidateURLRequest(&req); err != nil {
			return err // This will be handled by ErrorHandler
		}

		c.Locals(ValidatedURLKey, &req)
		return c.Next()
	}
}

// ValidatedURL returns the request stored by ValidateURLBody.
func ValidatedURL(c *fiber.Ctx) (*dto.URLRequest, bool) {
	req, ok := c.Locals(ValidatedURLKey).(*dto.URLRequest)
	return req, ok
}

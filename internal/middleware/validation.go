package middleware

import (
	"english-placement/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// LocalSampleRequest is the Locals key of the validated *dto.SampleRequest
const LocalSampleRequest = "validated_sample_request"

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

// ValidateSampleParams validates mode, total and limit query parameters
func (vm *ValidationMiddleware) ValidateSampleParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, errors := vm.validator.ParseSampleQuery(c.Query("mode"), c.Query("total"), c.Query("limit"))
		if len(errors) > 0 {
			return errors // This will be handled by ErrorHandler
		}

		// Store validated value in context for handlers to use
		c.Locals(LocalSampleRequest, req)
		return c.Next()
	}
}

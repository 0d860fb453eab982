package middleware

import (
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Fiber-level errors (bad routes,
// body limits) keep their status; everything else becomes the opaque 500 body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok && e.Code < fiber.StatusInternalServerError {
		return c.Status(e.Code).JSON(fiber.Map{"message": e.Message})
	}
	log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Msg("Unhandled error")
	return response.ServerError(c)
}

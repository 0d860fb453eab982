// Package response provides the handful of response shapes this API promises:
// plain {"error": ...} for rejected input, {"message": ...} for not-found and
// delete acknowledgements, and an opaque text body for server failures.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// BadRequest sends 400 with a machine-readable field-level message.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

// Conflict sends 409 for uniqueness violations.
func Conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": message})
}

// NotFound sends 404 with a short message naming the resource.
func NotFound(c *fiber.Ctx, resource string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": resource + " not found"})
}

// Removed sends the delete acknowledgement ({"message": "<Resource> removed"}).
func Removed(c *fiber.Ctx, resource string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": resource + " removed"})
}

// Unauthorized sends 401 for a missing or invalid credential.
func Unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": message})
}

// Forbidden sends 403 for an authenticated caller without the admin role.
func Forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": message})
}

// ServerError sends the opaque 500 body. No internal detail reaches the client.
func ServerError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).SendString("Server Error")
}

package admin

import (
	"errors"

	"bms-backend/internal/auth"
	"bms-backend/internal/middleware"
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *auth.Service
}

// POST /api/admin/login — issues the dashboard bearer token
func (h *Handlers) Login(c *fiber.Ctx) error {
	var body auth.LoginInput
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	account, token, err := h.Service.Login(c.Context(), body)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailPasswordRequired):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			return response.Unauthorized(c, err.Error())
		default:
			return response.ServerError(c)
		}
	}
	return c.JSON(fiber.Map{"token": token, "admin": account})
}

// GET /api/admin/me — echoes the authenticated identity
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims := middleware.GetAdmin(c)
	if claims == nil {
		return response.Unauthorized(c, "Not authorized")
	}
	return c.JSON(fiber.Map{
		"id":    claims.AdminID,
		"name":  claims.Name,
		"email": claims.Email,
		"role":  claims.Role,
	})
}

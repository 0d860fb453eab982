package offers

import (
	"errors"

	offersvc "bms-backend/internal/application/offers"
	"bms-backend/internal/pkg/apperrors"
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *offersvc.Service
}

// POST /api/offers — admin authoring, 201 with the stored record
func (h *Handlers) CreateOffer(c *fiber.Ctx) error {
	var body struct {
		Title       string   `json:"title"`
		Discount    string   `json:"discount"`
		ValidUntil  string   `json:"validUntil"`
		Description string   `json:"description"`
		Code        string   `json:"code"`
		Conditions  []string `json:"conditions"`
		IsActive    *bool    `json:"isActive"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	offer, err := h.Service.Create(c.Context(), offersvc.CreateOfferInput{
		Title:       body.Title,
		Discount:    body.Discount,
		ValidUntil:  body.ValidUntil,
		Description: body.Description,
		Code:        body.Code,
		Conditions:  body.Conditions,
		IsActive:    body.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			return response.BadRequest(c, apperrors.Detail(err))
		case errors.Is(err, apperrors.ErrConflict):
			return response.Conflict(c, apperrors.Detail(err))
		default:
			return response.ServerError(c)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(offer)
}

// GET /api/offers — admin, newest-first array
func (h *Handlers) GetOffers(c *fiber.Ctx) error {
	offers, err := h.Service.List(c.Context())
	if err != nil {
		return response.ServerError(c)
	}
	return c.JSON(offers)
}

// GET /api/offers/active — public, filtered at read time
func (h *Handlers) GetActiveOffers(c *fiber.Ctx) error {
	offers, err := h.Service.ListActive(c.Context())
	if err != nil {
		return response.ServerError(c)
	}
	return c.JSON(offers)
}

// PUT /api/offers/:id — admin partial update
func (h *Handlers) UpdateOffer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Offer")
	}
	var body struct {
		Title       *string   `json:"title"`
		Discount    *string   `json:"discount"`
		ValidUntil  *string   `json:"validUntil"`
		Description *string   `json:"description"`
		Code        *string   `json:"code"`
		Conditions  *[]string `json:"conditions"`
		IsActive    *bool     `json:"isActive"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	offer, err := h.Service.UpdateByID(c.Context(), id, offersvc.UpdateOfferInput{
		Title:       body.Title,
		Discount:    body.Discount,
		ValidUntil:  body.ValidUntil,
		Description: body.Description,
		Code:        body.Code,
		Conditions:  body.Conditions,
		IsActive:    body.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return response.NotFound(c, "Offer")
		case errors.Is(err, apperrors.ErrValidation):
			return response.BadRequest(c, apperrors.Detail(err))
		case errors.Is(err, apperrors.ErrConflict):
			return response.Conflict(c, apperrors.Detail(err))
		default:
			return response.ServerError(c)
		}
	}
	return c.JSON(offer)
}

// DELETE /api/offers/:id — admin hard delete
func (h *Handlers) DeleteOffer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Offer")
	}
	if err := h.Service.DeleteByID(c.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return response.NotFound(c, "Offer")
		}
		return response.ServerError(c)
	}
	return response.Removed(c, "Offer")
}

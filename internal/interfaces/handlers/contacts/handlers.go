package contacts

import (
	"context"
	"errors"

	contactsvc "bms-backend/internal/application/contacts"
	"bms-backend/internal/application/emails"
	"bms-backend/internal/pkg/apperrors"
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *contactsvc.Service
	Mailer  emails.Sender
}

// POST /api/contacts — public submission, 201 {success, contact}
func (h *Handlers) CreateContact(c *fiber.Ctx) error {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	contact, err := h.Service.Create(c.Context(), contactsvc.CreateContactInput{
		Name:    body.Name,
		Email:   body.Email,
		Subject: body.Subject,
		Message: body.Message,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return response.BadRequest(c, apperrors.Detail(err))
		}
		return response.ServerError(c)
	}

	// Notification is best-effort; the submission already succeeded.
	if h.Mailer != nil {
		n := emails.ContactNotification{
			Name:    contact.Name,
			Email:   contact.Email,
			Subject: contact.Subject,
			Message: contact.Message,
		}
		emails.Dispatch("contact", func(ctx context.Context) error {
			return h.Mailer.SendContactNotification(ctx, n)
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "contact": contact})
}

// GET /api/contacts — admin, newest-first array
func (h *Handlers) GetContacts(c *fiber.Ctx) error {
	contacts, err := h.Service.List(c.Context())
	if err != nil {
		return response.ServerError(c)
	}
	return c.JSON(contacts)
}

// PUT /api/contacts/:id — admin status update
func (h *Handlers) UpdateContactStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Contact")
	}
	var body struct {
		Status *string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	contact, err := h.Service.UpdateByID(c.Context(), id, contactsvc.UpdateContactInput{Status: body.Status})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return response.NotFound(c, "Contact")
		case errors.Is(err, apperrors.ErrValidation):
			return response.BadRequest(c, apperrors.Detail(err))
		default:
			return response.ServerError(c)
		}
	}
	return c.JSON(contact)
}

// DELETE /api/contacts/:id — admin hard delete
func (h *Handlers) DeleteContact(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Contact")
	}
	if err := h.Service.DeleteByID(c.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return response.NotFound(c, "Contact")
		}
		return response.ServerError(c)
	}
	return response.Removed(c, "Contact")
}

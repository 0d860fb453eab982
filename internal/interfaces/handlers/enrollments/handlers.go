package enrollments

import (
	"context"
	"errors"

	"bms-backend/internal/application/emails"
	enrollsvc "bms-backend/internal/application/enrollments"
	"bms-backend/internal/pkg/apperrors"
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *enrollsvc.Service
	Mailer  emails.Sender
}

// POST /api/enrollments — public submission, 201 {success, message, enrollment}
func (h *Handlers) CreateEnrollment(c *fiber.Ctx) error {
	var body struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Education string `json:"education"`
		Course    string `json:"course"`
		StartDate string `json:"startDate"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	enrollment, err := h.Service.Create(c.Context(), enrollsvc.CreateEnrollmentInput{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Phone:     body.Phone,
		Education: body.Education,
		Course:    body.Course,
		StartDate: body.StartDate,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return response.BadRequest(c, apperrors.Detail(err))
		}
		return response.ServerError(c)
	}

	if h.Mailer != nil {
		n := emails.EnrollmentNotification{
			FirstName: enrollment.FirstName,
			LastName:  enrollment.LastName,
			Email:     enrollment.Email,
			Phone:     enrollment.Phone,
			Education: enrollment.Education,
			Course:    enrollment.Course,
			StartDate: body.StartDate,
		}
		emails.Dispatch("enrollment", func(ctx context.Context) error {
			return h.Mailer.SendEnrollmentNotification(ctx, n)
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"message":    "Enrollment submitted successfully",
		"enrollment": enrollment,
	})
}

// GET /api/enrollments — admin, newest-first array
func (h *Handlers) GetEnrollments(c *fiber.Ctx) error {
	enrollments, err := h.Service.List(c.Context())
	if err != nil {
		return response.ServerError(c)
	}
	return c.JSON(enrollments)
}

// PUT /api/enrollments/:id — admin status update
func (h *Handlers) UpdateEnrollmentStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Enrollment")
	}
	var body struct {
		Status *string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	enrollment, err := h.Service.UpdateByID(c.Context(), id, enrollsvc.UpdateEnrollmentInput{Status: body.Status})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return response.NotFound(c, "Enrollment")
		case errors.Is(err, apperrors.ErrValidation):
			return response.BadRequest(c, apperrors.Detail(err))
		default:
			return response.ServerError(c)
		}
	}
	return c.JSON(enrollment)
}

// DELETE /api/enrollments/:id — admin hard delete
func (h *Handlers) DeleteEnrollment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Enrollment")
	}
	if err := h.Service.DeleteByID(c.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return response.NotFound(c, "Enrollment")
		}
		return response.ServerError(c)
	}
	return response.Removed(c, "Enrollment")
}

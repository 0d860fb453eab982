package certificates

import (
	"errors"

	certsvc "bms-backend/internal/application/certificates"
	"bms-backend/internal/models"
	"bms-backend/internal/pkg/apperrors"
	"bms-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *certsvc.Service
}

// verifyResponse flattens the certificate fields next to the valid flag.
type verifyResponse struct {
	Valid bool `json:"valid"`
	models.Certificate
}

// POST /api/certificates — admin authoring, 201 with the stored record
func (h *Handlers) CreateCertificate(c *fiber.Ctx) error {
	var body struct {
		CertificateID  string   `json:"certificateId"`
		StudentName    string   `json:"studentName"`
		CourseName     string   `json:"courseName"`
		CompletionDate string   `json:"completionDate"`
		IssueDate      string   `json:"issueDate"`
		Grade          string   `json:"grade"`
		Instructor     string   `json:"instructor"`
		Duration       string   `json:"duration"`
		Skills         []string `json:"skills"`
		IsValid        *bool    `json:"isValid"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	cert, err := h.Service.Create(c.Context(), certsvc.CreateCertificateInput{
		CertificateID:  body.CertificateID,
		StudentName:    body.StudentName,
		CourseName:     body.CourseName,
		CompletionDate: body.CompletionDate,
		IssueDate:      body.IssueDate,
		Grade:          body.Grade,
		Instructor:     body.Instructor,
		Duration:       body.Duration,
		Skills:         body.Skills,
		IsValid:        body.IsValid,
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
	return c.Status(fiber.StatusCreated).JSON(cert)
}

// GET /api/certificates — admin, newest-first array
func (h *Handlers) GetCertificates(c *fiber.Ctx) error {
	certs, err := h.Service.List(c.Context())
	if err != nil {
		return response.ServerError(c)
	}
	return c.JSON(certs)
}

// GET /api/certificates/verify/:certificateId — public verification.
// An invalidated certificate and an unknown id return the identical body.
func (h *Handlers) VerifyCertificate(c *fiber.Ctx) error {
	cert, err := h.Service.VerifyByCertificateID(c.Context(), c.Params("certificateId"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"valid":   false,
				"message": "Certificate not found or invalid",
			})
		}
		return response.ServerError(c)
	}
	return c.JSON(verifyResponse{Valid: true, Certificate: *cert})
}

// PUT /api/certificates/:id — admin partial update
func (h *Handlers) UpdateCertificate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Certificate")
	}
	var body struct {
		CertificateID  *string   `json:"certificateId"`
		StudentName    *string   `json:"studentName"`
		CourseName     *string   `json:"courseName"`
		CompletionDate *string   `json:"completionDate"`
		IssueDate      *string   `json:"issueDate"`
		Grade          *string   `json:"grade"`
		Instructor     *string   `json:"instructor"`
		Duration       *string   `json:"duration"`
		Skills         *[]string `json:"skills"`
		IsValid        *bool     `json:"isValid"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	cert, err := h.Service.UpdateByID(c.Context(), id, certsvc.UpdateCertificateInput{
		CertificateID:  body.CertificateID,
		StudentName:    body.StudentName,
		CourseName:     body.CourseName,
		CompletionDate: body.CompletionDate,
		IssueDate:      body.IssueDate,
		Grade:          body.Grade,
		Instructor:     body.Instructor,
		Duration:       body.Duration,
		Skills:         body.Skills,
		IsValid:        body.IsValid,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return response.NotFound(c, "Certificate")
		case errors.Is(err, apperrors.ErrValidation):
			return response.BadRequest(c, apperrors.Detail(err))
		case errors.Is(err, apperrors.ErrConflict):
			return response.Conflict(c, apperrors.Detail(err))
		default:
			return response.ServerError(c)
		}
	}
	return c.JSON(cert)
}

// DELETE /api/certificates/:id — admin hard delete
func (h *Handlers) DeleteCertificate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, "Certificate")
	}
	if err := h.Service.DeleteByID(c.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return response.NotFound(c, "Certificate")
		}
		return response.ServerError(c)
	}
	return response.Removed(c, "Certificate")
}

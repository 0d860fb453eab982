package enrollments

import (
	"context"
	"fmt"

	"bms-backend/internal/models"
	"bms-backend/internal/pkg/apperrors"
	"bms-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateEnrollmentInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Education string
	Course    string
	StartDate string
}

// UpdateEnrollmentInput is the whitelisted patch for an enrollment: dashboard
// callers only move the application status.
type UpdateEnrollmentInput struct {
	Status *string
}

// Create validates and persists an enrollment application.
func (s *Service) Create(ctx context.Context, in CreateEnrollmentInput) (*models.Enrollment, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" || in.Course == "" {
		return nil, apperrors.Validationf("Missing required fields")
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, apperrors.Validationf("Invalid email format")
	}

	enrollment := &models.Enrollment{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Education: in.Education,
		Course:    in.Course,
		Status:    models.EnrollmentStatusPending,
	}
	if in.StartDate != "" {
		t, err := validation.ParseDate(in.StartDate)
		if err != nil {
			return nil, apperrors.Validationf("Invalid start date")
		}
		enrollment.StartDate = &t
	}

	if err := s.DB.WithContext(ctx).Create(enrollment).Error; err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	return enrollment, nil
}

// List returns all enrollments, newest first.
func (s *Service) List(ctx context.Context) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// UpdateByID applies the status patch and returns the updated record. Only the
// latest transition is retained.
func (s *Service) UpdateByID(ctx context.Context, id uuid.UUID, patch UpdateEnrollmentInput) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&enrollment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}

	if patch.Status != nil {
		if !models.IsValidEnrollmentStatus(*patch.Status) {
			return nil, apperrors.Validationf("Invalid status: %s", *patch.Status)
		}
		if err := s.DB.WithContext(ctx).Model(&enrollment).Update("status", *patch.Status).Error; err != nil {
			return nil, fmt.Errorf("update enrollment: %w", err)
		}
		enrollment.Status = *patch.Status
	}
	return &enrollment, nil
}

// DeleteByID removes the record permanently.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Enrollment{})
	if res.Error != nil {
		return fmt.Errorf("delete enrollment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

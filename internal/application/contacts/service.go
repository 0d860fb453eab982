package contacts

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

type CreateContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// UpdateContactInput is the whitelisted patch for a contact: dashboard callers
// only move the inbox status.
type UpdateContactInput struct {
	Status *string
}

// Create validates and persists a contact submission. Validation fails before
// any storage call.
func (s *Service) Create(ctx context.Context, in CreateContactInput) (*models.Contact, error) {
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return nil, apperrors.Validationf("Missing required fields")
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, apperrors.Validationf("Invalid email format")
	}

	contact := &models.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
		Status:  models.ContactStatusUnread,
	}
	if err := s.DB.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

// List returns all contacts, newest first.
func (s *Service) List(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// UpdateByID applies the status patch and returns the updated record.
func (s *Service) UpdateByID(ctx context.Context, id uuid.UUID, patch UpdateContactInput) (*models.Contact, error) {
	var contact models.Contact
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&contact).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}

	if patch.Status != nil {
		if !models.IsValidContactStatus(*patch.Status) {
			return nil, apperrors.Validationf("Invalid status: %s", *patch.Status)
		}
		if err := s.DB.WithContext(ctx).Model(&contact).Update("status", *patch.Status).Error; err != nil {
			return nil, fmt.Errorf("update contact: %w", err)
		}
		contact.Status = *patch.Status
	}
	return &contact, nil
}

// DeleteByID removes the record permanently.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Contact{})
	if res.Error != nil {
		return fmt.Errorf("delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package offers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bms-backend/internal/models"
	"bms-backend/internal/pkg/apperrors"
	"bms-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateOfferInput struct {
	Title       string
	Discount    string
	ValidUntil  string
	Description string
	Code        string
	Conditions  []string
	IsActive    *bool
}

// UpdateOfferInput is the whitelisted partial update: any subset of fields may
// be replaced, but never the identifier or creation timestamp.
type UpdateOfferInput struct {
	Title       *string
	Discount    *string
	ValidUntil  *string
	Description *string
	Code        *string
	Conditions  *[]string
	IsActive    *bool
}

// Create validates and persists an offer. The discount code must be unique
// across all stored offers.
func (s *Service) Create(ctx context.Context, in CreateOfferInput) (*models.Offer, error) {
	if in.Title == "" || in.Discount == "" || in.ValidUntil == "" || in.Description == "" || in.Code == "" {
		return nil, apperrors.Validationf("Missing required fields")
	}
	validUntil, err := validation.ParseDate(in.ValidUntil)
	if err != nil {
		return nil, apperrors.Validationf("Invalid validUntil date")
	}

	if err := s.checkCodeFree(ctx, in.Code, uuid.Nil); err != nil {
		return nil, err
	}

	offer := &models.Offer{
		Title:       in.Title,
		Discount:    in.Discount,
		ValidUntil:  validUntil,
		Description: in.Description,
		Code:        in.Code,
		IsActive:    true,
	}
	if in.IsActive != nil {
		offer.IsActive = *in.IsActive
	}
	if len(in.Conditions) > 0 {
		offer.Conditions = mustJSON(in.Conditions)
	}

	if err := s.DB.WithContext(ctx).Create(offer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflictf("Offer code already exists")
		}
		return nil, fmt.Errorf("create offer: %w", err)
	}
	return offer, nil
}

// List returns all offers, newest first.
func (s *Service) List(ctx context.Context) ([]models.Offer, error) {
	var offers []models.Offer
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	return offers, nil
}

// ListActive returns offers with isActive set and validUntil at or after now,
// newest first. Activity is computed at read time, never stored.
func (s *Service) ListActive(ctx context.Context) ([]models.Offer, error) {
	var offers []models.Offer
	if err := s.DB.WithContext(ctx).
		Where("is_active = ? AND valid_until >= ?", true, time.Now()).
		Order("created_at DESC").
		Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("list active offers: %w", err)
	}
	return offers, nil
}

// UpdateByID applies the patch and returns the updated record.
func (s *Service) UpdateByID(ctx context.Context, id uuid.UUID, patch UpdateOfferInput) (*models.Offer, error) {
	var offer models.Offer
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&offer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find offer: %w", err)
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Discount != nil {
		updates["discount"] = *patch.Discount
	}
	if patch.ValidUntil != nil {
		t, err := validation.ParseDate(*patch.ValidUntil)
		if err != nil {
			return nil, apperrors.Validationf("Invalid validUntil date")
		}
		updates["valid_until"] = t
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Code != nil && *patch.Code != offer.Code {
		if err := s.checkCodeFree(ctx, *patch.Code, offer.ID); err != nil {
			return nil, err
		}
		updates["code"] = *patch.Code
	}
	if patch.Conditions != nil {
		updates["conditions"] = mustJSON(*patch.Conditions)
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&offer).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.Conflictf("Offer code already exists")
			}
			return nil, fmt.Errorf("update offer: %w", err)
		}
		if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&offer).Error; err != nil {
			return nil, fmt.Errorf("reload offer: %w", err)
		}
	}
	return &offer, nil
}

// DeleteByID removes the record permanently.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Offer{})
	if res.Error != nil {
		return fmt.Errorf("delete offer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// checkCodeFree reports ErrConflict if another offer already holds the code.
func (s *Service) checkCodeFree(ctx context.Context, code string, exclude uuid.UUID) error {
	var count int64
	q := s.DB.WithContext(ctx).Model(&models.Offer{}).Where("code = ?", code)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("check offer code: %w", err)
	}
	if count > 0 {
		return apperrors.Conflictf("Offer code already exists")
	}
	return nil
}

func mustJSON(v interface{}) datatypes.JSON {
	bs, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(bs)
}

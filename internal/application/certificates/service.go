package certificates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bms-backend/internal/models"
	"bms-backend/internal/pkg/apperrors"
	"bms-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
	// VerifyBaseURL is the base of derived credential links, e.g.
	// https://credentials.bmsacademy.com
	VerifyBaseURL string
}

type CreateCertificateInput struct {
	CertificateID  string // optional; generated from the course name when empty
	StudentName    string
	CourseName     string
	CompletionDate string
	IssueDate      string
	Grade          string
	Instructor     string
	Duration       string
	Skills         []string
	IsValid        *bool
}

// UpdateCertificateInput is the whitelisted partial update. The record id,
// creation timestamp and derived credential URL are never directly patchable;
// changing the certificate id re-derives the URL.
type UpdateCertificateInput struct {
	CertificateID  *string
	StudentName    *string
	CourseName     *string
	CompletionDate *string
	IssueDate      *string
	Grade          *string
	Instructor     *string
	Duration       *string
	Skills         *[]string
	IsValid        *bool
}

func (s *Service) credentialURL(certificateID string) string {
	return fmt.Sprintf("%s/verify/%s", s.VerifyBaseURL, certificateID)
}

// Create validates and persists a certificate. The certificate id must be
// unique; when omitted it is generated from the course name.
func (s *Service) Create(ctx context.Context, in CreateCertificateInput) (*models.Certificate, error) {
	if in.StudentName == "" || in.CourseName == "" || in.CompletionDate == "" || in.IssueDate == "" ||
		in.Grade == "" || in.Instructor == "" || in.Duration == "" {
		return nil, apperrors.Validationf("Missing required fields")
	}
	completionDate, err := validation.ParseDate(in.CompletionDate)
	if err != nil {
		return nil, apperrors.Validationf("Invalid completion date")
	}
	issueDate, err := validation.ParseDate(in.IssueDate)
	if err != nil {
		return nil, apperrors.Validationf("Invalid issue date")
	}

	certificateID := in.CertificateID
	if certificateID == "" {
		certificateID = GenerateCertificateID(in.CourseName)
	}
	if err := s.checkCertificateIDFree(ctx, certificateID, uuid.Nil); err != nil {
		return nil, err
	}

	cert := &models.Certificate{
		CertificateID:  certificateID,
		StudentName:    in.StudentName,
		CourseName:     in.CourseName,
		CompletionDate: completionDate,
		IssueDate:      issueDate,
		Grade:          in.Grade,
		Instructor:     in.Instructor,
		Duration:       in.Duration,
		CredentialURL:  s.credentialURL(certificateID),
		IsValid:        true,
	}
	if in.IsValid != nil {
		cert.IsValid = *in.IsValid
	}
	if len(in.Skills) > 0 {
		cert.Skills = mustJSON(in.Skills)
	}

	if err := s.DB.WithContext(ctx).Create(cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflictf("Certificate ID already exists")
		}
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	return cert, nil
}

// List returns all certificates, newest first.
func (s *Service) List(ctx context.Context) ([]models.Certificate, error) {
	var certs []models.Certificate
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&certs).Error; err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return certs, nil
}

// VerifyByCertificateID returns the certificate only if it exists and is still
// valid. An invalidated id and a nonexistent id are indistinguishable to the
// caller.
func (s *Service) VerifyByCertificateID(ctx context.Context, certificateID string) (*models.Certificate, error) {
	var cert models.Certificate
	err := s.DB.WithContext(ctx).
		Where("certificate_id = ? AND is_valid = ?", certificateID, true).
		First(&cert).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("verify certificate: %w", err)
	}
	return &cert, nil
}

// UpdateByID applies the patch and returns the updated record.
func (s *Service) UpdateByID(ctx context.Context, id uuid.UUID, patch UpdateCertificateInput) (*models.Certificate, error) {
	var cert models.Certificate
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&cert).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find certificate: %w", err)
	}

	updates := map[string]interface{}{}
	if patch.CertificateID != nil && *patch.CertificateID != cert.CertificateID {
		if err := s.checkCertificateIDFree(ctx, *patch.CertificateID, cert.ID); err != nil {
			return nil, err
		}
		updates["certificate_id"] = *patch.CertificateID
		updates["credential_url"] = s.credentialURL(*patch.CertificateID)
	}
	if patch.StudentName != nil {
		updates["student_name"] = *patch.StudentName
	}
	if patch.CourseName != nil {
		updates["course_name"] = *patch.CourseName
	}
	if patch.CompletionDate != nil {
		t, err := validation.ParseDate(*patch.CompletionDate)
		if err != nil {
			return nil, apperrors.Validationf("Invalid completion date")
		}
		updates["completion_date"] = t
	}
	if patch.IssueDate != nil {
		t, err := validation.ParseDate(*patch.IssueDate)
		if err != nil {
			return nil, apperrors.Validationf("Invalid issue date")
		}
		updates["issue_date"] = t
	}
	if patch.Grade != nil {
		updates["grade"] = *patch.Grade
	}
	if patch.Instructor != nil {
		updates["instructor"] = *patch.Instructor
	}
	if patch.Duration != nil {
		updates["duration"] = *patch.Duration
	}
	if patch.Skills != nil {
		updates["skills"] = mustJSON(*patch.Skills)
	}
	if patch.IsValid != nil {
		updates["is_valid"] = *patch.IsValid
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&cert).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.Conflictf("Certificate ID already exists")
			}
			return nil, fmt.Errorf("update certificate: %w", err)
		}
		if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&cert).Error; err != nil {
			return nil, fmt.Errorf("reload certificate: %w", err)
		}
	}
	return &cert, nil
}

// DeleteByID removes the record permanently.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Certificate{})
	if res.Error != nil {
		return fmt.Errorf("delete certificate: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// checkCertificateIDFree reports ErrConflict if another record holds the id.
func (s *Service) checkCertificateIDFree(ctx context.Context, certificateID string, exclude uuid.UUID) error {
	var count int64
	q := s.DB.WithContext(ctx).Model(&models.Certificate{}).Where("certificate_id = ?", certificateID)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("check certificate id: %w", err)
	}
	if count > 0 {
		return apperrors.Conflictf("Certificate ID already exists")
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

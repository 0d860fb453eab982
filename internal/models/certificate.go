package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Certificate is an issued course-completion credential. Public verification
// looks rows up by CertificateID and only succeeds while IsValid holds.
type Certificate struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CertificateID  string         `gorm:"column:certificate_id;not null;uniqueIndex" json:"certificateId"`
	StudentName    string         `gorm:"column:student_name;not null" json:"studentName"`
	CourseName     string         `gorm:"column:course_name;not null" json:"courseName"`
	CompletionDate time.Time      `gorm:"column:completion_date;not null" json:"completionDate"`
	IssueDate      time.Time      `gorm:"column:issue_date;not null" json:"issueDate"`
	Grade          string         `gorm:"column:grade;not null" json:"grade"`
	Instructor     string         `gorm:"column:instructor;not null" json:"instructor"`
	Duration       string         `gorm:"column:duration;not null" json:"duration"`
	Skills         datatypes.JSON `gorm:"column:skills;type:json" json:"skills,omitempty"`
	CredentialURL  string         `gorm:"column:credential_url" json:"credentialUrl"`
	IsValid        bool           `gorm:"column:is_valid;not null" json:"isValid"`
	CreatedAt      time.Time      `gorm:"column:created_at" json:"createdAt"`
}

func (Certificate) TableName() string {
	return "certificates"
}

// BeforeCreate sets UUID if not set.
func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment statuses, in the order an application normally moves through them.
const (
	EnrollmentStatusPending  = "pending"
	EnrollmentStatusApproved = "approved"
	EnrollmentStatusRejected = "rejected"
	EnrollmentStatusEnrolled = "enrolled"
)

// Enrollment is a public course-enrollment application.
type Enrollment struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FirstName string     `gorm:"column:first_name;not null" json:"firstName"`
	LastName  string     `gorm:"column:last_name;not null" json:"lastName"`
	Email     string     `gorm:"column:email;not null" json:"email"`
	Phone     string     `gorm:"column:phone;not null" json:"phone"`
	Education string     `gorm:"column:education" json:"education,omitempty"`
	Course    string     `gorm:"column:course;not null" json:"course"`
	StartDate *time.Time `gorm:"column:start_date" json:"startDate,omitempty"`
	Status    string     `gorm:"column:status;type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"createdAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// BeforeCreate sets UUID and default status.
func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = EnrollmentStatusPending
	}
	return nil
}

// IsValidEnrollmentStatus reports whether s is a known enrollment status.
func IsValidEnrollmentStatus(s string) bool {
	switch s {
	case EnrollmentStatusPending, EnrollmentStatusApproved, EnrollmentStatusRejected, EnrollmentStatusEnrolled:
		return true
	}
	return false
}

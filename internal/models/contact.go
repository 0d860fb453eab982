package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact statuses tracked by the dashboard inbox.
const (
	ContactStatusUnread  = "unread"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// Contact is a public contact-form submission.
type Contact struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Email     string    `gorm:"column:email;not null" json:"email"`
	Subject   string    `gorm:"column:subject" json:"subject,omitempty"`
	Message   string    `gorm:"column:message;type:text;not null" json:"message"`
	Status    string    `gorm:"column:status;type:varchar(20);not null;default:unread" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Contact) TableName() string {
	return "contacts"
}

// BeforeCreate sets UUID and default status (for DBs without gen_random_uuid).
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = ContactStatusUnread
	}
	return nil
}

// IsValidContactStatus reports whether s is one of the dashboard statuses.
func IsValidContactStatus(s string) bool {
	switch s {
	case ContactStatusUnread, ContactStatusRead, ContactStatusReplied:
		return true
	}
	return false
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Offer is a promotional discount authored by an admin.
// "Currently active" is derived at query time from IsActive and ValidUntil;
// it is never written back to the row.
type Offer struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Discount    string         `gorm:"column:discount;not null" json:"discount"`
	ValidUntil  time.Time      `gorm:"column:valid_until;not null" json:"validUntil"`
	Description string         `gorm:"column:description;type:text;not null" json:"description"`
	Code        string         `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Conditions  datatypes.JSON `gorm:"column:conditions;type:json" json:"conditions,omitempty"`
	IsActive    bool           `gorm:"column:is_active;not null" json:"isActive"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"createdAt"`
}

func (Offer) TableName() string {
	return "offers"
}

// BeforeCreate sets UUID if not set.
func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin is a dashboard operator account. Only accounts with RoleAdmin pass the
// admin guard.
type Admin struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Email        string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         string    `gorm:"column:role;not null;default:admin" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"createdAt"`
}

// RoleAdmin is the role the guard requires on mutating and listing routes.
const RoleAdmin = "admin"

func (Admin) TableName() string {
	return "admins"
}

// BeforeCreate sets UUID if not set.
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

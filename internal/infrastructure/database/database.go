package database

import (
	"bms-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN (Postgres pooler URL).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers (e.g. PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	// TranslateError maps unique violations to gorm.ErrDuplicatedKey, which
	// the offer and certificate services rely on when a duplicate slips past
	// their pre-insert check.
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
}

// AutoMigrate runs migrations for all stored records.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Contact{},
		&models.Enrollment{},
		&models.Offer{},
		&models.Certificate{},
		&models.Admin{},
	)
}

package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes AutoMigrate cannot express.
func MigrateConstraints(db *gorm.DB) error {
	// Duplicate-booking checks filter by contact details, tour title and
	// a non-cancelled status. Keep those lookups off a sequential scan.
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_phone_tour_status
		ON bookings (phone, tour_title, status);
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_email_tour_status
		ON bookings (email, tour_title, status);
	`).Error
	if err != nil {
		return err
	}

	// Reference lookups scan bookings by phone substring.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_phone
		ON bookings (phone);
	`).Error
	if err != nil {
		return err
	}

	return nil
}

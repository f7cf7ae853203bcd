package database

import (
	"tripveda/internal/agents"
	"tripveda/internal/bookings"
	"tripveda/internal/coupons"
	"tripveda/internal/pages"
	"tripveda/internal/tours"
	"tripveda/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&tours.Tour{},
		&tours.GlobalPrice{},
		&agents.Agent{},
		&coupons.Coupon{},
		&bookings.Booking{},
		&pages.Page{},
	)
}

package bookings

import (
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrInvalidPaymentType = errors.New("invalid payment type")
)

// DuplicateBookingError carries the conflicting booking so callers can
// show the customer their existing booking instead of a bare rejection.
type DuplicateBookingError struct {
	Existing *Booking
}

func (e *DuplicateBookingError) Error() string {
	return fmt.Sprintf("an active booking for %q already exists with these contact details (ref %s)",
		e.Existing.TourTitle, e.Existing.ShortRef())
}

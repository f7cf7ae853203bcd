package bookings

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// PaymentType tracks how much of the total has been collected.
type PaymentType string

const (
	PaymentUnpaid  PaymentType = "UNPAID"
	PaymentFull    PaymentType = "FULL"
	PaymentPartial PaymentType = "PARTIAL"
)

func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentUnpaid, PaymentFull, PaymentPartial:
		return true
	}
	return false
}

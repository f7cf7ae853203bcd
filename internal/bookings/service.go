package bookings

import (
	"context"
	"fmt"
	"time"

	"tripveda/internal/pricing"
	"tripveda/internal/tours"
	"tripveda/pkg/logger"

	"github.com/google/uuid"
)

// Notifier dispatches customer notifications. Failures are logged and
// swallowed; they never fail the booking operation that triggered them.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, booking *Booking) error
	SendStatusUpdate(ctx context.Context, booking *Booking) error
}

type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, *tours.QuoteResult, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, req UpdateBookingStatusRequest) (*Booking, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
	LookupBookingByReference(ctx context.Context, phone, ref string) (*Booking, error)
	UnitRates(ctx context.Context, id uuid.UUID) ([]pricing.UnitRate, error)
}

type service struct {
	repo     Repository
	toursSvc tours.Service
	notifier Notifier
	log      *logger.Logger
}

func NewService(repo Repository, toursSvc tours.Service, notifier Notifier, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{repo: repo, toursSvc: toursSvc, notifier: notifier, log: log}
}

func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, *tours.QuoteResult, error) {
	tour, err := s.toursSvc.GetTourBySlug(ctx, req.TourSlug)
	if err != nil {
		return nil, nil, err
	}

	existing, err := s.repo.FindActiveByContactAndTour(ctx, req.Phone, req.Email, tour.Title)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check for duplicate booking: %w", err)
	}
	if existing != nil {
		return nil, nil, &DuplicateBookingError{Existing: existing}
	}

	quote, err := s.toursSvc.Quote(ctx, tour, tours.QuoteRequest{
		Adults:     req.Adults,
		Children:   req.Children,
		Rooms:      req.Rooms,
		RoomType:   req.RoomType,
		Transport:  req.Transport,
		Addons:     req.Addons,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		return nil, nil, err
	}

	booking := &Booking{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		TourTitle:   tour.Title,
		TravelDate:  req.TravelDate,
		Adults:      req.Adults,
		Children:    req.Children,
		Rooms:       req.Rooms,
		RoomType:    req.RoomType,
		Transport:   req.Transport,
		Addons:      req.Addons,
		TotalPrice:  quote.TotalPrice,
		CouponCode:  quote.CouponCode,
		PaymentType: PaymentUnpaid,
		PaidAmount:  0,
		Status:      StatusPending,
	}
	if quote.CouponCode != "" {
		original := quote.OriginalTotal
		booking.OriginalPrice = &original
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), booking.TourTitle, booking.Phone)
	s.notifyAsync("booking_confirmation", booking, s.notifyConfirmation)

	return booking, quote, nil
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *service) ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *service) UpdateBookingStatus(ctx context.Context, id uuid.UUID, req UpdateBookingStatusRequest) (*Booking, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	if req.PaymentType != nil && !req.PaymentType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentType, *req.PaymentType)
	}

	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	previousStatus := booking.Status

	updates := buildPatchUpdates(req)

	if req.Status == StatusConfirmed {
		confirmed, credited, err := s.repo.ConfirmWithSideEffects(ctx, id, updates)
		if err != nil {
			return nil, err
		}
		if !confirmed {
			// Already CONFIRMED: the coupon and commission side effects
			// ran on the first transition, but the patch fields still
			// apply. Payment details recorded against a confirmed
			// booking must not be dropped.
			if patch := buildPatchUpdates(req); len(patch) > 0 {
				if err := s.repo.ApplyUpdates(ctx, id, patch); err != nil {
					return nil, fmt.Errorf("failed to update booking: %w", err)
				}
			}
		}
		if credited {
			if updated, err := s.repo.GetByID(ctx, id); err == nil && updated != nil &&
				updated.AgentID != nil && updated.CommissionAmount != nil {
				s.log.LogCommissionCredited(ctx, id.String(), updated.AgentID.String(), *updated.CommissionAmount)
			}
		}
	} else {
		updates["status"] = req.Status
		if err := s.repo.ApplyUpdates(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update booking: %w", err)
		}
	}

	updated, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.Status != previousStatus {
		s.log.LogBookingStatusChanged(ctx, id.String(), string(previousStatus), string(updated.Status))
		s.notifyAsync("status_update", updated, s.notifyStatusUpdate)
	}

	return updated, nil
}

// DeleteBooking is an idempotent hard delete: removing a booking that is
// already gone succeeds.
func (s *service) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

func (s *service) LookupBookingByReference(ctx context.Context, phone, ref string) (*Booking, error) {
	candidates, err := s.repo.SearchByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to search bookings: %w", err)
	}

	for i := range candidates {
		if candidates[i].MatchesRef(ref) {
			return &candidates[i], nil
		}
	}
	return nil, ErrBookingNotFound
}

func (s *service) UnitRates(ctx context.Context, id uuid.UUID) ([]pricing.UnitRate, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	tour, err := s.toursSvc.GetTourByTitle(ctx, booking.TourTitle)
	if err != nil {
		return nil, err
	}

	sel := pricing.Selection{
		BasePrice: tour.BasePrice,
		Nights:    tour.Nights,
		Adults:    booking.Adults,
		Children:  booking.Children,
		Rooms:     booking.Rooms,
		RoomType:  booking.RoomType,
		Transport: booking.Transport,
		Addons:    booking.Addons,
	}
	return s.toursSvc.UnitRates(ctx, tour, sel)
}

func buildPatchUpdates(req UpdateBookingStatusRequest) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.PaymentType != nil {
		updates["payment_type"] = *req.PaymentType
	}
	if req.PaidAmount != nil {
		updates["paid_amount"] = *req.PaidAmount
	}
	if req.AdminNotes != nil {
		updates["admin_notes"] = *req.AdminNotes
	}
	if req.Hotel != nil {
		updates["hotel_name"] = req.Hotel.Name
		updates["hotel_address"] = req.Hotel.Address
		updates["hotel_phone"] = req.Hotel.Phone
		updates["hotel_notes"] = req.Hotel.Notes
	}
	return updates
}

func (s *service) notifyAsync(kind string, booking *Booking, send func(context.Context, *Booking) error) {
	if s.notifier == nil {
		return
	}
	snapshot := *booking
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := send(ctx, &snapshot); err != nil {
			s.log.LogNotificationFailed(ctx, kind, snapshot.ID.String(), err)
		}
	}()
}

func (s *service) notifyConfirmation(ctx context.Context, b *Booking) error {
	return s.notifier.SendBookingConfirmation(ctx, b)
}

func (s *service) notifyStatusUpdate(ctx context.Context, b *Booking) error {
	return s.notifier.SendStatusUpdate(ctx, b)
}

package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripveda/internal/pricing"
	"tripveda/internal/tours"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	createFn            func(ctx context.Context, booking *Booking) error
	getByIDFn           func(ctx context.Context, id uuid.UUID) (*Booking, error)
	updateFn            func(ctx context.Context, booking *Booking) error
	deleteFn            func(ctx context.Context, id uuid.UUID) error
	findActiveFn        func(ctx context.Context, phone, email, tourTitle string) (*Booking, error)
	searchByPhoneFn     func(ctx context.Context, phone string) ([]Booking, error)
	listFn              func(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	confirmFn           func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, bool, error)
	applyUpdatesFn      func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

func (m *mockRepository) Create(ctx context.Context, booking *Booking) error {
	return m.createFn(ctx, booking)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockRepository) Update(ctx context.Context, booking *Booking) error {
	return m.updateFn(ctx, booking)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockRepository) FindActiveByContactAndTour(ctx context.Context, phone, email, tourTitle string) (*Booking, error) {
	return m.findActiveFn(ctx, phone, email, tourTitle)
}

func (m *mockRepository) SearchByPhone(ctx context.Context, phone string) ([]Booking, error) {
	return m.searchByPhoneFn(ctx, phone)
}

func (m *mockRepository) List(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	return m.listFn(ctx, query)
}

func (m *mockRepository) ConfirmWithSideEffects(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, bool, error) {
	return m.confirmFn(ctx, id, updates)
}

func (m *mockRepository) ApplyUpdates(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return m.applyUpdatesFn(ctx, id, updates)
}

type mockToursService struct {
	getBySlugFn  func(ctx context.Context, slug string) (*tours.Tour, error)
	getByTitleFn func(ctx context.Context, title string) (*tours.Tour, error)
	quoteFn      func(ctx context.Context, tour *tours.Tour, req tours.QuoteRequest) (*tours.QuoteResult, error)
	unitRatesFn  func(ctx context.Context, tour *tours.Tour, sel pricing.Selection) ([]pricing.UnitRate, error)
}

func (m *mockToursService) GetTourBySlug(ctx context.Context, slug string) (*tours.Tour, error) {
	return m.getBySlugFn(ctx, slug)
}

func (m *mockToursService) GetTourByTitle(ctx context.Context, title string) (*tours.Tour, error) {
	return m.getByTitleFn(ctx, title)
}

func (m *mockToursService) Quote(ctx context.Context, tour *tours.Tour, req tours.QuoteRequest) (*tours.QuoteResult, error) {
	return m.quoteFn(ctx, tour, req)
}

func (m *mockToursService) UnitRates(ctx context.Context, tour *tours.Tour, sel pricing.Selection) ([]pricing.UnitRate, error) {
	return m.unitRatesFn(ctx, tour, sel)
}

func (m *mockToursService) CreateTour(ctx context.Context, req tours.CreateTourRequest) (*tours.Tour, error) {
	return nil, errors.New("not implemented")
}

func (m *mockToursService) GetTour(ctx context.Context, id uuid.UUID) (*tours.Tour, error) {
	return nil, errors.New("not implemented")
}

func (m *mockToursService) ListTours(ctx context.Context, includeInactive bool) ([]tours.Tour, error) {
	return nil, errors.New("not implemented")
}

func (m *mockToursService) ListFeaturedTours(ctx context.Context) ([]tours.Tour, error) {
	return nil, errors.New("not implemented")
}

func (m *mockToursService) UpdateTour(ctx context.Context, id uuid.UUID, req tours.UpdateTourRequest) (*tours.Tour, error) {
	return nil, errors.New("not implemented")
}

func (m *mockToursService) DeleteTour(ctx context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
}

func (m *mockToursService) GetGlobalPrice(ctx context.Context) (*tours.GlobalPrice, error) {
	return nil, errors.New("not implemented")
}

func (m *mockToursService) UpdateGlobalPrice(ctx context.Context, req tours.UpdateGlobalPriceRequest) (*tours.GlobalPrice, error) {
	return nil, errors.New("not implemented")
}

func (m *mockToursService) ResolveRates(ctx context.Context, tour *tours.Tour) (*pricing.Rates, error) {
	return nil, errors.New("not implemented")
}

type mockNotifier struct {
	confirmations chan *Booking
	statusUpdates chan *Booking
	err           error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{
		confirmations: make(chan *Booking, 4),
		statusUpdates: make(chan *Booking, 4),
	}
}

func (m *mockNotifier) SendBookingConfirmation(ctx context.Context, booking *Booking) error {
	m.confirmations <- booking
	return m.err
}

func (m *mockNotifier) SendStatusUpdate(ctx context.Context, booking *Booking) error {
	m.statusUpdates <- booking
	return m.err
}

func waitForNotification(t *testing.T, ch chan *Booking) *Booking {
	t.Helper()
	select {
	case b := <-ch:
		return b
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return nil
	}
}

func assertNoNotification(t *testing.T, ch chan *Booking) {
	t.Helper()
	select {
	case b := <-ch:
		t.Fatalf("unexpected notification for booking %s", b.ID)
	case <-time.After(100 * time.Millisecond):
	}
}

func himalayaTour() *tours.Tour {
	return &tours.Tour{
		ID:        uuid.New(),
		Title:     "Himalayan Escape",
		Slug:      "himalayan-escape",
		Nights:    3,
		BasePrice: 12499,
		Active:    true,
	}
}

func createRequest() CreateBookingRequest {
	return CreateBookingRequest{
		Name:       "Asha Verma",
		Phone:      "9876543210",
		Email:      "asha@example.com",
		TourSlug:   "himalayan-escape",
		TravelDate: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		Adults:     2,
		Rooms:      1,
		RoomType:   pricing.RoomTypeStandard,
		Transport:  pricing.TransportShared,
		Addons:     pricing.Addons{Meal: true, Tea: true},
	}
}

func TestCreateBooking_Success(t *testing.T) {
	tour := himalayaTour()
	var created *Booking

	repo := &mockRepository{
		findActiveFn: func(ctx context.Context, phone, email, tourTitle string) (*Booking, error) {
			assert.Equal(t, "9876543210", phone)
			assert.Equal(t, "Himalayan Escape", tourTitle)
			return nil, nil
		},
		createFn: func(ctx context.Context, booking *Booking) error {
			booking.ID = uuid.New()
			created = booking
			return nil
		},
	}
	toursSvc := &mockToursService{
		getBySlugFn: func(ctx context.Context, slug string) (*tours.Tour, error) {
			return tour, nil
		},
		quoteFn: func(ctx context.Context, tr *tours.Tour, req tours.QuoteRequest) (*tours.QuoteResult, error) {
			return &tours.QuoteResult{
				TourTitle:     tr.Title,
				Nights:        tr.Nights,
				OriginalTotal: 33998,
				TotalPrice:    33998,
			}, nil
		},
	}
	notifier := newMockNotifier()
	svc := NewService(repo, toursSvc, notifier, nil)

	booking, quote, err := svc.CreateBooking(context.Background(), createRequest())
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, StatusPending, booking.Status)
	assert.Equal(t, PaymentUnpaid, booking.PaymentType)
	assert.Equal(t, int64(0), booking.PaidAmount)
	assert.Equal(t, int64(33998), booking.TotalPrice)
	assert.Nil(t, booking.OriginalPrice)
	assert.Equal(t, "Himalayan Escape", booking.TourTitle)
	assert.Equal(t, int64(33998), quote.TotalPrice)

	notified := waitForNotification(t, notifier.confirmations)
	assert.Equal(t, booking.ID, notified.ID)
}

func TestCreateBooking_WithCouponStoresOriginalPrice(t *testing.T) {
	tour := himalayaTour()
	repo := &mockRepository{
		findActiveFn: func(ctx context.Context, phone, email, tourTitle string) (*Booking, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, booking *Booking) error {
			booking.ID = uuid.New()
			return nil
		},
	}
	toursSvc := &mockToursService{
		getBySlugFn: func(ctx context.Context, slug string) (*tours.Tour, error) { return tour, nil },
		quoteFn: func(ctx context.Context, tr *tours.Tour, req tours.QuoteRequest) (*tours.QuoteResult, error) {
			return &tours.QuoteResult{
				TourTitle:     tr.Title,
				OriginalTotal: 33998,
				Discount:      3400,
				TotalPrice:    30598,
				CouponCode:    "MONSOON10",
			}, nil
		},
	}
	svc := NewService(repo, toursSvc, newMockNotifier(), nil)

	req := createRequest()
	req.CouponCode = "monsoon10"
	booking, _, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, booking.OriginalPrice)
	assert.Equal(t, int64(33998), *booking.OriginalPrice)
	assert.Equal(t, int64(30598), booking.TotalPrice)
	assert.Equal(t, "MONSOON10", booking.CouponCode)
}

func TestCreateBooking_DuplicateReturnsExisting(t *testing.T) {
	tour := himalayaTour()
	existing := &Booking{
		ID:        uuid.New(),
		Phone:     "9876543210",
		TourTitle: "Himalayan Escape",
		Status:    StatusPending,
	}

	repo := &mockRepository{
		findActiveFn: func(ctx context.Context, phone, email, tourTitle string) (*Booking, error) {
			return existing, nil
		},
		createFn: func(ctx context.Context, booking *Booking) error {
			t.Fatal("create must not be called for a duplicate")
			return nil
		},
	}
	toursSvc := &mockToursService{
		getBySlugFn: func(ctx context.Context, slug string) (*tours.Tour, error) { return tour, nil },
	}
	notifier := newMockNotifier()
	svc := NewService(repo, toursSvc, notifier, nil)

	_, _, err := svc.CreateBooking(context.Background(), createRequest())

	var dup *DuplicateBookingError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, existing.ID, dup.Existing.ID)
	assertNoNotification(t, notifier.confirmations)
}

func TestCreateBooking_CancelledBookingAllowsRebooking(t *testing.T) {
	// The repository query excludes cancelled rows, so the service sees
	// no duplicate and the new booking goes through.
	tour := himalayaTour()
	createCalled := false

	repo := &mockRepository{
		findActiveFn: func(ctx context.Context, phone, email, tourTitle string) (*Booking, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, booking *Booking) error {
			booking.ID = uuid.New()
			createCalled = true
			return nil
		},
	}
	toursSvc := &mockToursService{
		getBySlugFn: func(ctx context.Context, slug string) (*tours.Tour, error) { return tour, nil },
		quoteFn: func(ctx context.Context, tr *tours.Tour, req tours.QuoteRequest) (*tours.QuoteResult, error) {
			return &tours.QuoteResult{TotalPrice: 33998, OriginalTotal: 33998}, nil
		},
	}
	svc := NewService(repo, toursSvc, newMockNotifier(), nil)

	_, _, err := svc.CreateBooking(context.Background(), createRequest())
	require.NoError(t, err)
	assert.True(t, createCalled)
}

func TestCreateBooking_NotificationFailureDoesNotFailBooking(t *testing.T) {
	tour := himalayaTour()
	repo := &mockRepository{
		findActiveFn: func(ctx context.Context, phone, email, tourTitle string) (*Booking, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, booking *Booking) error {
			booking.ID = uuid.New()
			return nil
		},
	}
	toursSvc := &mockToursService{
		getBySlugFn: func(ctx context.Context, slug string) (*tours.Tour, error) { return tour, nil },
		quoteFn: func(ctx context.Context, tr *tours.Tour, req tours.QuoteRequest) (*tours.QuoteResult, error) {
			return &tours.QuoteResult{TotalPrice: 33998, OriginalTotal: 33998}, nil
		},
	}
	notifier := newMockNotifier()
	notifier.err = errors.New("smtp connection refused")
	svc := NewService(repo, toursSvc, notifier, nil)

	_, _, err := svc.CreateBooking(context.Background(), createRequest())
	require.NoError(t, err)
	waitForNotification(t, notifier.confirmations)
}

func TestUpdateBookingStatus_ConfirmRunsSideEffectsOnce(t *testing.T) {
	id := uuid.New()
	agentID := uuid.New()
	commission := int64(1530)

	pending := &Booking{ID: id, Status: StatusPending, TotalPrice: 30598, CouponCode: "MONSOON10"}
	confirmed := &Booking{
		ID: id, Status: StatusConfirmed, TotalPrice: 30598, CouponCode: "MONSOON10",
		AgentID: &agentID, CommissionAmount: &commission,
	}

	confirmCalls := 0
	current := pending
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, bid uuid.UUID) (*Booking, error) {
			return current, nil
		},
		confirmFn: func(ctx context.Context, bid uuid.UUID, updates map[string]interface{}) (bool, bool, error) {
			confirmCalls++
			if current.Status == StatusConfirmed {
				return false, false, nil
			}
			current = confirmed
			return true, true, nil
		},
	}
	notifier := newMockNotifier()
	svc := NewService(repo, &mockToursService{}, notifier, nil)

	req := UpdateBookingStatusRequest{Status: StatusConfirmed}

	first, err := svc.UpdateBookingStatus(context.Background(), id, req)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, first.Status)
	waitForNotification(t, notifier.statusUpdates)

	// Re-confirming hits the repository guard: no credit, no transition,
	// no second notification.
	second, err := svc.UpdateBookingStatus(context.Background(), id, req)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, second.Status)
	assert.Equal(t, 2, confirmCalls)
	assertNoNotification(t, notifier.statusUpdates)
}

func TestUpdateBookingStatus_ReconfirmKeepsPaymentPatch(t *testing.T) {
	id := uuid.New()
	booking := &Booking{ID: id, Status: StatusConfirmed, TotalPrice: 33998}

	var applied map[string]interface{}
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, bid uuid.UUID) (*Booking, error) {
			return booking, nil
		},
		confirmFn: func(ctx context.Context, bid uuid.UUID, updates map[string]interface{}) (bool, bool, error) {
			// Row is already CONFIRMED: the status guard misses.
			return false, false, nil
		},
		applyUpdatesFn: func(ctx context.Context, bid uuid.UUID, updates map[string]interface{}) error {
			applied = updates
			return nil
		},
	}
	svc := NewService(repo, &mockToursService{}, nil, nil)

	paid := PaymentFull
	amount := int64(33998)
	_, err := svc.UpdateBookingStatus(context.Background(), id, UpdateBookingStatusRequest{
		Status:      StatusConfirmed,
		PaymentType: &paid,
		PaidAmount:  &amount,
	})
	require.NoError(t, err)

	require.NotNil(t, applied, "payment patch must reach the repository when the confirm guard misses")
	assert.Equal(t, PaymentFull, applied["payment_type"])
	assert.Equal(t, int64(33998), applied["paid_amount"])
	_, hasStatus := applied["status"]
	assert.False(t, hasStatus, "status stays untouched on a re-confirm")
}

func TestUpdateBookingStatus_PatchFieldsForwarded(t *testing.T) {
	id := uuid.New()
	booking := &Booking{ID: id, Status: StatusPending, TotalPrice: 33998}

	var applied map[string]interface{}
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, bid uuid.UUID) (*Booking, error) {
			return booking, nil
		},
		applyUpdatesFn: func(ctx context.Context, bid uuid.UUID, updates map[string]interface{}) error {
			applied = updates
			booking.Status = StatusCancelled
			return nil
		},
	}
	svc := NewService(repo, &mockToursService{}, nil, nil)

	paid := PaymentPartial
	amount := int64(10000)
	notes := "advance received"
	_, err := svc.UpdateBookingStatus(context.Background(), id, UpdateBookingStatusRequest{
		Status:      StatusCancelled,
		PaymentType: &paid,
		PaidAmount:  &amount,
		AdminNotes:  &notes,
		Hotel:       &HotelDetails{Name: "Hotel Deodar", Phone: "01892-220011"},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, applied["status"])
	assert.Equal(t, PaymentPartial, applied["payment_type"])
	assert.Equal(t, int64(10000), applied["paid_amount"])
	assert.Equal(t, "advance received", applied["admin_notes"])
	assert.Equal(t, "Hotel Deodar", applied["hotel_name"])
}

func TestUpdateBookingStatus_NotFound(t *testing.T) {
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Booking, error) {
			return nil, nil
		},
	}
	svc := NewService(repo, &mockToursService{}, nil, nil)

	_, err := svc.UpdateBookingStatus(context.Background(), uuid.New(), UpdateBookingStatusRequest{Status: StatusConfirmed})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateBookingStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(&mockRepository{}, &mockToursService{}, nil, nil)

	_, err := svc.UpdateBookingStatus(context.Background(), uuid.New(), UpdateBookingStatusRequest{Status: Status("SHIPPED")})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteBooking_Idempotent(t *testing.T) {
	deletes := 0
	repo := &mockRepository{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deletes++
			return nil
		},
	}
	svc := NewService(repo, &mockToursService{}, nil, nil)

	id := uuid.New()
	require.NoError(t, svc.DeleteBooking(context.Background(), id))
	require.NoError(t, svc.DeleteBooking(context.Background(), id))
	assert.Equal(t, 2, deletes)
}

func TestLookupBookingByReference_SuffixMatchIgnoresCase(t *testing.T) {
	match := Booking{
		ID:    uuid.MustParse("5f0a6c1e-9d2b-4e7f-8a3d-6b5c44a1b2c3"),
		Phone: "9876543210",
	}
	other := Booking{
		ID:    uuid.MustParse("5f0a6c1e-9d2b-4e7f-8a3d-6b5c44d4e5f6"),
		Phone: "9876543210",
	}

	repo := &mockRepository{
		searchByPhoneFn: func(ctx context.Context, phone string) ([]Booking, error) {
			assert.Equal(t, "9876543210", phone)
			return []Booking{other, match}, nil
		},
	}
	svc := NewService(repo, &mockToursService{}, nil, nil)

	found, err := svc.LookupBookingByReference(context.Background(), "9876543210", "A1B2C3")
	require.NoError(t, err)
	assert.Equal(t, match.ID, found.ID)
}

func TestLookupBookingByReference_NoMatch(t *testing.T) {
	repo := &mockRepository{
		searchByPhoneFn: func(ctx context.Context, phone string) ([]Booking, error) {
			return []Booking{{ID: uuid.New(), Phone: "9876543210"}}, nil
		},
	}
	svc := NewService(repo, &mockToursService{}, nil, nil)

	_, err := svc.LookupBookingByReference(context.Background(), "9876543210", "ZZZZZZ")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestShortRef(t *testing.T) {
	b := Booking{ID: uuid.MustParse("5f0a6c1e-9d2b-4e7f-8a3d-6b5c44a1b2c3")}
	assert.Equal(t, "A1B2C3", b.ShortRef())
	assert.True(t, b.MatchesRef("a1B2c3"))
	assert.False(t, b.MatchesRef(""))
}

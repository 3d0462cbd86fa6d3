package booking

import (
	"context"
	"errors"
	"testing"

	bookingRepo "carelink/database/repository/booking"
	providerRepo "carelink/database/repository/provider"
	"carelink/models"
)

type stubProviderRepo struct {
	provider *models.Provider
}

func (f *stubProviderRepo) Create(ctx context.Context, p *models.Provider) error { return nil }
func (f *stubProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	if f.provider == nil {
		return nil, providerRepo.ErrNotFound
	}
	return f.provider, nil
}
func (f *stubProviderRepo) GetByEmail(ctx context.Context, email string) (*models.Provider, error) {
	return nil, providerRepo.ErrNotFound
}
func (f *stubProviderRepo) Update(ctx context.Context, p *models.Provider) error { return nil }
func (f *stubProviderRepo) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) (*models.Provider, error) {
	return f.provider, nil
}
func (f *stubProviderRepo) SetWeeklyTemplate(ctx context.Context, id string, tpl models.WeeklyTemplate, granularityMin int) error {
	return nil
}
func (f *stubProviderRepo) Delete(ctx context.Context, id string) error { return nil }

type stubBookingRepo struct {
	reserved   []*models.Booking
	reserveErr error
	stored     *models.Booking
	statusSet  string
}

func (f *stubBookingRepo) TryReserve(ctx context.Context, b *models.Booking) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.reserved = append(f.reserved, b)
	return nil
}
func (f *stubBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if f.stored == nil || f.stored.ID != id {
		return nil, bookingRepo.ErrNotFound
	}
	return f.stored, nil
}
func (f *stubBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	f.statusSet = status
	return nil
}
func (f *stubBookingRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *stubBookingRepo) ListByProviderDateRange(ctx context.Context, providerID, from, to string) ([]models.Booking, error) {
	return nil, nil
}
func (f *stubBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return nil, nil
}

func testProvider() *models.Provider {
	return &models.Provider{
		ID:         "p1",
		HourlyRate: 40,
		WeeklyTemplate: models.WeeklyTemplate{
			"Mon": {"09:00", "09:30", "10:00"},
		},
	}
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ProviderID: "p1",
		ClientID:   "c1",
		Date:       "2025-07-14", // a Monday
		StartTime:  "09:00",
		Duration:   1.5,
	}
}

func TestCalculateTotalPrice(t *testing.T) {
	if got := CalculateTotalPrice(40, 1.5); got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}
	if got := CalculateTotalPrice(33.33, 0.5); got != 16.67 {
		t.Fatalf("expected 16.67, got %v", got)
	}
}

func TestValidDuration(t *testing.T) {
	for _, d := range []float64{0.5, 1, 4.5, 8} {
		if !validDuration(d) {
			t.Fatalf("duration %v should be valid", d)
		}
	}
	for _, d := range []float64{0, 0.25, 8.5, 1.1, -1} {
		if validDuration(d) {
			t.Fatalf("duration %v should be invalid", d)
		}
	}
}

func TestCreateBooking_Success(t *testing.T) {
	repo := &stubBookingRepo{}
	svc := &DefaultBookingService{
		Repo:         repo,
		ProviderRepo: &stubProviderRepo{provider: testProvider()},
	}

	b, err := svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if b.TotalPrice != 60 {
		t.Fatalf("expected price 60, got %v", b.TotalPrice)
	}
	if b.Start != 540 || b.End != 630 {
		t.Fatalf("expected interval [540,630), got [%d,%d)", b.Start, b.End)
	}
	if b.Status != models.BookingStatusConfirmed {
		t.Fatalf("expected confirmed status, got %q", b.Status)
	}
	if len(repo.reserved) != 1 {
		t.Fatalf("expected one reserved booking, got %d", len(repo.reserved))
	}
}

func TestCreateBooking_SlotNotOffered(t *testing.T) {
	svc := &DefaultBookingService{
		Repo:         &stubBookingRepo{},
		ProviderRepo: &stubProviderRepo{provider: testProvider()},
	}

	req := validRequest()
	req.StartTime = "11:00" // not in the Monday template
	if _, err := svc.CreateBooking(context.Background(), req); !errors.Is(err, ErrSlotNotOffered) {
		t.Fatalf("expected ErrSlotNotOffered, got %v", err)
	}

	req = validRequest()
	req.Date = "2025-07-15" // Tuesday, no template entry
	if _, err := svc.CreateBooking(context.Background(), req); !errors.Is(err, ErrSlotNotOffered) {
		t.Fatalf("expected ErrSlotNotOffered, got %v", err)
	}
}

func TestCreateBooking_InvalidInput(t *testing.T) {
	svc := &DefaultBookingService{
		Repo:         &stubBookingRepo{},
		ProviderRepo: &stubProviderRepo{provider: testProvider()},
	}

	req := validRequest()
	req.Duration = 0.25
	if _, err := svc.CreateBooking(context.Background(), req); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}

	req = validRequest()
	req.Date = "14-07-2025"
	if _, err := svc.CreateBooking(context.Background(), req); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	req = validRequest()
	req.StartTime = "9am"
	if _, err := svc.CreateBooking(context.Background(), req); !errors.Is(err, ErrInvalidStartTime) {
		t.Fatalf("expected ErrInvalidStartTime, got %v", err)
	}
}

func TestCreateBooking_UnknownProvider(t *testing.T) {
	svc := &DefaultBookingService{
		Repo:         &stubBookingRepo{},
		ProviderRepo: &stubProviderRepo{},
	}

	if _, err := svc.CreateBooking(context.Background(), validRequest()); !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
}

func TestCreateBooking_ConflictPropagates(t *testing.T) {
	svc := &DefaultBookingService{
		Repo:         &stubBookingRepo{reserveErr: bookingRepo.ErrSlotConflict},
		ProviderRepo: &stubProviderRepo{provider: testProvider()},
	}

	if _, err := svc.CreateBooking(context.Background(), validRequest()); !errors.Is(err, ErrSlotConflict) {
		t.Fatalf("expected ErrSlotConflict, got %v", err)
	}
}

func TestCancelBooking(t *testing.T) {
	repo := &stubBookingRepo{stored: &models.Booking{
		ID:       "b1",
		ClientID: "c1",
		Status:   models.BookingStatusConfirmed,
	}}
	svc := &DefaultBookingService{Repo: repo, ProviderRepo: &stubProviderRepo{}}

	if err := svc.CancelBooking(context.Background(), "b1", "c2"); !errors.Is(err, ErrNotBookingOwner) {
		t.Fatalf("expected ErrNotBookingOwner, got %v", err)
	}
	if err := svc.CancelBooking(context.Background(), "b1", "c1"); err != nil {
		t.Fatalf("expected cancel to succeed, got %v", err)
	}
	if repo.statusSet != models.BookingStatusCancelled {
		t.Fatalf("expected status set to cancelled, got %q", repo.statusSet)
	}
	if err := svc.CancelBooking(context.Background(), "missing", "c1"); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

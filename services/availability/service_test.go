package availability

import (
	"context"
	"errors"
	"reflect"
	"testing"

	bookingRepo "carelink/database/repository/booking"
	providerRepo "carelink/database/repository/provider"
	"carelink/models"
)

type fakeProviderRepo struct {
	provider *models.Provider
	err      error
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *models.Provider) error { return nil }
func (f *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.provider == nil {
		return nil, providerRepo.ErrNotFound
	}
	return f.provider, nil
}
func (f *fakeProviderRepo) GetByEmail(ctx context.Context, email string) (*models.Provider, error) {
	return nil, providerRepo.ErrNotFound
}
func (f *fakeProviderRepo) Update(ctx context.Context, p *models.Provider) error { return nil }
func (f *fakeProviderRepo) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) (*models.Provider, error) {
	return f.provider, nil
}
func (f *fakeProviderRepo) SetWeeklyTemplate(ctx context.Context, id string, tpl models.WeeklyTemplate, granularityMin int) error {
	return nil
}
func (f *fakeProviderRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeBookingRepo struct {
	bookings []models.Booking
	err      error
}

func (f *fakeBookingRepo) TryReserve(ctx context.Context, b *models.Booking) error { return nil }
func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return nil, bookingRepo.ErrNotFound
}
func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }
func (f *fakeBookingRepo) Delete(ctx context.Context, id string) error               { return nil }
func (f *fakeBookingRepo) ListByProviderDateRange(ctx context.Context, providerID, from, to string) ([]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Date >= from && b.Date <= to {
			out = append(out, b)
		}
	}
	return out, nil
}
func (f *fakeBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return nil, nil
}

func newService(p *models.Provider, bookings []models.Booking) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		ProviderRepo: &fakeProviderRepo{provider: p},
		BookingRepo:  &fakeBookingRepo{bookings: bookings},
	}
}

func TestResolveAvailability_AbsentTemplateResolvesEmpty(t *testing.T) {
	svc := newService(&models.Provider{ID: "p1"}, nil)

	view, err := svc.ResolveAvailability(context.Background(), "p1", mustDate(t, "2025-07-01"), 30)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(view.AvailableDates) != 0 || len(view.SlotsByDate) != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

func TestResolveAvailability_UnknownProviderResolvesEmpty(t *testing.T) {
	svc := newService(nil, nil)

	view, err := svc.ResolveAvailability(context.Background(), "missing", mustDate(t, "2025-07-01"), 30)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(view.AvailableDates) != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

func TestResolveAvailability_MalformedTemplateResolvesEmpty(t *testing.T) {
	svc := newService(&models.Provider{
		ID:             "p1",
		WeeklyTemplate: models.WeeklyTemplate{"Monday": {"nine"}},
	}, nil)

	view, err := svc.ResolveAvailability(context.Background(), "p1", mustDate(t, "2025-07-01"), 30)
	if err != nil {
		t.Fatalf("malformed template must not error, got %v", err)
	}
	if len(view.AvailableDates) != 0 {
		t.Fatalf("expected empty view for malformed template, got %+v", view)
	}
}

func TestResolveAvailability_BookingFetchFailurePropagates(t *testing.T) {
	svc := &DefaultAvailabilityService{
		ProviderRepo: &fakeProviderRepo{provider: &models.Provider{
			ID:             "p1",
			WeeklyTemplate: models.WeeklyTemplate{"Mon": {"09:00"}},
		}},
		BookingRepo: &fakeBookingRepo{err: errors.New("store unavailable")},
	}

	if _, err := svc.ResolveAvailability(context.Background(), "p1", mustDate(t, "2025-07-01"), 30); err == nil {
		t.Fatalf("booking store failure must propagate, got nil error")
	}
}

func TestResolveAvailability_TemplateSlotsAppear(t *testing.T) {
	svc := newService(&models.Provider{
		ID:             "p1",
		WeeklyTemplate: models.WeeklyTemplate{"Mon": {"09:00", "09:30"}},
	}, nil)

	view, err := svc.ResolveAvailability(context.Background(), "p1", mustDate(t, "2025-07-01"), 30)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	times, ok := view.SlotsByDate["2025-07-14"]
	if !ok {
		t.Fatalf("expected Monday 2025-07-14 in view, got %v", view.AvailableDates)
	}
	if !reflect.DeepEqual(times, []string{"09:00", "09:30"}) {
		t.Fatalf("expected both template slots, got %v", times)
	}
}

func TestResolveAvailability_ExcludesBookedSlots(t *testing.T) {
	svc := newService(&models.Provider{
		ID:             "p1",
		WeeklyTemplate: models.WeeklyTemplate{"Mon": {"09:00", "09:30", "10:00"}},
	}, []models.Booking{
		{ID: "b1", ProviderID: "p1", Date: "2025-07-14", StartTime: "09:00", Duration: 1.0, Status: models.BookingStatusConfirmed},
	})

	view, err := svc.ResolveAvailability(context.Background(), "p1", mustDate(t, "2025-07-01"), 30)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(view.SlotsByDate["2025-07-14"], []string{"10:00"}) {
		t.Fatalf("expected booked Monday narrowed to 10:00, got %v", view.SlotsByDate["2025-07-14"])
	}
	// Other Mondays are untouched.
	if !reflect.DeepEqual(view.SlotsByDate["2025-07-21"], []string{"09:00", "09:30", "10:00"}) {
		t.Fatalf("unbooked Monday altered: %v", view.SlotsByDate["2025-07-21"])
	}
}

func TestResolveAvailability_Idempotent(t *testing.T) {
	svc := newService(&models.Provider{
		ID:             "p1",
		WeeklyTemplate: models.WeeklyTemplate{"Mon": {"09:00"}, "Fri": {"13:00", "14:00"}},
	}, []models.Booking{
		{ID: "b1", ProviderID: "p1", Date: "2025-07-04", StartTime: "13:00", Duration: 0.5, Status: models.BookingStatusConfirmed},
	})

	first, err := svc.ResolveAvailability(context.Background(), "p1", mustDate(t, "2025-07-01"), 30)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := svc.ResolveAvailability(context.Background(), "p1", mustDate(t, "2025-07-01"), 30)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolution not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestResolveDurations_NoSelectionReturnsCatalog(t *testing.T) {
	svc := newService(&models.Provider{ID: "p1"}, nil)

	opts, err := svc.ResolveDurations(context.Background(), "p1", "", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(opts) != len(models.DurationCatalog()) {
		t.Fatalf("expected full catalog, got %d options", len(opts))
	}
}

func TestResolveDurations_FetchFailurePropagates(t *testing.T) {
	svc := &DefaultAvailabilityService{
		ProviderRepo: &fakeProviderRepo{},
		BookingRepo:  &fakeBookingRepo{err: errors.New("store unavailable")},
	}

	if _, err := svc.ResolveDurations(context.Background(), "p1", "2025-07-14", "14:00"); err == nil {
		t.Fatalf("booking store failure must propagate, got nil error")
	}
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	bookingRepo "carelink/database/repository/booking"
	providerRepo "carelink/database/repository/provider"
	"carelink/models"
	"carelink/services/availability"
	"carelink/services/notification"
	"carelink/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// CreateBookingRequest carries a client's chosen slot.
type CreateBookingRequest struct {
	ProviderID string  `json:"providerId" binding:"required"`
	ClientID   string  `json:"-"`
	Date       string  `json:"date" binding:"required"`
	StartTime  string  `json:"startTime" binding:"required"`
	Duration   float64 `json:"duration" binding:"required"`
}

// BookingService manages the lifecycle of caregiver reservations.
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, clientID string) error
	ListClientBookings(ctx context.Context, clientID string) ([]models.Booking, error)
	ListProviderBookings(ctx context.Context, providerID, from, to string) ([]models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	ProviderRepo providerRepo.ProviderRepository
	Availability availability.AvailabilityService
	Notifier     notification.NotificationService
	Reminders    *asynq.Client
}

func validDuration(d float64) bool {
	if d < 0.5 || d > 8.0 {
		return false
	}
	// Half-hour steps only.
	return math.Mod(d*2, 1) == 0
}

// CreateBooking validates the request against the caregiver's template,
// prices it and persists it through the conditional writer. A slot taken by a
// concurrent client surfaces as ErrSlotConflict, never as a silent overwrite.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	startMin, err := models.ParseClockMinutes(req.StartTime)
	if err != nil {
		return nil, ErrInvalidStartTime
	}
	if !validDuration(req.Duration) {
		return nil, ErrInvalidDuration
	}

	provider, err := s.ProviderRepo.GetByID(ctx, req.ProviderID)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}

	// The chosen start must be one the caregiver's template actually offers
	// for that weekday.
	tpl, err := provider.WeeklyTemplate.Normalize()
	if err != nil || !offersSlot(tpl, date, req.StartTime) {
		return nil, ErrSlotNotOffered
	}

	booking := &models.Booking{
		ID:         uuid.New().String(),
		ProviderID: req.ProviderID,
		ClientID:   req.ClientID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		Duration:   req.Duration,
		Start:      startMin,
		End:        startMin + models.DurationMinutes(req.Duration),
		TotalPrice: CalculateTotalPrice(provider.HourlyRate, req.Duration),
		Status:     models.BookingStatusConfirmed,
		CreatedAt:  time.Now(),
	}

	if err := s.Repo.TryReserve(ctx, booking); err != nil {
		return nil, err
	}

	if s.Availability != nil {
		s.Availability.InvalidateProvider(ctx, req.ProviderID)
	}
	s.notifyConfirmed(ctx, booking)
	s.scheduleReminder(booking)

	logger.Info("booking confirmed",
		zap.String("bookingID", booking.ID),
		zap.String("providerID", booking.ProviderID),
		zap.String("date", booking.Date),
		zap.String("start", booking.StartTime))
	return booking, nil
}

func offersSlot(tpl models.WeeklyTemplate, date time.Time, startTime string) bool {
	for _, ts := range tpl[models.WeekdayAbbr(date.Weekday())] {
		if ts == startTime {
			return true
		}
	}
	return false
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	return b, err
}

// CancelBooking marks the booking cancelled so its interval stops occupying
// the caregiver's schedule.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, clientID string) error {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b.ClientID != clientID {
		return ErrNotBookingOwner
	}

	if err := s.Repo.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	if s.Availability != nil {
		s.Availability.InvalidateProvider(ctx, b.ProviderID)
	}
	if s.Notifier != nil {
		if err := s.Notifier.SendProviderPush(ctx, b.ProviderID,
			"Booking cancelled",
			fmt.Sprintf("Your %s appointment on %s was cancelled.", b.StartTime, b.Date),
			map[string]string{"bookingId": b.ID, "event": "booking_cancelled"},
		); err != nil {
			utils.GetLogger().Warn("failed to notify provider of cancellation", zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultBookingService) ListClientBookings(ctx context.Context, clientID string) ([]models.Booking, error) {
	return s.Repo.ListByClient(ctx, clientID)
}

func (s *DefaultBookingService) ListProviderBookings(ctx context.Context, providerID, from, to string) ([]models.Booking, error) {
	return s.Repo.ListByProviderDateRange(ctx, providerID, from, to)
}

func (s *DefaultBookingService) notifyConfirmed(ctx context.Context, b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	logger := utils.GetLogger()
	data := map[string]string{
		"bookingId": b.ID,
		"date":      b.Date,
		"start":     b.StartTime,
		"event":     "booking_confirmed",
	}
	if err := s.Notifier.SendProviderPush(ctx, b.ProviderID,
		"New booking",
		fmt.Sprintf("You have a new %s appointment on %s.", b.StartTime, b.Date), data); err != nil {
		logger.Warn("failed to notify provider of booking", zap.Error(err))
	}
	if err := s.Notifier.SendUserPush(ctx, b.ClientID,
		"Booking confirmed",
		fmt.Sprintf("Your %s appointment on %s is confirmed.", b.StartTime, b.Date), data); err != nil {
		logger.Warn("failed to notify client of booking", zap.Error(err))
	}
}

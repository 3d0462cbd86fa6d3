package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bookingRepo "carelink/database/repository/booking"
	providerRepo "carelink/database/repository/provider"
	"carelink/models"
	"carelink/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultWindowDays is the rolling resolution window: today through +29 days.
const DefaultWindowDays = 30

// AvailabilityService resolves a caregiver's bookable slots for the booking UI.
type AvailabilityService interface {
	// ResolveAvailability computes the open slot set over a rolling window.
	// A caregiver with no usable weekly template resolves to an empty view,
	// not an error; a booking store failure propagates as an error.
	ResolveAvailability(ctx context.Context, providerID string, windowStart time.Time, windowDays int) (*models.AvailabilityView, error)
	// ResolveDurations narrows the duration catalog to the lengths that fit
	// at the chosen date and start time without colliding with existing
	// bookings. With no chosen slot it returns the full catalog.
	ResolveDurations(ctx context.Context, providerID, date, startTime string) ([]models.DurationOption, error)
	// InvalidateProvider drops any cached views for the provider.
	InvalidateProvider(ctx context.Context, providerID string)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	ProviderRepo providerRepo.ProviderRepository
	BookingRepo  bookingRepo.BookingRepository
	Cache        *redis.Client
	CacheTTL     time.Duration
}

func emptyView() *models.AvailabilityView {
	return &models.AvailabilityView{
		AvailableDates: []string{},
		SlotsByDate:    map[string][]string{},
	}
}

func (s *DefaultAvailabilityService) ResolveAvailability(ctx context.Context, providerID string, windowStart time.Time, windowDays int) (*models.AvailabilityView, error) {
	logger := utils.GetLogger()
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	windowStart = time.Date(windowStart.Year(), windowStart.Month(), windowStart.Day(), 0, 0, 0, 0, windowStart.Location())

	cacheKey := fmt.Sprintf("%s%s:%s:%d", utils.AvailabilityCachePrefix, providerID, windowStart.Format(dateLayout), windowDays)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var view models.AvailabilityView
			if err := json.Unmarshal([]byte(raw), &view); err == nil {
				return &view, nil
			}
		}
	}

	provider, err := s.ProviderRepo.GetByID(ctx, providerID)
	if errors.Is(err, providerRepo.ErrNotFound) {
		logger.Debug("availability: provider not found, resolving empty",
			zap.String("providerID", providerID))
		return emptyView(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider profile: %w", err)
	}

	// Malformed templates fail open to "no availability"; the UI degrades to
	// "no slots" instead of surfacing an error.
	tpl, err := provider.WeeklyTemplate.Normalize()
	if err != nil {
		logger.Warn("availability: malformed weekly template, resolving empty",
			zap.String("providerID", providerID), zap.Error(err))
		return emptyView(), nil
	}

	expanded := ExpandTemplate(tpl, windowStart, windowDays)
	if len(expanded) == 0 {
		return emptyView(), nil
	}

	// A booking fetch failure must propagate: silently treating it as "no
	// conflicts" could offer an already-taken slot.
	windowEnd := windowStart.AddDate(0, 0, windowDays-1)
	bookings, err := s.BookingRepo.ListByProviderDateRange(ctx, providerID,
		windowStart.Format(dateLayout), windowEnd.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for provider %s: %w", providerID, err)
	}

	slotsByDate, dates := ExcludeBookedSlots(expanded, bookings, provider.SlotGranularity())
	view := &models.AvailabilityView{
		AvailableDates: dates,
		SlotsByDate:    slotsByDate,
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(view); err == nil {
			ttl := s.CacheTTL
			if ttl <= 0 {
				ttl = time.Minute
			}
			if err := s.Cache.Set(ctx, cacheKey, raw, ttl).Err(); err != nil {
				logger.Warn("availability: failed to cache view", zap.Error(err))
			}
		}
	}
	return view, nil
}

func (s *DefaultAvailabilityService) ResolveDurations(ctx context.Context, providerID, date, startTime string) ([]models.DurationOption, error) {
	catalog := models.DurationCatalog()
	if date == "" || startTime == "" {
		return catalog, nil
	}

	bookings, err := s.BookingRepo.ListByProviderDateRange(ctx, providerID, date, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for provider %s: %w", providerID, err)
	}
	return FilterCompatibleDurations(date, startTime, catalog, bookings), nil
}

func (s *DefaultAvailabilityService) InvalidateProvider(ctx context.Context, providerID string) {
	if s.Cache == nil {
		return
	}
	pattern := utils.AvailabilityCachePrefix + providerID + ":*"
	iter := s.Cache.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		s.Cache.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		utils.GetLogger().Warn("availability: cache invalidation scan failed",
			zap.String("providerID", providerID), zap.Error(err))
	}
}

package bookingRepo

import (
	"context"
	"errors"

	"carelink/database"
	"carelink/models"
	"carelink/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no booking matches the query.
	ErrNotFound = errors.New("booking not found")
	// ErrSlotConflict is returned when a write would overlap an existing
	// confirmed booking for the same provider and date.
	ErrSlotConflict = errors.New("slot already booked")
)

// BookingRepository is the booking store and writer for caregiver
// reservations.
type BookingRepository interface {
	// TryReserve persists the booking unless it overlaps an existing
	// confirmed booking for the same provider and date, in which case it
	// returns ErrSlotConflict and writes nothing durable.
	TryReserve(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	// ListByProviderDateRange returns the provider's bookings whose date
	// falls within the inclusive [from, to] range.
	ListByProviderDateRange(ctx context.Context, providerID, from, to string) ([]models.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("carelink")
	repo := &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("booking repo: ensure indexes", zap.Error(err))
	}
	return repo
}

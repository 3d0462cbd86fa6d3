package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carelink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// overlapFilter matches confirmed bookings for the provider on the given date
// whose [start,end) interval intersects [start,end). Half-open semantics:
// stored.start < end && stored.end > start.
func overlapFilter(providerID, date string, start, end int) bson.M {
	return bson.M{
		"provider_id": providerID,
		"date":        date,
		"status":      models.BookingStatusConfirmed,
		"start":       bson.M{"$lt": end},
		"end":         bson.M{"$gt": start},
	}
}

// TryReserve inserts the booking, then re-checks for overlapping confirmed
// bookings. If a concurrent insert produced an overlap, the loser (later
// CreatedAt, ties broken by ID) removes its own document and reports
// ErrSlotConflict. The unique (provider_id, date, start) index additionally
// rejects exact-slot duplicates at the server.
func (r *mongoBookingRepo) TryReserve(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Pre-check: refuse outright when a conflicting booking already exists.
	count, err := r.coll.CountDocuments(ctx, overlapFilter(booking.ProviderID, booking.Date, booking.Start, booking.End))
	if err != nil {
		return fmt.Errorf("failed to check for conflicting bookings: %w", err)
	}
	if count > 0 {
		return ErrSlotConflict
	}

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	// Post-check: a racing client may have inserted between the pre-check
	// and our insert. Deterministically yield when the other booking was
	// created first.
	filter := overlapFilter(booking.ProviderID, booking.Date, booking.Start, booking.End)
	filter["id"] = bson.M{"$ne": booking.ID}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to verify booking reservation: %w", err)
	}
	defer cursor.Close(ctx)

	var rivals []models.Booking
	if err := cursor.All(ctx, &rivals); err != nil {
		return fmt.Errorf("failed to decode conflicting bookings: %w", err)
	}
	for _, rival := range rivals {
		if rival.CreatedAt.Before(booking.CreatedAt) ||
			(rival.CreatedAt.Equal(booking.CreatedAt) && rival.ID < booking.ID) {
			if _, delErr := r.coll.DeleteOne(ctx, bson.M{"id": booking.ID}); delErr != nil {
				return fmt.Errorf("failed to roll back conflicting booking %s: %w", booking.ID, delErr)
			}
			return ErrSlotConflict
		}
	}
	return nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepo) ListByProviderDateRange(ctx context.Context, providerID, from, to string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"date":        bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for client %s: %w", clientID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

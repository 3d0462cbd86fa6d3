package models

import "time"

// Booking statuses.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a confirmed reservation of a caregiver's time.
type Booking struct {
	ID         string  `bson:"id" json:"id"`
	ProviderID string  `bson:"provider_id" json:"provider_id"`
	ClientID   string  `bson:"client_id" json:"client_id"`
	Date       string  `bson:"date" json:"date"`             // "YYYY-MM-DD"
	StartTime  string  `bson:"start_time" json:"start_time"` // "HH:MM"
	Duration   float64 `bson:"duration" json:"duration"`     // fractional hours, 0.5–8

	// Start and End are the occupied half-open interval [Start, End) in
	// minutes from midnight, derived from StartTime and Duration at write
	// time so the store can run overlap queries directly.
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`

	TotalPrice float64   `bson:"total_price" json:"total_price"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// Interval returns the booking's occupied half-open interval in minutes since
// midnight on its date, deriving it from StartTime and Duration when the
// persisted fields are unset.
func (b Booking) Interval() (start, end int, err error) {
	if b.End > b.Start {
		return b.Start, b.End, nil
	}
	start, err = ParseClockMinutes(b.StartTime)
	if err != nil {
		return 0, 0, err
	}
	return start, start + DurationMinutes(b.Duration), nil
}

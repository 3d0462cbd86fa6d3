package booking

import (
	"errors"

	bookingRepo "carelink/database/repository/booking"
)

var (
	// ErrSlotConflict mirrors the store-level conflict so callers don't
	// import the repository package.
	ErrSlotConflict = bookingRepo.ErrSlotConflict

	ErrProviderNotFound = errors.New("caregiver not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("booking belongs to a different client")
	ErrSlotNotOffered   = errors.New("requested slot is not offered by this caregiver")
	ErrInvalidDuration  = errors.New("duration must be between 0.5 and 8 hours in half-hour steps")
	ErrInvalidDate      = errors.New("date must be formatted YYYY-MM-DD")
	ErrInvalidStartTime = errors.New("start time must be formatted HH:MM")
)

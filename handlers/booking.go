package handlers

import (
	"errors"
	"net/http"
	"time"

	"carelink/middleware"
	"carelink/services/availability"
	"carelink/services/booking"
	"carelink/utils"

	"github.com/gin-gonic/gin"
)

// GetAvailabilityHandler resolves a caregiver's open slots over the rolling
// booking window.
func GetAvailabilityHandler(svc availability.AvailabilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID := c.Param("providerID")
		if providerID == "" {
			utils.JSONError(c, http.StatusBadRequest, "Missing provider id", "")
			return
		}

		view, err := svc.ResolveAvailability(c.Request.Context(), providerID, time.Now(), availability.DefaultWindowDays)
		if err != nil {
			utils.JSONError(c, http.StatusBadGateway, "Failed to resolve availability", err.Error())
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// GetDurationOptionsHandler returns the appointment lengths that fit at the
// chosen slot. Without date and start query params it returns the full catalog.
func GetDurationOptionsHandler(svc availability.AvailabilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID := c.Param("providerID")
		date := c.Query("date")
		start := c.Query("start")

		options, err := svc.ResolveDurations(c.Request.Context(), providerID, date, start)
		if err != nil {
			utils.JSONError(c, http.StatusBadGateway, "Failed to resolve duration options", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"durations": options})
	}
}

// CreateBookingHandler reserves a slot for the authenticated client.
func CreateBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.GetString(middleware.ContextUserIDKey)

		var req booking.CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid booking request", err.Error())
			return
		}
		req.ClientID = clientID

		b, err := svc.CreateBooking(c.Request.Context(), req)
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, b)
		case errors.Is(err, booking.ErrSlotConflict):
			utils.JSONError(c, http.StatusConflict, "Slot already booked", "The requested time overlaps an existing booking.")
		case errors.Is(err, booking.ErrProviderNotFound):
			utils.JSONError(c, http.StatusNotFound, "Caregiver not found", "")
		case errors.Is(err, booking.ErrSlotNotOffered):
			utils.JSONError(c, http.StatusUnprocessableEntity, "Slot not offered", "The caregiver does not offer that start time.")
		case errors.Is(err, booking.ErrInvalidDate),
			errors.Is(err, booking.ErrInvalidStartTime),
			errors.Is(err, booking.ErrInvalidDuration):
			utils.JSONError(c, http.StatusBadRequest, "Invalid booking request", err.Error())
		default:
			utils.JSONError(c, http.StatusBadGateway, "Failed to create booking", err.Error())
		}
	}
}

// CancelBookingHandler cancels one of the authenticated client's bookings.
func CancelBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.GetString(middleware.ContextUserIDKey)
		bookingID := c.Param("id")

		err := svc.CancelBooking(c.Request.Context(), bookingID, clientID)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
		case errors.Is(err, booking.ErrBookingNotFound):
			utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
		case errors.Is(err, booking.ErrNotBookingOwner):
			utils.JSONError(c, http.StatusForbidden, "Not your booking", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to cancel booking", err.Error())
		}
	}
}

// ListMyBookingsHandler lists the authenticated client's bookings.
func ListMyBookingsHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.GetString(middleware.ContextUserIDKey)

		bookings, err := svc.ListClientBookings(c.Request.Context(), clientID)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	}
}

// ListProviderBookingsHandler lists the authenticated caregiver's schedule,
// optionally narrowed with from/to date query params.
func ListProviderBookingsHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID := c.GetString(middleware.ContextProviderIDKey)
		if c.Param("id") != providerID {
			utils.JSONError(c, http.StatusForbidden, "Not your schedule", "")
			return
		}

		from := c.Query("from")
		to := c.Query("to")
		if from == "" {
			from = time.Now().Format("2006-01-02")
		}
		if to == "" {
			to = time.Now().AddDate(0, 0, availability.DefaultWindowDays-1).Format("2006-01-02")
		}

		bookings, err := svc.ListProviderBookings(c.Request.Context(), providerID, from, to)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings})
	}
}

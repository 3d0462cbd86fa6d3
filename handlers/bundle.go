package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct so routes can be
// wired from a single place.
type HandlerBundle struct {
	// Caregiver endpoints
	RegisterProviderHandler        gin.HandlerFunc
	AuthenticateProviderHandler    gin.HandlerFunc
	RevokeProviderAuthTokenHandler gin.HandlerFunc
	GetProviderByIDHandler         gin.HandlerFunc
	UpdateProviderHandler          gin.HandlerFunc
	DeleteProviderHandler          gin.HandlerFunc
	SetWeeklyTemplateHandler       gin.HandlerFunc
	GetWeeklyTemplateHandler       gin.HandlerFunc

	// Booking endpoints
	GetAvailabilityHandler      gin.HandlerFunc
	GetDurationOptionsHandler   gin.HandlerFunc
	CreateBookingHandler        gin.HandlerFunc
	CancelBookingHandler        gin.HandlerFunc
	ListMyBookingsHandler       gin.HandlerFunc
	ListProviderBookingsHandler gin.HandlerFunc

	// Client endpoints
	RegisterUserHandler        gin.HandlerFunc
	AuthenticateUserHandler    gin.HandlerFunc
	RevokeUserAuthTokenHandler gin.HandlerFunc
	GetUserByIDHandler         gin.HandlerFunc
	UpdateUserHandler          gin.HandlerFunc
	DeleteUserHandler          gin.HandlerFunc
}

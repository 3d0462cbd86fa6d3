package routes

import (
	"net/http"
	"time"

	"carelink/handlers"
	"carelink/middleware"
	"carelink/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers client account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (require authentication)
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("/id/:id", hb.GetUserByIDHandler)
		api.PUT("/update/:id", hb.UpdateUserHandler)
		api.DELETE("/delete/:id", hb.DeleteUserHandler)
		api.DELETE("/revoke", hb.RevokeUserAuthTokenHandler)
	}
}

// RegisterProviderRoutes registers caregiver management endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.POST("/register", hb.RegisterProviderHandler)
		api.POST("/login", hb.AuthenticateProviderHandler)

		// Public profile lookup for the booking UI.
		api.GET("/id/:id", hb.GetProviderByIDHandler)

		// Endpoints that modify caregiver data require authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthProviderMiddleware())
		protected.PATCH("/update/:id", hb.UpdateProviderHandler)
		protected.DELETE("/delete/:id", hb.DeleteProviderHandler)
		protected.DELETE("/revoke", hb.RevokeProviderAuthTokenHandler)
		protected.PUT("/availability/:id", hb.SetWeeklyTemplateHandler)
		protected.GET("/availability/:id", hb.GetWeeklyTemplateHandler)
		protected.GET("/schedule/:id", hb.ListProviderBookingsHandler)
	}
}

// RegisterBookingRoutes sets up the booking and availability endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		// Availability resolution is public: clients browse before signing in.
		api.GET("/availability/:providerID", hb.GetAvailabilityHandler)
		api.GET("/availability/:providerID/durations", hb.GetDurationOptionsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware())
		protected.POST("", hb.CreateBookingHandler)
		protected.GET("/mine", hb.ListMyBookingsHandler)
		protected.DELETE("/:id", hb.CancelBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}

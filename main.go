package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carelink/config"
	"carelink/cron"
	"carelink/database"
	bookingRepoPkg "carelink/database/repository/booking"
	providerRepoPkg "carelink/database/repository/provider"
	userRepoPkg "carelink/database/repository/user"
	"carelink/handlers"
	"carelink/middleware"
	"carelink/routes"
	"carelink/services/availability"
	"carelink/services/booking"
	"carelink/services/notification"
	"carelink/services/provider"
	"carelink/services/user"
	"carelink/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()

	// Services.
	notificationService := &notification.DefaultNotificationService{
		Users:     userRepo,
		Providers: provRepo,
	}

	availabilityService := &availability.DefaultAvailabilityService{
		ProviderRepo: provRepo,
		BookingRepo:  bookRepo,
		Cache:        utils.GetCacheClient(),
		CacheTTL:     time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second,
	}

	reminderClient := booking.NewReminderClient()
	defer reminderClient.Close()

	bookingService := &booking.DefaultBookingService{
		Repo:         bookRepo,
		ProviderRepo: provRepo,
		Availability: availabilityService,
		Notifier:     notificationService,
		Reminders:    reminderClient,
	}

	providerService := &provider.DefaultProviderService{Repo: provRepo}
	userService := &user.DefaultUserService{Repo: userRepo}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Caregiver endpoints.
		RegisterProviderHandler:        handlers.RegisterProviderHandler(providerService),
		AuthenticateProviderHandler:    handlers.AuthenticateProviderHandler(providerService),
		RevokeProviderAuthTokenHandler: handlers.RevokeProviderAuthTokenHandler(providerService),
		GetProviderByIDHandler:         handlers.GetProviderByIDHandler(providerService),
		UpdateProviderHandler:          handlers.UpdateProviderHandler(providerService),
		DeleteProviderHandler:          handlers.DeleteProviderHandler(providerService),
		SetWeeklyTemplateHandler:       handlers.SetWeeklyTemplateHandler(providerService),
		GetWeeklyTemplateHandler:       handlers.GetWeeklyTemplateHandler(providerService),

		// Booking endpoints.
		GetAvailabilityHandler:      handlers.GetAvailabilityHandler(availabilityService),
		GetDurationOptionsHandler:   handlers.GetDurationOptionsHandler(availabilityService),
		CreateBookingHandler:        handlers.CreateBookingHandler(bookingService),
		CancelBookingHandler:        handlers.CancelBookingHandler(bookingService),
		ListMyBookingsHandler:       handlers.ListMyBookingsHandler(bookingService),
		ListProviderBookingsHandler: handlers.ListProviderBookingsHandler(bookingService),

		// Client endpoints.
		RegisterUserHandler:        handlers.RegisterUserHandler(userService),
		AuthenticateUserHandler:    handlers.AuthenticateUserHandler(userService),
		RevokeUserAuthTokenHandler: handlers.RevokeUserAuthTokenHandler(userService),
		GetUserByIDHandler:         handlers.GetUserByIDHandler(userService),
		UpdateUserHandler:          handlers.UpdateUserHandler(userService),
		DeleteUserHandler:          handlers.DeleteUserHandler(userService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background workers and health checks.
	cron.InitReminderWorker(notificationService)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

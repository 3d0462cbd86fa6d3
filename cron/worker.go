package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"carelink/config"
	"carelink/services/booking"
	"carelink/services/notification"
	"carelink/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the asynq worker that delivers appointment
// reminders in the background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(booking.TypeBookingReminder, handleReminderTask(notifSvc))

	go func() {
		logger := utils.GetLogger()
		logger.Info("reminder worker: starting")

		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("reminder worker: failed to start",
				zap.Int("attempt", attempt), zap.Error(err))
			if attempt == maxAttempts {
				logger.Fatal("reminder worker: max retry attempts reached")
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p booking.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("reminder worker: invalid payload", zap.Error(err))
			return err
		}

		data := map[string]string{
			"bookingId": p.BookingID,
			"date":      p.Date,
			"start":     p.StartTime,
			"event":     "booking_reminder",
		}
		title := "Upcoming appointment"
		clientBody := fmt.Sprintf("Your appointment starts at %s on %s.", p.StartTime, p.Date)
		providerBody := fmt.Sprintf("Your %s appointment on %s starts soon.", p.StartTime, p.Date)

		// Both parties get the nudge; one failed push should not block the other.
		if err := notifSvc.SendUserPush(ctx, p.ClientID, title, clientBody, data); err != nil {
			logger.Warn("reminder worker: client push failed",
				zap.String("bookingID", p.BookingID), zap.Error(err))
		}
		if err := notifSvc.SendProviderPush(ctx, p.ProviderID, title, providerBody, data); err != nil {
			logger.Warn("reminder worker: provider push failed",
				zap.String("bookingID", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}

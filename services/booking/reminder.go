package booking

import (
	"encoding/json"
	"time"

	"carelink/config"
	"carelink/models"
	"carelink/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeBookingReminder is the asynq task type for appointment reminders.
const TypeBookingReminder = "booking:reminder"

// reminderLead is how long before the appointment the reminder fires.
const reminderLead = time.Hour

// ReminderPayload is the asynq task payload for a booking reminder.
type ReminderPayload struct {
	BookingID  string `json:"bookingId"`
	ClientID   string `json:"clientId"`
	ProviderID string `json:"providerId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
}

// NewReminderClient constructs the asynq client used to enqueue reminders.
func NewReminderClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
}

// scheduleReminder enqueues a reminder task to fire one hour before the
// appointment start. Appointments starting too soon get no reminder.
func (s *DefaultBookingService) scheduleReminder(b *models.Booking) {
	if s.Reminders == nil {
		return
	}
	logger := utils.GetLogger()

	startAt, err := time.ParseInLocation("2006-01-02 15:04", b.Date+" "+b.StartTime, time.Local)
	if err != nil {
		logger.Warn("reminder: unparseable booking start", zap.String("bookingID", b.ID), zap.Error(err))
		return
	}
	processAt := startAt.Add(-reminderLead)
	if processAt.Before(time.Now()) {
		return
	}

	payload, err := json.Marshal(ReminderPayload{
		BookingID:  b.ID,
		ClientID:   b.ClientID,
		ProviderID: b.ProviderID,
		Date:       b.Date,
		StartTime:  b.StartTime,
	})
	if err != nil {
		logger.Warn("reminder: failed to marshal payload", zap.Error(err))
		return
	}

	task := asynq.NewTask(TypeBookingReminder, payload)
	if _, err := s.Reminders.Enqueue(task, asynq.ProcessAt(processAt)); err != nil {
		logger.Warn("reminder: failed to enqueue task",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
}

package notification

import (
	"context"
	"fmt"

	providerRepo "carelink/database/repository/provider"
	userRepo "carelink/database/repository/user"
	"carelink/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error
	SendProviderPush(ctx context.Context, providerID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users     userRepo.UserRepository
	Providers providerRepo.ProviderRepository
}

func (s *DefaultNotificationService) SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPush: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendUserPush: user %s has no FCM token", userID)
	}
	return send(ctx, u.FCMToken, title, body, data)
}

func (s *DefaultNotificationService) SendProviderPush(ctx context.Context, providerID, title, body string, data map[string]string) error {
	p, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		return fmt.Errorf("SendProviderPush: could not find provider %s: %w", providerID, err)
	}
	if p.FCMToken == "" {
		return fmt.Errorf("SendProviderPush: provider %s has no FCM token", providerID)
	}
	return send(ctx, p.FCMToken, title, body, data)
}

func send(ctx context.Context, token, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		return fmt.Errorf("notification: FCM client not initialized")
	}
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	id, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("notification: failed to send push: %w", err)
	}
	utils.GetLogger().Debug("push notification sent", zap.String("messageID", id))
	return nil
}

package provider

import (
	"context"
	"errors"
	"fmt"

	providerRepo "carelink/database/repository/provider"
	"carelink/models"
)

var (
	ErrProviderNotFound = errors.New("caregiver not found")
	ErrEmailInUse       = errors.New("email already registered")
	ErrInvalidPassword  = errors.New("invalid email or password")
	ErrInvalidTemplate  = errors.New("invalid weekly availability template")
)

// AuthResponse carries the issued token and the caregiver's public identity.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// ProviderService defines business logic for caregiver accounts and their
// availability templates.
type ProviderService interface {
	RegisterProvider(ctx context.Context, provider models.Provider, password string) (*AuthResponse, error)
	AuthenticateProvider(ctx context.Context, email, password string) (*AuthResponse, error)
	RevokeProviderAuthToken(ctx context.Context, providerID string) error
	GetProviderByID(ctx context.Context, id string) (*models.Provider, error)
	UpdateProvider(ctx context.Context, id string, updates map[string]interface{}) (*models.Provider, error)
	DeleteProvider(ctx context.Context, id string) error
	SetWeeklyTemplate(ctx context.Context, providerID string, tpl models.WeeklyTemplate, granularityMin int) (models.WeeklyTemplate, error)
	GetWeeklyTemplate(ctx context.Context, providerID string) (models.WeeklyTemplate, error)
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo providerRepo.ProviderRepository
}

func (s *DefaultProviderService) GetProviderByID(ctx context.Context, id string) (*models.Provider, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return nil, ErrProviderNotFound
	}
	return p, err
}

func (s *DefaultProviderService) UpdateProvider(ctx context.Context, id string, updates map[string]interface{}) (*models.Provider, error) {
	// Credentials and templates have dedicated flows.
	for _, forbidden := range []string{"id", "email", "password_hash", "weekly_template"} {
		delete(updates, forbidden)
	}
	p, err := s.Repo.UpdateFields(ctx, id, updates)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update caregiver profile: %w", err)
	}
	return p, nil
}

func (s *DefaultProviderService) DeleteProvider(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return ErrProviderNotFound
	}
	return err
}

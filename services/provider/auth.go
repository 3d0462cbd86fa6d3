package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	providerRepo "carelink/database/repository/provider"
	"carelink/models"
	"carelink/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterProvider creates a caregiver account and signs it in.
func (s *DefaultProviderService) RegisterProvider(ctx context.Context, provider models.Provider, password string) (*AuthResponse, error) {
	if _, err := s.Repo.GetByEmail(ctx, provider.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, providerRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check caregiver email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	provider.ID = uuid.New().String()
	provider.PasswordHash = string(hash)
	provider.Status = "pending"
	provider.CreatedAt = time.Now()
	provider.UpdatedAt = provider.CreatedAt
	provider.WeeklyTemplate = nil // set through the availability flow

	if err := s.Repo.Create(ctx, &provider); err != nil {
		return nil, fmt.Errorf("failed to create caregiver: %w", err)
	}
	return s.issueToken(ctx, &provider)
}

// AuthenticateProvider verifies credentials and returns a fresh token.
func (s *DefaultProviderService) AuthenticateProvider(ctx context.Context, email, password string) (*AuthResponse, error) {
	p, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, providerRepo.ErrNotFound) {
		return nil, ErrInvalidPassword
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch caregiver: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidPassword
	}
	return s.issueToken(ctx, p)
}

// RevokeProviderAuthToken signs the caregiver out everywhere.
func (s *DefaultProviderService) RevokeProviderAuthToken(ctx context.Context, providerID string) error {
	return utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+"provider:"+providerID).Err()
}

func (s *DefaultProviderService) issueToken(ctx context.Context, p *models.Provider) (*AuthResponse, error) {
	token, err := utils.GenerateToken(p.ID, p.Email, "provider", utils.AuthTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	key := utils.AuthCachePrefix + "provider:" + p.ID
	if err := utils.GetAuthCacheClient().Set(ctx, key, utils.HashToken(token), utils.AuthTokenTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to cache auth token: %w", err)
	}
	return &AuthResponse{ID: p.ID, Token: token, Name: p.Name, Email: p.Email}, nil
}

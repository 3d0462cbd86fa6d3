package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	userRepo "carelink/database/repository/user"
	"carelink/models"
	"carelink/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailInUse      = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid email or password")
)

// AuthResponse carries the issued token and the user's public identity.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UserService defines business logic for client accounts.
type UserService interface {
	RegisterUser(ctx context.Context, user models.User, password string) (*AuthResponse, error)
	AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error)
	RevokeUserAuthToken(ctx context.Context, userID string) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// RegisterUser creates a client account and signs it in.
func (s *DefaultUserService) RegisterUser(ctx context.Context, user models.User, password string) (*AuthResponse, error) {
	if _, err := s.Repo.GetByEmail(ctx, user.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, userRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.ID = uuid.New().String()
	user.PasswordHash = string(hash)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	if err := s.Repo.Create(ctx, &user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return s.issueToken(ctx, &user)
}

// AuthenticateUser verifies credentials and returns a fresh token.
func (s *DefaultUserService) AuthenticateUser(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, ErrInvalidPassword
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidPassword
	}
	return s.issueToken(ctx, u)
}

// RevokeUserAuthToken signs the user out everywhere.
func (s *DefaultUserService) RevokeUserAuthToken(ctx context.Context, userID string) error {
	return utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+"user:"+userID).Err()
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *DefaultUserService) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	err := s.Repo.Update(ctx, user)
	if errors.Is(err, userRepo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, userRepo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *DefaultUserService) issueToken(ctx context.Context, u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, "user", utils.AuthTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	key := utils.AuthCachePrefix + "user:" + u.ID
	if err := utils.GetAuthCacheClient().Set(ctx, key, utils.HashToken(token), utils.AuthTokenTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to cache auth token: %w", err)
	}
	return &AuthResponse{ID: u.ID, Token: token, Name: u.Name, Email: u.Email}, nil
}

// Package service provides the business logic for accounts and vocabulary
// entries, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/kotodex/internal/models"
	"github.com/atinyakov/kotodex/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the bcrypt work factor used for password hashing.
const bcryptCost = 10

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// EmailExists returns true if a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateUser persists a new user record.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail fetches a user by email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID fetches a user by identifier.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthService implements registration and login on top of a UserRepository.
type AuthService struct {
	repo UserRepository
}

// NewAuthService constructs a new AuthService using the provided repository.
func NewAuthService(repo UserRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Register validates the fields, rejects duplicate emails and persists a new
// user with a bcrypt-hashed password. The raw password is never stored.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	if fullName == "" {
		return nil, &ValidationError{Message: "full name is required"}
	}
	if email == "" {
		return nil, &ValidationError{Message: "a valid email is required"}
	}
	if password == "" {
		return nil, &ValidationError{Message: "a password is required"}
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		// The unique constraint wins the race the pre-check can lose.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies the email/password pair and returns the matching user.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, &ValidationError{Message: "email and password are required"}
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}
	return user, nil
}

// GetByID fetches a user by identifier.
func (s *AuthService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

package users

import (
	"context"
	"errors"

	"github.com/templatehub/backend/internal/models"
	"github.com/templatehub/backend/pkg/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Service encapsulates user-related business logic. Passwords are stored as
// bcrypt hashes, never in clear text.
type Service struct {
	repo UserRepository
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperr.Validation("username and password are required", nil)
	}
	if len(password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters", nil)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}
	u := &models.User{Username: username, Email: email, PasswordHash: string(hash)}
	created, err := s.repo.Insert(ctx, u)
	if err != nil {
		if errors.Is(err, ErrExists) {
			return nil, apperr.Validation("username already taken", nil)
		}
		return nil, apperr.Internal("failed to create user", err)
	}
	return created, nil
}

// Authenticate verifies credentials and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, apperr.Internal("user lookup failed", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return u, nil
}

// GetByID resolves a user by its ObjectID hex string.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidID("invalid user id")
	}
	u, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("user lookup failed", err)
	}
	return u, nil
}

// GetByUsername resolves a user by username.
func (s *Service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("user lookup failed", err)
	}
	return u, nil
}

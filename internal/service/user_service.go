package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"brokersim/internal/auth"
	"brokersim/internal/domain"
)

// UserService handles account registration and administration.
type UserService struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo domain.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new user with the default USER role. Email is
// unique; a duplicate registers as a conflict.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.Conflict("email already registered")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, domain.Internal("failed to create user", err)
	}

	return user, nil
}

// FindAll returns every user.
func (s *UserService) FindAll(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, domain.Internal("failed to list users", err)
	}
	return users, nil
}

// FindOne returns a user by ID.
func (s *UserService) FindOne(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NotFound("user not found")
	}
	return user, nil
}

// Remove deletes a user by ID.
func (s *UserService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return domain.NotFound("user not found")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return domain.Internal("failed to delete user", err)
	}
	return nil
}

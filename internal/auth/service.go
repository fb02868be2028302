package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"brokersim/internal/domain"
)

// Service verifies credentials and issues session tokens.
type Service struct {
	userRepo domain.UserRepository
	codec    *TokenCodec
}

// NewService creates a new auth Service
func NewService(userRepo domain.UserRepository, codec *TokenCodec) *Service {
	return &Service{
		userRepo: userRepo,
		codec:    codec,
	}
}

// Login checks an email/password pair against the stored user record and
// returns a signed token plus the matched user. Both an unknown email and
// a wrong password produce the same error, so callers cannot probe which
// emails exist.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.Unauthorized("invalid credentials")
	}

	token, err := s.codec.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, domain.Internal("failed to sign token", err)
	}

	return token, user, nil
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.Internal("failed to hash password", err)
	}
	return string(hashed), nil
}

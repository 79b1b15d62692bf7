package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/guilliammrst/enrollment-api/internal/api/metrics"
	"github.com/guilliammrst/enrollment-api/internal/core/domain"
	"github.com/guilliammrst/enrollment-api/internal/core/ports"
)

// UserService implements admin user provisioning.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Provision creates a user with the next sequential id. The email uniqueness
// check here gives a clean early failure; the store enforces it again inside
// the atomic create, which is the authoritative check under concurrency.
func (s *UserService) Provision(ctx context.Context, input ports.ProvisionUserInput) (*domain.User, error) {
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("provision user: %w", err)
	}

	created, err := s.users.Create(ctx, domain.User{
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("provision user: %w", err)
	}

	metrics.UsersCreatedTotal.WithLabelValues(created.Role).Inc()
	s.log.Info().Int("user_id", created.ID).Str("role", created.Role).Msg("user provisioned")
	return created, nil
}

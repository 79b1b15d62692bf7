package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/guilliammrst/enrollment-api/internal/api/metrics"
	"github.com/guilliammrst/enrollment-api/internal/core/domain"
	"github.com/guilliammrst/enrollment-api/internal/core/ports"
)

// AuthService resolves credentials against the user collection and issues
// HS256 bearer tokens. Passwords are compared in plaintext against the
// stored value; this is the inherited contract (see DESIGN.md), not an
// oversight.
type AuthService struct {
	users     ports.UserRepository
	lockout   ports.LoginLockout // nil disables throttling
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, lockout ports.LoginLockout, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, lockout: lockout, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.lockout != nil {
		locked, err := s.lockout.IsLocked(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("lockout check failed, proceeding")
		} else if locked {
			metrics.AuthFailuresTotal.WithLabelValues("locked_out").Inc()
			return nil, domain.ErrLockedOut
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if user.Password != password {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if s.lockout != nil {
		if err := s.lockout.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("lockout reset failed")
		}
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Int("user_id", user.ID).Str("role", user.Role).Msg("user logged in")
	return token, user, nil
}

// Verify parses a token minted by Login back into the caller identity.
func (s *AuthService) Verify(token string) (*ports.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	return &ports.Identity{UserID: int(sub), Email: email, Role: role}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	metrics.AuthFailuresTotal.WithLabelValues("invalid_credentials").Inc()
	if s.lockout == nil {
		return
	}
	if err := s.lockout.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to record login failure")
	}
}

package ports

import (
	"context"

	"github.com/guilliammrst/enrollment-api/internal/core/domain"
)

// Identity is the authenticated caller attached to a request after the guard
// has resolved its credentials.
type Identity struct {
	UserID int
	Email  string
	Role   string
}

// AuthService resolves credentials to stored users and issues tokens.
type AuthService interface {
	// Authenticate resolves an email/password pair to exactly one stored
	// user, or fails with domain.ErrInvalidCredentials (or
	// domain.ErrLockedOut when throttled).
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	// Login authenticates and issues a signed bearer token for the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Verify parses a token minted by Login back into the caller identity.
	Verify(token string) (*Identity, error)
}

// LoginLockout throttles repeated failed logins per account. Implementations
// may be best-effort; the guard treats lockout-store errors as "not locked".
type LoginLockout interface {
	IsLocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

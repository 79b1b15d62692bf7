package middleware

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/guilliammrst/enrollment-api/internal/core/domain"
	"github.com/guilliammrst/enrollment-api/internal/core/ports"
)

const basicRealm = `Basic realm="enrollment", charset="UTF-8"`

// Auth authenticates every request and injects the caller identity into the
// echo context under "user_id", "email" and "role". Two credential
// transports are accepted:
//   - Authorization: Basic <email:password>, resolved against the user
//     collection on every request.
//   - Authorization: Bearer <token>, a JWT minted by POST /auth/login.
//
// A failed match is always a 401 (Unauthenticated); role checks are a
// separate concern (see RBAC) so the two failure modes stay distinguishable.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return challenge(c, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 {
				return challenge(c, "invalid authorization header")
			}

			var identity *ports.Identity
			switch strings.ToLower(parts[0]) {
			case "basic":
				email, password, err := decodeBasic(parts[1])
				if err != nil {
					return challenge(c, "invalid authorization header")
				}
				user, err := auth.Authenticate(c.Request().Context(), email, password)
				if err != nil {
					if errors.Is(err, domain.ErrLockedOut) {
						return err
					}
					return challenge(c, "invalid credentials")
				}
				identity = &ports.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
			case "bearer":
				id, err := auth.Verify(parts[1])
				if err != nil {
					return challenge(c, "invalid token")
				}
				identity = id
			default:
				return challenge(c, "unsupported authorization scheme")
			}

			c.Set("user_id", identity.UserID)
			c.Set("email", identity.Email)
			c.Set("role", identity.Role)

			return next(c)
		}
	}
}

func decodeBasic(encoded string) (email, password string, err error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", err
	}
	email, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", errors.New("malformed basic credentials")
	}
	return email, password, nil
}

// challenge rejects with 401 and a WWW-Authenticate header so Basic-auth
// clients know to (re)prompt for credentials.
func challenge(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, basicRealm)
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}

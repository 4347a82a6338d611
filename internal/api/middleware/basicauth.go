package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/microblog/user-service/internal/api/metrics"
	"github.com/microblog/user-service/internal/core/domain"
)

// ctxUserKey is the echo context key the authenticated user is stored under.
const ctxUserKey = "auth_user"

// Authenticator verifies a username/password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// Throttle limits consecutive failed logins per username. Implementations
// are optional: a nil Throttle disables throttling entirely.
type Throttle interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthenticatedUser returns the user placed in the context by the Basic-auth
// middleware, or nil for unauthenticated requests.
func AuthenticatedUser(c echo.Context) *domain.User {
	user, _ := c.Get(ctxUserKey).(*domain.User)
	return user
}

// SetAuthenticatedUser stores the user in the request context. Exposed for
// handler tests that bypass the middleware.
func SetAuthenticatedUser(c echo.Context, user *domain.User) {
	c.Set(ctxUserKey, user)
}

// RequireBasicAuth rejects requests without valid HTTP Basic credentials.
//
// Rejections are a bare 401 with an empty body and no WWW-Authenticate
// header: the response must not reveal whether the username exists, and the
// browser basic-auth dialog is unwanted for an API consumed by SPAs.
func RequireBasicAuth(auth Authenticator, throttle Throttle) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, password, ok := basicCredentials(c)
			if !ok {
				return c.NoContent(http.StatusUnauthorized)
			}

			ctx := c.Request().Context()

			if throttle != nil {
				allowed, err := throttle.Allow(ctx, username)
				if err != nil {
					return err
				}
				if !allowed {
					metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
					return c.NoContent(http.StatusTooManyRequests)
				}
			}

			user, err := auth.Authenticate(ctx, username, password)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredentials) {
					metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
					if throttle != nil {
						_ = throttle.RecordFailure(ctx, username)
					}
					return c.NoContent(http.StatusUnauthorized)
				}
				return err
			}

			metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
			if throttle != nil {
				_ = throttle.Reset(ctx, username)
			}

			SetAuthenticatedUser(c, user)
			return next(c)
		}
	}
}

// OptionalBasicAuth authenticates the caller when credentials are offered
// and passes the request through anonymously when they are not. Credentials
// that are present but wrong are still rejected: offering them means asking
// to be authenticated.
func OptionalBasicAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}

			username, password, ok := basicCredentials(c)
			if !ok {
				return c.NoContent(http.StatusUnauthorized)
			}

			user, err := auth.Authenticate(c.Request().Context(), username, password)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredentials) {
					return c.NoContent(http.StatusUnauthorized)
				}
				return err
			}

			SetAuthenticatedUser(c, user)
			return next(c)
		}
	}
}

// basicCredentials extracts the username/password pair from an HTTP Basic
// Authorization header.
func basicCredentials(c echo.Context) (string, string, bool) {
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "basic") {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", false
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found || username == "" {
		return "", "", false
	}
	return username, password, true
}

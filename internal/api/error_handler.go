package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/microblog/user-service/internal/api/handler"
	"github.com/microblog/user-service/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the APIError envelope carrying the request path.
//
// Authentication failures are the one exception to the envelope: they answer
// with an empty body so the response carries no signal about the account.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrInvalidCredentials) {
			_ = c.NoContent(http.StatusUnauthorized)
			return
		}

		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			apiErr := handler.NewAPIError(http.StatusBadRequest, "Validation error", c.Path())
			apiErr.ValidationErrors = ve.Errors
			_ = c.JSON(http.StatusBadRequest, apiErr)
			return
		}

		// Echo's own errors (bind failures, 404 from router, etc.)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, handler.NewAPIError(he.Code, fmt.Sprintf("%v", he.Message), c.Path()))
			return
		}

		// Unexpected error: log the real cause, return a generic message.
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = c.JSON(http.StatusInternalServerError,
			handler.NewAPIError(http.StatusInternalServerError, "internal server error", c.Path()))
	}
}

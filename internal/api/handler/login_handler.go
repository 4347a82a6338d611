package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/microblog/user-service/internal/api/middleware"
)

// LoginHandler returns the authenticated caller's own sanitized record. The
// Basic-auth middleware has already verified the credentials by the time
// this runs; no session is created, every request re-presents credentials.
type LoginHandler struct{}

func NewLoginHandler() *LoginHandler {
	return &LoginHandler{}
}

// Login handles POST /api/1.0/login.
//
// @Summary      Authenticate with HTTP Basic credentials
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  userResponse
// @Failure      401  "empty body"
// @Router       /api/1.0/login [post]
func (h *LoginHandler) Login(c echo.Context) error {
	user := middleware.AuthenticatedUser(c)
	if user == nil {
		// the route is always registered behind RequireBasicAuth
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

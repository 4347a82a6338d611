package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/microblog/user-service/internal/api/metrics"
	"github.com/microblog/user-service/internal/api/middleware"
	"github.com/microblog/user-service/internal/core/domain"
	"github.com/microblog/user-service/internal/core/ports"
)

// UserHandler handles signup and user listing.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Signup handles POST /api/1.0/users.
//
// @Summary      Create a new account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      200   {object}  genericResponse
// @Failure      400   {object}  APIError
// @Failure      500   {object}  APIError
// @Router       /api/1.0/users [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewAPIError(http.StatusBadRequest, "Invalid request body", c.Path()))
	}

	_, err := h.service.Signup(c.Request().Context(), ports.SignupInput{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		Image:       req.Image,
	})
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			for field := range ve.Errors {
				metrics.SignupValidationFailuresTotal.WithLabelValues(field).Inc()
			}
			apiErr := NewAPIError(http.StatusBadRequest, "Validation error", c.Path())
			apiErr.ValidationErrors = ve.Errors
			return c.JSON(http.StatusBadRequest, apiErr)
		}
		return err
	}

	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusOK, genericResponse{Message: "User saved"})
}

// List handles GET /api/1.0/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Param        page  query     int  false  "Zero-based page number"
// @Param        size  query     int  false  "Page size (defaults to 10, capped at 100)"
// @Success      200   {object}  userPageResponse
// @Failure      500   {object}  APIError
// @Router       /api/1.0/users [get]
func (h *UserHandler) List(c echo.Context) error {
	// Unparsable parameters fall through as zero values and pick up the
	// service defaults; out-of-range values are clamped there too.
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	var requesterID string
	if user := middleware.AuthenticatedUser(c); user != nil {
		requesterID = user.ID
	}

	result, err := h.service.ListUsers(c.Request().Context(), ports.ListUsersInput{
		RequesterID: requesterID,
		Page:        page,
		Size:        size,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPageResponse(result))
}

func toPageResponse(p *ports.UserPage) userPageResponse {
	content := make([]userResponse, 0, len(p.Users))
	for _, u := range p.Users {
		content = append(content, toUserResponse(&u))
	}
	return userPageResponse{
		Content:          content,
		Page:             p.Page,
		Size:             p.Size,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		NumberOfElements: p.NumberOfElements,
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Image:       u.Image,
	}
}

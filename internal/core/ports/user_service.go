package ports

import (
	"context"

	"github.com/microblog/user-service/internal/core/domain"
)

// SignupInput is the DTO passed from the transport layer to UserService.
// Required fields are pointers so that an absent JSON field is
// distinguishable from an empty string when the validation rules run.
type SignupInput struct {
	Username    *string
	DisplayName *string
	Password    *string
	Image       string
}

// ListUsersInput carries the raw listing parameters. Page and Size arrive
// unnormalized; the service applies the clamping policy.
type ListUsersInput struct {
	// RequesterID is the id of the authenticated caller, excluded from the
	// results. Empty means an unauthenticated request: nothing is excluded.
	RequesterID string
	Page        int
	Size        int
}

// UserPage is one page of users plus the pagination metadata the API
// serializes verbatim.
type UserPage struct {
	Users            []domain.User
	Page             int
	Size             int
	TotalElements    int64
	TotalPages       int
	NumberOfElements int
}

// UserService defines the account use cases.
type UserService interface {
	// Signup validates and persists a new account. On rule failures it
	// returns *domain.ValidationError and writes nothing.
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	ListUsers(ctx context.Context, input ListUsersInput) (*UserPage, error)
	// Authenticate verifies a username/password pair. Unknown usernames and
	// wrong passwords are indistinguishable: both return
	// domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

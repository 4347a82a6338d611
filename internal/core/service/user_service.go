package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/microblog/user-service/internal/core/domain"
	"github.com/microblog/user-service/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// UserService implements signup, listing and credential verification.
type UserService struct {
	repo       ports.UserRepository
	bcryptCost int
	logger     zerolog.Logger
}

func NewUserService(repo ports.UserRepository, bcryptCost int, logger zerolog.Logger) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, bcryptCost: bcryptCost, logger: logger}
}

// Signup validates the candidate, hashes the password and persists the
// record. The uniqueness pre-check only produces the friendly message; the
// store's unique index is the authority, so a concurrent duplicate insert
// surfaces through the same validation error.
func (s *UserService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	taken := func(username string) bool {
		_, err := s.repo.FindByUsername(ctx, username)
		return err == nil
	}

	if errs := validateSignup(input, taken); len(errs) > 0 {
		return nil, domain.NewValidationError(errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     *input.Username,
		DisplayName:  *input.DisplayName,
		PasswordHash: string(hash),
		Image:        input.Image,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, domain.NewValidationError(map[string]string{"username": msgUsernameTaken})
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return created, nil
}

// ListUsers returns one page of users with the requester excluded. Out of
// range paging parameters are clamped, never rejected.
func (s *UserService) ListUsers(ctx context.Context, input ports.ListUsersInput) (*ports.UserPage, error) {
	page, size := normalizePageRequest(input.Page, input.Size)

	users, total, err := s.repo.FindPage(ctx, input.RequesterID, page, size)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, err
	}

	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}

	return &ports.UserPage{
		Users:            users,
		Page:             page,
		Size:             size,
		TotalElements:    total,
		TotalPages:       totalPages,
		NumberOfElements: len(users),
	}, nil
}

// Authenticate verifies the credentials against the stored hash. Lookup
// misses and hash mismatches collapse into the same error so callers cannot
// probe for existing usernames.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// normalizePageRequest applies the clamping policy: size defaults to 10 when
// missing or non-positive and is capped at 100; a negative page becomes 0.
func normalizePageRequest(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

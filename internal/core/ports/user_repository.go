package ports

import (
	"context"

	"github.com/microblog/user-service/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
//
// Username uniqueness is enforced by the store itself (unique index): Create
// must return domain.ErrUsernameTaken when another record with the same
// username already exists, including under concurrent inserts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindPage returns one page of users and the total count, both excluding
	// the record whose id equals excludeID. An empty excludeID excludes
	// nothing. page is zero-based; size is the page length.
	FindPage(ctx context.Context, excludeID string, page, size int) ([]domain.User, int64, error)
}

// Package seed inserts demo accounts at process start. It is a development
// convenience living outside the core API surface: accounts go through the
// regular signup service so they are hashed and validated like any other.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/microblog/user-service/internal/core/domain"
	"github.com/microblog/user-service/internal/core/ports"
)

const (
	demoUserCount = 15
	demoPassword  = "P4ssword"
)

// DemoUsers creates the userN/displayN demo accounts. Re-running against a
// populated store is harmless: duplicates come back as validation errors and
// are skipped.
func DemoUsers(ctx context.Context, svc ports.UserService, log zerolog.Logger) error {
	created := 0
	for i := 1; i <= demoUserCount; i++ {
		username := fmt.Sprintf("user%d", i)
		displayName := fmt.Sprintf("display%d", i)
		password := demoPassword

		_, err := svc.Signup(ctx, ports.SignupInput{
			Username:    &username,
			DisplayName: &displayName,
			Password:    &password,
		})
		if err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				continue // already seeded
			}
			return fmt.Errorf("seed %s: %w", username, err)
		}
		created++
	}

	log.Info().Int("created", created).Msg("demo users seeded")
	return nil
}

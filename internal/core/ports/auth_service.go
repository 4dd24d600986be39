package ports

import (
	"context"

	"github.com/voicedeck/recorder-api/internal/core/domain"
)

// AuthService implements registration and credential verification.
type AuthService interface {
	// Register creates an account. Fails with a wrapped domain.ErrValidation on
	// malformed input and domain.ErrUserExists on duplicates.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Authenticate verifies email+password. An unknown email and a wrong
	// password both fail with domain.ErrInvalidCredentials, indistinguishably.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	// CurrentUser resolves the account behind a session's user id.
	CurrentUser(ctx context.Context, userID int64) (*domain.User, error)
}

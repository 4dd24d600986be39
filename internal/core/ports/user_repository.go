package ports

import (
	"context"

	"github.com/voicedeck/recorder-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create inserts a new user and returns it with ID and CreatedAt set.
	// Returns domain.ErrUserExists on a duplicate username or email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

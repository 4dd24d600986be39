package ports

import (
	"context"

	"github.com/voicedeck/recorder-api/internal/core/domain"
)

// RecordingRepository defines persistence for recording metadata rows.
// Every read and write is scoped to the owning user; a recording id belonging
// to another user behaves exactly like a missing row.
type RecordingRepository interface {
	// Create inserts a row and returns it with ID and CreatedAt set.
	Create(ctx context.Context, rec *domain.Recording) (*domain.Recording, error)
	// ListByUser returns the user's recordings, newest-created-first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Recording, error)
	// FindByID returns the recording only when owned by userID,
	// otherwise domain.ErrRecordingNotFound.
	FindByID(ctx context.Context, userID, id int64) (*domain.Recording, error)
	// Rename updates original_name and returns the updated row.
	// Fails with domain.ErrRecordingNotFound when absent or not owned.
	Rename(ctx context.Context, userID, id int64, name string) (*domain.Recording, error)
	// Delete removes the row. Fails with domain.ErrRecordingNotFound when
	// absent or not owned.
	Delete(ctx context.Context, userID, id int64) error
}

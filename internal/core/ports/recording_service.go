package ports

import (
	"context"
	"io"

	"github.com/voicedeck/recorder-api/internal/core/domain"
)

// UploadInput carries a single uploaded audio payload from the transport layer.
type UploadInput struct {
	UserID       int64
	OriginalName string
	ContentType  string
	Size         int64
	Duration     *float64 // seconds, optional
	Body         io.Reader
}

// RecordingView is a Recording enriched with the URL the blob is served from.
type RecordingView struct {
	domain.Recording
	URL string `json:"url"`
}

// RecordingService implements the upload/list/rename/delete use cases,
// always scoped to the calling user.
type RecordingService interface {
	Create(ctx context.Context, in UploadInput) (*RecordingView, error)
	List(ctx context.Context, userID int64) ([]*RecordingView, error)
	Rename(ctx context.Context, userID, id int64, newName string) (*RecordingView, error)
	Delete(ctx context.Context, userID, id int64) error
}

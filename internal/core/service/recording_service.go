package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/voicedeck/recorder-api/internal/core/domain"
	"github.com/voicedeck/recorder-api/internal/core/ports"
	"github.com/voicedeck/recorder-api/internal/metrics"
)

// RecordingService implements the recording use cases on top of the metadata
// repository and the configured blob storage.
type RecordingService struct {
	repo     ports.RecordingRepository
	storage  ports.ObjectStorage
	maxBytes int64
	logger   zerolog.Logger
}

func NewRecordingService(repo ports.RecordingRepository, storage ports.ObjectStorage, maxBytes int64, logger zerolog.Logger) *RecordingService {
	return &RecordingService{repo: repo, storage: storage, maxBytes: maxBytes, logger: logger}
}

// Create stores the blob first, then the metadata row. If the row insert
// fails the orphaned blob is removed so storage does not accumulate garbage.
func (s *RecordingService) Create(ctx context.Context, in ports.UploadInput) (*ports.RecordingView, error) {
	if !strings.HasPrefix(in.ContentType, "audio/") {
		metrics.UploadsRejectedTotal.WithLabelValues("unsupported_media").Inc()
		return nil, domain.ErrUnsupportedMedia
	}
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		metrics.UploadsRejectedTotal.WithLabelValues("too_large").Inc()
		return nil, domain.ErrPayloadTooLarge
	}

	key := newStorageKey(in.OriginalName)
	if err := s.storage.Store(ctx, key, in.ContentType, in.Body, in.Size); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to store audio blob")
		return nil, fmt.Errorf("store blob: %w", err)
	}

	rec := &domain.Recording{
		UserID:       in.UserID,
		StorageKey:   key,
		OriginalName: in.OriginalName,
		ContentType:  in.ContentType,
		Size:         in.Size,
		Duration:     in.Duration,
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		if rmErr := s.storage.Remove(ctx, key); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("key", key).Msg("failed to clean up orphaned blob")
		}
		return nil, err
	}

	metrics.RecordingsUploadedTotal.WithLabelValues(in.ContentType).Inc()
	metrics.UploadBytes.Observe(float64(in.Size))

	s.logger.Info().
		Int64("user_id", in.UserID).
		Int64("recording_id", created.ID).
		Int64("size", in.Size).
		Msg("recording uploaded")

	return s.view(ctx, created), nil
}

func (s *RecordingService) List(ctx context.Context, userID int64) ([]*ports.RecordingView, error) {
	recs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*ports.RecordingView, len(recs))
	for i, rec := range recs {
		views[i] = s.view(ctx, rec)
	}
	return views, nil
}

func (s *RecordingService) Rename(ctx context.Context, userID, id int64, newName string) (*ports.RecordingView, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
	}

	rec, err := s.repo.Rename(ctx, userID, id, newName)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, rec), nil
}

// Delete attempts blob removal before dropping the metadata row. A failed
// blob delete is logged and swallowed: an orphaned blob is recoverable, a
// stuck metadata row blocks the user.
func (s *RecordingService) Delete(ctx context.Context, userID, id int64) error {
	rec, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.storage.Remove(ctx, rec.StorageKey); err != nil {
		metrics.BlobDeleteFailuresTotal.Inc()
		s.logger.Warn().Err(err).
			Int64("recording_id", id).
			Str("key", rec.StorageKey).
			Msg("failed to delete stored blob, removing metadata anyway")
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", userID).Int64("recording_id", id).Msg("recording deleted")
	return nil
}

func (s *RecordingService) view(ctx context.Context, rec *domain.Recording) *ports.RecordingView {
	url, err := s.storage.URL(ctx, rec.StorageKey)
	if err != nil {
		// Listing still works without a playable link.
		s.logger.Warn().Err(err).Str("key", rec.StorageKey).Msg("failed to resolve blob url")
	}
	return &ports.RecordingView{Recording: *rec, URL: url}
}

// newStorageKey builds a collision-free key: upload instant, random suffix,
// original extension preserved so content sniffing keeps working.
func newStorageKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("recording-%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/voicedeck/recorder-api/internal/core/domain"
)

// RecordingRepository implements ports.RecordingRepository using PostgreSQL.
// Every query filters by (id AND user_id); a row owned by someone else is
// indistinguishable from a missing row.
type RecordingRepository struct {
	db Querier
}

func NewRecordingRepository(db Querier) *RecordingRepository {
	return &RecordingRepository{db: db}
}

const recordingColumns = `id, user_id, storage_key, original_name, content_type, size, duration, created_at`

func (r *RecordingRepository) Create(ctx context.Context, rec *domain.Recording) (*domain.Recording, error) {
	const q = `
INSERT INTO recordings (user_id, storage_key, original_name, content_type, size, duration)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

	created := *rec
	err := r.db.QueryRow(ctx, q,
		rec.UserID, rec.StorageKey, rec.OriginalName, rec.ContentType, rec.Size, rec.Duration).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert recording: %w", err)
	}

	return &created, nil
}

func (r *RecordingRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Recording, error) {
	const q = `
SELECT ` + recordingColumns + ` FROM recordings
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	defer rows.Close()

	var out []*domain.Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recording: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}

	return out, nil
}

func (r *RecordingRepository) FindByID(ctx context.Context, userID, id int64) (*domain.Recording, error) {
	const q = `
SELECT ` + recordingColumns + ` FROM recordings
WHERE id = $1 AND user_id = $2`

	rec, err := scanRecording(r.db.QueryRow(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordingNotFound
		}
		return nil, fmt.Errorf("find recording: %w", err)
	}

	return rec, nil
}

func (r *RecordingRepository) Rename(ctx context.Context, userID, id int64, name string) (*domain.Recording, error) {
	const q = `
UPDATE recordings SET original_name = $3
WHERE id = $1 AND user_id = $2
RETURNING ` + recordingColumns

	rec, err := scanRecording(r.db.QueryRow(ctx, q, id, userID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordingNotFound
		}
		return nil, fmt.Errorf("rename recording: %w", err)
	}

	return rec, nil
}

func (r *RecordingRepository) Delete(ctx context.Context, userID, id int64) error {
	const q = `
DELETE FROM recordings
WHERE id = $1 AND user_id = $2`

	tag, err := r.db.Exec(ctx, q, id, userID)
	if err != nil {
		return fmt.Errorf("delete recording: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordingNotFound
	}

	return nil
}

func scanRecording(row pgx.Row) (*domain.Recording, error) {
	var rec domain.Recording
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.StorageKey, &rec.OriginalName,
		&rec.ContentType, &rec.Size, &rec.Duration, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

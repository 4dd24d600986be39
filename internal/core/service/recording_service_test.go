package service

import (
	"context"
	"errors"
	"io"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/voicedeck/recorder-api/internal/core/domain"
	"github.com/voicedeck/recorder-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubRecordingRepo struct {
	byID      map[int64]*domain.Recording
	nextID    int64
	createErr error
}

func newStubRecordingRepo() *stubRecordingRepo {
	return &stubRecordingRepo{byID: make(map[int64]*domain.Recording)}
}

func (r *stubRecordingRepo) Create(_ context.Context, rec *domain.Recording) (*domain.Recording, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *rec
	clone.ID = r.nextID
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now().UTC()
	}
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRecordingRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Recording, error) {
	var out []*domain.Recording
	for _, rec := range r.byID {
		if rec.UserID == userID {
			clone := *rec
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubRecordingRepo) FindByID(_ context.Context, userID, id int64) (*domain.Recording, error) {
	rec, ok := r.byID[id]
	if !ok || rec.UserID != userID {
		return nil, domain.ErrRecordingNotFound
	}
	clone := *rec
	return &clone, nil
}

func (r *stubRecordingRepo) Rename(_ context.Context, userID, id int64, name string) (*domain.Recording, error) {
	rec, ok := r.byID[id]
	if !ok || rec.UserID != userID {
		return nil, domain.ErrRecordingNotFound
	}
	rec.OriginalName = name
	clone := *rec
	return &clone, nil
}

func (r *stubRecordingRepo) Delete(_ context.Context, userID, id int64) error {
	rec, ok := r.byID[id]
	if !ok || rec.UserID != userID {
		return domain.ErrRecordingNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubStorage struct {
	stored    map[string][]byte
	removed   []string
	storeErr  error
	removeErr error
}

func newStubStorage() *stubStorage {
	return &stubStorage{stored: make(map[string][]byte)}
}

func (s *stubStorage) Store(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	if s.storeErr != nil {
		return s.storeErr
	}
	data, _ := io.ReadAll(body)
	s.stored[key] = data
	return nil
}

func (s *stubStorage) Remove(_ context.Context, key string) error {
	s.removed = append(s.removed, key)
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.stored, key)
	return nil
}

func (s *stubStorage) URL(_ context.Context, key string) (string, error) {
	return "/uploads/" + key, nil
}

func newRecordingSvc(repo *stubRecordingRepo, storage *stubStorage, maxBytes int64) *RecordingService {
	return NewRecordingService(repo, storage, maxBytes, zerolog.Nop())
}

func audioUpload(userID int64, name string, payload string) ports.UploadInput {
	return ports.UploadInput{
		UserID:       userID,
		OriginalName: name,
		ContentType:  "audio/webm",
		Size:         int64(len(payload)),
		Body:         strings.NewReader(payload),
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRecordingService_Create_StoresBlobAndRow(t *testing.T) {
	repo := newStubRecordingRepo()
	storage := newStubStorage()
	svc := newRecordingSvc(repo, storage, 0)

	payload := strings.Repeat("a", 1024)
	view, err := svc.Create(context.Background(), audioUpload(1, "memo.webm", payload))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if view.ID == 0 || view.Size != 1024 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.URL != "/uploads/"+view.StorageKey {
		t.Fatalf("unexpected url: %q", view.URL)
	}
	if got := storage.stored[view.StorageKey]; len(got) != 1024 {
		t.Fatalf("blob not stored, got %d bytes", len(got))
	}
}

func TestRecordingService_Create_RejectsNonAudio(t *testing.T) {
	repo := newStubRecordingRepo()
	storage := newStubStorage()
	svc := newRecordingSvc(repo, storage, 0)

	in := audioUpload(1, "notes.txt", "hello")
	in.ContentType = "text/plain"

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, domain.ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", err)
	}
	if len(storage.stored) != 0 {
		t.Fatalf("blob should not have been stored")
	}
}

func TestRecordingService_Create_RejectsOversized(t *testing.T) {
	svc := newRecordingSvc(newStubRecordingRepo(), newStubStorage(), 10)

	_, err := svc.Create(context.Background(), audioUpload(1, "big.webm", strings.Repeat("x", 11)))
	if !errors.Is(err, domain.ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestRecordingService_Create_CleansUpBlobOnInsertFailure(t *testing.T) {
	repo := newStubRecordingRepo()
	repo.createErr = errors.New("insert failed")
	storage := newStubStorage()
	svc := newRecordingSvc(repo, storage, 0)

	_, err := svc.Create(context.Background(), audioUpload(1, "memo.webm", "data"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(storage.removed) != 1 {
		t.Fatalf("expected orphaned blob removal, removed=%v", storage.removed)
	}
}

func TestRecordingService_List_NewestFirst(t *testing.T) {
	repo := newStubRecordingRepo()
	storage := newStubStorage()
	svc := newRecordingSvc(repo, storage, 0)

	t1 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	repo.byID[1] = &domain.Recording{ID: 1, UserID: 7, StorageKey: "r1", CreatedAt: t1}
	repo.byID[2] = &domain.Recording{ID: 2, UserID: 7, StorageKey: "r2", CreatedAt: t2}
	repo.nextID = 2

	views, err := svc.List(context.Background(), 7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 2 || views[0].ID != 2 || views[1].ID != 1 {
		t.Fatalf("expected [2 1], got %+v", views)
	}
}

func TestRecordingService_Rename_EmptyName(t *testing.T) {
	repo := newStubRecordingRepo()
	repo.byID[1] = &domain.Recording{ID: 1, UserID: 7, OriginalName: "before"}
	repo.nextID = 1
	svc := newRecordingSvc(repo, newStubStorage(), 0)

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Rename(context.Background(), 7, 1, name); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("name %q: expected ErrValidation, got %v", name, err)
		}
	}
	if repo.byID[1].OriginalName != "before" {
		t.Fatalf("stored name changed: %q", repo.byID[1].OriginalName)
	}
}

func TestRecordingService_Rename_OtherUsersRecording(t *testing.T) {
	repo := newStubRecordingRepo()
	repo.byID[1] = &domain.Recording{ID: 1, UserID: 7, OriginalName: "owned"}
	repo.nextID = 1
	svc := newRecordingSvc(repo, newStubStorage(), 0)

	if _, err := svc.Rename(context.Background(), 8, 1, "stolen"); !errors.Is(err, domain.ErrRecordingNotFound) {
		t.Fatalf("expected ErrRecordingNotFound, got %v", err)
	}
}

func TestRecordingService_Delete_RemovesBlobThenRow(t *testing.T) {
	repo := newStubRecordingRepo()
	storage := newStubStorage()
	storage.stored["key1"] = []byte("blob")
	repo.byID[1] = &domain.Recording{ID: 1, UserID: 7, StorageKey: "key1"}
	repo.nextID = 1
	svc := newRecordingSvc(repo, storage, 0)

	if err := svc.Delete(context.Background(), 7, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(storage.removed) != 1 || storage.removed[0] != "key1" {
		t.Fatalf("blob removal not attempted: %v", storage.removed)
	}
	if _, ok := repo.byID[1]; ok {
		t.Fatalf("metadata row still present")
	}
}

func TestRecordingService_Delete_BlobFailureStillDeletesRow(t *testing.T) {
	repo := newStubRecordingRepo()
	storage := newStubStorage()
	storage.removeErr = errors.New("bucket unreachable")
	repo.byID[1] = &domain.Recording{ID: 1, UserID: 7, StorageKey: "key1"}
	repo.nextID = 1
	svc := newRecordingSvc(repo, storage, 0)

	if err := svc.Delete(context.Background(), 7, 1); err != nil {
		t.Fatalf("delete should swallow blob errors, got %v", err)
	}
	if _, ok := repo.byID[1]; ok {
		t.Fatalf("metadata row still present")
	}
}

func TestRecordingService_Delete_NotOwned(t *testing.T) {
	repo := newStubRecordingRepo()
	repo.byID[1] = &domain.Recording{ID: 1, UserID: 7, StorageKey: "key1"}
	repo.nextID = 1
	svc := newRecordingSvc(repo, newStubStorage(), 0)

	if err := svc.Delete(context.Background(), 8, 1); !errors.Is(err, domain.ErrRecordingNotFound) {
		t.Fatalf("expected ErrRecordingNotFound, got %v", err)
	}
}

func TestNewStorageKey_Shape(t *testing.T) {
	key := newStorageKey("My Memo.WEBM")
	if !regexp.MustCompile(`^recording-\d+-[0-9a-f-]{8}\.webm$`).MatchString(key) {
		t.Fatalf("unexpected key shape: %q", key)
	}
	if key == newStorageKey("My Memo.WEBM") {
		t.Fatalf("two keys for the same name collided")
	}
}

package photo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/albumforge/albumforge-api/internal/pkg/imaging"
)

type memPhotoRepo struct {
	items map[uuid.UUID]*Photo

	failCreate bool
}

func newMemPhotoRepo() *memPhotoRepo {
	return &memPhotoRepo{items: map[uuid.UUID]*Photo{}}
}

func (m *memPhotoRepo) Create(ctx context.Context, p *Photo) error {
	if m.failCreate {
		return fmt.Errorf("insert failed")
	}
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memPhotoRepo) GetByID(ctx context.Context, id uuid.UUID) (*Photo, error) {
	if p, ok := m.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memPhotoRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Photo, error) {
	var result []*Photo
	for _, p := range m.items {
		if p.UserID == ownerID {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UploadedAt.After(result[j].UploadedAt) })
	return result, nil
}

func (m *memPhotoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

type memStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: map[string][]byte{}}
}

func (m *memStorage) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return nil
}

func (m *memStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, fmt.Errorf("blob %s not found", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *memStorage) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok, nil
}

func (m *memStorage) GetURL(key string) string {
	return "http://localhost/" + key
}

func (m *memStorage) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestService(repo Repository, store *memStorage) *Service {
	return NewService(repo, store, imaging.NewProcessor(imaging.DefaultConfig()), 10)
}

func TestUploadStoresOriginalAndThumbnail(t *testing.T) {
	repo := newMemPhotoRepo()
	store := newMemStorage()
	svc := newTestService(repo, store)
	owner := uuid.New()

	data := pngBytes(t, 32, 32)
	resp, err := svc.Upload(context.Background(), owner, "vacation.png", int64(len(data)), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.MimeType != "image/png" {
		t.Fatalf("unexpected mime type %q", resp.MimeType)
	}
	if resp.OriginalFilename != "vacation.png" {
		t.Fatalf("unexpected filename %q", resp.OriginalFilename)
	}
	if store.len() != 2 {
		t.Fatalf("expected original and thumbnail blobs, got %d", store.len())
	}
	if len(repo.items) != 1 {
		t.Fatal("expected photo record persisted")
	}
}

func TestUploadRejectsNonImagePayload(t *testing.T) {
	svc := newTestService(newMemPhotoRepo(), newMemStorage())

	data := []byte("definitely not an image")
	_, err := svc.Upload(context.Background(), uuid.New(), "note.png", int64(len(data)), bytes.NewReader(data))
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	svc := newTestService(newMemPhotoRepo(), newMemStorage())

	data := pngBytes(t, 8, 8)
	_, err := svc.Upload(context.Background(), uuid.New(), "document.pdf", int64(len(data)), bytes.NewReader(data))
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage for .pdf, got %v", err)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := newTestService(newMemPhotoRepo(), newMemStorage())

	_, err := svc.Upload(context.Background(), uuid.New(), "huge.png", 11*1024*1024, bytes.NewReader(nil))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestUploadCleansUpBlobsOnInsertFailure(t *testing.T) {
	repo := newMemPhotoRepo()
	repo.failCreate = true
	store := newMemStorage()
	svc := newTestService(repo, store)

	data := pngBytes(t, 16, 16)
	if _, err := svc.Upload(context.Background(), uuid.New(), "x.png", int64(len(data)), bytes.NewReader(data)); err == nil {
		t.Fatal("expected upload error")
	}
	if store.len() != 0 {
		t.Fatalf("expected blobs cleaned up, %d left", store.len())
	}
}

func TestGetOwnedChecksOwnership(t *testing.T) {
	repo := newMemPhotoRepo()
	store := newMemStorage()
	svc := newTestService(repo, store)
	owner := uuid.New()

	data := pngBytes(t, 16, 16)
	resp, err := svc.Upload(context.Background(), owner, "x.png", int64(len(data)), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, err := svc.GetOwned(context.Background(), uuid.New(), resp.PhotoID); !errors.Is(err, ErrNotPhotoOwner) {
		t.Fatalf("expected ErrNotPhotoOwner, got %v", err)
	}
	if _, err := svc.GetOwned(context.Background(), owner, uuid.New()); !errors.Is(err, ErrPhotoNotFound) {
		t.Fatalf("expected ErrPhotoNotFound, got %v", err)
	}
	if _, err := svc.GetOwned(context.Background(), owner, resp.PhotoID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
}

func TestOpenFileStreamsStoredBytes(t *testing.T) {
	repo := newMemPhotoRepo()
	store := newMemStorage()
	svc := newTestService(repo, store)
	owner := uuid.New()

	data := pngBytes(t, 16, 16)
	resp, err := svc.Upload(context.Background(), owner, "x.png", int64(len(data)), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	rc, p, err := svc.OpenFile(context.Background(), owner, resp.PhotoID)
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if int64(len(got)) != p.FileSize {
		t.Fatalf("expected %d bytes, got %d", p.FileSize, len(got))
	}
}

func TestDeleteRemovesRecordAndBlobs(t *testing.T) {
	repo := newMemPhotoRepo()
	store := newMemStorage()
	svc := newTestService(repo, store)
	owner := uuid.New()

	data := pngBytes(t, 16, 16)
	resp, err := svc.Upload(context.Background(), owner, "x.png", int64(len(data)), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Delete(context.Background(), uuid.New(), resp.PhotoID); !errors.Is(err, ErrNotPhotoOwner) {
		t.Fatalf("expected ErrNotPhotoOwner, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, resp.PhotoID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatal("expected photo record removed")
	}

	// Blob deletion runs off the request path
	deadline := time.After(2 * time.Second)
	for store.len() != 0 {
		select {
		case <-deadline:
			t.Fatalf("expected blobs removed, %d left", store.len())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

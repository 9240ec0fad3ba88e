package export

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/albumforge/albumforge-api/internal/domain/photo"
	"github.com/albumforge/albumforge-api/internal/domain/sticker"
	"github.com/albumforge/albumforge-api/internal/pkg/storage"
)

// storagePhotoSource reads photo blobs from the configured storage backend
type storagePhotoSource struct {
	repo  photo.Repository
	store storage.Storage
}

// NewPhotoSource creates a PhotoSource backed by the photo repository and
// blob storage
func NewPhotoSource(repo photo.Repository, store storage.Storage) PhotoSource {
	return &storagePhotoSource{repo: repo, store: store}
}

func (s *storagePhotoSource) PhotoImage(ctx context.Context, id uuid.UUID) (image.Image, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("photo %s not found", id)
	}

	rc, err := s.store.Get(ctx, p.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo blob: %w", err)
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo %s: %w", id, err)
	}
	return img, nil
}

// httpStickerSource fetches sticker assets over HTTP from their catalog URL
type httpStickerSource struct {
	repo   sticker.Repository
	client *http.Client
}

// NewStickerSource creates a StickerSource that fetches sticker assets by
// their catalog URL
func NewStickerSource(repo sticker.Repository) StickerSource {
	return &httpStickerSource{
		repo:   repo,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *httpStickerSource) StickerImage(ctx context.Context, id uuid.UUID) (image.Image, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("sticker %s not found", id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, st.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("bad sticker url: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sticker asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sticker asset fetch returned status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sticker %s: %w", id, err)
	}
	return img, nil
}

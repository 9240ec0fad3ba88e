package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/albumforge/albumforge-api/internal/pkg/imaging"
	"github.com/albumforge/albumforge-api/internal/pkg/storage"
)

// Service handles photo upload and retrieval
type Service struct {
	repo      Repository
	store     storage.Storage
	processor *imaging.Processor
	maxSize   int64
}

// NewService creates photo service. maxSizeMB bounds the accepted upload size.
func NewService(repo Repository, store storage.Storage, processor *imaging.Processor, maxSizeMB int) *Service {
	return &Service{
		repo:      repo,
		store:     store,
		processor: processor,
		maxSize:   int64(maxSizeMB) * 1024 * 1024,
	}
}

// MaxSize returns the upload size limit in bytes
func (s *Service) MaxSize() int64 {
	return s.maxSize
}

// Upload validates, processes and stores an uploaded image, then records it.
// The original and a thumbnail are written to blob storage.
func (s *Service) Upload(ctx context.Context, ownerID uuid.UUID, filename string, size int64, reader io.Reader) (*PhotoResponse, error) {
	if size > s.maxSize {
		return nil, ErrFileTooLarge
	}
	if !imaging.ValidateType(filename) {
		return nil, ErrInvalidImage
	}

	processed, err := s.processor.Process(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	photoID := uuid.New()
	ext := strings.ToLower(filepath.Ext(filename))
	if processed.ContentType == "image/jpeg" && ext != ".jpg" && ext != ".jpeg" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("photos/%s/%s%s", ownerID, photoID, ext)
	thumbKey := fmt.Sprintf("photos/%s/%s_thumb%s", ownerID, photoID, ext)

	if err := s.store.Put(ctx, key, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}
	if err := s.store.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
		// Best effort cleanup of the original before failing
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("failed to clean up photo after thumbnail error")
		}
		return nil, fmt.Errorf("failed to store thumbnail: %w", err)
	}

	p := &Photo{
		ID:               photoID,
		UserID:           ownerID,
		StorageKey:       key,
		ThumbnailKey:     thumbKey,
		URL:              s.store.GetURL(key),
		OriginalFilename: filename,
		FileSize:         int64(len(processed.Original)),
		MimeType:         processed.ContentType,
		UploadedAt:       time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("failed to clean up photo after insert error")
		}
		if delErr := s.store.Delete(ctx, thumbKey); delErr != nil {
			log.Warn().Err(delErr).Str("key", thumbKey).Msg("failed to clean up thumbnail after insert error")
		}
		return nil, err
	}

	resp := NewPhotoResponse(p, s.store.GetURL(thumbKey))
	return &resp, nil
}

// List returns the caller's photos, newest first
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]PhotoResponse, error) {
	photos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]PhotoResponse, 0, len(photos))
	for _, p := range photos {
		result = append(result, NewPhotoResponse(p, s.store.GetURL(p.ThumbnailKey)))
	}
	return result, nil
}

// GetOwned returns a photo if it exists and belongs to the caller
func (s *Service) GetOwned(ctx context.Context, ownerID, photoID uuid.UUID) (*Photo, error) {
	p, err := s.repo.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPhotoNotFound
	}
	if p.UserID != ownerID {
		return nil, ErrNotPhotoOwner
	}
	return p, nil
}

// OpenFile returns a reader over the stored photo bytes
func (s *Service) OpenFile(ctx context.Context, ownerID, photoID uuid.UUID) (io.ReadCloser, *Photo, error) {
	p, err := s.GetOwned(ctx, ownerID, photoID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Get(ctx, p.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open photo blob: %w", err)
	}
	return rc, p, nil
}

// Delete removes a photo record, then its blobs in the background
func (s *Service) Delete(ctx context.Context, ownerID, photoID uuid.UUID) error {
	p, err := s.GetOwned(ctx, ownerID, photoID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, photoID); err != nil {
		return err
	}

	// Blob removal is off the request path; a leak here is harmless
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.store.Delete(ctx, p.StorageKey); err != nil {
			log.Warn().Err(err).Str("key", p.StorageKey).Msg("failed to delete photo blob")
		}
		if err := s.store.Delete(ctx, p.ThumbnailKey); err != nil {
			log.Warn().Err(err).Str("key", p.ThumbnailKey).Msg("failed to delete thumbnail blob")
		}
	}()

	return nil
}

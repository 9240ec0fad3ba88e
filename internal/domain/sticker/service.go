package sticker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	catalogCacheKey = "stickers:catalog"
	catalogCacheTTL = 10 * time.Minute
)

// Service handles sticker catalog logic with an optional Redis cache in
// front of the full-catalog listing. A nil redis client disables caching.
type Service struct {
	repo  Repository
	cache *redis.Client
}

// NewService creates sticker service
func NewService(repo Repository, cache *redis.Client) *Service {
	return &Service{repo: repo, cache: cache}
}

// List returns catalog stickers, optionally filtered by category.
// The unfiltered listing is served from cache when possible.
func (s *Service) List(ctx context.Context, category string) ([]StickerResponse, error) {
	if category == "" {
		if cached := s.readCache(ctx); cached != nil {
			return cached, nil
		}
	}

	stickers, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, err
	}

	result := make([]StickerResponse, 0, len(stickers))
	for _, st := range stickers {
		result = append(result, NewStickerResponse(st))
	}

	if category == "" {
		s.writeCache(ctx, result)
	}
	return result, nil
}

// Get returns a single sticker by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*StickerResponse, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStickerNotFound
	}
	resp := NewStickerResponse(st)
	return &resp, nil
}

// Exists reports whether a sticker id is present in the catalog
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return st != nil, nil
}

// Create adds a sticker to the catalog
func (s *Service) Create(ctx context.Context, req *CreateStickerRequest) (*StickerResponse, error) {
	now := time.Now()
	st := &Sticker{
		ID:        uuid.New(),
		Name:      req.Name,
		URL:       req.URL,
		Category:  req.Category,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	resp := NewStickerResponse(st)
	return &resp, nil
}

// Update applies a partial update to a catalog sticker
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateStickerRequest) (*StickerResponse, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStickerNotFound
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.URL != nil {
		st.URL = *req.URL
	}
	if req.Category != nil {
		st.Category = *req.Category
	}
	if req.Tags != nil {
		st.Tags = req.Tags
	}
	st.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	resp := NewStickerResponse(st)
	return &resp, nil
}

// Delete removes a sticker from the catalog
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil {
		return ErrStickerNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *Service) readCache(ctx context.Context) []StickerResponse {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("sticker cache read failed")
		}
		return nil
	}

	var result []StickerResponse
	if err := json.Unmarshal(data, &result); err != nil {
		log.Warn().Err(err).Msg("sticker cache payload corrupt, dropping")
		s.invalidateCache(ctx)
		return nil
	}
	return result
}

func (s *Service) writeCache(ctx context.Context, result []StickerResponse) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, catalogCacheKey, data, catalogCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("sticker cache write failed")
	}
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, catalogCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("sticker cache invalidation failed")
	}
}

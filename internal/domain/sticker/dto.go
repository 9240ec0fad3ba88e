package sticker

import (
	"time"

	"github.com/google/uuid"
)

// CreateStickerRequest for POST /stickers (admin only)
type CreateStickerRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=100"`
	URL      string   `json:"url" validate:"required,url"`
	Category string   `json:"category" validate:"required,min=1,max=50"`
	Tags     []string `json:"tags" validate:"omitempty,dive,min=1,max=30"`
}

// UpdateStickerRequest for PUT /stickers/{stickerId} (admin only).
// Only the provided fields are applied.
type UpdateStickerRequest struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=100"`
	URL      *string  `json:"url" validate:"omitempty,url"`
	Category *string  `json:"category" validate:"omitempty,min=1,max=50"`
	Tags     []string `json:"tags" validate:"omitempty,dive,min=1,max=30"`
}

// StickerResponse represents a catalog sticker in API responses
type StickerResponse struct {
	StickerID uuid.UUID `json:"stickerId"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt string    `json:"createdAt"`
}

// NewStickerResponse converts entity to response DTO
func NewStickerResponse(s *Sticker) StickerResponse {
	tags := []string(s.Tags)
	if tags == nil {
		tags = []string{}
	}
	return StickerResponse{
		StickerID: s.ID,
		Name:      s.Name,
		URL:       s.URL,
		Category:  s.Category,
		Tags:      tags,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}

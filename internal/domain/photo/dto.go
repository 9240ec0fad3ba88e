package photo

import (
	"time"

	"github.com/google/uuid"
)

// PhotoResponse represents an uploaded photo in API responses
type PhotoResponse struct {
	PhotoID          uuid.UUID `json:"photoId"`
	URL              string    `json:"url"`
	ThumbnailURL     string    `json:"thumbnailUrl,omitempty"`
	OriginalFilename string    `json:"originalFilename"`
	FileSize         int64     `json:"fileSize"`
	MimeType         string    `json:"mimeType"`
	UploadedAt       string    `json:"uploadedAt"`
}

// NewPhotoResponse converts entity to response DTO
func NewPhotoResponse(p *Photo, thumbnailURL string) PhotoResponse {
	return PhotoResponse{
		PhotoID:          p.ID,
		URL:              p.URL,
		ThumbnailURL:     thumbnailURL,
		OriginalFilename: p.OriginalFilename,
		FileSize:         p.FileSize,
		MimeType:         p.MimeType,
		UploadedAt:       p.UploadedAt.Format(time.RFC3339),
	}
}

package photo

import (
	"time"

	"github.com/google/uuid"
)

// Photo represents an uploaded photo owned by a user
type Photo struct {
	ID               uuid.UUID `db:"id"`
	UserID           uuid.UUID `db:"user_id"`
	StorageKey       string    `db:"storage_key"`
	ThumbnailKey     string    `db:"thumbnail_key"`
	URL              string    `db:"url"`
	OriginalFilename string    `db:"original_filename"`
	FileSize         int64     `db:"file_size"`
	MimeType         string    `db:"mime_type"`
	UploadedAt       time.Time `db:"uploaded_at"`
}

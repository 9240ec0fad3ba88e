package sticker

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Sticker represents a catalog sticker available to all users
type Sticker struct {
	ID        uuid.UUID      `db:"id"`
	Name      string         `db:"name"`
	URL       string         `db:"url"`
	Category  string         `db:"category"`
	Tags      pq.StringArray `db:"tags"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

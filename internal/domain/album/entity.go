package album

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

// DefaultTitle is used when an album is created without one
const DefaultTitle = "Untitled Album"

// Album represents a photo album owned by a user
type Album struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Page represents a single page within an album.
// Page numbers are unique per album and start at 1.
type Page struct {
	ID         uuid.UUID `db:"id" json:"id"`
	AlbumID    uuid.UUID `db:"album_id" json:"album_id"`
	PageNumber int       `db:"page_number" json:"page_number"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Object represents a placed element on a page: photo, sticker, text or
// drawing. ContentData is a type-tagged JSON payload, see contentdata.go.
type Object struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	PageID      uuid.UUID      `db:"page_id" json:"page_id"`
	Type        string         `db:"type" json:"type"`
	PositionX   int            `db:"position_x" json:"position_x"`
	PositionY   int            `db:"position_y" json:"position_y"`
	Width       int            `db:"width" json:"width"`
	Height      int            `db:"height" json:"height"`
	Rotation    float64        `db:"rotation" json:"rotation"`
	ZIndex      int            `db:"z_index" json:"z_index"`
	ContentData types.JSONText `db:"content_data" json:"content_data"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// ObjectOwnership is an object joined with its page's album and the album's
// owner, resolved in one query for ownership-chain checks.
type ObjectOwnership struct {
	Object
	AlbumID uuid.UUID `db:"album_id"`
	OwnerID uuid.UUID `db:"owner_id"`
}

package album

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CreateAlbumRequest for POST /albums
type CreateAlbumRequest struct {
	Title string `json:"title" validate:"max=100"`
}

// UpdateAlbumRequest for PATCH /albums/{albumId}
type UpdateAlbumRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
}

// CreateObjectRequest for POST /albums/{albumId}/objects
type CreateObjectRequest struct {
	PageID      uuid.UUID       `json:"pageId" validate:"required"`
	Type        string          `json:"type" validate:"required,object_type"`
	PositionX   *int            `json:"positionX" validate:"required"`
	PositionY   *int            `json:"positionY" validate:"required"`
	Width       *int            `json:"width" validate:"required,gt=0"`
	Height      *int            `json:"height" validate:"required,gt=0"`
	Rotation    *float64        `json:"rotation"`
	ZIndex      *int            `json:"zIndex"`
	ContentData json.RawMessage `json:"contentData" validate:"required"`
}

// UpdateObjectRequest for PUT /albums/{albumId}/objects/{objectId}.
// Only the provided fields are applied.
type UpdateObjectRequest struct {
	PositionX   *int            `json:"positionX"`
	PositionY   *int            `json:"positionY"`
	Width       *int            `json:"width" validate:"omitempty,gt=0"`
	Height      *int            `json:"height" validate:"omitempty,gt=0"`
	Rotation    *float64        `json:"rotation"`
	ZIndex      *int            `json:"zIndex"`
	ContentData json.RawMessage `json:"contentData"`
}

// AlbumResponse represents an album in list responses
type AlbumResponse struct {
	AlbumID   uuid.UUID `json:"albumId"`
	Title     string    `json:"title"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// PageResponse represents a page, optionally with its objects
type PageResponse struct {
	PageID     uuid.UUID        `json:"pageId"`
	PageNumber int              `json:"pageNumber"`
	Objects    []ObjectResponse `json:"objects,omitempty"`
}

// ObjectResponse represents a placed object in API responses
type ObjectResponse struct {
	ObjectID    uuid.UUID       `json:"objectId"`
	PageID      uuid.UUID       `json:"pageId"`
	Type        string          `json:"type"`
	PositionX   int             `json:"positionX"`
	PositionY   int             `json:"positionY"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Rotation    float64         `json:"rotation"`
	ZIndex      int             `json:"zIndex"`
	ContentData json.RawMessage `json:"contentData"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// AlbumDetailResponse represents an album with its full page/object tree
type AlbumDetailResponse struct {
	AlbumID   uuid.UUID      `json:"albumId"`
	Title     string         `json:"title"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
	Pages     []PageResponse `json:"pages"`
}

// AlbumResponseFromEntity converts entity to response DTO
func AlbumResponseFromEntity(a *Album) AlbumResponse {
	return AlbumResponse{
		AlbumID:   a.ID,
		Title:     a.Title,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

// PageResponseFromEntity converts entity to response DTO
func PageResponseFromEntity(p *Page) PageResponse {
	return PageResponse{
		PageID:     p.ID,
		PageNumber: p.PageNumber,
	}
}

// ObjectResponseFromEntity converts entity to response DTO
func ObjectResponseFromEntity(o *Object) ObjectResponse {
	return ObjectResponse{
		ObjectID:    o.ID,
		PageID:      o.PageID,
		Type:        o.Type,
		PositionX:   o.PositionX,
		PositionY:   o.PositionY,
		Width:       o.Width,
		Height:      o.Height,
		Rotation:    o.Rotation,
		ZIndex:      o.ZIndex,
		ContentData: json.RawMessage(o.ContentData),
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   o.UpdatedAt.Format(time.RFC3339),
	}
}

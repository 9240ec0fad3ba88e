package album

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

// Service handles album business logic and ownership checks
type Service struct {
	repo Repository
}

// NewService creates album service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateAlbum creates an album together with its initial page numbered 1.
// The two inserts are atomic: a failed page insert rolls the album back.
func (s *Service) CreateAlbum(ctx context.Context, ownerID uuid.UUID, req *CreateAlbumRequest) (*AlbumDetailResponse, error) {
	title := req.Title
	if title == "" {
		title = DefaultTitle
	}

	now := time.Now()
	a := &Album{
		ID:        uuid.New(),
		UserID:    ownerID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	firstPage := &Page{
		ID:         uuid.New(),
		AlbumID:    a.ID,
		PageNumber: 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateAlbum(ctx, a, firstPage); err != nil {
		return nil, err
	}

	return &AlbumDetailResponse{
		AlbumID:   a.ID,
		Title:     a.Title,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
		Pages:     []PageResponse{PageResponseFromEntity(firstPage)},
	}, nil
}

// ListAlbums returns the caller's albums, newest first
func (s *Service) ListAlbums(ctx context.Context, ownerID uuid.UUID) ([]AlbumResponse, error) {
	albums, err := s.repo.ListAlbumsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]AlbumResponse, 0, len(albums))
	for _, a := range albums {
		result = append(result, AlbumResponseFromEntity(a))
	}
	return result, nil
}

// GetAlbum returns the full album tree. An album that exists but belongs to
// someone else reads as not found, so nothing leaks.
func (s *Service) GetAlbum(ctx context.Context, ownerID, albumID uuid.UUID) (*AlbumDetailResponse, error) {
	a, err := s.repo.GetAlbumByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if a == nil || a.UserID != ownerID {
		return nil, ErrAlbumNotFound
	}

	pages, err := s.repo.ListPagesByAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}

	pageResponses := make([]PageResponse, 0, len(pages))
	for _, p := range pages {
		objects, err := s.repo.ListObjectsByPage(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		pr := PageResponseFromEntity(p)
		pr.Objects = make([]ObjectResponse, 0, len(objects))
		for _, o := range objects {
			pr.Objects = append(pr.Objects, ObjectResponseFromEntity(o))
		}
		pageResponses = append(pageResponses, pr)
	}

	return &AlbumDetailResponse{
		AlbumID:   a.ID,
		Title:     a.Title,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
		Pages:     pageResponses,
	}, nil
}

// UpdateAlbum renames an album
func (s *Service) UpdateAlbum(ctx context.Context, ownerID, albumID uuid.UUID, req *UpdateAlbumRequest) (*AlbumResponse, error) {
	a, err := s.loadOwnedAlbum(ctx, ownerID, albumID)
	if err != nil {
		return nil, err
	}

	a.Title = req.Title
	a.UpdatedAt = time.Now()
	if err := s.repo.UpdateAlbum(ctx, a); err != nil {
		return nil, err
	}

	resp := AlbumResponseFromEntity(a)
	return &resp, nil
}

// DeleteAlbum removes an album with all its pages and objects
func (s *Service) DeleteAlbum(ctx context.Context, ownerID, albumID uuid.UUID) error {
	if _, err := s.loadOwnedAlbum(ctx, ownerID, albumID); err != nil {
		return err
	}
	return s.repo.DeleteAlbum(ctx, albumID)
}

// AddPage appends a page numbered one past the current maximum
func (s *Service) AddPage(ctx context.Context, ownerID, albumID uuid.UUID) (*PageResponse, error) {
	if _, err := s.loadOwnedAlbum(ctx, ownerID, albumID); err != nil {
		return nil, err
	}

	max, err := s.repo.MaxPageNumber(ctx, albumID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Page{
		ID:         uuid.New(),
		AlbumID:    albumID,
		PageNumber: max + 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreatePage(ctx, p); err != nil {
		return nil, err
	}

	resp := PageResponseFromEntity(p)
	return &resp, nil
}

// DeletePage removes a page and, via cascade, its objects
func (s *Service) DeletePage(ctx context.Context, ownerID, albumID, pageID uuid.UUID) error {
	if _, err := s.loadOwnedAlbum(ctx, ownerID, albumID); err != nil {
		return err
	}

	p, err := s.repo.GetPageInAlbum(ctx, pageID, albumID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPageNotFound
	}

	return s.repo.DeletePage(ctx, pageID)
}

// AddObject places a new object on a page. The page must belong to the given
// album and the album to the caller; content is validated against the type.
func (s *Service) AddObject(ctx context.Context, ownerID, albumID uuid.UUID, req *CreateObjectRequest) (*ObjectResponse, error) {
	a, err := s.repo.GetAlbumByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if a == nil || a.UserID != ownerID {
		return nil, ErrAlbumNotFound
	}

	p, err := s.repo.GetPageInAlbum(ctx, req.PageID, albumID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPageNotFound
	}

	if err := ValidateContentData(req.Type, req.ContentData); err != nil {
		return nil, err
	}

	rotation := 0.0
	if req.Rotation != nil {
		rotation = *req.Rotation
	}
	zIndex := 0
	if req.ZIndex != nil {
		zIndex = *req.ZIndex
	}

	now := time.Now()
	o := &Object{
		ID:          uuid.New(),
		PageID:      p.ID,
		Type:        req.Type,
		PositionX:   *req.PositionX,
		PositionY:   *req.PositionY,
		Width:       *req.Width,
		Height:      *req.Height,
		Rotation:    rotation,
		ZIndex:      zIndex,
		ContentData: types.JSONText(req.ContentData),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateObject(ctx, o); err != nil {
		return nil, err
	}

	resp := ObjectResponseFromEntity(o)
	return &resp, nil
}

// UpdateObject applies a partial update after walking the
// object -> page -> album -> owner chain.
func (s *Service) UpdateObject(ctx context.Context, ownerID, albumID, objectID uuid.UUID, req *UpdateObjectRequest) (*ObjectResponse, error) {
	own, err := s.repo.GetObjectOwnership(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if own == nil {
		return nil, ErrObjectNotFound
	}
	if own.AlbumID != albumID {
		return nil, ErrAlbumMismatch
	}
	if own.OwnerID != ownerID {
		return nil, ErrNotAlbumOwner
	}

	o := own.Object
	if req.PositionX != nil {
		o.PositionX = *req.PositionX
	}
	if req.PositionY != nil {
		o.PositionY = *req.PositionY
	}
	if req.Width != nil {
		o.Width = *req.Width
	}
	if req.Height != nil {
		o.Height = *req.Height
	}
	if req.Rotation != nil {
		o.Rotation = *req.Rotation
	}
	if req.ZIndex != nil {
		o.ZIndex = *req.ZIndex
	}
	if req.ContentData != nil {
		if err := ValidateContentData(o.Type, req.ContentData); err != nil {
			return nil, err
		}
		o.ContentData = types.JSONText(req.ContentData)
	}
	o.UpdatedAt = time.Now()

	if err := s.repo.UpdateObject(ctx, &o); err != nil {
		return nil, err
	}

	resp := ObjectResponseFromEntity(&o)
	return &resp, nil
}

// DeleteObject removes an object after the same chain checks as update
func (s *Service) DeleteObject(ctx context.Context, ownerID, albumID, objectID uuid.UUID) error {
	own, err := s.repo.GetObjectOwnership(ctx, objectID)
	if err != nil {
		return err
	}
	if own == nil {
		return ErrObjectNotFound
	}
	if own.AlbumID != albumID {
		return ErrAlbumMismatch
	}
	if own.OwnerID != ownerID {
		return ErrNotAlbumOwner
	}

	return s.repo.DeleteObject(ctx, objectID)
}

// loadOwnedAlbum returns the album or ErrAlbumNotFound / ErrNotAlbumOwner
func (s *Service) loadOwnedAlbum(ctx context.Context, ownerID, albumID uuid.UUID) (*Album, error) {
	a, err := s.repo.GetAlbumByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAlbumNotFound
	}
	if a.UserID != ownerID {
		return nil, ErrNotAlbumOwner
	}
	return a, nil
}

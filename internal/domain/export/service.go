package export

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albumforge/albumforge-api/internal/domain/album"
)

// Service assembles an album tree and hands it to the renderer
type Service struct {
	albums   album.Repository
	renderer *Renderer
}

// NewService creates export service
func NewService(albums album.Repository, renderer *Renderer) *Service {
	return &Service{albums: albums, renderer: renderer}
}

// ExportResult is a finished PDF export
type ExportResult struct {
	Filename string
	Data     []byte
}

// Export renders the caller's album to PDF. An album that exists but
// belongs to someone else reads as not found.
func (s *Service) Export(ctx context.Context, ownerID, albumID uuid.UUID) (*ExportResult, error) {
	a, err := s.albums.GetAlbumByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if a == nil || a.UserID != ownerID {
		return nil, album.ErrAlbumNotFound
	}

	pages, err := s.albums.ListPagesByAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}

	objectsByPage := make(map[uuid.UUID][]*album.Object, len(pages))
	for _, p := range pages {
		objects, err := s.albums.ListObjectsByPage(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		objectsByPage[p.ID] = objects
	}

	data, err := s.renderer.Render(ctx, pages, objectsByPage)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Filename: fmt.Sprintf("album-%s.pdf", albumID),
		Data:     data,
	}, nil
}

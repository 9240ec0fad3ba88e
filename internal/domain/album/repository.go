package album

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines album/page/object data access interface
type Repository interface {
	// CreateAlbum inserts the album and its first page in one transaction.
	CreateAlbum(ctx context.Context, a *Album, firstPage *Page) error
	GetAlbumByID(ctx context.Context, id uuid.UUID) (*Album, error)
	ListAlbumsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Album, error)
	UpdateAlbum(ctx context.Context, a *Album) error
	DeleteAlbum(ctx context.Context, id uuid.UUID) error

	CreatePage(ctx context.Context, p *Page) error
	GetPageInAlbum(ctx context.Context, pageID, albumID uuid.UUID) (*Page, error)
	ListPagesByAlbum(ctx context.Context, albumID uuid.UUID) ([]*Page, error)
	MaxPageNumber(ctx context.Context, albumID uuid.UUID) (int, error)
	DeletePage(ctx context.Context, pageID uuid.UUID) error

	CreateObject(ctx context.Context, o *Object) error
	ListObjectsByPage(ctx context.Context, pageID uuid.UUID) ([]*Object, error)
	GetObjectOwnership(ctx context.Context, objectID uuid.UUID) (*ObjectOwnership, error)
	UpdateObject(ctx context.Context, o *Object) error
	DeleteObject(ctx context.Context, objectID uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new album repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateAlbum(ctx context.Context, a *Album, firstPage *Page) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	albumQuery := `
		INSERT INTO albums (id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, albumQuery,
		a.ID, a.UserID, a.Title, a.CreatedAt, a.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert album: %w", err)
	}

	pageQuery := `
		INSERT INTO album_pages (id, album_id, page_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, pageQuery,
		firstPage.ID, firstPage.AlbumID, firstPage.PageNumber, firstPage.CreatedAt, firstPage.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert initial page: %w", err)
	}

	return tx.Commit()
}

func (r *repository) GetAlbumByID(ctx context.Context, id uuid.UUID) (*Album, error) {
	query := `SELECT * FROM albums WHERE id = $1`
	var a Album
	err := r.db.GetContext(ctx, &a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListAlbumsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Album, error) {
	query := `SELECT * FROM albums WHERE user_id = $1 ORDER BY created_at DESC`
	var albums []*Album
	err := r.db.SelectContext(ctx, &albums, query, ownerID)
	return albums, err
}

func (r *repository) UpdateAlbum(ctx context.Context, a *Album) error {
	query := `UPDATE albums SET title = $2, updated_at = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Title, a.UpdatedAt)
	return err
}

func (r *repository) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	// Pages and objects go with it via FK cascade
	query := `DELETE FROM albums WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *repository) CreatePage(ctx context.Context, p *Page) error {
	query := `
		INSERT INTO album_pages (id, album_id, page_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.AlbumID, p.PageNumber, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *repository) GetPageInAlbum(ctx context.Context, pageID, albumID uuid.UUID) (*Page, error) {
	query := `SELECT * FROM album_pages WHERE id = $1 AND album_id = $2`
	var p Page
	err := r.db.GetContext(ctx, &p, query, pageID, albumID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListPagesByAlbum(ctx context.Context, albumID uuid.UUID) ([]*Page, error) {
	query := `SELECT * FROM album_pages WHERE album_id = $1 ORDER BY page_number ASC`
	var pages []*Page
	err := r.db.SelectContext(ctx, &pages, query, albumID)
	return pages, err
}

func (r *repository) MaxPageNumber(ctx context.Context, albumID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(MAX(page_number), 0) FROM album_pages WHERE album_id = $1`
	var max int
	err := r.db.GetContext(ctx, &max, query, albumID)
	return max, err
}

func (r *repository) DeletePage(ctx context.Context, pageID uuid.UUID) error {
	query := `DELETE FROM album_pages WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, pageID)
	return err
}

func (r *repository) CreateObject(ctx context.Context, o *Object) error {
	query := `
		INSERT INTO album_objects (id, page_id, type, position_x, position_y, width, height, rotation, z_index, content_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		o.PageID,
		o.Type,
		o.PositionX,
		o.PositionY,
		o.Width,
		o.Height,
		o.Rotation,
		o.ZIndex,
		o.ContentData,
		o.CreatedAt,
		o.UpdatedAt,
	)
	return err
}

func (r *repository) ListObjectsByPage(ctx context.Context, pageID uuid.UUID) ([]*Object, error) {
	query := `SELECT * FROM album_objects WHERE page_id = $1 ORDER BY z_index ASC, created_at ASC`
	var objects []*Object
	err := r.db.SelectContext(ctx, &objects, query, pageID)
	return objects, err
}

func (r *repository) GetObjectOwnership(ctx context.Context, objectID uuid.UUID) (*ObjectOwnership, error) {
	// One join resolves object -> page -> album -> owner
	query := `
		SELECT o.*, p.album_id AS album_id, a.user_id AS owner_id
		FROM album_objects o
		JOIN album_pages p ON p.id = o.page_id
		JOIN albums a ON a.id = p.album_id
		WHERE o.id = $1
	`
	var own ObjectOwnership
	err := r.db.GetContext(ctx, &own, query, objectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &own, nil
}

func (r *repository) UpdateObject(ctx context.Context, o *Object) error {
	query := `
		UPDATE album_objects
		SET position_x = $2, position_y = $3, width = $4, height = $5,
		    rotation = $6, z_index = $7, content_data = $8, updated_at = $9
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		o.PositionX,
		o.PositionY,
		o.Width,
		o.Height,
		o.Rotation,
		o.ZIndex,
		o.ContentData,
		o.UpdatedAt,
	)
	return err
}

func (r *repository) DeleteObject(ctx context.Context, objectID uuid.UUID) error {
	query := `DELETE FROM album_objects WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, objectID)
	return err
}

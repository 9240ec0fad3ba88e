package photo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines photo data access interface
type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new photo repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Photo) error {
	query := `
		INSERT INTO photos (id, user_id, storage_key, thumbnail_key, url, original_filename, file_size, mime_type, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.StorageKey,
		p.ThumbnailKey,
		p.URL,
		p.OriginalFilename,
		p.FileSize,
		p.MimeType,
		p.UploadedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Photo, error) {
	query := `SELECT * FROM photos WHERE id = $1`
	var p Photo
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Photo, error) {
	query := `SELECT * FROM photos WHERE user_id = $1 ORDER BY uploaded_at DESC`
	var photos []*Photo
	err := r.db.SelectContext(ctx, &photos, query, ownerID)
	return photos, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM photos WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

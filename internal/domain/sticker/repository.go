package sticker

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines sticker data access interface
type Repository interface {
	List(ctx context.Context, category string) ([]*Sticker, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Sticker, error)
	Create(ctx context.Context, s *Sticker) error
	Update(ctx context.Context, s *Sticker) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new sticker repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, category string) ([]*Sticker, error) {
	var stickers []*Sticker
	if category != "" {
		query := `SELECT * FROM stickers WHERE category = $1 ORDER BY name ASC`
		err := r.db.SelectContext(ctx, &stickers, query, category)
		return stickers, err
	}
	query := `SELECT * FROM stickers ORDER BY category ASC, name ASC`
	err := r.db.SelectContext(ctx, &stickers, query)
	return stickers, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Sticker, error) {
	query := `SELECT * FROM stickers WHERE id = $1`
	var s Sticker
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) Create(ctx context.Context, s *Sticker) error {
	query := `
		INSERT INTO stickers (id, name, url, category, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.URL, s.Category, s.Tags, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *repository) Update(ctx context.Context, s *Sticker) error {
	query := `
		UPDATE stickers
		SET name = $2, url = $3, category = $4, tags = $5, updated_at = $6
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.URL, s.Category, s.Tags, s.UpdatedAt,
	)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM stickers WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

package repository

import (
	"context"
	"database/sql"

	"github.com/guestlens/server/internal/models"
)

// GalleryRepository handles gallery persistence
type GalleryRepository struct {
	db *DB
}

// NewGalleryRepository creates a new GalleryRepository
func NewGalleryRepository(db *DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

const galleryColumns = `id, name, description, slug, event_date, theme, visibility,
	secret_token, password_hash, host_device_id, created_at, updated_at`

func scanGallery(row interface{ Scan(...interface{}) error }) (*models.Gallery, error) {
	var g models.Gallery
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.Slug,
		&g.EventDate,
		&g.Theme,
		&g.Visibility,
		&g.SecretToken,
		&g.PasswordHash,
		&g.HostDeviceID,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GetByID retrieves a gallery by its ID
func (r *GalleryRepository) GetByID(ctx context.Context, id string) (*models.Gallery, error) {
	query := r.db.Rebind(`SELECT ` + galleryColumns + ` FROM galleries WHERE id = ?`)

	g, err := scanGallery(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetBySlug retrieves a gallery by its slug
func (r *GalleryRepository) GetBySlug(ctx context.Context, slug string) (*models.Gallery, error) {
	query := r.db.Rebind(`SELECT ` + galleryColumns + ` FROM galleries WHERE slug = ?`)

	g, err := scanGallery(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetBySecretToken retrieves a gallery by its secret link token
func (r *GalleryRepository) GetBySecretToken(ctx context.Context, token string) (*models.Gallery, error) {
	query := r.db.Rebind(`SELECT ` + galleryColumns + ` FROM galleries WHERE secret_token = ?`)

	g, err := scanGallery(r.db.QueryRowContext(ctx, query, token))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Add inserts a new gallery
func (r *GalleryRepository) Add(ctx context.Context, g *models.Gallery) error {
	query := r.db.Rebind(`
		INSERT INTO galleries (` + galleryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.Name,
		g.Description,
		g.Slug,
		g.EventDate,
		g.Theme,
		g.Visibility,
		g.SecretToken,
		g.PasswordHash,
		g.HostDeviceID,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if IsUniqueViolation(err) {
		return models.ErrGallerySlugExists
	}
	return err
}

// Update persists changes to a gallery
func (r *GalleryRepository) Update(ctx context.Context, g *models.Gallery) error {
	query := r.db.Rebind(`
		UPDATE galleries
		SET name = ?, description = ?, event_date = ?, theme = ?, visibility = ?,
		    secret_token = ?, password_hash = ?, updated_at = ?
		WHERE id = ?
	`)

	result, err := r.db.ExecContext(ctx, query,
		g.Name,
		g.Description,
		g.EventDate,
		g.Theme,
		g.Visibility,
		g.SecretToken,
		g.PasswordHash,
		g.UpdatedAt,
		g.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrGalleryNotFound
	}
	return nil
}

// Delete removes a gallery by ID
func (r *GalleryRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := r.db.Rebind(`DELETE FROM galleries WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

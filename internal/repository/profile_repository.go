package repository

import (
	"context"
	"database/sql"

	"github.com/guestlens/server/internal/models"
)

// ProfileRepository handles participant profile persistence
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `gallery_id, device_id, user_name, display_name, avatar_path, created_at, updated_at`

func scanProfile(row interface{ Scan(...interface{}) error }) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.GalleryID,
		&p.DeviceID,
		&p.UserName,
		&p.DisplayName,
		&p.AvatarPath,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByDevice retrieves a profile by gallery and device
func (r *ProfileRepository) GetByDevice(ctx context.Context, galleryID, deviceID string) (*models.Profile, error) {
	query := r.db.Rebind(`SELECT ` + profileColumns + ` FROM profiles WHERE gallery_id = ? AND device_id = ?`)

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, galleryID, deviceID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListByGallery retrieves all profiles in a gallery
func (r *ProfileRepository) ListByGallery(ctx context.Context, galleryID string) ([]*models.Profile, error) {
	query := r.db.Rebind(`
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE gallery_id = ?
		ORDER BY user_name ASC
	`)

	rows, err := r.db.QueryContext(ctx, query, galleryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if profiles == nil {
		profiles = []*models.Profile{}
	}

	return profiles, rows.Err()
}

// Upsert inserts or updates a profile for a device
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.Profile) error {
	existing, err := r.GetByDevice(ctx, p.GalleryID, p.DeviceID)
	if err != nil {
		return err
	}

	if existing == nil {
		query := r.db.Rebind(`
			INSERT INTO profiles (` + profileColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		_, err = r.db.ExecContext(ctx, query,
			p.GalleryID,
			p.DeviceID,
			p.UserName,
			p.DisplayName,
			p.AvatarPath,
			p.CreatedAt,
			p.UpdatedAt,
		)
		return err
	}

	query := r.db.Rebind(`
		UPDATE profiles
		SET user_name = ?, display_name = ?, avatar_path = ?, updated_at = ?
		WHERE gallery_id = ? AND device_id = ?
	`)
	_, err = r.db.ExecContext(ctx, query,
		p.UserName,
		p.DisplayName,
		p.AvatarPath,
		p.UpdatedAt,
		p.GalleryID,
		p.DeviceID,
	)
	return err
}

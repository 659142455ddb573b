package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/guestlens/server/internal/models"
)

// StoryRepository handles story persistence
type StoryRepository struct {
	db *DB
}

// NewStoryRepository creates a new StoryRepository
func NewStoryRepository(db *DB) *StoryRepository {
	return &StoryRepository{db: db}
}

const storyColumns = `id, gallery_id, stored_path, type, uploaded_by, device_id, created_at, expires_at`

func scanStory(row interface{ Scan(...interface{}) error }) (*models.Story, error) {
	var s models.Story
	err := row.Scan(
		&s.ID,
		&s.GalleryID,
		&s.StoredPath,
		&s.Type,
		&s.UploadedBy,
		&s.DeviceID,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a story by its ID
func (r *StoryRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	query := r.db.Rebind(`SELECT ` + storyColumns + ` FROM stories WHERE id = ?`)

	s, err := scanStory(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListActive retrieves a gallery's unexpired stories, newest first
func (r *StoryRepository) ListActive(ctx context.Context, galleryID string, now time.Time) ([]*models.Story, error) {
	query := r.db.Rebind(`
		SELECT ` + storyColumns + `
		FROM stories
		WHERE gallery_id = ? AND expires_at > ?
		ORDER BY created_at DESC
	`)

	rows, err := r.db.QueryContext(ctx, query, galleryID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []*models.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}

	if stories == nil {
		stories = []*models.Story{}
	}

	return stories, rows.Err()
}

// Add inserts a new story
func (r *StoryRepository) Add(ctx context.Context, s *models.Story) error {
	query := r.db.Rebind(`
		INSERT INTO stories (` + storyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.GalleryID,
		s.StoredPath,
		s.Type,
		s.UploadedBy,
		s.DeviceID,
		s.CreatedAt,
		s.ExpiresAt,
	)
	return err
}

// ExistsByPath reports whether any story references the stored path
func (r *StoryRepository) ExistsByPath(ctx context.Context, storedPath string) (bool, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM stories WHERE stored_path = ?`)
	if err := r.db.QueryRowContext(ctx, query, storedPath).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a story by ID
func (r *StoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := r.db.Rebind(`DELETE FROM stories WHERE id = ?`)
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

// DeleteExpired removes stories past their expiry and returns their stored
// paths so callers can remove the blobs
func (r *StoryRepository) DeleteExpired(ctx context.Context, now time.Time) ([]string, error) {
	selectQuery := r.db.Rebind(`SELECT id, stored_path FROM stories WHERE expires_at <= ?`)
	rows, err := r.db.QueryContext(ctx, selectQuery, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	var paths []string
	for rows.Next() {
		var id, path string
		if err := rows.Scan(&id, &path); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	deleteQuery := r.db.Rebind(`DELETE FROM stories WHERE id = ?`)
	for _, id := range ids {
		if _, err := r.db.ExecContext(ctx, deleteQuery, id); err != nil {
			return nil, err
		}
	}

	return paths, nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/guestlens/server/internal/models"
)

// MediaRepository handles media feed persistence
type MediaRepository struct {
	db *DB
}

// NewMediaRepository creates a new MediaRepository
func NewMediaRepository(db *DB) *MediaRepository {
	return &MediaRepository{db: db}
}

const mediaColumns = `id, gallery_id, name, stored_path, file_hash, file_size, content_type,
	type, note_text, uploaded_by, uploaded_at, captured_at, device_id, tags,
	thumb_small, thumb_medium, thumb_large, width, height`

func scanMedia(row interface{ Scan(...interface{}) error }) (*models.MediaItem, error) {
	var item models.MediaItem
	var tagsJSON string
	err := row.Scan(
		&item.ID,
		&item.GalleryID,
		&item.Name,
		&item.StoredPath,
		&item.FileHash,
		&item.FileSize,
		&item.ContentType,
		&item.Type,
		&item.NoteText,
		&item.UploadedBy,
		&item.UploadedAt,
		&item.CapturedAt,
		&item.DeviceID,
		&tagsJSON,
		&item.ThumbSmall,
		&item.ThumbMedium,
		&item.ThumbLarge,
		&item.Width,
		&item.Height,
	)
	if err != nil {
		return nil, err
	}
	if tagsJSON != "" && tagsJSON != "[]" {
		if err := json.Unmarshal([]byte(tagsJSON), &item.Tags); err != nil {
			return nil, err
		}
	}
	return &item, nil
}

// GetByID retrieves a media item by its ID
func (r *MediaRepository) GetByID(ctx context.Context, id string) (*models.MediaItem, error) {
	query := r.db.Rebind(`SELECT ` + mediaColumns + ` FROM media WHERE id = ?`)

	item, err := scanMedia(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetByHash retrieves a media item in a gallery by its file hash
func (r *MediaRepository) GetByHash(ctx context.Context, galleryID, hash string) (*models.MediaItem, error) {
	query := r.db.Rebind(`SELECT ` + mediaColumns + ` FROM media WHERE gallery_id = ? AND file_hash = ?`)

	item, err := scanMedia(r.db.QueryRowContext(ctx, query, galleryID, strings.ToLower(hash)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListPage retrieves one page of a gallery's feed in descending upload-time
// order. A zero cursor returns the newest items; otherwise rows strictly after
// the cursor position are returned, with the item ID breaking timestamp ties.
func (r *MediaRepository) ListPage(ctx context.Context, galleryID string, cursor models.Cursor, limit int) ([]*models.MediaItem, error) {
	var rows *sql.Rows
	var err error

	if cursor.IsZero() {
		query := r.db.Rebind(`
			SELECT ` + mediaColumns + `
			FROM media
			WHERE gallery_id = ?
			ORDER BY uploaded_at DESC, id DESC
			LIMIT ?
		`)
		rows, err = r.db.QueryContext(ctx, query, galleryID, limit)
	} else {
		query := r.db.Rebind(`
			SELECT ` + mediaColumns + `
			FROM media
			WHERE gallery_id = ?
			  AND (uploaded_at < ? OR (uploaded_at = ? AND id < ?))
			ORDER BY uploaded_at DESC, id DESC
			LIMIT ?
		`)
		rows, err = r.db.QueryContext(ctx, query, galleryID, cursor.UploadedAt, cursor.UploadedAt, cursor.ID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.MediaItem
	for rows.Next() {
		item, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if items == nil {
		items = []*models.MediaItem{}
	}

	return items, rows.Err()
}

// GetCount returns the number of media items in a gallery
func (r *MediaRepository) GetCount(ctx context.Context, galleryID string) (int, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM media WHERE gallery_id = ?`)
	err := r.db.QueryRowContext(ctx, query, galleryID).Scan(&count)
	return count, err
}

// Add inserts a new media item with its tags
func (r *MediaRepository) Add(ctx context.Context, item *models.MediaItem) error {
	tagsJSON, err := marshalTags(item.Tags)
	if err != nil {
		return err
	}

	query := r.db.Rebind(`
		INSERT INTO media (` + mediaColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err = r.db.ExecContext(ctx, query,
		item.ID,
		item.GalleryID,
		item.Name,
		item.StoredPath,
		item.FileHash,
		item.FileSize,
		item.ContentType,
		item.Type,
		item.NoteText,
		item.UploadedBy,
		item.UploadedAt,
		item.CapturedAt,
		item.DeviceID,
		tagsJSON,
		item.ThumbSmall,
		item.ThumbMedium,
		item.ThumbLarge,
		item.Width,
		item.Height,
	)
	return err
}

// UpdateTags replaces the tag list of a media item
func (r *MediaRepository) UpdateTags(ctx context.Context, id string, tags []models.MediaTag) error {
	tagsJSON, err := marshalTags(tags)
	if err != nil {
		return err
	}

	query := r.db.Rebind(`UPDATE media SET tags = ? WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, tagsJSON, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrMediaNotFound
	}
	return nil
}

// ExistsByPath reports whether any media item references the stored path
func (r *MediaRepository) ExistsByPath(ctx context.Context, storedPath string) (bool, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM media WHERE stored_path = ?`)
	if err := r.db.QueryRowContext(ctx, query, storedPath).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a media item by ID
func (r *MediaRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := r.db.Rebind(`DELETE FROM media WHERE id = ?`)
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

func marshalTags(tags []models.MediaTag) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

package repository

import (
	"context"
	"database/sql"

	"github.com/guestlens/server/internal/models"
)

// LikeRepository handles like persistence
type LikeRepository struct {
	db *DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle adds a like if absent, removes it if present. Returns the resulting
// liked state.
func (r *LikeRepository) Toggle(ctx context.Context, like *models.Like) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var exists int
	query := r.db.Rebind(`SELECT COUNT(*) FROM likes WHERE media_id = ? AND device_id = ?`)
	if err := tx.QueryRowContext(ctx, query, like.MediaID, like.DeviceID).Scan(&exists); err != nil {
		return false, err
	}

	liked := false
	if exists > 0 {
		del := r.db.Rebind(`DELETE FROM likes WHERE media_id = ? AND device_id = ?`)
		if _, err := tx.ExecContext(ctx, del, like.MediaID, like.DeviceID); err != nil {
			return false, err
		}
	} else {
		ins := r.db.Rebind(`
			INSERT INTO likes (gallery_id, media_id, device_id, created_at)
			VALUES (?, ?, ?, ?)
		`)
		if _, err := tx.ExecContext(ctx, ins, like.GalleryID, like.MediaID, like.DeviceID, like.CreatedAt); err != nil {
			return false, err
		}
		liked = true
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return liked, nil
}

// Count returns the number of likes on a media item
func (r *LikeRepository) Count(ctx context.Context, mediaID string) (int, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM likes WHERE media_id = ?`)
	err := r.db.QueryRowContext(ctx, query, mediaID).Scan(&count)
	return count, err
}

// Summary returns the like count and whether the given device has liked the item
func (r *LikeRepository) Summary(ctx context.Context, mediaID, deviceID string) (*models.LikeSummary, error) {
	summary := &models.LikeSummary{MediaID: mediaID}

	countQuery := r.db.Rebind(`SELECT COUNT(*) FROM likes WHERE media_id = ?`)
	if err := r.db.QueryRowContext(ctx, countQuery, mediaID).Scan(&summary.Count); err != nil {
		return nil, err
	}

	if deviceID != "" {
		var liked int
		likedQuery := r.db.Rebind(`SELECT COUNT(*) FROM likes WHERE media_id = ? AND device_id = ?`)
		if err := r.db.QueryRowContext(ctx, likedQuery, mediaID, deviceID).Scan(&liked); err != nil && err != sql.ErrNoRows {
			return nil, err
		}
		summary.Liked = liked > 0
	}

	return summary, nil
}

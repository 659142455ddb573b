package repository

import (
	"context"
	"database/sql"

	"github.com/guestlens/server/internal/models"
)

// CommentRepository handles comment persistence
type CommentRepository struct {
	db *DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *DB) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `id, gallery_id, media_id, author, device_id, text, created_at`

func scanComment(row interface{ Scan(...interface{}) error }) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.ID,
		&c.GalleryID,
		&c.MediaID,
		&c.Author,
		&c.DeviceID,
		&c.Text,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID retrieves a comment by its ID
func (r *CommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := r.db.Rebind(`SELECT ` + commentColumns + ` FROM comments WHERE id = ?`)

	c, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListByMedia retrieves all comments on a media item, oldest first
func (r *CommentRepository) ListByMedia(ctx context.Context, mediaID string) ([]*models.Comment, error) {
	query := r.db.Rebind(`
		SELECT ` + commentColumns + `
		FROM comments
		WHERE media_id = ?
		ORDER BY created_at ASC, id ASC
	`)

	rows, err := r.db.QueryContext(ctx, query, mediaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if comments == nil {
		comments = []*models.Comment{}
	}

	return comments, rows.Err()
}

// Add inserts a new comment
func (r *CommentRepository) Add(ctx context.Context, c *models.Comment) error {
	query := r.db.Rebind(`
		INSERT INTO comments (` + commentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.GalleryID,
		c.MediaID,
		c.Author,
		c.DeviceID,
		c.Text,
		c.CreatedAt,
	)
	return err
}

// Delete removes a comment by ID
func (r *CommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := r.db.Rebind(`DELETE FROM comments WHERE id = ?`)
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

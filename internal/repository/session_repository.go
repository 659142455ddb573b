package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/guestlens/server/internal/models"
)

// SessionRepository handles gallery session persistence
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, gallery_id, role, device_id, created_at, expires_at, last_activity_at, ip_address, user_agent`

// GetByID retrieves a session by its token
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	query := r.db.Rebind(`SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`)

	var s models.Session
	var ipAddress, userAgent sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.GalleryID,
		&s.Role,
		&s.DeviceID,
		&s.CreatedAt,
		&s.ExpiresAt,
		&s.LastActivityAt,
		&ipAddress,
		&userAgent,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.IPAddress = ipAddress.String
	s.UserAgent = userAgent.String
	return &s, nil
}

// Add inserts a new session
func (r *SessionRepository) Add(ctx context.Context, s *models.Session) error {
	query := r.db.Rebind(`
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.GalleryID,
		s.Role,
		s.DeviceID,
		s.CreatedAt,
		s.ExpiresAt,
		s.LastActivityAt,
		s.IPAddress,
		s.UserAgent,
	)
	return err
}

// Touch updates the last activity timestamp
func (r *SessionRepository) Touch(ctx context.Context, id string) error {
	query := r.db.Rebind(`UPDATE sessions SET last_activity_at = ? WHERE id = ?`)
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	return err
}

// Delete removes a session by token
func (r *SessionRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := r.db.Rebind(`DELETE FROM sessions WHERE id = ?`)
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

// DeleteExpired removes all sessions past their expiry
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := r.db.Rebind(`DELETE FROM sessions WHERE expires_at <= ?`)
	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionRole distinguishes gallery hosts from authenticated guests
type SessionRole string

const (
	RoleHost  SessionRole = "host"
	RoleGuest SessionRole = "guest"
)

// Session represents an authenticated gallery session. The ID doubles as the
// session token presented by the client.
type Session struct {
	ID             string      `json:"id"`
	GalleryID      string      `json:"galleryId"`
	Role           SessionRole `json:"role"`
	DeviceID       string      `json:"deviceId"`
	CreatedAt      time.Time   `json:"createdAt"`
	ExpiresAt      time.Time   `json:"expiresAt"`
	LastActivityAt time.Time   `json:"lastActivityAt"`
	IPAddress      string      `json:"ipAddress,omitempty"`
	UserAgent      string      `json:"userAgent,omitempty"`
}

// NewSession creates a new gallery session
func NewSession(galleryID string, role SessionRole, deviceID, ipAddress, userAgent string, durationHours int) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:             uuid.New().String(),
		GalleryID:      galleryID,
		Role:           role,
		DeviceID:       deviceID,
		CreatedAt:      now,
		ExpiresAt:      now.Add(time.Duration(durationHours) * time.Hour),
		LastActivityAt: now,
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
	}
}

// SessionValid reports whether a session issued at the given times is still
// valid at now. Pure function so callers can reason about expiry without
// touching shared state.
func SessionValid(expiresAt, now time.Time) bool {
	return now.Before(expiresAt)
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return !SessionValid(s.ExpiresAt, time.Now().UTC())
}

// IsHost reports whether this session carries host privileges
func (s *Session) IsHost() bool {
	return s.Role == RoleHost
}

// Touch updates the last activity timestamp
func (s *Session) Touch() {
	s.LastActivityAt = time.Now().UTC()
}

// Session errors
var (
	ErrSessionNotFound = SessionError{"session not found"}
	ErrSessionExpired  = SessionError{"session has expired"}
)

type SessionError struct {
	Message string
}

func (e SessionError) Error() string {
	return e.Message
}

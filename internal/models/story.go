package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StoryTTL is how long a story stays visible after creation
const StoryTTL = 24 * time.Hour

// Story is a media item with a 24-hour visibility expiry, tracked separately
// from the permanent media feed
type Story struct {
	ID         string    `json:"id"`
	GalleryID  string    `json:"galleryId"`
	StoredPath string    `json:"storedPath"`
	Type       MediaType `json:"type"`
	UploadedBy string    `json:"uploadedBy"`
	DeviceID   string    `json:"deviceId"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// NewStory creates a story expiring StoryTTL from now
func NewStory(galleryID, storedPath string, mediaType MediaType, uploadedBy, deviceID string) (*Story, error) {
	if strings.TrimSpace(galleryID) == "" {
		return nil, ErrMediaGalleryRequired
	}
	if strings.TrimSpace(storedPath) == "" {
		return nil, ErrMediaPathRequired
	}
	if mediaType != MediaImage && mediaType != MediaVideo {
		return nil, ErrMediaInvalidType
	}
	if strings.TrimSpace(uploadedBy) == "" {
		return nil, ErrMediaUploaderRequired
	}
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrMediaDeviceRequired
	}

	now := time.Now().UTC()
	return &Story{
		ID:         uuid.New().String(),
		GalleryID:  galleryID,
		StoredPath: storedPath,
		Type:       mediaType,
		UploadedBy: strings.TrimSpace(uploadedBy),
		DeviceID:   deviceID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(StoryTTL),
	}, nil
}

// IsExpired reports whether the story should no longer be visible
func (s *Story) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Story errors
var ErrStoryNotFound = MediaError{"story not found"}

package models

import (
	"strings"
	"time"
)

// Profile is a gallery participant identified by a durable per-device ID.
// The display name is mutable; person tags resolve through it.
type Profile struct {
	GalleryID   string    `json:"galleryId"`
	DeviceID    string    `json:"deviceId"`
	UserName    string    `json:"userName"`
	DisplayName *string   `json:"displayName,omitempty"`
	AvatarPath  *string   `json:"avatarPath,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProfile creates a profile for a device in a gallery
func NewProfile(galleryID, deviceID, userName string) (*Profile, error) {
	if strings.TrimSpace(galleryID) == "" {
		return nil, ErrMediaGalleryRequired
	}
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrMediaDeviceRequired
	}
	if strings.TrimSpace(userName) == "" {
		return nil, ErrProfileNameRequired
	}

	now := time.Now().UTC()
	return &Profile{
		GalleryID: galleryID,
		DeviceID:  deviceID,
		UserName:  strings.TrimSpace(userName),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Label returns the name shown for this participant
func (p *Profile) Label() string {
	if p.DisplayName != nil && *p.DisplayName != "" {
		return *p.DisplayName
	}
	return p.UserName
}

// Profile errors
var (
	ErrProfileNotFound     = MediaError{"profile not found"}
	ErrProfileNameRequired = MediaError{"user name is required"}
)

package models

import "time"

// Like records that a device liked a media item. One like per device per item;
// liking again toggles it off.
type Like struct {
	GalleryID string    `json:"galleryId"`
	MediaID   string    `json:"mediaId"`
	DeviceID  string    `json:"deviceId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewLike creates a like for the given media item and device
func NewLike(galleryID, mediaID, deviceID string) (*Like, error) {
	if galleryID == "" {
		return nil, ErrMediaGalleryRequired
	}
	if mediaID == "" {
		return nil, ErrCommentMediaRequired
	}
	if deviceID == "" {
		return nil, ErrMediaDeviceRequired
	}
	return &Like{
		GalleryID: galleryID,
		MediaID:   mediaID,
		DeviceID:  deviceID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// LikeSummary is the per-item like state returned to clients
type LikeSummary struct {
	MediaID string `json:"mediaId"`
	Count   int    `json:"count"`
	Liked   bool   `json:"liked"`
}

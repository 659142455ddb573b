package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comment is a guest comment on a media item
type Comment struct {
	ID        string    `json:"id"`
	GalleryID string    `json:"galleryId"`
	MediaID   string    `json:"mediaId"`
	Author    string    `json:"author"`
	DeviceID  string    `json:"deviceId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

const maxCommentLength = 1000

// NewComment creates a comment with validation
func NewComment(galleryID, mediaID, author, deviceID, text string) (*Comment, error) {
	if strings.TrimSpace(galleryID) == "" {
		return nil, ErrMediaGalleryRequired
	}
	if strings.TrimSpace(mediaID) == "" {
		return nil, ErrCommentMediaRequired
	}
	if strings.TrimSpace(author) == "" {
		return nil, ErrCommentAuthorRequired
	}
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrMediaDeviceRequired
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrCommentTextRequired
	}
	if len(trimmed) > maxCommentLength {
		return nil, ErrCommentTooLong
	}

	return &Comment{
		ID:        uuid.New().String(),
		GalleryID: galleryID,
		MediaID:   mediaID,
		Author:    strings.TrimSpace(author),
		DeviceID:  deviceID,
		Text:      trimmed,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// OwnedBy reports whether the comment was written from the given device
func (c *Comment) OwnedBy(deviceID string) bool {
	return deviceID != "" && c.DeviceID == deviceID
}

// Comment errors
type CommentError struct {
	Message string
}

func (e CommentError) Error() string {
	return e.Message
}

var (
	ErrCommentNotFound       = CommentError{"comment not found"}
	ErrCommentMediaRequired  = CommentError{"media ID is required"}
	ErrCommentAuthorRequired = CommentError{"comment author is required"}
	ErrCommentTextRequired   = CommentError{"comment text cannot be empty"}
	ErrCommentTooLong        = CommentError{"comment exceeds maximum length"}
)

package models

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaType classifies a media item
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaNote  MediaType = "note"
)

// IsValidMediaType checks if a media type value is valid
func IsValidMediaType(t string) bool {
	switch MediaType(t) {
	case MediaImage, MediaVideo, MediaNote:
		return true
	}
	return false
}

// MediaItem represents one entry in a gallery's feed: an uploaded photo or
// video, or a text-only note. Tags travel with the item and are persisted as
// one unit.
type MediaItem struct {
	ID           string     `json:"id"`
	GalleryID    string     `json:"galleryId"`
	Name         string     `json:"name"`
	StoredPath   string     `json:"storedPath,omitempty"`
	FileHash     string     `json:"fileHash,omitempty"`
	FileSize     int64      `json:"fileSize,omitempty"`
	ContentType  string     `json:"contentType,omitempty"`
	Type         MediaType  `json:"type"`
	NoteText     string     `json:"noteText,omitempty"`
	UploadedBy   string     `json:"uploadedBy"`
	UploadedAt   time.Time  `json:"uploadedAt"`
	CapturedAt   *time.Time `json:"capturedAt,omitempty"`
	DeviceID     string     `json:"deviceId"`
	Tags         []MediaTag `json:"tags,omitempty"`
	ThumbSmall   *string    `json:"thumbSmall,omitempty"`
	ThumbMedium  *string    `json:"thumbMedium,omitempty"`
	ThumbLarge   *string    `json:"thumbLarge,omitempty"`
	Width        *int       `json:"width,omitempty"`
	Height       *int       `json:"height,omitempty"`
}

// NewMediaItem creates a new media item with validation and sanitization
func NewMediaItem(galleryID, name, storedPath, fileHash string, fileSize int64, mediaType MediaType, uploadedBy, deviceID string) (*MediaItem, error) {
	if strings.TrimSpace(galleryID) == "" {
		return nil, ErrMediaGalleryRequired
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrMediaNameRequired
	}
	if !IsValidMediaType(string(mediaType)) {
		return nil, ErrMediaInvalidType
	}
	if mediaType != MediaNote {
		if strings.TrimSpace(storedPath) == "" {
			return nil, ErrMediaPathRequired
		}
		if strings.TrimSpace(fileHash) == "" {
			return nil, ErrMediaHashRequired
		}
		if fileSize <= 0 {
			return nil, ErrMediaInvalidSize
		}
	}
	if strings.TrimSpace(uploadedBy) == "" {
		return nil, ErrMediaUploaderRequired
	}
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrMediaDeviceRequired
	}

	return &MediaItem{
		ID:         uuid.New().String(),
		GalleryID:  galleryID,
		Name:       SanitizeFilename(name),
		StoredPath: storedPath,
		FileHash:   strings.ToLower(fileHash),
		FileSize:   fileSize,
		Type:       mediaType,
		UploadedBy: strings.TrimSpace(uploadedBy),
		UploadedAt: time.Now().UTC(),
		DeviceID:   deviceID,
	}, nil
}

// NewNote creates a text-only media item
func NewNote(galleryID, noteText, uploadedBy, deviceID string) (*MediaItem, error) {
	if strings.TrimSpace(noteText) == "" {
		return nil, ErrMediaNoteRequired
	}
	item, err := NewMediaItem(galleryID, "note", "", "", 0, MediaNote, uploadedBy, deviceID)
	if err != nil {
		return nil, err
	}
	item.NoteText = strings.TrimSpace(noteText)
	return item, nil
}

// OwnedBy reports whether the item was uploaded from the given device
func (m *MediaItem) OwnedBy(deviceID string) bool {
	return deviceID != "" && m.DeviceID == deviceID
}

// SanitizeFilename removes path components and invalid characters
func SanitizeFilename(filename string) string {
	name := filepath.Base(filename)

	replacer := strings.NewReplacer(
		"..", "",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	name = replacer.Replace(name)

	const maxLength = 200
	if len(name) > maxLength {
		ext := filepath.Ext(name)
		nameWithoutExt := strings.TrimSuffix(name, ext)
		if len(nameWithoutExt) > maxLength-len(ext) {
			nameWithoutExt = nameWithoutExt[:maxLength-len(ext)]
		}
		name = nameWithoutExt + ext
	}

	return name
}

// Media errors
type MediaError struct {
	Message string
}

func (e MediaError) Error() string {
	return e.Message
}

var (
	ErrMediaGalleryRequired  = MediaError{"gallery ID is required"}
	ErrMediaNameRequired     = MediaError{"media name cannot be empty"}
	ErrMediaPathRequired     = MediaError{"stored path cannot be empty"}
	ErrMediaHashRequired     = MediaError{"file hash cannot be empty"}
	ErrMediaInvalidSize      = MediaError{"file size must be positive"}
	ErrMediaInvalidType      = MediaError{"invalid media type"}
	ErrMediaUploaderRequired = MediaError{"uploader name is required"}
	ErrMediaDeviceRequired   = MediaError{"device ID is required"}
	ErrMediaNoteRequired     = MediaError{"note text cannot be empty"}
	ErrMediaNotFound         = MediaError{"media item not found"}
	ErrDuplicateMedia        = MediaError{"media item already exists"}
	ErrInvalidExtension      = MediaError{"file extension not allowed"}
	ErrFileTooLarge          = MediaError{"file size exceeds maximum allowed"}
	ErrPathTraversal         = MediaError{"invalid path - path traversal detected"}
)

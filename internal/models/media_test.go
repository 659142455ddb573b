package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMediaItem(t *testing.T) {
	t.Run("creates item with valid parameters", func(t *testing.T) {
		item, err := NewMediaItem("gal-1", "beach.jpg", "galleries/gal-1/uploads/beach.jpg", "ABCDEF", 2048, MediaImage, "Anna", "device-1")

		require.NoError(t, err)
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, "gal-1", item.GalleryID)
		assert.Equal(t, "beach.jpg", item.Name)
		assert.Equal(t, "abcdef", item.FileHash)
		assert.Equal(t, MediaImage, item.Type)
		assert.Equal(t, "Anna", item.UploadedBy)
		assert.WithinDuration(t, time.Now().UTC(), item.UploadedAt, 2*time.Second)
	})

	t.Run("rejects empty gallery ID", func(t *testing.T) {
		_, err := NewMediaItem("", "a.jpg", "p", "h", 1, MediaImage, "Anna", "d")
		assert.ErrorIs(t, err, ErrMediaGalleryRequired)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewMediaItem("g", "  ", "p", "h", 1, MediaImage, "Anna", "d")
		assert.ErrorIs(t, err, ErrMediaNameRequired)
	})

	t.Run("rejects invalid media type", func(t *testing.T) {
		_, err := NewMediaItem("g", "a.jpg", "p", "h", 1, MediaType("audio"), "Anna", "d")
		assert.ErrorIs(t, err, ErrMediaInvalidType)
	})

	t.Run("rejects empty stored path for files", func(t *testing.T) {
		_, err := NewMediaItem("g", "a.jpg", "", "h", 1, MediaImage, "Anna", "d")
		assert.ErrorIs(t, err, ErrMediaPathRequired)
	})

	t.Run("rejects empty hash for files", func(t *testing.T) {
		_, err := NewMediaItem("g", "a.jpg", "p", "", 1, MediaImage, "Anna", "d")
		assert.ErrorIs(t, err, ErrMediaHashRequired)
	})

	t.Run("rejects non-positive size for files", func(t *testing.T) {
		_, err := NewMediaItem("g", "a.jpg", "p", "h", 0, MediaVideo, "Anna", "d")
		assert.ErrorIs(t, err, ErrMediaInvalidSize)
	})

	t.Run("rejects empty uploader", func(t *testing.T) {
		_, err := NewMediaItem("g", "a.jpg", "p", "h", 1, MediaImage, "", "d")
		assert.ErrorIs(t, err, ErrMediaUploaderRequired)
	})

	t.Run("rejects empty device ID", func(t *testing.T) {
		_, err := NewMediaItem("g", "a.jpg", "p", "h", 1, MediaImage, "Anna", "")
		assert.ErrorIs(t, err, ErrMediaDeviceRequired)
	})
}

func TestNewNote(t *testing.T) {
	t.Run("creates text-only item without file fields", func(t *testing.T) {
		item, err := NewNote("gal-1", "  Congrats to the couple!  ", "Ben", "device-2")

		require.NoError(t, err)
		assert.Equal(t, MediaNote, item.Type)
		assert.Equal(t, "Congrats to the couple!", item.NoteText)
		assert.Empty(t, item.StoredPath)
		assert.Empty(t, item.FileHash)
	})

	t.Run("rejects empty note text", func(t *testing.T) {
		_, err := NewNote("gal-1", "   ", "Ben", "device-2")
		assert.ErrorIs(t, err, ErrMediaNoteRequired)
	})
}

func TestOwnedBy(t *testing.T) {
	item := &MediaItem{DeviceID: "device-1"}

	assert.True(t, item.OwnedBy("device-1"))
	assert.False(t, item.OwnedBy("device-2"))
	assert.False(t, item.OwnedBy(""))
}

func TestSanitizeFilename(t *testing.T) {
	t.Run("strips directory components", func(t *testing.T) {
		assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	})

	t.Run("replaces invalid characters", func(t *testing.T) {
		assert.Equal(t, "my_photo_.jpg", SanitizeFilename("my:photo?.jpg"))
	})

	t.Run("truncates long names keeping the extension", func(t *testing.T) {
		long := strings.Repeat("a", 300) + ".jpg"
		result := SanitizeFilename(long)
		assert.LessOrEqual(t, len(result), 200)
		assert.True(t, strings.HasSuffix(result, ".jpg"))
	})

	t.Run("leaves normal names alone", func(t *testing.T) {
		assert.Equal(t, "IMG_2041.jpeg", SanitizeFilename("IMG_2041.jpeg"))
	})
}

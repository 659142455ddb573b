package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGallery(t *testing.T) {
	t.Run("creates gallery with defaults", func(t *testing.T) {
		gallery, err := NewGallery("Sarah & Tom's Wedding", "host-device")

		require.NoError(t, err)
		assert.NotEmpty(t, gallery.ID)
		assert.Equal(t, "Sarah & Tom's Wedding", gallery.Name)
		assert.Equal(t, ThemeDark, gallery.Theme)
		assert.Equal(t, VisibilityPublic, gallery.Visibility)
		assert.Equal(t, "host-device", gallery.HostDeviceID)
		assert.WithinDuration(t, time.Now().UTC(), gallery.CreatedAt, 2*time.Second)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewGallery("  ", "host-device")
		assert.ErrorIs(t, err, ErrGalleryNameRequired)
	})

	t.Run("rejects empty host device", func(t *testing.T) {
		_, err := NewGallery("Party", "")
		assert.ErrorIs(t, err, ErrGalleryHostRequired)
	})
}

func TestGenerateSlug(t *testing.T) {
	t.Run("lowercases and hyphenates with random suffix", func(t *testing.T) {
		slug := GenerateSlug("Sarah & Tom's Wedding")
		assert.Regexp(t, regexp.MustCompile(`^sarah-tom-s-wedding-[0-9a-f]{8}$`), slug)
	})

	t.Run("produces distinct slugs for the same name", func(t *testing.T) {
		assert.NotEqual(t, GenerateSlug("Party"), GenerateSlug("Party"))
	})
}

func TestGalleryPassword(t *testing.T) {
	t.Run("set and check round trip", func(t *testing.T) {
		gallery, err := NewGallery("Party", "host")
		require.NoError(t, err)

		require.NoError(t, gallery.SetPassword("sunflower"))
		assert.True(t, gallery.CheckPassword("sunflower"))
		assert.False(t, gallery.CheckPassword("wrong"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		gallery, _ := NewGallery("Party", "host")
		assert.ErrorIs(t, gallery.SetPassword("abc"), ErrGalleryPasswordTooShort)
	})

	t.Run("check fails when no password set", func(t *testing.T) {
		gallery, _ := NewGallery("Party", "host")
		assert.False(t, gallery.CheckPassword("anything"))
	})
}

func TestSetVisibility(t *testing.T) {
	t.Run("secret link generates a token once", func(t *testing.T) {
		gallery, _ := NewGallery("Party", "host")
		require.Nil(t, gallery.SecretToken)

		gallery.SetVisibility(VisibilitySecretLink)
		require.NotNil(t, gallery.SecretToken)
		assert.Len(t, *gallery.SecretToken, 64)

		first := *gallery.SecretToken
		gallery.SetVisibility(VisibilitySecretLink)
		assert.Equal(t, first, *gallery.SecretToken)
	})

	t.Run("public visibility leaves token untouched", func(t *testing.T) {
		gallery, _ := NewGallery("Party", "host")
		gallery.SetVisibility(VisibilityPublic)
		assert.Nil(t, gallery.SecretToken)
	})
}

func TestIsHostDevice(t *testing.T) {
	gallery, _ := NewGallery("Party", "host-device")

	assert.True(t, gallery.IsHostDevice("host-device"))
	assert.False(t, gallery.IsHostDevice("guest-device"))
	assert.False(t, gallery.IsHostDevice(""))
}

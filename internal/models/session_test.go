package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	t.Run("creates session with expiry offset", func(t *testing.T) {
		session := NewSession("gal-1", RoleGuest, "device-1", "10.0.0.1", "test-agent", 72)

		require.NotEmpty(t, session.ID)
		assert.Equal(t, "gal-1", session.GalleryID)
		assert.Equal(t, RoleGuest, session.Role)
		assert.WithinDuration(t, session.CreatedAt.Add(72*time.Hour), session.ExpiresAt, time.Second)
		assert.False(t, session.IsExpired())
	})
}

func TestSessionValid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid before expiry", func(t *testing.T) {
		assert.True(t, SessionValid(now.Add(time.Minute), now))
	})

	t.Run("invalid after expiry", func(t *testing.T) {
		assert.False(t, SessionValid(now.Add(-time.Minute), now))
	})

	t.Run("invalid exactly at expiry", func(t *testing.T) {
		assert.False(t, SessionValid(now, now))
	})
}

func TestSessionIsHost(t *testing.T) {
	host := NewSession("g", RoleHost, "d", "", "", 1)
	guest := NewSession("g", RoleGuest, "d", "", "", 1)

	assert.True(t, host.IsHost())
	assert.False(t, guest.IsHost())
}

func TestSessionTouch(t *testing.T) {
	session := NewSession("g", RoleGuest, "d", "", "", 1)
	before := session.LastActivityAt

	time.Sleep(5 * time.Millisecond)
	session.Touch()

	assert.True(t, session.LastActivityAt.After(before))
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	t.Run("encodes and decodes back to the same cursor", func(t *testing.T) {
		uploaded := time.Date(2026, 6, 14, 21, 30, 0, 0, time.UTC)
		original := Cursor{UploadedAt: uploaded, ID: "item-42"}

		decoded, err := DecodeCursor(original.Encode())

		require.NoError(t, err)
		assert.Equal(t, original.ID, decoded.ID)
		assert.True(t, original.UploadedAt.Equal(decoded.UploadedAt))
	})

	t.Run("CursorFor points at the item", func(t *testing.T) {
		item := &MediaItem{ID: "m1", UploadedAt: time.Now().UTC()}
		cursor := CursorFor(item)
		assert.Equal(t, "m1", cursor.ID)
		assert.True(t, item.UploadedAt.Equal(cursor.UploadedAt))
	})
}

func TestDecodeCursor(t *testing.T) {
	t.Run("rejects garbage tokens", func(t *testing.T) {
		_, err := DecodeCursor("not base64!!!")
		assert.ErrorIs(t, err, ErrInvalidCursor)
	})

	t.Run("rejects valid base64 that is not JSON", func(t *testing.T) {
		_, err := DecodeCursor("aGVsbG8")
		assert.ErrorIs(t, err, ErrInvalidCursor)
	})

	t.Run("rejects empty token", func(t *testing.T) {
		_, err := DecodeCursor("")
		assert.ErrorIs(t, err, ErrInvalidCursor)
	})

	t.Run("rejects cursor missing the ID", func(t *testing.T) {
		token := Cursor{UploadedAt: time.Now().UTC()}.Encode()
		_, err := DecodeCursor(token)
		assert.ErrorIs(t, err, ErrInvalidCursor)
	})
}

func TestCursorIsZero(t *testing.T) {
	assert.True(t, Cursor{}.IsZero())
	assert.False(t, Cursor{ID: "x", UploadedAt: time.Now()}.IsZero())
}

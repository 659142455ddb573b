package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guestlens/server/internal/models"
)

func newTestStorage(t *testing.T) *MediaStorageService {
	t.Helper()
	svc, err := NewMediaStorageService(t.TempDir(), nil, 10)
	require.NoError(t, err)
	return svc
}

func TestStore(t *testing.T) {
	uploadedAt := time.Date(2026, 6, 14, 21, 0, 0, 0, time.UTC)

	t.Run("stores blob under the gallery uploads folder", func(t *testing.T) {
		svc := newTestStorage(t)

		path, err := svc.Store(strings.NewReader("fake image data"), "gal-1", "beach.jpg", uploadedAt, 15)

		require.NoError(t, err)
		expected := fmt.Sprintf("galleries/gal-1/uploads/%d-beach.jpg", uploadedAt.UnixMilli())
		assert.Equal(t, expected, path)
		assert.True(t, svc.Exists(path))

		data, err := os.ReadFile(filepath.Join(svc.BasePath(), filepath.FromSlash(path)))
		require.NoError(t, err)
		assert.Equal(t, "fake image data", string(data))
	})

	t.Run("rejects disallowed extensions", func(t *testing.T) {
		svc := newTestStorage(t)

		_, err := svc.Store(strings.NewReader("data"), "gal-1", "malware.exe", uploadedAt, 4)
		assert.ErrorIs(t, err, models.ErrInvalidExtension)
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		svc := newTestStorage(t)

		_, err := svc.Store(strings.NewReader("data"), "gal-1", "huge.jpg", uploadedAt, 11*1024*1024)
		assert.ErrorIs(t, err, models.ErrFileTooLarge)
	})

	t.Run("sanitizes traversal attempts in the filename", func(t *testing.T) {
		svc := newTestStorage(t)

		path, err := svc.Store(strings.NewReader("data"), "gal-1", "../../escape.jpg", uploadedAt, 4)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(path, "galleries/gal-1/uploads/"))
		assert.NotContains(t, path, "..")
	})

	t.Run("suffixes colliding filenames", func(t *testing.T) {
		svc := newTestStorage(t)

		first, err := svc.Store(strings.NewReader("one"), "gal-1", "dup.jpg", uploadedAt, 3)
		require.NoError(t, err)
		second, err := svc.Store(strings.NewReader("two"), "gal-1", "dup.jpg", uploadedAt, 3)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.True(t, svc.Exists(first))
		assert.True(t, svc.Exists(second))
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes a stored blob", func(t *testing.T) {
		svc := newTestStorage(t)
		path, err := svc.Store(strings.NewReader("data"), "gal-1", "gone.jpg", time.Now(), 4)
		require.NoError(t, err)

		assert.True(t, svc.Delete(path))
		assert.False(t, svc.Exists(path))
	})

	t.Run("returns false for missing or empty paths", func(t *testing.T) {
		svc := newTestStorage(t)

		assert.False(t, svc.Delete("galleries/gal-1/uploads/nope.jpg"))
		assert.False(t, svc.Delete(""))
	})
}

func TestGetFullPath(t *testing.T) {
	t.Run("resolves inside the base path", func(t *testing.T) {
		svc := newTestStorage(t)

		full, err := svc.GetFullPath("galleries/gal-1/uploads/a.jpg")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(full, svc.BasePath()))
	})

	t.Run("rejects traversal out of the base path", func(t *testing.T) {
		svc := newTestStorage(t)

		_, err := svc.GetFullPath("../outside.jpg")
		assert.ErrorIs(t, err, models.ErrPathTraversal)
	})

	t.Run("rejects empty paths", func(t *testing.T) {
		svc := newTestStorage(t)

		_, err := svc.GetFullPath("")
		assert.Error(t, err)
	})
}

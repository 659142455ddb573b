package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeHashBytes(t *testing.T) {
	svc := NewHashService()

	t.Run("identical content yields the same digest", func(t *testing.T) {
		content := []byte("wedding-photo-bytes")

		assert.Equal(t, svc.ComputeHashBytes(content), svc.ComputeHashBytes(content))
	})

	t.Run("different content yields different digests", func(t *testing.T) {
		a := svc.ComputeHashBytes([]byte("photo A"))
		b := svc.ComputeHashBytes([]byte("photo B"))

		assert.NotEqual(t, a, b)
	})

	t.Run("digest is lowercase hex in the stored format", func(t *testing.T) {
		digest := svc.ComputeHashBytes([]byte("test"))

		assert.Len(t, digest, 64)
		assert.Equal(t, strings.ToLower(digest), digest)
	})

	t.Run("known vector", func(t *testing.T) {
		assert.Equal(t,
			"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			svc.ComputeHashBytes(nil))
	})
}

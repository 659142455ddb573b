package services

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashService computes content digests for upload deduplication. The digest
// is the dedupe key: identical bytes uploaded to the same gallery resolve to
// the existing media item instead of a second copy.
type HashService struct{}

// NewHashService creates a new HashService
func NewHashService() *HashService {
	return &HashService{}
}

// ComputeHashBytes returns the lowercase hex SHA256 digest of an upload's
// bytes, matching the format stored in MediaItem.FileHash.
func (s *HashService) ComputeHashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

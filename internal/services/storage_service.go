package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/guestlens/server/internal/models"
)

// MediaStorageService stores uploaded blobs under
// galleries/{galleryID}/uploads/{timestamp}-{filename}
type MediaStorageService struct {
	basePath          string
	allowedExtensions map[string]bool
	maxFileSizeBytes  int64
}

// NewMediaStorageService creates a new MediaStorageService
func NewMediaStorageService(basePath string, allowedExtensions []string, maxFileSizeMB int64) (*MediaStorageService, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, err
	}

	extSet := make(map[string]bool)
	if len(allowedExtensions) == 0 {
		for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic", ".heif", ".mp4", ".mov", ".webm"} {
			extSet[strings.ToLower(ext)] = true
		}
	} else {
		for _, ext := range allowedExtensions {
			extSet[strings.ToLower(ext)] = true
		}
	}

	return &MediaStorageService{
		basePath:          absPath,
		allowedExtensions: extSet,
		maxFileSizeBytes:  maxFileSizeMB * 1024 * 1024,
	}, nil
}

// Store saves a blob and returns the relative storage path
func (s *MediaStorageService) Store(reader io.Reader, galleryID, originalFilename string, uploadedAt time.Time, fileSize int64) (string, error) {
	if fileSize > s.maxFileSizeBytes {
		return "", models.ErrFileTooLarge
	}

	sanitized := models.SanitizeFilename(originalFilename)
	ext := strings.ToLower(filepath.Ext(sanitized))
	if !s.allowedExtensions[ext] {
		return "", models.ErrInvalidExtension
	}

	relativeFolder := filepath.Join("galleries", galleryID, "uploads")
	absoluteFolder := filepath.Join(s.basePath, relativeFolder)
	if err := os.MkdirAll(absoluteFolder, 0755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d-%s", uploadedAt.UnixMilli(), sanitized)
	filename = uniqueFilename(filename, absoluteFolder)

	relativePath := filepath.Join(relativeFolder, filename)
	absolutePath := filepath.Join(s.basePath, relativePath)

	// Security check: ensure path is within base path
	if !strings.HasPrefix(absolutePath, s.basePath) {
		return "", models.ErrPathTraversal
	}

	file, err := os.OpenFile(absolutePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(absolutePath) // Clean up on error
		return "", err
	}

	// Return path with forward slashes for consistency
	return strings.ReplaceAll(relativePath, string(os.PathSeparator), "/"), nil
}

// Delete removes a blob by its stored path
func (s *MediaStorageService) Delete(storedPath string) bool {
	if strings.TrimSpace(storedPath) == "" {
		return false
	}

	fullPath, err := s.GetFullPath(storedPath)
	if err != nil {
		return false
	}

	return os.Remove(fullPath) == nil
}

// GetFullPath returns the absolute path for a stored path
func (s *MediaStorageService) GetFullPath(storedPath string) (string, error) {
	if strings.TrimSpace(storedPath) == "" {
		return "", fmt.Errorf("stored path cannot be empty")
	}

	normalized := filepath.FromSlash(storedPath)
	fullPath := filepath.Join(s.basePath, normalized)

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(absPath, s.basePath) {
		return "", models.ErrPathTraversal
	}

	return absPath, nil
}

// Exists checks if a blob exists at the given stored path
func (s *MediaStorageService) Exists(storedPath string) bool {
	fullPath, err := s.GetFullPath(storedPath)
	if err != nil {
		return false
	}

	_, err = os.Stat(fullPath)
	return err == nil
}

// BasePath returns the storage root
func (s *MediaStorageService) BasePath() string {
	return s.basePath
}

// uniqueFilename appends a counter if the candidate already exists
func uniqueFilename(filename, folderPath string) string {
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))
	ext := filepath.Ext(filename)
	candidate := filename
	counter := 1

	for {
		fullPath := filepath.Join(folderPath, candidate)
		if _, err := os.Stat(fullPath); os.IsNotExist(err) {
			break
		}

		candidate = fmt.Sprintf("%s_%03d%s", nameWithoutExt, counter, ext)
		counter++

		if counter > 9999 {
			candidate = fmt.Sprintf("%s_%d%s", nameWithoutExt, time.Now().UnixNano(), ext)
			break
		}
	}

	return candidate
}

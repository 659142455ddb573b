package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jdeng/goheif"
)

// ThumbnailSize represents a thumbnail size configuration
type ThumbnailSize struct {
	Name    string
	MaxDim  int // Maximum dimension (width or height)
	Quality int // JPEG quality (1-100)
}

var (
	// ThumbSmall is 200px max dimension
	ThumbSmall = ThumbnailSize{Name: "small", MaxDim: 200, Quality: 80}
	// ThumbMedium is 500px max dimension
	ThumbMedium = ThumbnailSize{Name: "medium", MaxDim: 500, Quality: 85}
	// ThumbLarge is 1000px max dimension
	ThumbLarge = ThumbnailSize{Name: "large", MaxDim: 1000, Quality: 85}
)

// ThumbnailResult contains paths to generated thumbnails
type ThumbnailResult struct {
	SmallPath  string
	MediumPath string
	LargePath  string
	Width      int
	Height     int
}

// ThumbnailService handles thumbnail generation for gallery media
type ThumbnailService struct {
	basePath string
}

// NewThumbnailService creates a new ThumbnailService
func NewThumbnailService(basePath string) *ThumbnailService {
	return &ThumbnailService{basePath: basePath}
}

// GenerateThumbnails creates thumbnails for an image and returns their paths.
// Thumbnails live in a .thumbs directory next to the stored blob.
func (s *ThumbnailService) GenerateThumbnails(imageData []byte, mediaID string, storedPath string, orientation int) (*ThumbnailResult, error) {
	var img image.Image
	var err error

	if IsHEIC(storedPath) {
		img, err = goheif.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("failed to decode HEIC image: %w", err)
		}
	} else {
		img, _, err = image.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
	}

	// Apply EXIF orientation correction
	img = applyOrientation(img, orientation)

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// storedPath is like "galleries/{id}/uploads/1700000000-IMG_001.jpg"
	dir := filepath.Dir(filepath.FromSlash(storedPath))
	thumbDir := filepath.Join(dir, ".thumbs")

	fullThumbDir := filepath.Join(s.basePath, thumbDir)
	if err := os.MkdirAll(fullThumbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	result := &ThumbnailResult{
		Width:  width,
		Height: height,
	}

	sizes := []struct {
		size    ThumbnailSize
		pathPtr *string
	}{
		{ThumbSmall, &result.SmallPath},
		{ThumbMedium, &result.MediumPath},
		{ThumbLarge, &result.LargePath},
	}

	for _, sizeItem := range sizes {
		thumbPath, err := s.generateThumbnail(img, mediaID, thumbDir, sizeItem.size)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s thumbnail: %w", sizeItem.size.Name, err)
		}
		*sizeItem.pathPtr = thumbPath
	}

	return result, nil
}

// generateThumbnail creates a single thumbnail and returns its relative path
func (s *ThumbnailService) generateThumbnail(img image.Image, mediaID string, thumbDir string, size ThumbnailSize) (string, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Calculate new dimensions maintaining aspect ratio
	var newWidth, newHeight int
	if width > height {
		if width > size.MaxDim {
			newWidth = size.MaxDim
			newHeight = height * size.MaxDim / width
		} else {
			newWidth = width
			newHeight = height
		}
	} else {
		if height > size.MaxDim {
			newHeight = size.MaxDim
			newWidth = width * size.MaxDim / height
		} else {
			newWidth = width
			newHeight = height
		}
	}

	// Resize using high-quality Lanczos filter
	resized := imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)

	filename := fmt.Sprintf("%s_%s.jpg", mediaID, size.Name)
	relativePath := filepath.Join(thumbDir, filename)
	fullPath := filepath.Join(s.basePath, relativePath)

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	defer out.Close()

	opts := &jpeg.Options{Quality: size.Quality}
	if err := jpeg.Encode(out, resized, opts); err != nil {
		os.Remove(fullPath) // Clean up on failure
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return strings.ReplaceAll(relativePath, string(os.PathSeparator), "/"), nil
}

// applyOrientation corrects image orientation based on EXIF data
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Rotate270(imaging.FlipH(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Rotate90(imaging.FlipH(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// GetThumbnailPath returns the full filesystem path for a thumbnail
func (s *ThumbnailService) GetThumbnailPath(relativePath string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(relativePath))
}

// DeleteThumbnails removes all thumbnails for a media item
func (s *ThumbnailService) DeleteThumbnails(smallPath, mediumPath, largePath string) error {
	paths := []string{smallPath, mediumPath, largePath}
	for _, p := range paths {
		if p != "" {
			fullPath := filepath.Join(s.basePath, filepath.FromSlash(p))
			os.Remove(fullPath) // Ignore errors for non-existent files
		}
	}
	return nil
}

// IsSupportedFormat checks if the file extension is supported for thumbnail generation
func IsSupportedFormat(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	supported := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
		".bmp":  true,
		".heic": true,
		".heif": true,
	}
	return supported[ext]
}

// IsHEIC checks if the file is HEIC/HEIF format (requires special handling)
func IsHEIC(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".heic" || ext == ".heif"
}

// IsVideo checks if the file extension is a supported video format
func IsVideo(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".mp4" || ext == ".mov" || ext == ".webm"
}

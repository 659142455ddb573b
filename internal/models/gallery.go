package models

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GalleryVisibility represents access levels for a gallery
type GalleryVisibility string

const (
	VisibilityPublic     GalleryVisibility = "public"      // Anyone can view via slug
	VisibilitySecretLink GalleryVisibility = "secret_link" // Anyone with the secret token
	VisibilityPassword   GalleryVisibility = "password"    // Guests must present the gallery password
)

// GalleryTheme represents predefined visual themes
type GalleryTheme string

const (
	ThemeDark     GalleryTheme = "dark"
	ThemeLight    GalleryTheme = "light"
	ThemeMinimal  GalleryTheme = "minimal"
	ThemeFestive  GalleryTheme = "festive"
	ThemeRomantic GalleryTheme = "romantic"
)

// IsValidVisibility checks if a visibility value is valid
func IsValidVisibility(v string) bool {
	switch GalleryVisibility(v) {
	case VisibilityPublic, VisibilitySecretLink, VisibilityPassword:
		return true
	}
	return false
}

// IsValidTheme checks if a theme value is valid
func IsValidTheme(t string) bool {
	switch GalleryTheme(t) {
	case ThemeDark, ThemeLight, ThemeMinimal, ThemeFestive, ThemeRomantic:
		return true
	}
	return false
}

// Gallery represents a single event's isolated collection of media, comments,
// likes, stories and profiles
type Gallery struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  *string           `json:"description,omitempty"`
	Slug         string            `json:"slug"`
	EventDate    *time.Time        `json:"eventDate,omitempty"`
	Theme        GalleryTheme      `json:"theme"`
	Visibility   GalleryVisibility `json:"visibility"`
	SecretToken  *string           `json:"secretToken,omitempty"`
	PasswordHash string            `json:"-"`
	HostDeviceID string            `json:"hostDeviceId"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`

	// Computed fields (not stored in DB directly)
	MediaCount int  `json:"mediaCount,omitempty"`
	IsHost     bool `json:"isHost,omitempty"`
}

// NewGallery creates a new gallery with generated ID and slug
func NewGallery(name, hostDeviceID string) (*Gallery, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrGalleryNameRequired
	}
	if strings.TrimSpace(hostDeviceID) == "" {
		return nil, ErrGalleryHostRequired
	}

	now := time.Now().UTC()
	return &Gallery{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Slug:         GenerateSlug(name),
		Theme:        ThemeDark,
		Visibility:   VisibilityPublic,
		HostDeviceID: hostDeviceID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GenerateSlug creates a URL-friendly slug from a name
func GenerateSlug(name string) string {
	slug := strings.ToLower(name)

	reg := regexp.MustCompile(`[^a-z0-9]+`)
	slug = reg.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > 50 {
		slug = slug[:50]
	}

	// Random suffix for uniqueness
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return slug + "-" + hex.EncodeToString(suffix)
}

// GenerateSecretToken creates a secure random token for secret link sharing
func GenerateSecretToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// SetVisibility updates visibility and manages the secret token
func (g *Gallery) SetVisibility(visibility GalleryVisibility) {
	g.Visibility = visibility
	g.UpdatedAt = time.Now().UTC()

	if visibility == VisibilitySecretLink && g.SecretToken == nil {
		token := GenerateSecretToken()
		g.SecretToken = &token
	}
}

// SetPassword hashes and stores the gallery password
func (g *Gallery) SetPassword(password string) error {
	if len(password) < 4 {
		return ErrGalleryPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	g.PasswordHash = string(hash)
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// CheckPassword verifies a guest-supplied password against the stored hash
func (g *Gallery) CheckPassword(password string) bool {
	if g.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(g.PasswordHash), []byte(password)) == nil
}

// IsHostDevice reports whether the device created this gallery
func (g *Gallery) IsHostDevice(deviceID string) bool {
	return deviceID != "" && g.HostDeviceID == deviceID
}

// Gallery errors
type GalleryError struct {
	Message string
}

func (e GalleryError) Error() string {
	return e.Message
}

var (
	ErrGalleryNotFound          = GalleryError{"gallery not found"}
	ErrGalleryNameRequired      = GalleryError{"gallery name is required"}
	ErrGalleryHostRequired      = GalleryError{"host device ID is required"}
	ErrGallerySlugExists        = GalleryError{"gallery slug already exists"}
	ErrGalleryAccessDenied      = GalleryError{"access denied to gallery"}
	ErrGalleryPasswordTooShort  = GalleryError{"gallery password must be at least 4 characters"}
	ErrGalleryPasswordIncorrect = GalleryError{"incorrect gallery password"}
	ErrGalleryInvalidTheme      = GalleryError{"invalid gallery theme"}
	ErrGalleryInvalidVisibility = GalleryError{"invalid gallery visibility"}
)

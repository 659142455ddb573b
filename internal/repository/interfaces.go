package repository

import (
	"context"
	"time"

	"github.com/guestlens/server/internal/models"
)

// GalleryRepo defines the interface for gallery persistence operations
type GalleryRepo interface {
	GetByID(ctx context.Context, id string) (*models.Gallery, error)
	GetBySlug(ctx context.Context, slug string) (*models.Gallery, error)
	GetBySecretToken(ctx context.Context, token string) (*models.Gallery, error)
	Add(ctx context.Context, g *models.Gallery) error
	Update(ctx context.Context, g *models.Gallery) error
	Delete(ctx context.Context, id string) (bool, error)
}

// MediaRepo defines the interface for media feed persistence operations
type MediaRepo interface {
	GetByID(ctx context.Context, id string) (*models.MediaItem, error)
	GetByHash(ctx context.Context, galleryID, hash string) (*models.MediaItem, error)
	ListPage(ctx context.Context, galleryID string, cursor models.Cursor, limit int) ([]*models.MediaItem, error)
	GetCount(ctx context.Context, galleryID string) (int, error)
	ExistsByPath(ctx context.Context, storedPath string) (bool, error)
	Add(ctx context.Context, item *models.MediaItem) error
	UpdateTags(ctx context.Context, id string, tags []models.MediaTag) error
	Delete(ctx context.Context, id string) (bool, error)
}

// CommentRepo defines the interface for comment persistence operations
type CommentRepo interface {
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByMedia(ctx context.Context, mediaID string) ([]*models.Comment, error)
	Add(ctx context.Context, c *models.Comment) error
	Delete(ctx context.Context, id string) (bool, error)
}

// LikeRepo defines the interface for like persistence operations
type LikeRepo interface {
	Toggle(ctx context.Context, like *models.Like) (bool, error)
	Count(ctx context.Context, mediaID string) (int, error)
	Summary(ctx context.Context, mediaID, deviceID string) (*models.LikeSummary, error)
}

// StoryRepo defines the interface for story persistence operations
type StoryRepo interface {
	GetByID(ctx context.Context, id string) (*models.Story, error)
	ListActive(ctx context.Context, galleryID string, now time.Time) ([]*models.Story, error)
	ExistsByPath(ctx context.Context, storedPath string) (bool, error)
	Add(ctx context.Context, s *models.Story) error
	Delete(ctx context.Context, id string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) ([]string, error)
}

// ProfileRepo defines the interface for profile persistence operations
type ProfileRepo interface {
	GetByDevice(ctx context.Context, galleryID, deviceID string) (*models.Profile, error)
	ListByGallery(ctx context.Context, galleryID string) ([]*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
}

// SessionRepo defines the interface for session persistence operations
type SessionRepo interface {
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Add(ctx context.Context, s *models.Session) error
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/guestlens/server/internal/models"
	"github.com/guestlens/server/internal/observability"
	"github.com/guestlens/server/internal/repository"
)

// StoryService handles ephemeral stories: creation, listing of unexpired ones,
// and the background sweep that removes expired rows and their blobs
type StoryService struct {
	storyRepo repository.StoryRepo
	storage   *MediaStorageService
	hub       *WebSocketHub
}

// NewStoryService creates a new StoryService
func NewStoryService(storyRepo repository.StoryRepo, storage *MediaStorageService, hub *WebSocketHub) *StoryService {
	return &StoryService{
		storyRepo: storyRepo,
		storage:   storage,
		hub:       hub,
	}
}

// CreateStory stores the blob and records a story expiring in 24 hours
func (s *StoryService) CreateStory(ctx context.Context, galleryID, filename string, data []byte, uploadedBy, deviceID string) (*models.Story, error) {
	now := time.Now().UTC()
	storedPath, err := s.storage.Store(bytes.NewReader(data), galleryID, filename, now, int64(len(data)))
	if err != nil {
		return nil, err
	}

	mediaType := models.MediaImage
	if IsVideo(filename) {
		mediaType = models.MediaVideo
	}

	story, err := models.NewStory(galleryID, storedPath, mediaType, uploadedBy, deviceID)
	if err != nil {
		s.storage.Delete(storedPath)
		return nil, err
	}

	if err := s.storyRepo.Add(ctx, story); err != nil {
		s.storage.Delete(storedPath)
		return nil, fmt.Errorf("failed to save story: %w", err)
	}

	s.hub.BroadcastToGallery(galleryID, WSMessage{
		Type:    WSTypeStoryAdded,
		Payload: story,
	})
	return story, nil
}

// ListActive returns the gallery's unexpired stories, oldest first
func (s *StoryService) ListActive(ctx context.Context, galleryID string) ([]*models.Story, error) {
	stories, err := s.storyRepo.ListActive(ctx, galleryID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

// GetStory retrieves a story by ID; expired stories read as not found
func (s *StoryService) GetStory(ctx context.Context, storyID string) (*models.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	if story == nil || story.IsExpired(time.Now().UTC()) {
		return nil, models.ErrStoryNotFound
	}
	return story, nil
}

// DeleteStory removes a story and its blob
func (s *StoryService) DeleteStory(ctx context.Context, storyID string) error {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return fmt.Errorf("failed to get story: %w", err)
	}
	if story == nil {
		return models.ErrStoryNotFound
	}

	deleted, err := s.storyRepo.Delete(ctx, storyID)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if !deleted {
		return models.ErrStoryNotFound
	}

	s.storage.Delete(story.StoredPath)
	return nil
}

// SweepExpired deletes all expired stories and their blobs, returning how many
// rows were removed
func (s *StoryService) SweepExpired(ctx context.Context) (int, error) {
	paths, err := s.storyRepo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep stories: %w", err)
	}

	for _, path := range paths {
		s.storage.Delete(path)
	}
	return len(paths), nil
}

// RunSweeper sweeps expired stories on the given interval until ctx is done
func (s *StoryService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := s.SweepExpired(ctx)
			if err != nil {
				observability.Errorf("story sweep failed: %v", err)
				continue
			}
			if count > 0 {
				observability.Infof("swept %d expired stories", count)
			}
		}
	}
}

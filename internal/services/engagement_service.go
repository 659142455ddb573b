package services

import (
	"context"
	"fmt"
	"time"

	"github.com/guestlens/server/internal/models"
	"github.com/guestlens/server/internal/repository"
)

// EngagementService handles the social layer around media items: comments,
// likes and participant profiles
type EngagementService struct {
	commentRepo repository.CommentRepo
	likeRepo    repository.LikeRepo
	profileRepo repository.ProfileRepo
	mediaRepo   repository.MediaRepo
	hub         *WebSocketHub
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	commentRepo repository.CommentRepo,
	likeRepo repository.LikeRepo,
	profileRepo repository.ProfileRepo,
	mediaRepo repository.MediaRepo,
	hub *WebSocketHub,
) *EngagementService {
	return &EngagementService{
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		profileRepo: profileRepo,
		mediaRepo:   mediaRepo,
		hub:         hub,
	}
}

// AddComment posts a comment on a media item
func (s *EngagementService) AddComment(ctx context.Context, galleryID, mediaID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	item, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	if item == nil || item.GalleryID != galleryID {
		return nil, models.ErrMediaNotFound
	}

	comment, err := models.NewComment(galleryID, mediaID, req.Author, req.DeviceID, req.Text)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.Add(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	s.hub.BroadcastToGallery(galleryID, WSMessage{
		Type:    WSTypeCommentAdded,
		Payload: comment,
	})
	return comment, nil
}

// ListComments returns a media item's comments, oldest first
func (s *EngagementService) ListComments(ctx context.Context, mediaID string) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByMedia(ctx, mediaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment. Callers enforce that only the author's
// device or the gallery host may do this.
func (s *EngagementService) DeleteComment(ctx context.Context, commentID string) error {
	deleted, err := s.commentRepo.Delete(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if !deleted {
		return models.ErrCommentNotFound
	}
	return nil
}

// GetComment retrieves a comment by ID
func (s *EngagementService) GetComment(ctx context.Context, commentID string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return nil, models.ErrCommentNotFound
	}
	return comment, nil
}

// ToggleLike flips a device's like on a media item and returns the new summary
func (s *EngagementService) ToggleLike(ctx context.Context, galleryID, mediaID, deviceID string) (*models.LikeSummary, error) {
	item, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	if item == nil || item.GalleryID != galleryID {
		return nil, models.ErrMediaNotFound
	}

	like, err := models.NewLike(galleryID, mediaID, deviceID)
	if err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Toggle(ctx, like)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	count, err := s.likeRepo.Count(ctx, mediaID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	summary := &models.LikeSummary{MediaID: mediaID, Count: count, Liked: liked}

	s.hub.BroadcastToGallery(galleryID, WSMessage{
		Type:    WSTypeLikeChanged,
		Payload: LikeChangedPayload{MediaID: mediaID, Count: count},
	})
	return summary, nil
}

// GetLikeSummary returns the like count and whether the device has liked
func (s *EngagementService) GetLikeSummary(ctx context.Context, mediaID, deviceID string) (*models.LikeSummary, error) {
	summary, err := s.likeRepo.Summary(ctx, mediaID, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get like summary: %w", err)
	}
	return summary, nil
}

// UpsertProfile creates or renames a participant profile
func (s *EngagementService) UpsertProfile(ctx context.Context, galleryID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	profile, err := models.NewProfile(galleryID, req.DeviceID, req.UserName)
	if err != nil {
		return nil, err
	}
	profile.DisplayName = req.DisplayName

	existing, err := s.profileRepo.GetByDevice(ctx, galleryID, req.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if existing != nil {
		profile.CreatedAt = existing.CreatedAt
		profile.AvatarPath = existing.AvatarPath
		profile.UpdatedAt = time.Now().UTC()
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// GetProfile retrieves a device's profile in a gallery
func (s *EngagementService) GetProfile(ctx context.Context, galleryID, deviceID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByDevice(ctx, galleryID, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, models.ErrProfileNotFound
	}
	return profile, nil
}

// ListProfiles returns every participant profile in a gallery
func (s *EngagementService) ListProfiles(ctx context.Context, galleryID string) ([]*models.Profile, error) {
	profiles, err := s.profileRepo.ListByGallery(ctx, galleryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

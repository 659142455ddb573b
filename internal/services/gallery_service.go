package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guestlens/server/internal/models"
	"github.com/guestlens/server/internal/repository"
)

// GalleryService handles gallery business logic: creation, access control and
// session issuance
type GalleryService struct {
	galleryRepo repository.GalleryRepo
	mediaRepo   repository.MediaRepo
	sessionRepo repository.SessionRepo

	sessionDurationHours int
}

// NewGalleryService creates a new GalleryService
func NewGalleryService(
	galleryRepo repository.GalleryRepo,
	mediaRepo repository.MediaRepo,
	sessionRepo repository.SessionRepo,
	sessionDurationHours int,
) *GalleryService {
	if sessionDurationHours <= 0 {
		sessionDurationHours = 72
	}
	return &GalleryService{
		galleryRepo:          galleryRepo,
		mediaRepo:            mediaRepo,
		sessionRepo:          sessionRepo,
		sessionDurationHours: sessionDurationHours,
	}
}

// CreateGallery creates a new gallery and a host session for its creator
func (s *GalleryService) CreateGallery(ctx context.Context, req *models.CreateGalleryRequest, ipAddress, userAgent string) (*models.Gallery, *models.Session, error) {
	gallery, err := models.NewGallery(req.Name, req.DeviceID)
	if err != nil {
		return nil, nil, err
	}

	if req.Description != nil {
		gallery.Description = req.Description
	}

	if req.EventDate != nil && *req.EventDate != "" {
		eventDate, err := time.Parse(time.RFC3339, *req.EventDate)
		if err != nil {
			eventDate, err = time.Parse("2006-01-02", *req.EventDate)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("invalid event date: %w", err)
		}
		utc := eventDate.UTC()
		gallery.EventDate = &utc
	}

	if req.Theme != "" {
		if !models.IsValidTheme(req.Theme) {
			return nil, nil, models.ErrGalleryInvalidTheme
		}
		gallery.Theme = models.GalleryTheme(req.Theme)
	}

	if req.Visibility != "" {
		if !models.IsValidVisibility(req.Visibility) {
			return nil, nil, models.ErrGalleryInvalidVisibility
		}
		gallery.SetVisibility(models.GalleryVisibility(req.Visibility))
	}

	if gallery.Visibility == models.VisibilityPassword {
		if err := gallery.SetPassword(req.Password); err != nil {
			return nil, nil, err
		}
	}

	// Slugs carry a random suffix; retry only the unlikely collision
	for attempt := 0; attempt < 3; attempt++ {
		err = s.galleryRepo.Add(ctx, gallery)
		if err == nil || !errors.Is(err, models.ErrGallerySlugExists) {
			break
		}
		gallery.Slug = models.GenerateSlug(gallery.Name)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create gallery: %w", err)
	}

	session, err := s.issueSession(ctx, gallery.ID, models.RoleHost, req.DeviceID, ipAddress, userAgent)
	if err != nil {
		return nil, nil, err
	}

	gallery.IsHost = true
	return gallery, session, nil
}

// GetGallery retrieves a gallery by ID
func (s *GalleryService) GetGallery(ctx context.Context, galleryID string) (*models.Gallery, error) {
	gallery, err := s.galleryRepo.GetByID(ctx, galleryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}
	if gallery == nil {
		return nil, models.ErrGalleryNotFound
	}
	return gallery, nil
}

// GetGalleryBySlug retrieves a gallery for a visitor arriving via its public
// URL. Password-gated galleries are returned with the hash stripped so the
// client can render the unlock prompt.
func (s *GalleryService) GetGalleryBySlug(ctx context.Context, slug, deviceID string) (*models.Gallery, error) {
	gallery, err := s.galleryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}
	if gallery == nil {
		return nil, models.ErrGalleryNotFound
	}

	if gallery.Visibility == models.VisibilitySecretLink && !gallery.IsHostDevice(deviceID) {
		// Secret-link galleries are not discoverable by slug
		return nil, models.ErrGalleryNotFound
	}

	s.decorate(ctx, gallery, deviceID)
	return gallery, nil
}

// GetGalleryBySecretToken retrieves a gallery via its secret share link
func (s *GalleryService) GetGalleryBySecretToken(ctx context.Context, token, deviceID string) (*models.Gallery, error) {
	gallery, err := s.galleryRepo.GetBySecretToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}
	if gallery == nil {
		return nil, models.ErrGalleryNotFound
	}

	s.decorate(ctx, gallery, deviceID)
	return gallery, nil
}

// Authenticate verifies gallery access and issues a session. Public and
// secret-link galleries authenticate without a password; password galleries
// check the supplied one unless the requesting device is the host.
func (s *GalleryService) Authenticate(ctx context.Context, galleryID string, req *models.GalleryAuthRequest, ipAddress, userAgent string) (*models.Session, error) {
	gallery, err := s.GetGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}

	role := models.RoleGuest
	if gallery.IsHostDevice(req.DeviceID) {
		role = models.RoleHost
	} else if gallery.Visibility == models.VisibilityPassword {
		if !gallery.CheckPassword(req.Password) {
			return nil, models.ErrGalleryPasswordIncorrect
		}
	}

	return s.issueSession(ctx, gallery.ID, role, req.DeviceID, ipAddress, userAgent)
}

// ValidateSession resolves a session token and verifies it is alive and bound
// to the given gallery. Expired sessions are deleted on sight.
func (s *GalleryService) ValidateSession(ctx context.Context, token, galleryID string) (*models.Session, error) {
	if token == "" {
		return nil, models.ErrSessionNotFound
	}

	session, err := s.sessionRepo.GetByID(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, models.ErrSessionNotFound
	}

	if !models.SessionValid(session.ExpiresAt, time.Now().UTC()) {
		s.sessionRepo.Delete(ctx, session.ID)
		return nil, models.ErrSessionExpired
	}

	if galleryID != "" && session.GalleryID != galleryID {
		return nil, models.ErrGalleryAccessDenied
	}

	s.sessionRepo.Touch(ctx, session.ID)
	return session, nil
}

// Logout deletes a session
func (s *GalleryService) Logout(ctx context.Context, token string) error {
	_, err := s.sessionRepo.Delete(ctx, token)
	return err
}

// UpdateGallery applies host edits to name, description, theme and visibility
func (s *GalleryService) UpdateGallery(ctx context.Context, galleryID string, req *models.UpdateGalleryRequest) (*models.Gallery, error) {
	gallery, err := s.GetGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		gallery.Name = *req.Name
	}
	if req.Description != nil {
		gallery.Description = req.Description
	}
	if req.Theme != nil {
		if !models.IsValidTheme(*req.Theme) {
			return nil, models.ErrGalleryInvalidTheme
		}
		gallery.Theme = models.GalleryTheme(*req.Theme)
	}
	if req.Visibility != nil {
		if !models.IsValidVisibility(*req.Visibility) {
			return nil, models.ErrGalleryInvalidVisibility
		}
		gallery.SetVisibility(models.GalleryVisibility(*req.Visibility))
	}
	if req.Password != nil {
		if err := gallery.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	gallery.UpdatedAt = time.Now().UTC()

	if err := s.galleryRepo.Update(ctx, gallery); err != nil {
		return nil, fmt.Errorf("failed to update gallery: %w", err)
	}
	return gallery, nil
}

// DeleteGallery removes a gallery row. Blob cleanup is the caller's concern.
func (s *GalleryService) DeleteGallery(ctx context.Context, galleryID string) error {
	deleted, err := s.galleryRepo.Delete(ctx, galleryID)
	if err != nil {
		return fmt.Errorf("failed to delete gallery: %w", err)
	}
	if !deleted {
		return models.ErrGalleryNotFound
	}
	return nil
}

// CleanupExpiredSessions deletes expired session rows
func (s *GalleryService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, time.Now().UTC())
}

func (s *GalleryService) issueSession(ctx context.Context, galleryID string, role models.SessionRole, deviceID, ipAddress, userAgent string) (*models.Session, error) {
	session := models.NewSession(galleryID, role, deviceID, ipAddress, userAgent, s.sessionDurationHours)
	if err := s.sessionRepo.Add(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (s *GalleryService) decorate(ctx context.Context, gallery *models.Gallery, deviceID string) {
	gallery.IsHost = gallery.IsHostDevice(deviceID)
	if count, err := s.mediaRepo.GetCount(ctx, gallery.ID); err == nil {
		gallery.MediaCount = count
	}
}

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

// UploadNotifier delivers out-of-band notifications for new uploads
type UploadNotifier interface {
	NotifyMediaAdded(ctx context.Context, gallery *models.Gallery, item *models.MediaItem)
}

// MediaService handles the upload pipeline and tag mutations for gallery media
type MediaService struct {
	mediaRepo   repository.MediaRepo
	galleryRepo repository.GalleryRepo
	storage     *MediaStorageService
	thumbnails  *ThumbnailService
	exif        *EXIFService
	hash        *HashService
	hub         *WebSocketHub
	notifier    UploadNotifier
}

// NewMediaService creates a new MediaService
func NewMediaService(
	mediaRepo repository.MediaRepo,
	galleryRepo repository.GalleryRepo,
	storage *MediaStorageService,
	thumbnails *ThumbnailService,
	exif *EXIFService,
	hash *HashService,
	hub *WebSocketHub,
	notifier UploadNotifier,
) *MediaService {
	return &MediaService{
		mediaRepo:   mediaRepo,
		galleryRepo: galleryRepo,
		storage:     storage,
		thumbnails:  thumbnails,
		exif:        exif,
		hash:        hash,
		hub:         hub,
		notifier:    notifier,
	}
}

// UploadRequest carries one blob through the upload pipeline
type UploadRequest struct {
	GalleryID  string
	Filename   string
	Data       []byte
	UploadedBy string
	DeviceID   string
	Tags       []models.MediaTag
}

// Upload runs the full pipeline: hash, dedupe, store, extract metadata,
// generate thumbnails, persist. Identical content in the same gallery is
// deduplicated by hash and returns the existing item. If the database insert
// fails after the blob was written, the blob and thumbnails are removed so no
// orphan files accumulate.
func (s *MediaService) Upload(ctx context.Context, req *UploadRequest) (*models.MediaItem, models.UploadResult, error) {
	fileHash := s.hash.ComputeHashBytes(req.Data)

	existing, err := s.mediaRepo.GetByHash(ctx, req.GalleryID, fileHash)
	if err != nil {
		return nil, models.UploadResult{}, fmt.Errorf("failed to check for duplicate: %w", err)
	}
	if existing != nil {
		return existing, models.DuplicateUploadResult(existing.ID, existing.StoredPath, existing.UploadedAt), nil
	}

	now := time.Now().UTC()
	storedPath, err := s.storage.Store(bytes.NewReader(req.Data), req.GalleryID, req.Filename, now, int64(len(req.Data)))
	if err != nil {
		return nil, models.UploadResult{}, err
	}

	mediaType := models.MediaImage
	if IsVideo(req.Filename) {
		mediaType = models.MediaVideo
	}

	item, err := models.NewMediaItem(req.GalleryID, req.Filename, storedPath, fileHash, int64(len(req.Data)), mediaType, req.UploadedBy, req.DeviceID)
	if err != nil {
		s.storage.Delete(storedPath)
		return nil, models.UploadResult{}, err
	}
	item.Tags = req.Tags

	if mediaType == models.MediaImage {
		s.enrichImage(item, req.Data, storedPath)
	}

	if err := s.mediaRepo.Add(ctx, item); err != nil {
		// Compensate: the blob must not outlive the failed insert
		s.storage.Delete(storedPath)
		s.deleteThumbnails(item)
		return nil, models.UploadResult{}, fmt.Errorf("failed to save media: %w", err)
	}

	s.announce(ctx, item)
	return item, models.NewUploadResult(item.ID, storedPath, item.UploadedAt), nil
}

// CreateNote adds a text-only item to the feed
func (s *MediaService) CreateNote(ctx context.Context, galleryID string, req *models.CreateNoteRequest) (*models.MediaItem, error) {
	item, err := models.NewNote(galleryID, req.NoteText, req.UploadedBy, req.DeviceID)
	if err != nil {
		return nil, err
	}
	item.Tags = req.Tags

	if err := s.mediaRepo.Add(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save note: %w", err)
	}

	s.announce(ctx, item)
	return item, nil
}

// GetMedia retrieves a media item by ID
func (s *MediaService) GetMedia(ctx context.Context, mediaID string) (*models.MediaItem, error) {
	item, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	if item == nil {
		return nil, models.ErrMediaNotFound
	}
	return item, nil
}

// DeleteMedia removes an item, its blob and its thumbnails
func (s *MediaService) DeleteMedia(ctx context.Context, mediaID string) error {
	item, err := s.GetMedia(ctx, mediaID)
	if err != nil {
		return err
	}

	deleted, err := s.mediaRepo.Delete(ctx, mediaID)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	if !deleted {
		return models.ErrMediaNotFound
	}

	if item.StoredPath != "" {
		s.storage.Delete(item.StoredPath)
	}
	s.deleteThumbnails(item)

	s.hub.BroadcastToGallery(item.GalleryID, WSMessage{
		Type:    WSTypeMediaDeleted,
		Payload: MediaDeletedPayload{MediaID: item.ID},
	})
	return nil
}

// AddTag builds a tag from the request and appends it to the item's tag list
func (s *MediaService) AddTag(ctx context.Context, mediaID string, req *models.AddTagRequest) (*models.MediaItem, error) {
	item, err := s.GetMedia(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	var tag models.MediaTag
	switch models.TagKind(req.Kind) {
	case models.TagPerson:
		if req.Person == nil {
			return nil, models.ErrTagUserNameRequired
		}
		tag, err = models.NewPersonTag(req.Position, *req.Person)
	case models.TagPlace:
		if req.Place == nil {
			return nil, models.ErrTagNameRequired
		}
		tag, err = models.NewPlaceTag(req.Position, *req.Place)
	case models.TagText:
		if req.Text == nil {
			return nil, models.ErrTagTextRequired
		}
		tag, err = models.NewTextTag(req.Position, *req.Text)
	default:
		return nil, models.ErrInvalidTagKind
	}
	if err != nil {
		return nil, err
	}

	item.Tags = append(item.Tags, tag)
	if err := s.mediaRepo.UpdateTags(ctx, item.ID, item.Tags); err != nil {
		return nil, fmt.Errorf("failed to save tags: %w", err)
	}
	return item, nil
}

// RemoveTag filters a tag out of the item's tag list. Removing an absent tag
// succeeds without changing anything.
func (s *MediaService) RemoveTag(ctx context.Context, mediaID, tagID string) (*models.MediaItem, error) {
	item, err := s.GetMedia(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	item.Tags = models.RemoveTag(item.Tags, tagID)
	if err := s.mediaRepo.UpdateTags(ctx, item.ID, item.Tags); err != nil {
		return nil, fmt.Errorf("failed to save tags: %w", err)
	}
	return item, nil
}

// enrichImage fills EXIF metadata, orientation-corrected thumbnails and
// dimensions. Failures are logged and the upload proceeds without thumbnails.
func (s *MediaService) enrichImage(item *models.MediaItem, data []byte, storedPath string) {
	orientation := 1
	if exifData, err := s.exif.ExtractFromBytes(data); err == nil {
		orientation = exifData.Orientation
		applyEXIFMetadata(item, exifData)
	}

	if !IsSupportedFormat(item.Name) {
		return
	}

	result, err := s.thumbnails.GenerateThumbnails(data, item.ID, storedPath, orientation)
	if err != nil {
		observability.Warnf("thumbnail generation failed for %s: %v", item.ID, err)
		return
	}

	item.ThumbSmall = &result.SmallPath
	item.ThumbMedium = &result.MediumPath
	item.ThumbLarge = &result.LargePath
	item.Width = &result.Width
	item.Height = &result.Height
}

// applyEXIFMetadata copies the capture time onto the item and backfills GPS
// coordinates into place tags that arrived without any
func applyEXIFMetadata(item *models.MediaItem, exifData *EXIFData) {
	if exifData.DateTaken != nil {
		item.CapturedAt = exifData.DateTaken
	}
	if exifData.Latitude == nil || exifData.Longitude == nil {
		return
	}
	for i := range item.Tags {
		tag := &item.Tags[i]
		if tag.Kind == models.TagPlace && tag.Coordinates == nil {
			tag.Coordinates = &models.Coordinates{Lat: *exifData.Latitude, Lng: *exifData.Longitude}
		}
	}
}

func (s *MediaService) deleteThumbnails(item *models.MediaItem) {
	small, medium, large := "", "", ""
	if item.ThumbSmall != nil {
		small = *item.ThumbSmall
	}
	if item.ThumbMedium != nil {
		medium = *item.ThumbMedium
	}
	if item.ThumbLarge != nil {
		large = *item.ThumbLarge
	}
	s.thumbnails.DeleteThumbnails(small, medium, large)
}

func (s *MediaService) announce(ctx context.Context, item *models.MediaItem) {
	s.hub.BroadcastToGallery(item.GalleryID, WSMessage{
		Type:    WSTypeMediaAdded,
		Payload: models.MediaToResponse(item),
	})

	if s.notifier == nil {
		return
	}
	gallery, err := s.galleryRepo.GetByID(ctx, item.GalleryID)
	if err != nil || gallery == nil {
		return
	}
	if gallery.IsHostDevice(item.DeviceID) {
		// Hosts don't need to hear about their own uploads
		return
	}
	s.notifier.NotifyMediaAdded(ctx, gallery, item)
}

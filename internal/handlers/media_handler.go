package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/guestlens/server/internal/middleware"
	"github.com/guestlens/server/internal/models"
	"github.com/guestlens/server/internal/observability"
	"github.com/guestlens/server/internal/services"
)

// maxUploadBytes bounds the multipart form parse
const maxUploadBytes = 100 << 20

// MediaHandler handles media upload, feed pagination and file serving
type MediaHandler struct {
	mediaService *services.MediaService
	feedService  *services.FeedService
	storage      *services.MediaStorageService
	thumbnails   *services.ThumbnailService
	metrics      *observability.BusinessMetrics
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(
	mediaService *services.MediaService,
	feedService *services.FeedService,
	storage *services.MediaStorageService,
	thumbnails *services.ThumbnailService,
	metrics *observability.BusinessMetrics,
) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
		feedService:  feedService,
		storage:      storage,
		thumbnails:   thumbnails,
		metrics:      metrics,
	}
}

// Upload handles media upload
// @Summary Upload media
// @Description Uploads a photo or video. Identical content already in the gallery is detected via SHA256 and returned as a duplicate.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param file formData file true "Media file"
// @Param uploadedBy formData string true "Uploader display name"
// @Param tags formData string false "Initial tags as a JSON array"
// @Success 200 {object} models.UploadResult
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/media [post]
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())
	session := middleware.GetSessionFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Request must be multipart/form-data.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file provided or file is empty.")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read file.")
		return
	}

	uploadedBy := r.FormValue("uploadedBy")
	if uploadedBy == "" {
		uploadedBy = "Guest"
	}

	var tags []models.MediaTag
	if tagsJSON := r.FormValue("tags"); tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid tags payload.")
			return
		}
		for i := range tags {
			tags[i].Position = tags[i].Position.Clamp()
		}
	}

	_, result, err := h.mediaService.Upload(r.Context(), &services.UploadRequest{
		GalleryID:  gallery.ID,
		Filename:   header.Filename,
		Data:       content,
		UploadedBy: uploadedBy,
		DeviceID:   session.DeviceID,
		Tags:       tags,
	})
	if h.metrics != nil {
		h.metrics.RecordMediaUpload(r.Context(), gallery.ID, int64(len(content)), err == nil)
	}
	if err != nil {
		switch err {
		case models.ErrFileTooLarge, models.ErrInvalidExtension:
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to save media.")
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CreateNote posts a text-only feed item
// @Summary Post a note
// @Tags media
// @Accept json
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param request body models.CreateNoteRequest true "Note"
// @Success 201 {object} models.MediaResponse
// @Security SessionToken
// @Router /api/galleries/{galleryID}/notes [post]
func (h *MediaHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())
	session := middleware.GetSessionFromContext(r.Context())

	var req models.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.DeviceID == "" {
		req.DeviceID = session.DeviceID
	}

	item, err := h.mediaService.CreateNote(r.Context(), gallery.ID, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, models.MediaToResponse(item))
}

// Feed returns one page of the gallery's media feed
// @Summary Get feed page
// @Description Returns newest-first media. Without a cursor the first page holds up to 200 items; with one, up to 100. hasMore only turns false once a page comes back empty.
// @Tags media
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param cursor query string false "Continuation cursor from the previous page"
// @Success 200 {object} models.FeedPageResponse
// @Failure 400 {object} models.ErrorResponse "Malformed cursor"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/media [get]
func (h *MediaHandler) Feed(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())

	var cursor models.Cursor
	initial := true
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		decoded, err := models.DecodeCursor(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Malformed cursor.")
			return
		}
		cursor = decoded
		initial = false
	}

	limit := services.InitialPageSize
	if !initial {
		limit = services.MorePageSize
	}

	page, err := h.feedService.Page(r.Context(), gallery.ID, cursor, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}

	items := make([]models.MediaResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, models.MediaToResponse(item))
	}

	resp := models.FeedPageResponse{
		Items:   items,
		HasMore: page.HasMore,
	}
	if page.HasMore {
		resp.NextCursor = page.NextCursor.Encode()
	}

	if h.metrics != nil {
		h.metrics.RecordFeedPage(r.Context(), gallery.ID, len(items), initial)
	}
	respondJSON(w, http.StatusOK, resp)
}

// Get returns a single media item
// @Summary Get media item
// @Tags media
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param mediaID path string true "Media ID"
// @Success 200 {object} models.MediaResponse
// @Failure 404 {object} models.ErrorResponse "Media not found"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/media/{mediaID} [get]
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.galleryMedia(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, models.MediaToResponse(item))
}

// Delete removes a media item. Guests may delete their own uploads; the host
// may delete anything.
// @Summary Delete media item
// @Tags media
// @Param galleryID path string true "Gallery ID"
// @Param mediaID path string true "Media ID"
// @Success 204 "Deleted"
// @Failure 403 {object} models.ErrorResponse "Not the owner or host"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/media/{mediaID} [delete]
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())

	item, ok := h.galleryMedia(w, r)
	if !ok {
		return
	}

	if !session.IsHost() && !item.OwnedBy(session.DeviceID) {
		respondError(w, http.StatusForbidden, "Only the uploader or the host can delete this.")
		return
	}

	if err := h.mediaService.DeleteMedia(r.Context(), item.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete media.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ServeFile streams the original blob
// @Summary Download media file
// @Tags media
// @Param galleryID path string true "Gallery ID"
// @Param mediaID path string true "Media ID"
// @Success 200 {file} binary "Media content"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/media/{mediaID}/file [get]
func (h *MediaHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())

	item, ok := h.galleryMedia(w, r)
	if !ok {
		return
	}
	if item.StoredPath == "" {
		respondError(w, http.StatusNotFound, "Media has no file.")
		return
	}

	fullPath, err := h.storage.GetFullPath(item.StoredPath)
	if err != nil {
		respondError(w, http.StatusNotFound, "File not found.")
		return
	}

	if h.metrics != nil {
		h.metrics.RecordMediaServed(r.Context(), gallery.ID)
	}
	http.ServeFile(w, r, fullPath)
}

// ServeThumbnail streams a thumbnail, falling back to the original blob
// @Summary Download media thumbnail
// @Tags media
// @Param galleryID path string true "Gallery ID"
// @Param mediaID path string true "Media ID"
// @Param size query string false "Thumbnail size: small, medium or large" default(medium)
// @Success 200 {file} binary "Thumbnail content"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/media/{mediaID}/thumbnail [get]
func (h *MediaHandler) ServeThumbnail(w http.ResponseWriter, r *http.Request) {
	item, ok := h.galleryMedia(w, r)
	if !ok {
		return
	}

	var thumbPath *string
	switch r.URL.Query().Get("size") {
	case "small":
		thumbPath = item.ThumbSmall
	case "large":
		thumbPath = item.ThumbLarge
	default:
		thumbPath = item.ThumbMedium
	}

	if thumbPath != nil && *thumbPath != "" {
		http.ServeFile(w, r, h.thumbnails.GetThumbnailPath(*thumbPath))
		return
	}

	// No thumbnail generated; fall back to the original
	if item.StoredPath == "" {
		respondError(w, http.StatusNotFound, "No thumbnail available.")
		return
	}
	fullPath, err := h.storage.GetFullPath(item.StoredPath)
	if err != nil {
		respondError(w, http.StatusNotFound, "File not found.")
		return
	}
	http.ServeFile(w, r, fullPath)
}

// Count returns the gallery's media count
// @Summary Get media count
// @Tags media
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Success 200 {object} map[string]int
// @Security SessionToken
// @Router /api/galleries/{galleryID}/media/count [get]
func (h *MediaHandler) Count(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())

	count, err := h.feedService.Count(r.Context(), gallery.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"count":` + strconv.Itoa(count) + `}`))
}

// galleryMedia loads the {mediaID} item and verifies it belongs to the
// gallery on the context. Responds and returns false on failure.
func (h *MediaHandler) galleryMedia(w http.ResponseWriter, r *http.Request) (*models.MediaItem, bool) {
	gallery := middleware.GetGalleryFromContext(r.Context())
	mediaID := chi.URLParam(r, "mediaID")

	item, err := h.mediaService.GetMedia(r.Context(), mediaID)
	if err != nil {
		if err == models.ErrMediaNotFound {
			respondError(w, http.StatusNotFound, "Media not found.")
		} else {
			respondError(w, http.StatusInternalServerError, "Database error.")
		}
		return nil, false
	}
	if item.GalleryID != gallery.ID {
		respondError(w, http.StatusNotFound, "Media not found.")
		return nil, false
	}
	return item, true
}

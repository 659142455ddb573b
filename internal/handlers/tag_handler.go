package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/guestlens/server/internal/models"
	"github.com/guestlens/server/internal/services"
)

// TagHandler handles tag placement and mutation endpoints
type TagHandler struct {
	mediaService *services.MediaService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(mediaService *services.MediaService) *TagHandler {
	return &TagHandler{mediaService: mediaService}
}

// NormalizePosition converts a pointer offset inside a rendered element into a
// clamped percentage position
// @Summary Normalize a tag position
// @Description Converts pixel offsets within the media element's bounding box into percentage coordinates clamped to [5,95]
// @Tags tags
// @Accept json
// @Produce json
// @Param request body models.NormalizePositionRequest true "Offset and bounding box"
// @Success 200 {object} models.NormalizePositionResponse
// @Failure 400 {object} models.ErrorResponse "Non-positive bounds"
// @Router /api/tags/normalize-position [post]
func (h *TagHandler) NormalizePosition(w http.ResponseWriter, r *http.Request) {
	var req models.NormalizePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	pos, err := models.NormalizePosition(req.OffsetX, req.OffsetY, req.Width, req.Height)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, models.NormalizePositionResponse{Position: pos})
}

// AddTag attaches a tag to a media item
// @Summary Add a tag
// @Description Adds a person, place or text tag at a clamped position. The updated tag list is returned with the item.
// @Tags tags
// @Accept json
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param mediaID path string true "Media ID"
// @Param request body models.AddTagRequest true "Tag details"
// @Success 200 {object} models.MediaResponse
// @Failure 400 {object} models.ErrorResponse "Invalid tag payload"
// @Failure 404 {object} models.ErrorResponse "Media not found"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/media/{mediaID}/tags [post]
func (h *TagHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	mediaID := chi.URLParam(r, "mediaID")

	var req models.AddTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	item, err := h.mediaService.AddTag(r.Context(), mediaID, &req)
	if err != nil {
		if err == models.ErrMediaNotFound {
			respondError(w, http.StatusNotFound, "Media not found.")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, models.MediaToResponse(item))
}

// RemoveTag detaches a tag from a media item. Removing a tag that does not
// exist succeeds without changes.
// @Summary Remove a tag
// @Tags tags
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param mediaID path string true "Media ID"
// @Param tagID path string true "Tag ID"
// @Success 200 {object} models.MediaResponse
// @Failure 404 {object} models.ErrorResponse "Media not found"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/media/{mediaID}/tags/{tagID} [delete]
func (h *TagHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	mediaID := chi.URLParam(r, "mediaID")
	tagID := chi.URLParam(r, "tagID")

	item, err := h.mediaService.RemoveTag(r.Context(), mediaID, tagID)
	if err != nil {
		if err == models.ErrMediaNotFound {
			respondError(w, http.StatusNotFound, "Media not found.")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update tags.")
		return
	}

	respondJSON(w, http.StatusOK, models.MediaToResponse(item))
}

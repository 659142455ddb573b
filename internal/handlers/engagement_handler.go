package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/guestlens/server/internal/middleware"
	"github.com/guestlens/server/internal/models"
	"github.com/guestlens/server/internal/services"
)

// EngagementHandler handles comments, likes and participant profiles
type EngagementHandler struct {
	engagementService *services.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(engagementService *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// ListComments returns a media item's comments, oldest first
// @Summary List comments
// @Tags engagement
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param mediaID path string true "Media ID"
// @Success 200 {array} models.Comment
// @Security SessionToken
// @Router /api/galleries/{galleryID}/media/{mediaID}/comments [get]
func (h *EngagementHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	mediaID := chi.URLParam(r, "mediaID")

	comments, err := h.engagementService.ListComments(r.Context(), mediaID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}

	respondJSON(w, http.StatusOK, comments)
}

// AddComment posts a comment on a media item
// @Summary Add a comment
// @Tags engagement
// @Accept json
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param mediaID path string true "Media ID"
// @Param request body models.CreateCommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse "Invalid comment"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/media/{mediaID}/comments [post]
func (h *EngagementHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())
	session := middleware.GetSessionFromContext(r.Context())
	mediaID := chi.URLParam(r, "mediaID")

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.DeviceID == "" {
		req.DeviceID = session.DeviceID
	}

	comment, err := h.engagementService.AddComment(r.Context(), gallery.ID, mediaID, &req)
	if err != nil {
		if err == models.ErrMediaNotFound {
			respondError(w, http.StatusNotFound, "Media not found.")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, comment)
}

// DeleteComment removes a comment. The author's device or the host may delete.
// @Summary Delete a comment
// @Tags engagement
// @Param galleryID path string true "Gallery ID"
// @Param commentID path string true "Comment ID"
// @Success 204 "Deleted"
// @Failure 403 {object} models.ErrorResponse "Not the author or host"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/comments/{commentID} [delete]
func (h *EngagementHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	commentID := chi.URLParam(r, "commentID")

	comment, err := h.engagementService.GetComment(r.Context(), commentID)
	if err != nil {
		if err == models.ErrCommentNotFound {
			respondError(w, http.StatusNotFound, "Comment not found.")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}

	if !session.IsHost() && !comment.OwnedBy(session.DeviceID) {
		respondError(w, http.StatusForbidden, "Only the author or the host can delete this.")
		return
	}

	if err := h.engagementService.DeleteComment(r.Context(), commentID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete comment.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleLike flips the caller's like on a media item
// @Summary Toggle a like
// @Tags engagement
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param mediaID path string true "Media ID"
// @Success 200 {object} models.LikeSummary
// @Failure 404 {object} models.ErrorResponse "Media not found"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/media/{mediaID}/like [post]
func (h *EngagementHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())
	session := middleware.GetSessionFromContext(r.Context())
	mediaID := chi.URLParam(r, "mediaID")

	summary, err := h.engagementService.ToggleLike(r.Context(), gallery.ID, mediaID, session.DeviceID)
	if err != nil {
		if err == models.ErrMediaNotFound {
			respondError(w, http.StatusNotFound, "Media not found.")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to toggle like.")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetLikes returns a media item's like summary for the caller
// @Summary Get like summary
// @Tags engagement
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param mediaID path string true "Media ID"
// @Success 200 {object} models.LikeSummary
// @Security SessionToken
// @Router /api/galleries/{galleryID}/media/{mediaID}/like [get]
func (h *EngagementHandler) GetLikes(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	mediaID := chi.URLParam(r, "mediaID")

	summary, err := h.engagementService.GetLikeSummary(r.Context(), mediaID, session.DeviceID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// UpsertProfile creates or renames the caller's participant profile
// @Summary Create or update profile
// @Tags engagement
// @Accept json
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param request body models.UpsertProfileRequest true "Profile"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse "Invalid profile"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/profiles [put]
func (h *EngagementHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())
	session := middleware.GetSessionFromContext(r.Context())

	var req models.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.DeviceID == "" {
		req.DeviceID = session.DeviceID
	}

	profile, err := h.engagementService.UpsertProfile(r.Context(), gallery.ID, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// ListProfiles returns every participant profile in the gallery
// @Summary List profiles
// @Tags engagement
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Success 200 {array} models.Profile
// @Security SessionToken
// @Router /api/galleries/{galleryID}/profiles [get]
func (h *EngagementHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())

	profiles, err := h.engagementService.ListProfiles(r.Context(), gallery.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}

	respondJSON(w, http.StatusOK, profiles)
}

// GetProfile returns one device's profile in the gallery
// @Summary Get profile
// @Tags engagement
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param deviceID path string true "Device ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse "Profile not found"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/profiles/{deviceID} [get]
func (h *EngagementHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())
	deviceID := chi.URLParam(r, "deviceID")

	profile, err := h.engagementService.GetProfile(r.Context(), gallery.ID, deviceID)
	if err != nil {
		if err == models.ErrProfileNotFound {
			respondError(w, http.StatusNotFound, "Profile not found.")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/guestlens/server/internal/middleware"
	"github.com/guestlens/server/internal/models"
	"github.com/guestlens/server/internal/services"
)

// StoryHandler handles ephemeral story endpoints
type StoryHandler struct {
	storyService *services.StoryService
	storage      *services.MediaStorageService
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyService *services.StoryService, storage *services.MediaStorageService) *StoryHandler {
	return &StoryHandler{storyService: storyService, storage: storage}
}

// Create uploads a story that disappears after 24 hours
// @Summary Upload a story
// @Tags stories
// @Accept multipart/form-data
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param file formData file true "Story media"
// @Param uploadedBy formData string true "Uploader display name"
// @Success 201 {object} models.Story
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/stories [post]
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	story, err := h.storyService.CreateStory(r.Context(), gallery.ID, header.Filename, content, uploadedBy, session.DeviceID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, story)
}

// List returns the gallery's unexpired stories
// @Summary List active stories
// @Tags stories
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Success 200 {array} models.Story
// @Security SessionToken
// @Router /api/galleries/{galleryID}/stories [get]
func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())

	stories, err := h.storyService.ListActive(r.Context(), gallery.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}

	respondJSON(w, http.StatusOK, stories)
}

// ServeFile streams a story's blob; expired stories read as not found
// @Summary Download story file
// @Tags stories
// @Param galleryID path string true "Gallery ID"
// @Param storyID path string true "Story ID"
// @Success 200 {file} binary "Story content"
// @Failure 404 {object} models.ErrorResponse "Story not found or expired"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/stories/{storyID}/file [get]
func (h *StoryHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())
	storyID := chi.URLParam(r, "storyID")

	story, err := h.storyService.GetStory(r.Context(), storyID)
	if err != nil || story.GalleryID != gallery.ID {
		respondError(w, http.StatusNotFound, "Story not found.")
		return
	}

	fullPath, err := h.storage.GetFullPath(story.StoredPath)
	if err != nil {
		respondError(w, http.StatusNotFound, "File not found.")
		return
	}

	http.ServeFile(w, r, fullPath)
}

// Delete removes a story. Guests may delete their own; the host anything.
// @Summary Delete a story
// @Tags stories
// @Param galleryID path string true "Gallery ID"
// @Param storyID path string true "Story ID"
// @Success 204 "Deleted"
// @Failure 403 {object} models.ErrorResponse "Not the owner or host"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/stories/{storyID} [delete]
func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())
	session := middleware.GetSessionFromContext(r.Context())
	storyID := chi.URLParam(r, "storyID")

	story, err := h.storyService.GetStory(r.Context(), storyID)
	if err != nil || story.GalleryID != gallery.ID {
		respondError(w, http.StatusNotFound, "Story not found.")
		return
	}

	if !session.IsHost() && story.DeviceID != session.DeviceID {
		respondError(w, http.StatusForbidden, "Only the uploader or the host can delete this.")
		return
	}

	if err := h.storyService.DeleteStory(r.Context(), storyID); err != nil {
		if err == models.ErrStoryNotFound {
			respondError(w, http.StatusNotFound, "Story not found.")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete story.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

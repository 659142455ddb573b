package handlers

import (
	"net/http"

	"github.com/guestlens/server/internal/middleware"
	"github.com/guestlens/server/internal/services"
)

// AdminHandler handles host moderation and maintenance endpoints
type AdminHandler struct {
	galleryService     *services.GalleryService
	maintenanceService *services.MaintenanceService
	hub                *services.WebSocketHub
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(galleryService *services.GalleryService, maintenanceService *services.MaintenanceService, hub *services.WebSocketHub) *AdminHandler {
	return &AdminHandler{
		galleryService:     galleryService,
		maintenanceService: maintenanceService,
		hub:                hub,
	}
}

// DeleteGallery removes the whole gallery. Host only.
// @Summary Delete gallery
// @Tags admin
// @Param galleryID path string true "Gallery ID"
// @Success 204 "Deleted"
// @Failure 403 {object} models.ErrorResponse "Host access required"
// @Security SessionToken
// @Router /api/galleries/{galleryID} [delete]
func (h *AdminHandler) DeleteGallery(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())

	if err := h.galleryService.DeleteGallery(r.Context(), gallery.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete gallery.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MaintenanceStatus returns the background maintenance state. Host only.
// @Summary Get maintenance status
// @Tags admin
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Success 200 {object} services.MaintenanceStatus
// @Security SessionToken
// @Router /api/galleries/{galleryID}/admin/maintenance [get]
func (h *AdminHandler) MaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.maintenanceService.GetStatus())
}

// RunMaintenance triggers an immediate maintenance pass. Host only.
// @Summary Run maintenance now
// @Tags admin
// @Param galleryID path string true "Gallery ID"
// @Success 202 "Maintenance scheduled"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/admin/maintenance [post]
func (h *AdminHandler) RunMaintenance(w http.ResponseWriter, r *http.Request) {
	h.maintenanceService.RunNow()
	w.WriteHeader(http.StatusAccepted)
}

// Stats returns live connection counts for the gallery. Host only.
// @Summary Get gallery stats
// @Tags admin
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Success 200 {object} map[string]int
// @Security SessionToken
// @Router /api/galleries/{galleryID}/admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())

	respondJSON(w, http.StatusOK, map[string]int{
		"connectedClients": h.hub.GetTopicSubscriberCount(services.GalleryTopic(gallery.ID)),
	})
}

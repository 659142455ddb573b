package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/guestlens/server/internal/middleware"
	"github.com/guestlens/server/internal/models"
	"github.com/guestlens/server/internal/observability"
	"github.com/guestlens/server/internal/services"
)

// GalleryHandler handles gallery lifecycle and access endpoints
type GalleryHandler struct {
	galleryService *services.GalleryService
	pushService    *services.PushService
	metrics        *observability.BusinessMetrics
}

// NewGalleryHandler creates a new GalleryHandler
func NewGalleryHandler(galleryService *services.GalleryService, pushService *services.PushService, metrics *observability.BusinessMetrics) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
		pushService:    pushService,
		metrics:        metrics,
	}
}

// Create creates a new gallery and a host session for the creator
// @Summary Create gallery
// @Description Creates a gallery and returns it together with a host session token
// @Tags galleries
// @Accept json
// @Produce json
// @Param request body models.CreateGalleryRequest true "Gallery details"
// @Success 201 {object} map[string]interface{} "Created gallery and session"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Router /api/galleries [post]
func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGalleryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	gallery, session, err := h.galleryService.CreateGallery(r.Context(), &req, clientIP(r), r.UserAgent())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.setSessionCookie(w, session)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"gallery": gallery,
		"session": models.GalleryAuthResponse{
			SessionToken: session.ID,
			Role:         string(session.Role),
			ExpiresAt:    session.ExpiresAt,
		},
	})
}

// GetBySlug resolves a gallery by its public slug
// @Summary Get gallery by slug
// @Tags galleries
// @Produce json
// @Param slug path string true "Gallery slug"
// @Success 200 {object} models.Gallery
// @Failure 404 {object} models.ErrorResponse "Gallery not found"
// @Router /api/galleries/by-slug/{slug} [get]
func (h *GalleryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	deviceID := r.URL.Query().Get("deviceId")

	gallery, err := h.galleryService.GetGalleryBySlug(r.Context(), slug, deviceID)
	if err != nil {
		if err == models.ErrGalleryNotFound {
			respondError(w, http.StatusNotFound, "Gallery not found.")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}

	respondJSON(w, http.StatusOK, gallery)
}

// GetBySecretToken resolves a gallery by its secret share link
// @Summary Get gallery by secret token
// @Tags galleries
// @Produce json
// @Param token path string true "Secret token"
// @Success 200 {object} models.Gallery
// @Failure 404 {object} models.ErrorResponse "Gallery not found"
// @Router /api/galleries/by-token/{token} [get]
func (h *GalleryHandler) GetBySecretToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	deviceID := r.URL.Query().Get("deviceId")

	gallery, err := h.galleryService.GetGalleryBySecretToken(r.Context(), token, deviceID)
	if err != nil {
		if err == models.ErrGalleryNotFound {
			respondError(w, http.StatusNotFound, "Gallery not found.")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error.")
		return
	}

	respondJSON(w, http.StatusOK, gallery)
}

// Authenticate verifies gallery access and issues a session token
// @Summary Authenticate against a gallery
// @Description Issues a session token. Password-protected galleries require the password; the host device authenticates without one.
// @Tags galleries
// @Accept json
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param request body models.GalleryAuthRequest true "Credentials"
// @Success 200 {object} models.GalleryAuthResponse
// @Failure 401 {object} models.ErrorResponse "Incorrect password"
// @Failure 404 {object} models.ErrorResponse "Gallery not found"
// @Router /api/galleries/{galleryID}/auth [post]
func (h *GalleryHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	galleryID := chi.URLParam(r, "galleryID")

	var req models.GalleryAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	session, err := h.galleryService.Authenticate(r.Context(), galleryID, &req, clientIP(r), r.UserAgent())
	if h.metrics != nil {
		h.metrics.RecordAuthAttempt(r.Context(), galleryID, err == nil)
	}
	if err != nil {
		switch err {
		case models.ErrGalleryNotFound:
			respondError(w, http.StatusNotFound, "Gallery not found.")
		case models.ErrGalleryPasswordIncorrect:
			respondError(w, http.StatusUnauthorized, "Incorrect gallery password.")
		default:
			respondError(w, http.StatusInternalServerError, "Authentication failed.")
		}
		return
	}

	h.setSessionCookie(w, session)
	respondJSON(w, http.StatusOK, models.GalleryAuthResponse{
		SessionToken: session.ID,
		Role:         string(session.Role),
		ExpiresAt:    session.ExpiresAt,
	})
}

// Get returns the gallery resolved by the access middleware
// @Summary Get gallery
// @Tags galleries
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Success 200 {object} models.Gallery
// @Security SessionToken
// @Router /api/galleries/{galleryID} [get]
func (h *GalleryHandler) Get(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())
	session := middleware.GetSessionFromContext(r.Context())
	gallery.IsHost = session != nil && session.IsHost()
	respondJSON(w, http.StatusOK, gallery)
}

// Update applies host edits to the gallery
// @Summary Update gallery
// @Tags galleries
// @Accept json
// @Produce json
// @Param galleryID path string true "Gallery ID"
// @Param request body models.UpdateGalleryRequest true "Fields to update"
// @Success 200 {object} models.Gallery
// @Failure 403 {object} models.ErrorResponse "Host access required"
// @Security SessionToken
// @Router /api/galleries/{galleryID} [patch]
func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())

	var req models.UpdateGalleryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	updated, err := h.galleryService.UpdateGallery(r.Context(), gallery.ID, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// Logout deletes the caller's session
// @Summary Log out of a gallery
// @Tags galleries
// @Success 204 "Session deleted"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/logout [post]
func (h *GalleryHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session != nil {
		h.galleryService.Logout(r.Context(), session.ID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

// RegisterPushToken records an FCM token for upload notifications
// @Summary Register a push token
// @Tags galleries
// @Accept json
// @Success 204 "Token registered"
// @Security SessionToken
// @Router /api/galleries/{galleryID}/push-token [post]
func (h *GalleryHandler) RegisterPushToken(w http.ResponseWriter, r *http.Request) {
	if h.pushService == nil {
		respondError(w, http.StatusServiceUnavailable, "Push notifications are not configured.")
		return
	}

	gallery := middleware.GetGalleryFromContext(r.Context())
	session := middleware.GetSessionFromContext(r.Context())

	var req struct {
		FCMToken string `json:"fcmToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FCMToken == "" {
		respondError(w, http.StatusBadRequest, "FCM token is required.")
		return
	}

	h.pushService.RegisterToken(gallery.ID, session.DeviceID, req.FCMToken)
	w.WriteHeader(http.StatusNoContent)
}

func (h *GalleryHandler) setSessionCookie(w http.ResponseWriter, session *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

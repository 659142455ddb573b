package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/guestlens/server/internal/models"
	"github.com/guestlens/server/internal/repository"
)

type contextKey string

const (
	SessionContextKey contextKey = "session"
	GalleryContextKey contextKey = "gallery"
)

// SessionTokenHeader carries the gallery session token; a session_token
// cookie works too so media URLs can be used directly in img tags.
const SessionTokenHeader = "X-Session-Token"

// GetSessionFromContext retrieves the gallery session from request context
func GetSessionFromContext(ctx context.Context) *models.Session {
	if session, ok := ctx.Value(SessionContextKey).(*models.Session); ok {
		return session
	}
	return nil
}

// GetGalleryFromContext retrieves the resolved gallery from request context
func GetGalleryFromContext(ctx context.Context) *models.Gallery {
	if gallery, ok := ctx.Value(GalleryContextKey).(*models.Gallery); ok {
		return gallery
	}
	return nil
}

// SessionToken extracts the session token from header or cookie
func SessionToken(r *http.Request) string {
	if token := r.Header.Get(SessionTokenHeader); token != "" {
		return token
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie("session_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	// WebSocket clients can't set headers from the browser
	return r.URL.Query().Get("token")
}

// GalleryAccess resolves the {galleryID} route parameter, validates the
// caller's session against that gallery, and puts both on the context.
// Expired or foreign sessions are rejected.
func GalleryAccess(galleryRepo repository.GalleryRepo, sessionRepo repository.SessionRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			galleryID := chi.URLParam(r, "galleryID")
			if galleryID == "" {
				unauthorized(w, "Gallery ID is required.")
				return
			}

			gallery, err := galleryRepo.GetByID(r.Context(), galleryID)
			if err != nil {
				internalError(w)
				return
			}
			if gallery == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"error": "Gallery not found."})
				return
			}

			session, err := resolveSession(r, sessionRepo)
			if err != nil {
				internalError(w)
				return
			}
			if session == nil || session.GalleryID != gallery.ID {
				unauthorized(w, "A valid gallery session is required.")
				return
			}

			// Update last activity (async, don't wait)
			go sessionRepo.Touch(context.Background(), session.ID)

			ctx := context.WithValue(r.Context(), SessionContextKey, session)
			ctx = context.WithValue(ctx, GalleryContextKey, gallery)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// HostOnly requires the session on the context to carry the host role.
// Must run after GalleryAccess.
func HostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := GetSessionFromContext(r.Context())
		if session == nil || !session.IsHost() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "Host access required."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func resolveSession(r *http.Request, sessionRepo repository.SessionRepo) (*models.Session, error) {
	token := SessionToken(r)
	if token == "" {
		return nil, nil
	}

	session, err := sessionRepo.GetByID(r.Context(), token)
	if err != nil {
		return nil, err
	}
	if session == nil || session.IsExpired() {
		return nil, nil
	}
	return session, nil
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func internalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "Internal server error."})
}

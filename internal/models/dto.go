package models

import "time"

// UploadResult is returned after uploading a media item
type UploadResult struct {
	ID          string    `json:"id"`
	StoredPath  string    `json:"storedPath,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
	IsDuplicate bool      `json:"isDuplicate"`
}

// NewUploadResult creates a result for a newly uploaded item
func NewUploadResult(id, storedPath string, uploadedAt time.Time) UploadResult {
	return UploadResult{
		ID:         id,
		StoredPath: storedPath,
		UploadedAt: uploadedAt,
	}
}

// DuplicateUploadResult creates a result for a duplicate upload
func DuplicateUploadResult(id, storedPath string, uploadedAt time.Time) UploadResult {
	return UploadResult{
		ID:          id,
		StoredPath:  storedPath,
		UploadedAt:  uploadedAt,
		IsDuplicate: true,
	}
}

// MediaResponse is a single media item in API responses
type MediaResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	URL        string     `json:"url,omitempty"`
	ThumbURL   string     `json:"thumbUrl,omitempty"`
	Type       MediaType  `json:"type"`
	NoteText   string     `json:"noteText,omitempty"`
	UploadedBy string     `json:"uploadedBy"`
	UploadedAt time.Time  `json:"uploadedAt"`
	CapturedAt *time.Time `json:"capturedAt,omitempty"`
	DeviceID   string     `json:"deviceId"`
	Tags       []MediaTag `json:"tags,omitempty"`
	Width      *int       `json:"width,omitempty"`
	Height     *int       `json:"height,omitempty"`
}

// FeedPageResponse is one page of a gallery's media feed
type FeedPageResponse struct {
	Items      []MediaResponse `json:"items"`
	NextCursor string          `json:"nextCursor,omitempty"`
	HasMore    bool            `json:"hasMore"`
}

// CreateGalleryRequest is the request body for creating a gallery
type CreateGalleryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	EventDate   *string `json:"eventDate,omitempty"`
	Theme       string  `json:"theme,omitempty"`
	Visibility  string  `json:"visibility,omitempty"`
	Password    string  `json:"password,omitempty"`
	DeviceID    string  `json:"deviceId"`
}

// UpdateGalleryRequest is the request body for host edits to a gallery
type UpdateGalleryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Theme       *string `json:"theme,omitempty"`
	Visibility  *string `json:"visibility,omitempty"`
	Password    *string `json:"password,omitempty"`
}

// GalleryAuthRequest is the request body for password-gated gallery access
type GalleryAuthRequest struct {
	Password string `json:"password"`
	DeviceID string `json:"deviceId"`
}

// GalleryAuthResponse is returned after successful gallery authentication
type GalleryAuthResponse struct {
	SessionToken string    `json:"sessionToken"`
	Role         string    `json:"role"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// CreateCommentRequest is the request body for posting a comment
type CreateCommentRequest struct {
	Author   string `json:"author"`
	DeviceID string `json:"deviceId"`
	Text     string `json:"text"`
}

// CreateNoteRequest is the request body for posting a text note
type CreateNoteRequest struct {
	NoteText   string     `json:"noteText"`
	UploadedBy string     `json:"uploadedBy"`
	DeviceID   string     `json:"deviceId"`
	Tags       []MediaTag `json:"tags,omitempty"`
}

// ToggleLikeRequest is the request body for toggling a like
type ToggleLikeRequest struct {
	DeviceID string `json:"deviceId"`
}

// UpsertProfileRequest is the request body for creating or updating a profile
type UpsertProfileRequest struct {
	DeviceID    string  `json:"deviceId"`
	UserName    string  `json:"userName"`
	DisplayName *string `json:"displayName,omitempty"`
}

// NormalizePositionRequest carries a pointer offset and the media element's
// bounding box
type NormalizePositionRequest struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// NormalizePositionResponse is the clamped percentage position
type NormalizePositionResponse struct {
	Position Position `json:"position"`
}

// AddTagRequest attaches a tag to an existing media item
type AddTagRequest struct {
	Kind     string            `json:"type"`
	Position Position          `json:"position"`
	Person   *PersonTagPayload `json:"person,omitempty"`
	Place    *PlaceTagPayload  `json:"place,omitempty"`
	Text     *TextTagPayload   `json:"text,omitempty"`
}

// HealthResponse is returned by health check
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is returned on errors
type ErrorResponse struct {
	Error string `json:"error"`
}

// MediaToResponse converts a MediaItem to MediaResponse. URLs are built from
// the serving routes rather than stored paths.
func MediaToResponse(m *MediaItem) MediaResponse {
	resp := MediaResponse{
		ID:         m.ID,
		Name:       m.Name,
		Type:       m.Type,
		NoteText:   m.NoteText,
		UploadedBy: m.UploadedBy,
		UploadedAt: m.UploadedAt,
		CapturedAt: m.CapturedAt,
		DeviceID:   m.DeviceID,
		Tags:       m.Tags,
		Width:      m.Width,
		Height:     m.Height,
	}
	if m.Type != MediaNote {
		resp.URL = "/api/galleries/" + m.GalleryID + "/media/" + m.ID + "/file"
		resp.ThumbURL = "/api/galleries/" + m.GalleryID + "/media/" + m.ID + "/thumbnail"
	}
	return resp
}

package models

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// Cursor is an opaque pointer to the last-seen media row, used to request the
// next page of a time-ordered feed. It encodes a keyset over
// (uploaded_at, id); the ID breaks ties between items sharing a timestamp.
type Cursor struct {
	UploadedAt time.Time `json:"uploadedAt"`
	ID         string    `json:"id"`
}

// CursorFor returns the cursor pointing just past the given item
func CursorFor(item *MediaItem) Cursor {
	return Cursor{UploadedAt: item.UploadedAt, ID: item.ID}
}

// Encode serializes the cursor into an opaque token
func (c Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeCursor parses an opaque token back into a cursor
func DecodeCursor(token string) (Cursor, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	if c.ID == "" || c.UploadedAt.IsZero() {
		return Cursor{}, ErrInvalidCursor
	}
	return c, nil
}

// IsZero reports whether the cursor is unset (first page)
func (c Cursor) IsZero() bool {
	return c.ID == "" && c.UploadedAt.IsZero()
}

// ErrInvalidCursor is returned for malformed cursor tokens
var ErrInvalidCursor = MediaError{"invalid pagination cursor"}

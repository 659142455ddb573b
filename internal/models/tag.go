package models

import (
	"strings"

	"github.com/google/uuid"
)

// TagKind discriminates the media tag variants
type TagKind string

const (
	TagPerson TagKind = "person"
	TagPlace  TagKind = "place"
	TagText   TagKind = "text"
)

// IsValidTagKind checks if a tag kind value is valid
func IsValidTagKind(k string) bool {
	switch TagKind(k) {
	case TagPerson, TagPlace, TagText:
		return true
	}
	return false
}

// Position is a percentage offset within the rendered media's bounding box,
// top-left origin. Both axes are kept inside [5,95] so tag markers never
// render at the very edge.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const (
	positionMin = 5.0
	positionMax = 95.0
)

// Clamp returns the position forced into [5,95] on both axes
func (p Position) Clamp() Position {
	return Position{
		X: clampCoord(p.X),
		Y: clampCoord(p.Y),
	}
}

func clampCoord(v float64) float64 {
	if v < positionMin {
		return positionMin
	}
	if v > positionMax {
		return positionMax
	}
	return v
}

// NormalizePosition converts a pointer offset inside a rendered element into a
// clamped percentage position. Width and height are the element's bounding box.
func NormalizePosition(offsetX, offsetY, width, height float64) (Position, error) {
	if width <= 0 || height <= 0 {
		return Position{}, ErrInvalidBounds
	}
	return Position{
		X: (offsetX / width) * 100,
		Y: (offsetY / height) * 100,
	}.Clamp(), nil
}

// Coordinates is an optional geocoded point for place tags
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MediaTag is a position-anchored annotation on a photo or video. Kind selects
// which variant fields are populated; the rest stay zero. Tags are immutable
// value objects: editing is remove-then-recreate at the call site.
type MediaTag struct {
	ID       string   `json:"id"`
	Kind     TagKind  `json:"type"`
	Position Position `json:"position"`

	// person variant
	UserName    string `json:"userName,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	DeviceID    string `json:"deviceId,omitempty"`

	// place variant
	Name        string       `json:"name,omitempty"`
	Address     string       `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`

	// text variant
	Text     string `json:"text,omitempty"`
	FontSize int    `json:"fontSize,omitempty"`
	Color    string `json:"color,omitempty"`
}

// PersonTagPayload carries the person variant fields
type PersonTagPayload struct {
	UserName    string `json:"userName"`
	DisplayName string `json:"displayName,omitempty"`
	DeviceID    string `json:"deviceId"`
}

// PlaceTagPayload carries the place variant fields
type PlaceTagPayload struct {
	Name        string       `json:"name"`
	Address     string       `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// TextTagPayload carries the text variant fields
type TextTagPayload struct {
	Text     string `json:"text"`
	FontSize int    `json:"fontSize,omitempty"`
	Color    string `json:"color,omitempty"`
}

// NewPersonTag creates a person tag with a fresh ID and clamped position
func NewPersonTag(pos Position, payload PersonTagPayload) (MediaTag, error) {
	if strings.TrimSpace(payload.UserName) == "" {
		return MediaTag{}, ErrTagUserNameRequired
	}
	if strings.TrimSpace(payload.DeviceID) == "" {
		return MediaTag{}, ErrTagDeviceRequired
	}
	return MediaTag{
		ID:          uuid.New().String(),
		Kind:        TagPerson,
		Position:    pos.Clamp(),
		UserName:    strings.TrimSpace(payload.UserName),
		DisplayName: strings.TrimSpace(payload.DisplayName),
		DeviceID:    payload.DeviceID,
	}, nil
}

// NewPlaceTag creates a place tag with a fresh ID and clamped position
func NewPlaceTag(pos Position, payload PlaceTagPayload) (MediaTag, error) {
	if strings.TrimSpace(payload.Name) == "" {
		return MediaTag{}, ErrTagNameRequired
	}
	return MediaTag{
		ID:          uuid.New().String(),
		Kind:        TagPlace,
		Position:    pos.Clamp(),
		Name:        strings.TrimSpace(payload.Name),
		Address:     strings.TrimSpace(payload.Address),
		Coordinates: payload.Coordinates,
	}, nil
}

// NewTextTag creates a text tag with a fresh ID and clamped position
func NewTextTag(pos Position, payload TextTagPayload) (MediaTag, error) {
	if strings.TrimSpace(payload.Text) == "" {
		return MediaTag{}, ErrTagTextRequired
	}
	return MediaTag{
		ID:       uuid.New().String(),
		Kind:     TagText,
		Position: pos.Clamp(),
		Text:     payload.Text,
		FontSize: payload.FontSize,
		Color:    payload.Color,
	}, nil
}

// RemoveTag returns the list with the matching ID filtered out.
// Removing an absent ID returns the list unchanged.
func RemoveTag(tags []MediaTag, id string) []MediaTag {
	result := make([]MediaTag, 0, len(tags))
	for _, t := range tags {
		if t.ID != id {
			result = append(result, t)
		}
	}
	return result
}

// Label returns the renderable label for a tag. Every variant has one by
// construction, so there is no error case.
func (t MediaTag) Label() string {
	switch t.Kind {
	case TagPerson:
		if t.DisplayName != "" {
			return t.DisplayName
		}
		return t.UserName
	case TagPlace:
		return t.Name
	default:
		return t.Text
	}
}

// Tag errors
type TagError struct {
	Message string
}

func (e TagError) Error() string {
	return e.Message
}

var (
	ErrInvalidBounds       = TagError{"element bounds must be positive"}
	ErrTagUserNameRequired = TagError{"person tag requires a user name"}
	ErrTagDeviceRequired   = TagError{"person tag requires a device ID"}
	ErrTagNameRequired     = TagError{"place tag requires a name"}
	ErrTagTextRequired     = TagError{"text tag requires text"}
	ErrInvalidTagKind      = TagError{"invalid tag kind"}
)

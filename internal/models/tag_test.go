package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionClamp(t *testing.T) {
	t.Run("leaves in-range positions unchanged", func(t *testing.T) {
		pos := Position{X: 50, Y: 42.5}
		assert.Equal(t, pos, pos.Clamp())
	})

	t.Run("clamps below the minimum", func(t *testing.T) {
		pos := Position{X: 0, Y: -10}.Clamp()
		assert.Equal(t, 5.0, pos.X)
		assert.Equal(t, 5.0, pos.Y)
	})

	t.Run("clamps above the maximum", func(t *testing.T) {
		pos := Position{X: 100, Y: 250}.Clamp()
		assert.Equal(t, 95.0, pos.X)
		assert.Equal(t, 95.0, pos.Y)
	})

	t.Run("keeps boundary values", func(t *testing.T) {
		pos := Position{X: 5, Y: 95}.Clamp()
		assert.Equal(t, 5.0, pos.X)
		assert.Equal(t, 95.0, pos.Y)
	})
}

func TestNormalizePosition(t *testing.T) {
	t.Run("converts center offset to 50 percent", func(t *testing.T) {
		pos, err := NormalizePosition(200, 150, 400, 300)
		require.NoError(t, err)
		assert.Equal(t, 50.0, pos.X)
		assert.Equal(t, 50.0, pos.Y)
	})

	t.Run("clamps offsets near the edge", func(t *testing.T) {
		pos, err := NormalizePosition(399, 1, 400, 300)
		require.NoError(t, err)
		assert.Equal(t, 95.0, pos.X)
		assert.Equal(t, 5.0, pos.Y)
	})

	t.Run("clamps offsets outside the element", func(t *testing.T) {
		pos, err := NormalizePosition(-50, 600, 400, 300)
		require.NoError(t, err)
		assert.Equal(t, 5.0, pos.X)
		assert.Equal(t, 95.0, pos.Y)
	})

	t.Run("rejects zero width", func(t *testing.T) {
		_, err := NormalizePosition(10, 10, 0, 300)
		assert.ErrorIs(t, err, ErrInvalidBounds)
	})

	t.Run("rejects negative height", func(t *testing.T) {
		_, err := NormalizePosition(10, 10, 400, -1)
		assert.ErrorIs(t, err, ErrInvalidBounds)
	})
}

func TestNewPersonTag(t *testing.T) {
	t.Run("creates tag with clamped position", func(t *testing.T) {
		tag, err := NewPersonTag(Position{X: 120, Y: 2}, PersonTagPayload{
			UserName: "anna",
			DeviceID: "device-1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, tag.ID)
		assert.Equal(t, TagPerson, tag.Kind)
		assert.Equal(t, 95.0, tag.Position.X)
		assert.Equal(t, 5.0, tag.Position.Y)
		assert.Equal(t, "anna", tag.UserName)
	})

	t.Run("rejects missing user name", func(t *testing.T) {
		_, err := NewPersonTag(Position{X: 50, Y: 50}, PersonTagPayload{DeviceID: "device-1"})
		assert.ErrorIs(t, err, ErrTagUserNameRequired)
	})

	t.Run("rejects missing device ID", func(t *testing.T) {
		_, err := NewPersonTag(Position{X: 50, Y: 50}, PersonTagPayload{UserName: "anna"})
		assert.ErrorIs(t, err, ErrTagDeviceRequired)
	})
}

func TestNewPlaceTag(t *testing.T) {
	t.Run("creates tag with coordinates", func(t *testing.T) {
		tag, err := NewPlaceTag(Position{X: 30, Y: 40}, PlaceTagPayload{
			Name:        "Stadthalle",
			Address:     "Hauptstrasse 1",
			Coordinates: &Coordinates{Lat: 48.2, Lng: 16.4},
		})

		require.NoError(t, err)
		assert.Equal(t, TagPlace, tag.Kind)
		assert.Equal(t, "Stadthalle", tag.Name)
		require.NotNil(t, tag.Coordinates)
		assert.Equal(t, 48.2, tag.Coordinates.Lat)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		_, err := NewPlaceTag(Position{X: 30, Y: 40}, PlaceTagPayload{})
		assert.ErrorIs(t, err, ErrTagNameRequired)
	})
}

func TestNewTextTag(t *testing.T) {
	t.Run("creates tag with styling", func(t *testing.T) {
		tag, err := NewTextTag(Position{X: 10, Y: 10}, TextTagPayload{
			Text:     "Best day ever",
			FontSize: 18,
			Color:    "#ffffff",
		})

		require.NoError(t, err)
		assert.Equal(t, TagText, tag.Kind)
		assert.Equal(t, "Best day ever", tag.Text)
		assert.Equal(t, 18, tag.FontSize)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		_, err := NewTextTag(Position{X: 10, Y: 10}, TextTagPayload{Text: "   "})
		assert.ErrorIs(t, err, ErrTagTextRequired)
	})
}

func TestRemoveTag(t *testing.T) {
	mustPerson := func(name string) MediaTag {
		tag, err := NewPersonTag(Position{X: 50, Y: 50}, PersonTagPayload{UserName: name, DeviceID: "d"})
		if err != nil {
			t.Fatal(err)
		}
		return tag
	}

	t.Run("removes the matching tag", func(t *testing.T) {
		a := mustPerson("a")
		b := mustPerson("b")
		tags := []MediaTag{a, b}

		result := RemoveTag(tags, a.ID)

		require.Len(t, result, 1)
		assert.Equal(t, b.ID, result[0].ID)
	})

	t.Run("removing an absent ID changes nothing", func(t *testing.T) {
		a := mustPerson("a")
		tags := []MediaTag{a}

		result := RemoveTag(tags, "does-not-exist")

		assert.Equal(t, tags, result)
	})

	t.Run("removing twice is idempotent", func(t *testing.T) {
		a := mustPerson("a")
		b := mustPerson("b")
		tags := RemoveTag([]MediaTag{a, b}, a.ID)
		tags = RemoveTag(tags, a.ID)

		require.Len(t, tags, 1)
		assert.Equal(t, b.ID, tags[0].ID)
	})

	t.Run("handles empty list", func(t *testing.T) {
		assert.Empty(t, RemoveTag(nil, "any"))
	})
}

func TestTagLabel(t *testing.T) {
	t.Run("person prefers display name", func(t *testing.T) {
		tag, _ := NewPersonTag(Position{X: 50, Y: 50}, PersonTagPayload{
			UserName:    "anna",
			DisplayName: "Anna B.",
			DeviceID:    "d",
		})
		assert.Equal(t, "Anna B.", tag.Label())
	})

	t.Run("person falls back to user name", func(t *testing.T) {
		tag, _ := NewPersonTag(Position{X: 50, Y: 50}, PersonTagPayload{UserName: "anna", DeviceID: "d"})
		assert.Equal(t, "anna", tag.Label())
	})

	t.Run("place uses name", func(t *testing.T) {
		tag, _ := NewPlaceTag(Position{X: 50, Y: 50}, PlaceTagPayload{Name: "Stadthalle"})
		assert.Equal(t, "Stadthalle", tag.Label())
	})

	t.Run("text uses text", func(t *testing.T) {
		tag, _ := NewTextTag(Position{X: 50, Y: 50}, TextTagPayload{Text: "hello"})
		assert.Equal(t, "hello", tag.Label())
	})
}

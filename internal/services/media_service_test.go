package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guestlens/server/internal/models"
)

func TestApplyEXIFMetadata(t *testing.T) {
	taken := time.Date(2026, 6, 14, 18, 30, 0, 0, time.UTC)
	lat, lng := 48.8584, 2.2945

	t.Run("copies capture time onto the item", func(t *testing.T) {
		item := &models.MediaItem{}

		applyEXIFMetadata(item, &EXIFData{Orientation: 1, DateTaken: &taken})

		require.NotNil(t, item.CapturedAt)
		assert.Equal(t, taken, *item.CapturedAt)
	})

	t.Run("missing capture time leaves the item untouched", func(t *testing.T) {
		item := &models.MediaItem{}

		applyEXIFMetadata(item, &EXIFData{Orientation: 1})

		assert.Nil(t, item.CapturedAt)
	})

	t.Run("backfills GPS into place tags without coordinates", func(t *testing.T) {
		place, err := models.NewPlaceTag(models.Position{X: 50, Y: 50}, models.PlaceTagPayload{Name: "Eiffel Tower"})
		require.NoError(t, err)
		item := &models.MediaItem{Tags: []models.MediaTag{place}}

		applyEXIFMetadata(item, &EXIFData{Orientation: 1, Latitude: &lat, Longitude: &lng})

		require.NotNil(t, item.Tags[0].Coordinates)
		assert.Equal(t, lat, item.Tags[0].Coordinates.Lat)
		assert.Equal(t, lng, item.Tags[0].Coordinates.Lng)
	})

	t.Run("keeps coordinates the tagger supplied", func(t *testing.T) {
		supplied := &models.Coordinates{Lat: 1, Lng: 2}
		place, err := models.NewPlaceTag(models.Position{X: 50, Y: 50}, models.PlaceTagPayload{Name: "Venue", Coordinates: supplied})
		require.NoError(t, err)
		item := &models.MediaItem{Tags: []models.MediaTag{place}}

		applyEXIFMetadata(item, &EXIFData{Orientation: 1, Latitude: &lat, Longitude: &lng})

		assert.Equal(t, supplied, item.Tags[0].Coordinates)
	})

	t.Run("ignores person and text tags", func(t *testing.T) {
		person, err := models.NewPersonTag(models.Position{X: 50, Y: 50}, models.PersonTagPayload{UserName: "anna", DeviceID: "d1"})
		require.NoError(t, err)
		text, err := models.NewTextTag(models.Position{X: 50, Y: 50}, models.TextTagPayload{Text: "cheers"})
		require.NoError(t, err)
		item := &models.MediaItem{Tags: []models.MediaTag{person, text}}

		applyEXIFMetadata(item, &EXIFData{Orientation: 1, Latitude: &lat, Longitude: &lng})

		assert.Nil(t, item.Tags[0].Coordinates)
		assert.Nil(t, item.Tags[1].Coordinates)
	})

	t.Run("missing GPS leaves place tags untouched", func(t *testing.T) {
		place, err := models.NewPlaceTag(models.Position{X: 50, Y: 50}, models.PlaceTagPayload{Name: "Venue"})
		require.NoError(t, err)
		item := &models.MediaItem{Tags: []models.MediaTag{place}}

		applyEXIFMetadata(item, &EXIFData{Orientation: 1, Latitude: &lat})

		assert.Nil(t, item.Tags[0].Coordinates)
	})
}

func TestExtractFromBytes(t *testing.T) {
	svc := NewEXIFService()

	t.Run("non-EXIF bytes fall back to defaults", func(t *testing.T) {
		data, err := svc.ExtractFromBytes([]byte("not an image"))

		require.NoError(t, err)
		assert.Equal(t, 1, data.Orientation)
		assert.Nil(t, data.DateTaken)
		assert.Nil(t, data.Latitude)
		assert.Nil(t, data.Longitude)
	})
}

package services

import (
	"bytes"
	"io"
	"math"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// EXIFData contains the metadata this server cares about: capture time for
// feed ordering, orientation for thumbnails, and GPS for place tag defaults.
type EXIFData struct {
	Orientation int
	DateTaken   *time.Time
	Latitude    *float64
	Longitude   *float64
}

// EXIFService extracts EXIF metadata from images
type EXIFService struct{}

// NewEXIFService creates a new EXIFService
func NewEXIFService() *EXIFService {
	return &EXIFService{}
}

// ExtractFromBytes extracts EXIF data from image bytes
func (s *EXIFService) ExtractFromBytes(data []byte) (*EXIFData, error) {
	return s.ExtractFromReader(bytes.NewReader(data))
}

// ExtractFromReader extracts EXIF data from an io.Reader
func (s *EXIFService) ExtractFromReader(r io.Reader) (*EXIFData, error) {
	x, err := exif.Decode(r)
	if err != nil {
		// No EXIF data or unsupported format - return defaults
		return &EXIFData{Orientation: 1}, nil
	}

	result := &EXIFData{Orientation: 1}

	if tag, err := x.Get(exif.Orientation); err == nil {
		if val, err := tag.Int(0); err == nil && val >= 1 && val <= 8 {
			result.Orientation = val
		}
	}

	if dt, err := x.DateTime(); err == nil {
		utc := dt.UTC()
		result.DateTaken = &utc
	}

	if lat, lng, err := x.LatLong(); err == nil {
		if !math.IsNaN(lat) && !math.IsNaN(lng) {
			result.Latitude = &lat
			result.Longitude = &lng
		}
	}

	return result, nil
}

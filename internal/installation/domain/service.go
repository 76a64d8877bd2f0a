package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Install(ctx context.Context, req InstallRequest) (*InstallResponse, error)
}

// GPS is the coordinate pair captured by the field device.
type GPS struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// InstallRequest accepts either an explicit product identifier or the raw
// scanned code; when both are present the explicit identifier wins.
type InstallRequest struct {
	ProductID     string `json:"productId"`
	Scan          string `json:"scan"`
	TrackLocation string `json:"trackLocation"`
	GPSLocation   *GPS   `json:"gpsLocation"`
	InstalledBy   string `json:"installedBy"`
	Notes         string `json:"notes"`
}

type Response struct {
	InstallID     string    `json:"installId"`
	ProductID     string    `json:"productId"`
	TrackLocation string    `json:"trackLocation"`
	GPSLocation   GPS       `json:"gpsLocation"`
	InstalledBy   string    `json:"installedBy"`
	Notes         string    `json:"notes,omitempty"`
	InstalledAt   time.Time `json:"installedAt"`
}

type InstallResponse struct {
	Installation  Response `json:"installation"`
	ProductStatus string   `json:"productStatus"`
}

var (
	ErrInvalidLocation    = errors.New("invalid_track_location")
	ErrInvalidCoordinates = errors.New("invalid_coordinates")
)

func ToResponse(r *InstallationRecord) Response {
	return Response{
		InstallID:     r.InstallID,
		ProductID:     r.ProductID,
		TrackLocation: r.TrackLocation,
		GPSLocation:   GPS{Lat: r.Latitude, Lng: r.Longitude},
		InstalledBy:   r.InstalledBy,
		Notes:         r.Notes,
		InstalledAt:   r.InstalledAt,
	}
}

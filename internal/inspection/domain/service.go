package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error)
	Predictions(ctx context.Context, productID string) ([]string, error)
}

// GPS is the coordinate pair captured by the field device.
type GPS struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Results carries the raw field readings. Voltage and vibration arrive as
// free text from handheld devices and are parsed leniently.
type Results struct {
	Condition string `json:"condition"`
	Voltage   string `json:"voltage"`
	Vibration string `json:"vibration"`
}

// SubmitRequest accepts either an explicit product identifier or the raw
// scanned code. Photos may be durable URLs (stored as-is) or base64 image
// data (uploaded best-effort, dropped on failure).
type SubmitRequest struct {
	ProductID      string   `json:"productId"`
	Scan           string   `json:"scan"`
	Inspector      string   `json:"inspector"`
	Results        Results  `json:"results"`
	Failure        bool     `json:"failure"`
	Recommendation string   `json:"recommendation"`
	GPSLocation    *GPS     `json:"gpsLocation"`
	Photos         []string `json:"photos"`
}

type Response struct {
	InspectionID   string   `json:"inspectionId"`
	ProductID      string   `json:"productId"`
	Inspector      string   `json:"inspector"`
	Condition      string   `json:"condition"`
	VoltageReading float64  `json:"voltageReading"`
	VibrationLevel float64  `json:"vibrationLevel"`
	Failure        bool     `json:"failure"`
	Verdict        string   `json:"verdict"`
	Recommendation string   `json:"recommendation"`
	GPSLocation    GPS      `json:"gpsLocation"`
	Photos         []string `json:"photos"`
	// Date mirrors the field the mobile clients have always sorted on.
	Date time.Time `json:"date"`
}

type ProductSummary struct {
	ProductID     string `json:"productId"`
	CurrentStatus string `json:"currentStatus"`
}

type SubmitResponse struct {
	Inspection Response       `json:"inspection"`
	Product    ProductSummary `json:"product"`
}

var ErrInvalidCondition = errors.New("invalid_condition")

func ToResponse(r *InspectionRecord) Response {
	return Response{
		InspectionID:   r.InspectionID,
		ProductID:      r.ProductID,
		Inspector:      r.Inspector,
		Condition:      r.Condition,
		VoltageReading: r.VoltageReading,
		VibrationLevel: r.VibrationLevel,
		Failure:        r.Failure,
		Verdict:        r.Verdict,
		Recommendation: r.Recommendation,
		GPSLocation:    GPS{Lat: r.Latitude, Lng: r.Longitude},
		Photos:         []string(r.Photos),
		Date:           r.InspectedAt,
	}
}

package recommend

import (
	"context"
	"errors"
)

// Input mirrors the payload the analysis model expects. PastInspections is
// opaque to this package; callers pass their own record shapes.
type Input struct {
	Condition       string      `json:"condition"`
	VoltageReading  float64     `json:"voltage_reading"`
	VibrationLevel  float64     `json:"vibration_level"`
	PastInspections interface{} `json:"past_inspection_data,omitempty"`
}

// Recommendation is the model's advisory output. Message carries a
// human-readable note when present; neither field is guaranteed.
type Recommendation struct {
	Text    string `json:"recommendation"`
	Message string `json:"message"`
}

// ErrUnavailable means the collaborator could not be reached or answered
// badly. Callers treat this as advisory loss, never as request failure.
var ErrUnavailable = errors.New("recommendation_unavailable")

type Provider interface {
	Recommend(ctx context.Context, in Input) (*Recommendation, error)
	Predict(ctx context.Context, productID string) ([]string, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) Recommend(ctx context.Context, in Input) (*Recommendation, error) {
	return nil, ErrUnavailable
}

func (p *NoOpProvider) Predict(ctx context.Context, productID string) ([]string, error) {
	return nil, nil
}

package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Config struct {
	RecommendationURL string
	PredictionURL     string
	Timeout           time.Duration
}

// HTTPProvider calls the external analysis model over plain JSON POST.
type HTTPProvider struct {
	cfg    Config
	client *http.Client
}

func NewHTTP(cfg Config) *HTTPProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HTTPProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) Recommend(ctx context.Context, in Input) (*Recommendation, error) {
	var out Recommendation
	if err := p.post(ctx, p.cfg.RecommendationURL, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Predict returns upcoming failure predictions for a product. An absent or
// failing predictor yields an empty slice rather than an error; predictions
// are purely advisory.
func (p *HTTPProvider) Predict(ctx context.Context, productID string) ([]string, error) {
	if p.cfg.PredictionURL == "" {
		return nil, nil
	}
	var out struct {
		Predictions []string `json:"predictions"`
	}
	payload := map[string]string{"productId": productID}
	if err := p.post(ctx, p.cfg.PredictionURL, payload, &out); err != nil {
		return nil, nil
	}
	return out.Predictions, nil
}

func (p *HTTPProvider) post(ctx context.Context, url string, in, out interface{}) error {
	if url == "" {
		return ErrUnavailable
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

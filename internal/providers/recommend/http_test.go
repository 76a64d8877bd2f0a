package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendPostsPayload(t *testing.T) {
	var got Input
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(Recommendation{Text: "Replace relay contact", Message: "high vibration trend"})
	}))
	defer srv.Close()

	p := NewHTTP(Config{RecommendationURL: srv.URL, Timeout: time.Second})
	rec, err := p.Recommend(context.Background(), Input{
		Condition:      "worn",
		VoltageReading: 11.8,
		VibrationLevel: 4.3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Replace relay contact", rec.Text)
	assert.Equal(t, "high vibration trend", rec.Message)
	assert.Equal(t, "worn", got.Condition)
	assert.InDelta(t, 4.3, got.VibrationLevel, 1e-9)
}

func TestRecommendMapsFailuresToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewHTTP(Config{RecommendationURL: srv.URL, Timeout: time.Second})
	_, err := p.Recommend(context.Background(), Input{Condition: "good"})
	assert.True(t, errors.Is(err, ErrUnavailable))

	p = NewHTTP(Config{Timeout: time.Second})
	_, err = p.Recommend(context.Background(), Input{Condition: "good"})
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestPredictIsAdvisory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "PROD_1_0001", body["productId"])
		_, _ = w.Write([]byte(`{"predictions":["voltage drift","contact wear"]}`))
	}))
	defer srv.Close()

	p := NewHTTP(Config{PredictionURL: srv.URL, Timeout: time.Second})
	predictions, err := p.Predict(context.Background(), "PROD_1_0001")
	require.NoError(t, err)
	assert.Equal(t, []string{"voltage drift", "contact wear"}, predictions)

	// No predictor configured: silence, not failure.
	p = NewHTTP(Config{Timeout: time.Second})
	predictions, err = p.Predict(context.Background(), "PROD_1_0001")
	require.NoError(t, err)
	assert.Nil(t, predictions)

	// Broken predictor also degrades to no predictions.
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()
	p = NewHTTP(Config{PredictionURL: broken.URL, Timeout: time.Second})
	predictions, err = p.Predict(context.Background(), "PROD_1_0001")
	require.NoError(t, err)
	assert.Nil(t, predictions)
}

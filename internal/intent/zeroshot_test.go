package intent

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzvoice/voice-agent/internal/model"
)

func TestZeroShotClassify(t *testing.T) {
	var got zeroShotRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(zeroShotResponse{
			Labels: []string{"reservation", "inquiry", "toxic"},
			Scores: []float64{0.91, 0.06, 0.03},
		})
	}))
	defer srv.Close()

	c := NewZeroShotClassifier(srv.URL, "test-model", 5*time.Second)
	result, err := c.Classify(context.Background(), "I want to book a table", nil)
	require.NoError(t, err)

	assert.Equal(t, model.IntentReservation, result.Type)
	assert.InDelta(t, 0.91, result.Confidence, 1e-9)

	// The request carries the full label set and the fixed hypothesis template.
	assert.Equal(t, "I want to book a table", got.Inputs)
	assert.Contains(t, got.Parameters.CandidateLabels, "toxic")
	assert.Len(t, got.Parameters.CandidateLabels, len(model.IntentTypes))
	assert.Equal(t, "The user's message is expressing a {}.", got.Parameters.HypothesisTemplate)
	assert.False(t, got.Parameters.MultiLabel)
}

func TestZeroShotServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewZeroShotClassifier(srv.URL, "test-model", 5*time.Second)
	_, err := c.Classify(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestZeroShotUnknownLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(zeroShotResponse{
			Labels: []string{"greeting"},
			Scores: []float64{0.99},
		})
	}))
	defer srv.Close()

	c := NewZeroShotClassifier(srv.URL, "test-model", 5*time.Second)
	_, err := c.Classify(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown label")
}

func TestZeroShotMismatchedScores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(zeroShotResponse{
			Labels: []string{"inquiry", "toxic"},
			Scores: []float64{0.8},
		})
	}))
	defer srv.Close()

	c := NewZeroShotClassifier(srv.URL, "test-model", 5*time.Second)
	_, err := c.Classify(context.Background(), "hello", nil)
	require.Error(t, err)
}

func TestZeroShotContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server watches the connection and cancels
		// r.Context() when the client gives up; otherwise Close deadlocks.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewZeroShotClassifier(srv.URL, "test-model", 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Classify(ctx, "hello", nil)
	require.Error(t, err)
}

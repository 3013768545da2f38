// Package speech is the downstream synthesis boundary. Synthesis is
// fire-and-forget: failures are logged and never affect the orchestration
// result returned to the caller.
package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Synthesizer turns response text into an opaque audio artifact reference.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// HTTPSynthesizer calls an external text-to-speech service.
type HTTPSynthesizer struct {
	client *resty.Client
}

func NewHTTPSynthesizer(baseURL string, timeout time.Duration) *HTTPSynthesizer {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &HTTPSynthesizer{client: c}
}

type synthesizeRequest struct {
	Text string `json:"text"`
}

type synthesizeResponse struct {
	AudioRef string `json:"audioRef"`
}

func (s *HTTPSynthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(&synthesizeRequest{Text: text}).
		Post("/api/v1/synthesize")
	if err != nil {
		return "", fmt.Errorf("synthesis request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("synthesis status %d: %s", resp.StatusCode(), resp.String())
	}

	var sr synthesizeResponse
	if err := json.Unmarshal(resp.Body(), &sr); err != nil {
		return "", fmt.Errorf("decode synthesis response: %w", err)
	}
	return sr.AudioRef, nil
}

// NoopSynthesizer is used when no synthesis service is configured.
type NoopSynthesizer struct{}

func (NoopSynthesizer) Synthesize(context.Context, string) (string, error) { return "", nil }

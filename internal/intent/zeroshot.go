package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dzvoice/voice-agent/internal/model"
)

// hypothesisTemplate is the fixed template supplied to the zero-shot model.
const hypothesisTemplate = "The user's message is expressing a {}."

// ZeroShotClassifier delegates to an external zero-shot text-classification
// service speaking the Hugging Face inference protocol. It is the one
// pipeline component whose correctness depends on a remote service; callers
// must treat its errors as recoverable, not as a hard fault.
type ZeroShotClassifier struct {
	client *resty.Client
	model  string
	labels []string
}

// NewZeroShotClassifier creates a classifier against the given inference
// endpoint. The label set is fixed to all intent categories including toxic.
func NewZeroShotClassifier(baseURL, modelName string, timeout time.Duration) *ZeroShotClassifier {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	labels := make([]string, len(model.IntentTypes))
	for i, t := range model.IntentTypes {
		labels[i] = string(t)
	}
	return &ZeroShotClassifier{client: c, model: modelName, labels: labels}
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels    []string `json:"candidate_labels"`
	HypothesisTemplate string   `json:"hypothesis_template"`
	MultiLabel         bool     `json:"multi_label"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Classify sends the text to the inference service; the top-scoring label
// becomes the intent and its score the confidence.
func (c *ZeroShotClassifier) Classify(ctx context.Context, text string, _ *model.ConversationContext) (model.Intent, error) {
	reqBody := zeroShotRequest{
		Inputs: text,
		Parameters: zeroShotParameters{
			CandidateLabels:    c.labels,
			HypothesisTemplate: hypothesisTemplate,
			MultiLabel:         false,
		},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/models/" + c.model)
	if err != nil {
		return model.Intent{}, fmt.Errorf("zero-shot request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return model.Intent{}, fmt.Errorf("zero-shot status %d: %s", resp.StatusCode(), resp.String())
	}

	var zr zeroShotResponse
	if err := json.Unmarshal(resp.Body(), &zr); err != nil {
		return model.Intent{}, fmt.Errorf("decode zero-shot response: %w", err)
	}
	if len(zr.Labels) == 0 || len(zr.Labels) != len(zr.Scores) {
		return model.Intent{}, fmt.Errorf("zero-shot response has %d labels and %d scores", len(zr.Labels), len(zr.Scores))
	}

	top := model.IntentType(zr.Labels[0])
	if !knownIntent(top) {
		return model.Intent{}, fmt.Errorf("zero-shot returned unknown label %q", zr.Labels[0])
	}
	return model.Intent{Type: top, Confidence: zr.Scores[0]}, nil
}

func knownIntent(t model.IntentType) bool {
	for _, known := range model.IntentTypes {
		if t == known {
			return true
		}
	}
	return false
}

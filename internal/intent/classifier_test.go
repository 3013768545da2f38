package intent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzvoice/voice-agent/internal/model"
)

func TestLexiconToxicOverride(t *testing.T) {
	c := NewLexiconClassifier()

	result, err := c.Classify(context.Background(), "you are a dog", nil)
	require.NoError(t, err)
	assert.Equal(t, model.IntentToxic, result.Type)
	assert.Equal(t, 0.95, result.Confidence)
}

func TestLexiconToxicBeatsOtherCategories(t *testing.T) {
	c := NewLexiconClassifier()

	// Reservation keywords co-occur; the abusive-content short-circuit still wins.
	result, err := c.Classify(context.Background(), "you are stupid, cancel my reservation", nil)
	require.NoError(t, err)
	assert.Equal(t, model.IntentToxic, result.Type)
	assert.Equal(t, 0.95, result.Confidence)
}

func TestLexiconFallbackOnZeroHits(t *testing.T) {
	c := NewLexiconClassifier()

	result, err := c.Classify(context.Background(), "what is the price?", nil)
	require.NoError(t, err)
	assert.Equal(t, model.IntentInquiry, result.Type)
	assert.Equal(t, 0.3, result.Confidence)
}

func TestLexiconReservation(t *testing.T) {
	c := NewLexiconClassifier()

	result, err := c.Classify(context.Background(), "I want to make a reservation", nil)
	require.NoError(t, err)
	assert.Equal(t, model.IntentReservation, result.Type)
	assert.Greater(t, result.Confidence, 0.0)
}

func TestLexiconConfidenceIsHitRatio(t *testing.T) {
	c := NewLexiconClassifier()

	// Two billing keywords out of a six-word lexicon.
	result, err := c.Classify(context.Background(), "ma facture, le paiement ne passe pas", nil)
	require.NoError(t, err)
	assert.Equal(t, model.IntentBilling, result.Type)
	assert.InDelta(t, 2.0/6.0, result.Confidence, 1e-9)
}

func TestLexiconTieBreakByDeclarationOrder(t *testing.T) {
	c := NewLexiconClassifier()

	// One reservation hit and one billing hit: reservation is declared first.
	result, err := c.Classify(context.Background(), "réserver et payer la facture? non, juste réserver", nil)
	require.NoError(t, err)
	assert.Equal(t, model.IntentReservation, result.Type)
}

func TestLexiconSentinelTranscripts(t *testing.T) {
	c := NewLexiconClassifier()

	// ASR sentinels are valid input and resolve through the fallback.
	for _, text := range []string{model.TranscriptNoSpeech, model.TranscriptEmpty} {
		result, err := c.Classify(context.Background(), text, nil)
		require.NoError(t, err)
		assert.Equal(t, model.IntentInquiry, result.Type)
		assert.Equal(t, 0.3, result.Confidence)
	}
}

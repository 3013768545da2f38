package language

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dzvoice/voice-agent/internal/model"
)

func TestDetectMixedDarijaFrench(t *testing.T) {
	d := NewDetector()

	result := d.Detect("نحب ندير réservation غدوة")

	assert.Equal(t, model.LanguageMixed, result.Primary)
	assert.True(t, result.ContainsDarija)
	assert.True(t, result.ContainsFrench)
}

func TestDetectFrench(t *testing.T) {
	d := NewDetector()

	result := d.Detect("je veux une réservation")

	assert.Equal(t, model.LanguageFrench, result.Primary)
	assert.False(t, result.ContainsDarija)
	assert.True(t, result.ContainsFrench)
}

func TestDetectDarijaByLexicon(t *testing.T) {
	d := NewDetector()

	result := d.Detect("واش راك")

	assert.Equal(t, model.LanguageDarija, result.Primary)
	assert.True(t, result.ContainsDarija)
}

func TestDetectDarijaByArabicScript(t *testing.T) {
	d := NewDetector()

	// MSA words, no darija markers: Arabic script alone classifies darija.
	result := d.Detect("مرحبا بكم")

	assert.Equal(t, model.LanguageDarija, result.Primary)
	assert.True(t, result.ContainsDarija)
	assert.False(t, result.ContainsFrench)
}

func TestDetectDefaultsToMSA(t *testing.T) {
	d := NewDetector()

	result := d.Detect("hello there")

	assert.Equal(t, model.LanguageMSA, result.Primary)
	assert.False(t, result.ContainsDarija)
	assert.False(t, result.ContainsFrench)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestDetectConfidence(t *testing.T) {
	d := NewDetector()

	// One french hit over four tokens.
	result := d.Detect("je veux une réservation")
	assert.InDelta(t, 0.25, result.Confidence, 1e-9)

	// Confidence never exceeds 1.0 even when hits outnumber tokens.
	result = d.Detect("بزاف")
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestDetectEmptyInput(t *testing.T) {
	d := NewDetector()

	result := d.Detect("")

	assert.Equal(t, model.LanguageMSA, result.Primary)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestDetectDeterministic(t *testing.T) {
	d := NewDetector()

	first := d.Detect("واش كاين internet في la connexion")
	second := d.Detect("واش كاين internet في la connexion")

	assert.Equal(t, first, second)
}

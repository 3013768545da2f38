package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()

	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
	require.NoError(t, cfg.ResolveDefaults())
}

func TestResolveDefaultsRejectsUnknownStrategy(t *testing.T) {
	cfg := NewForTesting()
	cfg.ClassifierStrategy = "oracle"

	err := cfg.ResolveDefaults()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLASSIFIER_STRATEGY")
}

func TestResolveDefaultsZeroShotRequiresURL(t *testing.T) {
	cfg := NewForTesting()
	cfg.ClassifierStrategy = "zeroshot"

	err := cfg.ResolveDefaults()
	require.Error(t, err)

	cfg.ZeroShotURL = "http://inference:8080"
	require.NoError(t, cfg.ResolveDefaults())
}

func TestResolveDefaultsRejectsNonPositiveTTL(t *testing.T) {
	cfg := NewForTesting()
	cfg.SessionTTL = 0

	err := cfg.ResolveDefaults()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_TTL")
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("VOICE_AGENT_HTTP_PORT", "9091")
	t.Setenv("VOICE_AGENT_SESSION_TTL", "30m")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9091, cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

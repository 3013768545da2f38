package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzvoice/voice-agent/internal/model"
)

func sampleContext() *model.ConversationContext {
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	return &model.ConversationContext{
		ConversationID:  "conv-1",
		TenantID:        "tenant-1",
		CustomerID:      "cust-1",
		LanguageContext: model.LanguageContext{Primary: model.LanguageMixed, ContainsDarija: true, ContainsFrench: true, Confidence: 0.5},
		IntentHistory:   []model.Intent{{Type: model.IntentReservation, Confidence: 0.4}},
		Entities: map[string][]model.Entity{
			"phone": {{Type: "phone", Value: "0561234567", RawText: "0561234567", Confidence: 0.8}},
		},
		ConversationHistory: []model.MessageRecord{
			{Role: model.RoleCustomer, Message: "نحب réservation"},
			{Role: model.RoleAgent, Message: "When would you like to book?"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()
	conv := sampleContext()

	require.NoError(t, s.Set(ctx, conv.ConversationID, conv))

	loaded, err := s.Get(ctx, conv.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, conv, loaded)
}

func TestMemoryStoreMiss(t *testing.T) {
	s := NewMemoryStore(time.Hour)

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()
	conv := sampleContext()

	require.NoError(t, s.Set(ctx, conv.ConversationID, conv))
	require.NoError(t, s.Delete(ctx, conv.ConversationID))

	_, err := s.Get(ctx, conv.ConversationID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()
	conv := sampleContext()

	base := time.Now()
	s.now = func() time.Time { return base }
	require.NoError(t, s.Set(ctx, conv.ConversationID, conv))

	// Still there just before the TTL.
	s.now = func() time.Time { return base.Add(59 * time.Minute) }
	_, err := s.Get(ctx, conv.ConversationID)
	require.NoError(t, err)

	// Gone after the TTL: observably identical to a miss, and the read
	// reaps the entry rather than leaving it hidden in the map.
	s.now = func() time.Time { return base.Add(61 * time.Minute) }
	_, err = s.Get(ctx, conv.ConversationID)
	assert.ErrorIs(t, err, ErrNotFound)

	s.mu.RLock()
	_, kept := s.entries[conv.ConversationID]
	s.mu.RUnlock()
	assert.False(t, kept, "expired entry must be removed on read")
}

func TestMemoryStoreSweepDropsExpiredOnWrite(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Set(ctx, id, sampleContext()))
	}

	// Past the TTL, the next sweep-triggering write drops the stale trio
	// even though nothing ever reads them.
	s.now = func() time.Time { return base.Add(2 * time.Hour) }
	s.writes = sweepInterval - 1
	require.NoError(t, s.Set(ctx, "fresh", sampleContext()))

	s.mu.RLock()
	remaining := len(s.entries)
	s.mu.RUnlock()
	assert.Equal(t, 1, remaining, "only the live entry survives the sweep")
}

func TestMemoryStoreWriteRefreshesTTL(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()
	conv := sampleContext()

	base := time.Now()
	s.now = func() time.Time { return base }
	require.NoError(t, s.Set(ctx, conv.ConversationID, conv))

	// A later write pushes the expiry out from the last write.
	s.now = func() time.Time { return base.Add(50 * time.Minute) }
	require.NoError(t, s.Set(ctx, conv.ConversationID, conv))

	s.now = func() time.Time { return base.Add(100 * time.Minute) }
	_, err := s.Get(ctx, conv.ConversationID)
	assert.NoError(t, err)
}

func TestEnvelopeVersioning(t *testing.T) {
	conv := sampleContext()

	data, err := encode(conv)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, 1, env.SchemaVersion)

	decoded, err := decode(data)
	require.NoError(t, err)
	assert.Equal(t, conv, decoded)
}

func TestEnvelopeRejectsUnknownVersion(t *testing.T) {
	_, err := decode([]byte(`{"schemaVersion":2,"context":{}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema version")
}

func TestKeyLayout(t *testing.T) {
	assert.Equal(t, "session:abc", key("abc"))
}

// Package session persists conversation contexts in a key-value store with
// a bounded time-to-live.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dzvoice/voice-agent/internal/model"
)

const (
	// keyPrefix namespaces session entries: session:{conversation_id}.
	keyPrefix = "session:"

	// DefaultTTL bounds a conversation's lifetime from its last write.
	DefaultTTL = time.Hour

	// schemaVersion tags serialized contexts so future field additions do
	// not break deserialization of older stored entries.
	schemaVersion = 1
)

var (
	// ErrNotFound is returned when no entry exists for the conversation ID.
	ErrNotFound = errors.New("session not found")
)

// Store is the session-store capability injected into the orchestrator.
// Entries expire after the store's TTL from last write; expiry is the only
// deletion path the pipeline relies on, Delete exists for administrative
// conversation teardown.
type Store interface {
	// Get loads the context stored under the conversation ID.
	// Returns ErrNotFound on miss or after TTL expiry.
	Get(ctx context.Context, conversationID string) (*model.ConversationContext, error)

	// Set writes the full context under its conversation ID and refreshes
	// the TTL.
	Set(ctx context.Context, conversationID string, conv *model.ConversationContext) error

	// Delete removes the entry immediately.
	Delete(ctx context.Context, conversationID string) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases store resources.
	Close() error
}

// envelope wraps the serialized context with an explicit schema version.
type envelope struct {
	SchemaVersion int                        `json:"schemaVersion"`
	Context       *model.ConversationContext `json:"context"`
}

func encode(conv *model.ConversationContext) ([]byte, error) {
	data, err := json.Marshal(envelope{SchemaVersion: schemaVersion, Context: conv})
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*model.ConversationContext, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if env.SchemaVersion != schemaVersion {
		return nil, fmt.Errorf("unsupported session schema version %d", env.SchemaVersion)
	}
	if env.Context == nil {
		return nil, fmt.Errorf("session envelope missing context")
	}
	return env.Context, nil
}

func key(conversationID string) string {
	return keyPrefix + conversationID
}

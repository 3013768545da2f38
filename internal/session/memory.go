package session

import (
	"context"
	"sync"
	"time"

	"github.com/dzvoice/voice-agent/internal/model"
)

// MemoryStore implements Store with an in-process map. It backs tests and
// deployments without a redis address; entries honor the same TTL semantics
// via per-entry deadlines.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	writes  int
	now     func() time.Time
}

// sweepInterval is the number of writes between full sweeps of expired
// entries. Reads reap eagerly; the sweep bounds growth from conversations
// that are written once and never read again.
const sweepInterval = 128

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, conversationID string) (*model.ConversationContext, error) {
	s.mu.RLock()
	entry, ok := s.entries[conversationID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		// Reap on read so the expired entry does not outlive its miss.
		s.mu.Lock()
		if cur, ok := s.entries[conversationID]; ok && s.now().After(cur.expiresAt) {
			delete(s.entries, conversationID)
		}
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	return decode(entry.data)
}

func (s *MemoryStore) Set(_ context.Context, conversationID string, conv *model.ConversationContext) error {
	data, err := encode(conv)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[conversationID] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	s.writes++
	if s.writes%sweepInterval == 0 {
		s.sweepLocked()
	}
	s.mu.Unlock()
	return nil
}

// sweepLocked drops every expired entry. The caller holds mu.
func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}

func (s *MemoryStore) Delete(_ context.Context, conversationID string) error {
	s.mu.Lock()
	delete(s.entries, conversationID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

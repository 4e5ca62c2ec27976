package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind separates the state machines sharing one browser session id.
type Kind string

const (
	KindWizard Kind = "wizard"
	KindQuiz   Kind = "quiz"
)

// Store holds ephemeral per-session state between requests. Implementations
// serialize values as JSON and expire them with the session's own lifecycle;
// abandoned state needs no explicit cleanup.
type Store interface {
	// Get unmarshals the stored value into v, reporting whether it existed.
	Get(ctx context.Context, kind Kind, sessionID uuid.UUID, v interface{}) (bool, error)
	Put(ctx context.Context, kind Kind, sessionID uuid.UUID, v interface{}) error
	Delete(ctx context.Context, kind Kind, sessionID uuid.UUID) error
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore is the in-process implementation used by tests and as a final
// fallback when neither redis nor the database store is available.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func storeKey(kind Kind, sessionID uuid.UUID) string {
	return string(kind) + ":" + sessionID.String()
}

func (s *MemoryStore) Get(ctx context.Context, kind Kind, sessionID uuid.UUID, v interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[storeKey(kind, sessionID)]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, storeKey(kind, sessionID))
		return false, nil
	}
	if err := json.Unmarshal(entry.payload, v); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryStore) Put(ctx context.Context, kind Kind, sessionID uuid.UUID, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[storeKey(kind, sessionID)] = memoryEntry{
		payload:   raw,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, kind Kind, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, storeKey(kind, sessionID))
	return nil
}

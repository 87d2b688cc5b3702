// Package handoff delivers a just-established identity to the next guarded
// page load exactly once, so that page does not have to ask the backend again.
package handoff

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/session"
)

// DefaultTTL bounds how long an untaken handoff survives.
const DefaultTTL = 30 * time.Second

// ErrStoreUnavailable wraps failures of the backing store.
var ErrStoreUnavailable = errors.New("handoff store unavailable")

// Store holds one-shot identity handoffs.
//
// Take must return a stored identity to at most one caller: a second Take of
// the same key misses.
type Store interface {
	Put(ctx context.Context, identity session.Identity) (string, error)
	Take(ctx context.Context, key string) (session.Identity, bool, error)
}

// NewKey returns a fresh handoff key.
func NewKey() string {
	return uuid.NewString()
}

type memoryEntry struct {
	identity  session.Identity
	expiresAt time.Time
}

// MemoryStore is a process-local Store for single-instance deployments.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore builds a MemoryStore; ttl <= 0 uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// Put stores identity under a new key.
func (s *MemoryStore) Put(_ context.Context, identity session.Identity) (string, error) {
	key := NewKey()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.entries[key] = memoryEntry{identity: identity, expiresAt: now.Add(s.ttl)}
	return key, nil
}

// Take removes and returns the identity stored under key.
func (s *MemoryStore) Take(_ context.Context, key string) (session.Identity, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return session.Identity{}, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return session.Identity{}, false, nil
	}
	delete(s.entries, key)
	if !s.now().Before(entry.expiresAt) {
		return session.Identity{}, false, nil
	}
	return entry.identity, true, nil
}

// Len reports the number of pending entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}

package callback

import (
	"sync"
	"time"
)

// DefaultLatchTTL bounds how long a page load may take to post its fragment.
const DefaultLatchTTL = 2 * time.Minute

// DefaultLatchLimit caps the page loads awaiting their fragment.
const DefaultLatchLimit = 10000

// Latch runs an effect at most once and hands its result to every caller.
type Latch[T any] struct {
	once  sync.Once
	mu    sync.Mutex
	ran   bool
	value T
}

// Do runs fn on the first call. Later and concurrent calls wait for that run
// and receive its result; the bool reports whether this call ran fn.
func (l *Latch[T]) Do(fn func() T) (T, bool) {
	first := false
	l.once.Do(func() {
		first = true
		value := fn()
		l.mu.Lock()
		l.value = value
		l.ran = true
		l.mu.Unlock()
	})
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, first
}

// Ran reports whether the effect has completed.
func (l *Latch[T]) Ran() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ran
}

type latchEntry[T any] struct {
	latch   *Latch[T]
	expires time.Time
}

type issued struct {
	id      string
	expires time.Time
}

// Latches keys one latch per issued page-load id. Ids expire after the TTL
// and at most limit ids are live; issuing past the limit evicts the oldest.
type Latches[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	limit   int
	now     func() time.Time
	entries map[string]latchEntry[T]
	// order holds issued ids oldest first. The TTL is fixed, so it is also
	// expiry order.
	order []issued
}

// NewLatches builds a registry whose ids live for ttl, holding at most limit
// live ids. Non-positive values use the defaults.
func NewLatches[T any](ttl time.Duration, limit int) *Latches[T] {
	if ttl <= 0 {
		ttl = DefaultLatchTTL
	}
	if limit <= 0 {
		limit = DefaultLatchLimit
	}
	return &Latches[T]{
		ttl:     ttl,
		limit:   limit,
		now:     time.Now,
		entries: make(map[string]latchEntry[T]),
	}
}

// Issue registers a fresh latch for id.
func (ls *Latches[T]) Issue(id string) {
	if id == "" {
		return
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	now := ls.now()
	ls.expireLocked(now)
	for len(ls.entries) >= ls.limit && len(ls.order) > 0 {
		ls.popLocked()
	}
	expires := now.Add(ls.ttl)
	ls.entries[id] = latchEntry[T]{latch: &Latch[T]{}, expires: expires}
	ls.order = append(ls.order, issued{id: id, expires: expires})
}

// Lookup returns the latch issued for id, if it is still live.
func (ls *Latches[T]) Lookup(id string) (*Latch[T], bool) {
	if id == "" {
		return nil, false
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	entry, ok := ls.entries[id]
	if !ok || !ls.now().Before(entry.expires) {
		return nil, false
	}
	return entry.latch, true
}

// Len reports the number of live ids.
func (ls *Latches[T]) Len() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.expireLocked(ls.now())
	return len(ls.entries)
}

// expireLocked drops ids from the front of the queue until it meets one that
// is still live.
func (ls *Latches[T]) expireLocked(now time.Time) {
	for len(ls.order) > 0 && !now.Before(ls.order[0].expires) {
		ls.popLocked()
	}
}

func (ls *Latches[T]) popLocked() {
	head := ls.order[0]
	ls.order[0] = issued{}
	ls.order = ls.order[1:]
	// A re-issued id owns a later queue slot; only the matching slot removes it.
	if entry, ok := ls.entries[head.id]; ok && entry.expires.Equal(head.expires) {
		delete(ls.entries, head.id)
	}
}

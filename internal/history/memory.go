package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the MemoryStore size when none is configured.
const DefaultCapacity = 500

// MemoryStore keeps the most recent entries in a fixed-size ring. When full,
// recording a new entry evicts the oldest.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	size    int
}

// NewMemoryStore creates a store holding at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{entries: make([]Entry, capacity)}
}

func (m *MemoryStore) Record(ctx context.Context, e *Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	prepare(e)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.next] = *e
	m.next = (m.next + 1) % len(m.entries)
	if m.size < len(m.entries) {
		m.size++
	}
	return nil
}

func (m *MemoryStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = normalizeLimit(limit)

	m.mu.RLock()
	defer m.mu.RUnlock()

	n := min(limit, m.size)
	out := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, m.entries[m.index(i)])
	}
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := 0; i < m.size; i++ {
		if e := m.entries[m.index(i)]; e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

func (m *MemoryStore) Prune(ctx context.Context, before time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Rebuild oldest first so the ring order survives.
	kept := make([]Entry, 0, m.size)
	for i := m.size - 1; i >= 0; i-- {
		if e := m.entries[m.index(i)]; !e.CreatedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	removed := m.size - len(kept)

	clear(m.entries)
	copy(m.entries, kept)
	m.size = len(kept)
	m.next = len(kept) % len(m.entries)
	return removed, nil
}

// Len returns the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}

// index maps the i-th newest entry to its slot.
func (m *MemoryStore) index(i int) int {
	n := len(m.entries)
	return ((m.next-1-i)%n + n) % n
}

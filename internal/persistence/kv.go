package persistence

import (
	"context"
	"sync"
)

// Record keys used in the durable key-value store. The three records are
// independent: the user directory, the active session, and the slot ledger.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
	KeyBookedSlots = "bookedSlots"
)

// KV is the durable client-local key-value store the booker persists into.
//
// Writes are synchronous: once Set or Delete returns, a subsequent Get from
// the same process observes the new state. Get returns ErrNotFound for keys
// that were never written; deleting an absent key is not an error.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MemoryKV is a map-backed KV used by tests and ephemeral runs.
type MemoryKV struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{records: make(map[string][]byte)}
}

// Get returns the stored value, or ErrNotFound for an absent key.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a copy of the value under the key.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.records[key] = stored
	m.mu.Unlock()
	return nil
}

// Delete removes the key. Absent keys are ignored.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.records, key)
	m.mu.Unlock()
	return nil
}

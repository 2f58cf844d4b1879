package session

import (
	"encoding/json"
	"sync"
)

// Store persists the thread mapping across restarts. Load never fails
// on absent or corrupt data: such a store reads as empty, not as an
// error the caller must recover from.
type Store interface {
	Load() (Threads, error)
	Save(Threads) error
}

// MemoryStore is an in-memory Store used in tests and as a fallback
// when no durable path is configured.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored mapping, or an empty one.
func (m *MemoryStore) Load() (Threads, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeThreads(m.data), nil
}

// Save replaces the stored mapping.
func (m *MemoryStore) Save(t Threads) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := encodeThreads(t)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

func encodeThreads(t Threads) ([]byte, error) {
	return json.Marshal(t)
}

// decodeThreads turns a stored value back into a thread mapping. Empty,
// malformed or foreign-shaped data yields an empty mapping; there is no
// repair or migration.
func decodeThreads(data []byte) Threads {
	if len(data) == 0 {
		return make(Threads)
	}
	var t Threads
	if err := json.Unmarshal(data, &t); err != nil || t == nil {
		return make(Threads)
	}
	return t
}

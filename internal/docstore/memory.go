package docstore

import "sync"

// Memory is an in-memory Cache used by tests and dry runs.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

// Get returns the cached bytes for key, or ErrMiss.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[key]
	if !ok {
		return nil, ErrMiss
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put stores data under key, replacing any prior entry.
func (m *Memory) Put(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.docs[key] = stored
	return nil
}

// Len reports the number of cached documents.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

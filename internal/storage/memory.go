package storage

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]map[string][]byte{}}
}

func (m *MemoryStore) Get(_ context.Context, session, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[session][key]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (m *MemoryStore) Set(_ context.Context, session, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(session, key, value)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, session, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[session], key)
	return nil
}

func (m *MemoryStore) SetMany(_ context.Context, session string, values map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.put(session, k, v)
	}
	return nil
}

func (m *MemoryStore) put(session, key string, value []byte) {
	ns, ok := m.data[session]
	if !ok {
		ns = map[string][]byte{}
		m.data[session] = ns
	}
	ns[key] = clone(value)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

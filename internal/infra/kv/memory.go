package kv

import (
	"context"
	"sync"
)

// Memory is an in-memory KV used by tests and as a fallback when no database
// path is configured. Failure injection via GetErr/SetErr lets tests exercise
// the best-effort persistence policy.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte

	// When non-nil, the corresponding operation fails with this error.
	GetErr error
	SetErr error
}

// NewMemory creates an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.entries[key] = cp
	return nil
}

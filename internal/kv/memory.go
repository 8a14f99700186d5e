package kv

import (
	"context"
	"sync"
)

// Memory is a process-local Medium. Nothing survives a restart; it backs
// tests and STORAGE_BACKEND=memory.
type Memory struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewMemory returns an empty Memory medium.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

// Get implements Medium.
func (m *Memory) Get(_ context.Context, key string) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return Entry{}, false, nil
	}
	// Hand out a copy so callers cannot mutate what is stored.
	return Entry{Value: append([]byte(nil), e.Value...), Revision: e.Revision}, true, nil
}

// Put implements Medium.
func (m *Memory) Put(_ context.Context, key string, value []byte, expect int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.entries[key].Revision // zero when absent
	if expect != AnyRevision && expect != current {
		return 0, ErrConflict
	}

	next := current + 1
	m.entries[key] = Entry{Value: append([]byte(nil), value...), Revision: next}
	return next, nil
}

package store

import (
	"context"
	"fmt"
	"sync"

	"datadict/internal/dictionary"
)

// Memory keeps dictionaries in process memory. It backs demo mode and tests.
type Memory struct {
	mu   sync.Mutex
	data map[string]dictionary.Dataset

	// ReadErr and WriteErr, when set, make every call fail with them.
	ReadErr  error
	WriteErr error

	writes int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]dictionary.Dataset)}
}

// Put stores a copy of ds under name.
func (m *Memory) Put(name string, ds dictionary.Dataset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = ds.Clone()
}

// Get returns a copy of what is stored under name.
func (m *Memory) Get(name string) (dictionary.Dataset, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ds, ok := m.data[name]
	return ds.Clone(), ok
}

// Writes returns how many writes succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Memory) Read(ctx context.Context, name string) (dictionary.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return dictionary.Dataset{}, storageErr("read", name, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return dictionary.Dataset{}, storageErr("read", name, m.ReadErr)
	}
	ds, ok := m.data[name]
	if !ok {
		return dictionary.Dataset{}, storageErr("read", name, fmt.Errorf("table or view not found: %s", name))
	}
	return ds.Clone(), nil
}

func (m *Memory) Write(ctx context.Context, name string, ds dictionary.Dataset) error {
	if err := ctx.Err(); err != nil {
		return storageErr("write", name, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return storageErr("write", name, m.WriteErr)
	}
	m.data[name] = ds.Clone()
	m.writes++
	return nil
}

func (m *Memory) Close() error {
	return nil
}

// Package cache implements the durable local key→JSON store the client
// falls back to when the remote store is unreachable. Reads and writes are
// synchronous and atomic per key; two keys are never updated as one
// transaction.
package cache

import "sync"

type Cache interface {
	// Get returns the raw JSON for a key. Any read failure reads as absent.
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Close() error
}

// Memory is the test double: same contract, nothing survives the process.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{entries: map[string][]byte{}}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	return value, ok
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(value))
	copy(buf, value)
	m.entries[key] = buf
	return nil
}

func (m *Memory) Close() error { return nil }

var _ Cache = (*Memory)(nil)

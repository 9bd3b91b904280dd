// Package storage provides process-local key/value stores for session
// scopes.
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/shopmanagement/portal/internal/core/ports"
)

// Memory is a concurrency-safe in-process Storage.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// Len is the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

type memoryScope struct {
	store    *Memory
	lastUsed time.Time
}

// MemoryProvider hands out one Memory per scope id. Scopes not opened for
// longer than the idle TTL are dropped on the next Open.
type MemoryProvider struct {
	mu     sync.Mutex
	scopes map[string]*memoryScope
	ttl    time.Duration
	now    func() time.Time
}

// NewMemoryProvider returns a provider; ttl <= 0 keeps scopes forever.
func NewMemoryProvider(ttl time.Duration) *MemoryProvider {
	return &MemoryProvider{
		scopes: make(map[string]*memoryScope),
		ttl:    ttl,
		now:    time.Now,
	}
}

var _ ports.StorageProvider = (*MemoryProvider)(nil)

func (p *MemoryProvider) Open(_ context.Context, id string) (ports.Storage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if p.ttl > 0 {
		for k, s := range p.scopes {
			if now.Sub(s.lastUsed) > p.ttl {
				delete(p.scopes, k)
			}
		}
	}
	s, ok := p.scopes[id]
	if !ok {
		s = &memoryScope{store: NewMemory()}
		p.scopes[id] = s
	}
	s.lastUsed = now
	return s.store, nil
}

// Scopes is the number of live scopes.
func (p *MemoryProvider) Scopes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.scopes)
}

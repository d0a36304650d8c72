package store

import (
	"errors"
	"sync"

	"nearby/internal/domain"
)

// ErrEmptyToken is returned when Put is given a zero-length token.
var ErrEmptyToken = errors.New("empty token")

// Memory keeps tokens in a map keyed by their assigned id.
type Memory struct {
	mu     sync.RWMutex
	next   domain.TokenID
	tokens map[domain.TokenID]domain.DiscoveryToken
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{tokens: make(map[domain.TokenID]domain.DiscoveryToken)}
}

// Put stores a copy of token under a fresh id.
func (m *Memory) Put(token domain.DiscoveryToken) (domain.TokenID, error) {
	if token.Empty() {
		return 0, ErrEmptyToken
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	m.tokens[m.next] = token.Clone()
	return m.next, nil
}

// Get returns a copy of the token stored under id and whether it was present.
func (m *Memory) Get(id domain.TokenID) (domain.DiscoveryToken, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tokens[id]
	if !ok {
		return nil, false, nil
	}
	return t.Clone(), true, nil
}

// Len reports how many tokens are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tokens)
}

// Compile-time assertion that Memory implements domain.TokenStore.
var _ domain.TokenStore = (*Memory)(nil)

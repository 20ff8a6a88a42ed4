package cart

import (
	"sync"

	"go.uber.org/zap"
)

// Manager hands out one builder per operator and flow so that rapid
// keyboard-driven entry on one screen never interferes with another.
type Manager struct {
	logger *zap.Logger

	mu    sync.RWMutex
	carts map[string]map[Flow]*Builder
}

// NewManager creates an empty cart manager.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		logger: logger,
		carts:  make(map[string]map[Flow]*Builder),
	}
}

// Builder returns the live builder for the given operator and flow,
// creating it on first use.
func (m *Manager) Builder(username string, flow Flow) *Builder {
	m.mu.RLock()
	if flows, ok := m.carts[username]; ok {
		if b, ok := flows[flow]; ok {
			m.mu.RUnlock()
			return b
		}
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.carts[username] == nil {
		m.carts[username] = make(map[Flow]*Builder)
	}
	if b, ok := m.carts[username][flow]; ok {
		return b
	}
	b := NewBuilder(flow, m.logger.Named(string(flow)))
	m.carts[username][flow] = b
	return b
}

// Drop discards all builders for an operator, e.g. on logout.
func (m *Manager) Drop(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, username)
}

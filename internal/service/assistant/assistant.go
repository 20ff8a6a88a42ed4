// Package assistant exposes the LLM chat consultant, grounded in the
// current inventory snapshot.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"prostock/internal/service/cache"
	"prostock/pkg/clients/anthropic"
)

// ErrUnavailable is returned when no AI provider is configured.
var ErrUnavailable = errors.New("assistant unavailable: ANTHROPIC_API_KEY is not configured")

// Conversations longer than this are trimmed from the front to bound the
// prompt size.
const maxHistory = 20

// Service manages per-operator conversations with the consultant.
type Service struct {
	ai     anthropic.Client
	cache  *cache.Cache
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[string][]anthropic.Message
}

// NewService wires an assistant instance. ai may be nil when the provider
// is not configured; every chat then fails with ErrUnavailable.
func NewService(ai anthropic.Client, stockCache *cache.Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ai:       ai,
		cache:    stockCache,
		logger:   logger,
		sessions: make(map[string][]anthropic.Message),
	}
}

// Chat sends one operator message and returns the consultant's reply. The
// conversation history is kept per operator; a failed call leaves it
// unchanged.
func (s *Service) Chat(ctx context.Context, username, input string) (string, error) {
	if s.ai == nil {
		return "", ErrUnavailable
	}

	inventoryJSON, err := json.Marshal(s.cache.Inventory())
	if err != nil {
		return "", fmt.Errorf("serialize inventory context: %w", err)
	}

	s.mu.RLock()
	history := append([]anthropic.Message(nil), s.sessions[username]...)
	s.mu.RUnlock()

	reply, err := s.ai.Advise(ctx, string(inventoryJSON), history, input)
	if err != nil {
		s.logger.Error("assistant call failed", zap.String("username", username), zap.Error(err))
		return "", err
	}

	s.mu.Lock()
	updated := append(s.sessions[username],
		anthropic.Message{Role: "user", Content: input},
		anthropic.Message{Role: "assistant", Content: reply})
	if len(updated) > maxHistory {
		updated = updated[len(updated)-maxHistory:]
	}
	s.sessions[username] = updated
	s.mu.Unlock()

	return reply, nil
}

// Reset clears an operator's conversation.
func (s *Service) Reset(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, username)
}

// Package auth handles login against the backend and the persisted session
// that lets a returning operator skip the login form.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"prostock/internal/domain/models"
	"prostock/internal/notify"
	"prostock/internal/repository/mongodb"
	"prostock/internal/service/cache"
)

// ErrInvalidCredentials is returned when the backend does not recognize the
// username/password pair.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Backend is the slice of the RPC client auth needs.
type Backend interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// CartDropper discards an operator's in-progress carts on logout.
type CartDropper interface {
	Drop(username string)
}

// Service implements login, session resume and logout.
type Service struct {
	backend  Backend
	sessions mongodb.Repository
	cache    *cache.Cache
	carts    CartDropper
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires an auth service instance.
func NewService(backend Backend, sessions mongodb.Repository, stockCache *cache.Cache, carts CartDropper, notifier notify.Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Service{
		backend:  backend,
		sessions: sessions,
		cache:    stockCache,
		carts:    carts,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Login authenticates against the backend, persists the session and
// triggers the first cache refresh. A refresh failure does not fail the
// login; the cache reports it through the notifier.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID == "" {
		return nil, ErrInvalidCredentials
	}
	user.Password = ""

	session := models.Session{
		Username:  user.Username,
		User:      *user,
		CreatedAt: s.now(),
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		// Login still succeeds; only the resume convenience is lost.
		s.logger.Warn("failed to persist session", zap.String("username", username), zap.Error(err))
	}

	s.notifier.Notify(notify.LevelSuccess, fmt.Sprintf("Welcome back, %s!", user.Name))

	if err := s.cache.Refresh(ctx); err != nil {
		s.logger.Warn("initial cache refresh failed", zap.Error(err))
	}

	return user, nil
}

// Resume reconstitutes a persisted session and re-syncs the cache.
func (s *Service) Resume(ctx context.Context, username string) (*models.User, error) {
	session, err := s.sessions.FindSession(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Refresh(ctx); err != nil {
		s.logger.Warn("cache refresh on resume failed", zap.Error(err))
	}
	return &session.User, nil
}

// Logout drops the persisted session and any in-progress carts.
func (s *Service) Logout(ctx context.Context, username string) error {
	if err := s.sessions.DeleteSession(ctx, username); err != nil {
		return err
	}
	s.carts.Drop(username)
	s.notifier.Notify(notify.LevelInfo, "Logged out successfully")
	return nil
}

// Package admin covers the master-data screens: item and supplier upkeep,
// user management and the activity log. Every mutation goes through the
// backend and is followed by a cache re-sync.
package admin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"prostock/internal/domain/models"
	"prostock/internal/notify"
	"prostock/internal/service/cache"
)

// Backend is the slice of the RPC client the admin screens need.
type Backend interface {
	UpdateInventoryItem(ctx context.Context, item models.InventoryItem, actor string) error
	DeleteInventoryItem(ctx context.Context, id, actor string) error
	UpdateSupplier(ctx context.Context, supplier models.Supplier, actor string) error
	DeleteSupplier(ctx context.Context, id, actor string) error
	GetUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User, actor string) error
	DeleteUser(ctx context.Context, id, actor string) error
	GetActivityLogs(ctx context.Context) ([]models.ActivityLog, error)
}

// Service forwards master-data mutations and keeps the cache in sync.
type Service struct {
	backend  Backend
	cache    *cache.Cache
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewService wires an admin service instance.
func NewService(backend Backend, stockCache *cache.Cache, notifier notify.Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Service{backend: backend, cache: stockCache, notifier: notifier, logger: logger}
}

// SaveItem creates or updates one inventory item.
func (s *Service) SaveItem(ctx context.Context, item models.InventoryItem, actor string) error {
	if err := s.backend.UpdateInventoryItem(ctx, item, actor); err != nil {
		return err
	}
	s.notifier.Notify(notify.LevelSuccess, fmt.Sprintf("Item saved: %s", item.Name))
	s.resync(ctx)
	return nil
}

// DeleteItem removes one inventory item.
func (s *Service) DeleteItem(ctx context.Context, id, actor string) error {
	if err := s.backend.DeleteInventoryItem(ctx, id, actor); err != nil {
		return err
	}
	s.notifier.Notify(notify.LevelInfo, "Item deleted")
	s.resync(ctx)
	return nil
}

// SaveSupplier creates or updates one supplier.
func (s *Service) SaveSupplier(ctx context.Context, supplier models.Supplier, actor string) error {
	if err := s.backend.UpdateSupplier(ctx, supplier, actor); err != nil {
		return err
	}
	s.notifier.Notify(notify.LevelSuccess, fmt.Sprintf("Supplier saved: %s", supplier.Name))
	s.resync(ctx)
	return nil
}

// DeleteSupplier removes one supplier.
func (s *Service) DeleteSupplier(ctx context.Context, id, actor string) error {
	if err := s.backend.DeleteSupplier(ctx, id, actor); err != nil {
		return err
	}
	s.notifier.Notify(notify.LevelInfo, "Supplier deleted")
	s.resync(ctx)
	return nil
}

// Users lists the backend's user accounts. Passwords never reach the caller.
func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	users, err := s.backend.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// SaveUser creates or updates one user account.
func (s *Service) SaveUser(ctx context.Context, user models.User, actor string) error {
	if err := s.backend.UpdateUser(ctx, user, actor); err != nil {
		return err
	}
	s.notifier.Notify(notify.LevelSuccess, fmt.Sprintf("User saved: %s", user.Username))
	return nil
}

// DeleteUser removes one user account.
func (s *Service) DeleteUser(ctx context.Context, id, actor string) error {
	if err := s.backend.DeleteUser(ctx, id, actor); err != nil {
		return err
	}
	s.notifier.Notify(notify.LevelInfo, "User deleted")
	return nil
}

// ActivityLogs lists the backend's audit trail.
func (s *Service) ActivityLogs(ctx context.Context) ([]models.ActivityLog, error) {
	return s.backend.GetActivityLogs(ctx)
}

// resync refreshes the cache so master-data edits show up immediately. The
// mutation already succeeded; a failed refresh is reported by the cache.
func (s *Service) resync(ctx context.Context) {
	if err := s.cache.Refresh(ctx); err != nil {
		s.logger.Warn("cache refresh after master-data change failed", zap.Error(err))
	}
}

// Package cache holds the process-wide snapshot of inventory, suppliers and
// dashboard statistics. The backend owns the data; the cache is replaced
// wholesale by Refresh and never patched field by field.
package cache

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"prostock/internal/domain/models"
	"prostock/internal/notify"
)

// Fetcher is the slice of the backend client the cache needs.
type Fetcher interface {
	GetInventory(ctx context.Context) ([]models.InventoryItem, error)
	GetSuppliers(ctx context.Context) ([]models.Supplier, error)
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// Cache is an injectable snapshot store. All three datasets are replaced
// together on a successful refresh; on any failure the last known good
// snapshot is retained untouched.
type Cache struct {
	fetcher  Fetcher
	notifier notify.Notifier
	logger   *zap.Logger

	mu        sync.RWMutex
	loading   bool
	inventory []models.InventoryItem
	suppliers []models.Supplier
	stats     *models.DashboardStats
}

// New wires a cache instance. notifier may be nil when notifications are
// not wanted (tests, tooling).
func New(fetcher Fetcher, notifier notify.Notifier, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Cache{fetcher: fetcher, notifier: notifier, logger: logger}
}

// Refresh fetches inventory, suppliers and dashboard stats concurrently and
// atomically replaces the snapshots. At most one refresh is in flight: a
// concurrent call is dropped without error and without a duplicate round
// trip. The loading flag is cleared on every exit path.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		c.logger.Debug("refresh already in flight, dropping request")
		return nil
	}
	c.loading = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	var (
		inventory []models.InventoryItem
		suppliers []models.Supplier
		stats     *models.DashboardStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inventory, err = c.fetcher.GetInventory(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		suppliers, err = c.fetcher.GetSuppliers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = c.fetcher.GetDashboardStats(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		c.logger.Warn("cache refresh failed, keeping previous snapshot", zap.Error(err))
		c.notifier.Notify(notify.LevelError, fmt.Sprintf("Sync error: %v", err))
		return fmt.Errorf("refresh cache: %w", err)
	}

	c.mu.Lock()
	c.inventory = inventory
	c.suppliers = suppliers
	c.stats = stats
	c.mu.Unlock()

	c.logger.Info("cache refreshed",
		zap.Int("items", len(inventory)),
		zap.Int("suppliers", len(suppliers)))
	c.notifier.Notify(notify.LevelSuccess, "Cache synchronized with backend")
	return nil
}

// Loading reports whether a refresh is currently in flight.
func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Inventory returns a copy of the cached inventory snapshot.
func (c *Cache) Inventory() []models.InventoryItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.InventoryItem, len(c.inventory))
	copy(out, c.inventory)
	return out
}

// Suppliers returns a copy of the cached supplier snapshot.
func (c *Cache) Suppliers() []models.Supplier {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Supplier, len(c.suppliers))
	copy(out, c.suppliers)
	return out
}

// Stats returns a copy of the cached dashboard aggregate, or nil before the
// first successful refresh.
func (c *Cache) Stats() *models.DashboardStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.stats == nil {
		return nil
	}
	out := *c.stats
	return &out
}

// Item looks up one inventory item by ID in the current snapshot.
func (c *Cache) Item(id string) (models.InventoryItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.inventory {
		if item.ID == id {
			return item, true
		}
	}
	return models.InventoryItem{}, false
}

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"prostock/internal/domain/models"
)

type fakeFetcher struct {
	calls atomic.Int32

	inventory []models.InventoryItem
	suppliers []models.Supplier
	stats     *models.DashboardStats

	statsErr error
	block    chan struct{} // when non-nil, GetInventory waits on it
}

func (f *fakeFetcher) GetInventory(ctx context.Context) ([]models.InventoryItem, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	return f.inventory, nil
}

func (f *fakeFetcher) GetSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return f.suppliers, nil
}

func (f *fakeFetcher) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.stats, nil
}

func seededFetcher() *fakeFetcher {
	return &fakeFetcher{
		inventory: []models.InventoryItem{{ID: "ITM-1", Name: "Kabel NYM", Stock: 100, DefaultUnit: "Meter"}},
		suppliers: []models.Supplier{{ID: "SUP-1", Name: "PT Sumber Makmur"}},
		stats:     &models.DashboardStats{TotalItems: 1, TotalStock: 100},
	}
}

func TestRefreshReplacesAllSnapshots(t *testing.T) {
	fetcher := seededFetcher()
	c := New(fetcher, nil, nil)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if len(c.Inventory()) != 1 || len(c.Suppliers()) != 1 {
		t.Error("snapshots not populated")
	}
	if stats := c.Stats(); stats == nil || stats.TotalItems != 1 {
		t.Errorf("stats snapshot = %+v", stats)
	}
	if c.Loading() {
		t.Error("loading must be false after a completed refresh")
	}
}

func TestRefreshFailureKeepsLastKnownGood(t *testing.T) {
	fetcher := seededFetcher()
	c := New(fetcher, nil, nil)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("seed refresh: %v", err)
	}

	fetcher.inventory = []models.InventoryItem{{ID: "ITM-2"}}
	fetcher.statsErr = errors.New("backend unreachable")

	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	// No partial overwrite: the stats fetch failed, so the already fetched
	// inventory must not have replaced the previous snapshot either.
	inv := c.Inventory()
	if len(inv) != 1 || inv[0].ID != "ITM-1" {
		t.Errorf("inventory snapshot changed on failed refresh: %+v", inv)
	}
	if c.Loading() {
		t.Error("loading must be reset after a failed refresh")
	}
}

func TestRefreshDropsConcurrentCall(t *testing.T) {
	fetcher := seededFetcher()
	fetcher.block = make(chan struct{})
	c := New(fetcher, nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.Refresh(context.Background())
	}()

	// Wait until the first refresh is parked inside the fetcher.
	deadline := time.After(2 * time.Second)
	for fetcher.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("first refresh never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("concurrent refresh must be a silent no-op, got %v", err)
	}
	if got := fetcher.calls.Load(); got != 1 {
		t.Fatalf("inventory fetched %d times, want 1 (no duplicate round trip)", got)
	}

	close(fetcher.block)
	wg.Wait()

	if c.Loading() {
		t.Error("loading must return to false exactly once the in-flight call settles")
	}
	if len(c.Inventory()) != 1 {
		t.Error("first refresh should still have populated the cache")
	}
}

func TestItemLookup(t *testing.T) {
	c := New(seededFetcher(), nil, nil)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	item, ok := c.Item("ITM-1")
	if !ok || item.Stock != 100 {
		t.Fatalf("Item(ITM-1) = %+v, %v", item, ok)
	}
	if _, ok := c.Item("missing"); ok {
		t.Error("unknown id must not resolve")
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	c := New(seededFetcher(), nil, nil)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	inv := c.Inventory()
	inv[0].Stock = -999

	again, _ := c.Item("ITM-1")
	if again.Stock != 100 {
		t.Error("callers must not be able to mutate the cached snapshot")
	}
}

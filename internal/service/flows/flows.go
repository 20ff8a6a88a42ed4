// Package flows drives the three transaction screens end to end: item
// search, line entry against the cached stock, and the atomic batch
// submission to the backend.
package flows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"prostock/internal/domain/models"
	"prostock/internal/notify"
	"prostock/internal/service/cache"
	"prostock/internal/service/cart"
)

// Autocomplete queries shorter than this never reach the backend.
const minSearchQuery = 2

const dateLayout = "2006-01-02"

var (
	// ErrItemNotFound means the selected item is not in the current cache
	// snapshot; a refresh usually fixes it.
	ErrItemNotFound = errors.New("item not found in cached inventory")

	// ErrIncomplete blocks submission when header fields or lines are missing.
	ErrIncomplete = errors.New("submission incomplete")
)

// Backend is the slice of the RPC client the flows need.
type Backend interface {
	SearchItems(ctx context.Context, query string) ([]models.InventoryItem, error)
	SaveTransactionIn(ctx context.Context, tx models.TransactionIn) error
	SaveTransactionOut(ctx context.Context, tx models.TransactionOut) error
	SaveStockOpname(ctx context.Context, op models.StockOpname) error
}

// Service coordinates carts, cache and backend for the transaction flows.
type Service struct {
	backend  Backend
	cache    *cache.Cache
	carts    *cart.Manager
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a flows service instance.
func NewService(backend Backend, stockCache *cache.Cache, carts *cart.Manager, notifier notify.Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Service{
		backend:  backend,
		cache:    stockCache,
		carts:    carts,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Search forwards an autocomplete query to the backend. Queries below the
// minimum length return an empty result without a network round trip.
func (s *Service) Search(ctx context.Context, query string) ([]models.InventoryItem, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchQuery {
		return []models.InventoryItem{}, nil
	}
	return s.backend.SearchItems(ctx, query)
}

// LineRequest is one confirmed line entry. Unit defaults to the item's
// base unit when empty.
type LineRequest struct {
	ItemID   string  `json:"itemId"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Remarks  string  `json:"remarks"`
}

// AddLine resolves the item from the cache snapshot, drives the entry state
// machine and commits the line. Validation runs against the stock value
// cached at this moment, not re-checked at submit.
func (s *Service) AddLine(username string, flow cart.Flow, req LineRequest) (models.OpnameItem, error) {
	item, ok := s.cache.Item(req.ItemID)
	if !ok {
		return models.OpnameItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, req.ItemID)
	}

	b := s.carts.Builder(username, flow)
	b.SelectItem(item)
	if req.Unit != "" {
		if err := b.SetUnit(req.Unit); err != nil {
			return models.OpnameItem{}, err
		}
	}
	if err := b.SetQuantity(req.Quantity); err != nil {
		return models.OpnameItem{}, err
	}
	if req.Remarks != "" {
		if err := b.SetRemarks(req.Remarks); err != nil {
			return models.OpnameItem{}, err
		}
	}

	line, err := b.Commit()
	if err != nil {
		return models.OpnameItem{}, err
	}

	s.notifier.Notify(notify.LevelSuccess, fmt.Sprintf("Added: %s", line.ItemName))
	return line, nil
}

// RemoveLine drops a committed line from the cart.
func (s *Service) RemoveLine(username string, flow cart.Flow, lineID string) error {
	line, err := s.carts.Builder(username, flow).Remove(lineID)
	if err != nil {
		return err
	}
	s.notifier.Notify(notify.LevelInfo, fmt.Sprintf("Removed: %s", line.ItemName))
	return nil
}

// CartLines returns the committed lines for one operator and flow.
func (s *Service) CartLines(username string, flow cart.Flow) []models.OpnameItem {
	return s.carts.Builder(username, flow).Lines()
}

// InboundHeader carries the receipt batch fields.
type InboundHeader struct {
	Date         string   `json:"date"`
	Supplier     string   `json:"supplier"`
	PONumber     string   `json:"poNumber"`
	DeliveryNote string   `json:"deliveryNote"`
	Photos       []string `json:"photos"`
}

// SubmitInbound sends the accumulated receipt cart as one batch. On failure
// the cart is preserved unmodified; on success it is cleared and the cache
// re-synced.
func (s *Service) SubmitInbound(ctx context.Context, username string, header InboundHeader) error {
	b := s.carts.Builder(username, cart.FlowInbound)
	items := b.Items()
	if len(items) == 0 || header.Supplier == "" || header.PONumber == "" {
		return fmt.Errorf("%w: supplier, PO number and at least one line are required", ErrIncomplete)
	}

	tx := models.TransactionIn{
		Date:         s.orToday(header.Date),
		Supplier:     header.Supplier,
		PONumber:     header.PONumber,
		DeliveryNote: header.DeliveryNote,
		Items:        items,
		Photos:       header.Photos,
		User:         username,
	}
	if err := s.backend.SaveTransactionIn(ctx, tx); err != nil {
		s.notifier.Notify(notify.LevelError, fmt.Sprintf("Receipt failed: %v", err))
		return err
	}

	b.Clear()
	s.notifier.Notify(notify.LevelSuccess, "Goods receipt processed")
	s.refreshAfterCommit(ctx)
	return nil
}

// OutboundHeader carries the issuance batch fields.
type OutboundHeader struct {
	Date     string `json:"date"`
	Customer string `json:"customer"`
}

// SubmitOutbound sends the accumulated issuance cart as one batch.
func (s *Service) SubmitOutbound(ctx context.Context, username string, header OutboundHeader) error {
	b := s.carts.Builder(username, cart.FlowOutbound)
	items := b.Items()
	if len(items) == 0 || header.Customer == "" {
		return fmt.Errorf("%w: customer and at least one line are required", ErrIncomplete)
	}

	tx := models.TransactionOut{
		Date:     s.orToday(header.Date),
		Customer: header.Customer,
		Items:    items,
		User:     username,
	}
	if err := s.backend.SaveTransactionOut(ctx, tx); err != nil {
		s.notifier.Notify(notify.LevelError, fmt.Sprintf("Issuance failed: %v", err))
		return err
	}

	b.Clear()
	s.notifier.Notify(notify.LevelSuccess, "Goods issuance processed")
	s.refreshAfterCommit(ctx)
	return nil
}

// OpnameHeader carries the physical count batch fields.
type OpnameHeader struct {
	Date string `json:"date"`
}

// SubmitOpname sends the accumulated count cart as one batch.
func (s *Service) SubmitOpname(ctx context.Context, username string, header OpnameHeader) error {
	b := s.carts.Builder(username, cart.FlowOpname)
	lines := b.Lines()
	if len(lines) == 0 {
		return fmt.Errorf("%w: the opname manifest is empty", ErrIncomplete)
	}

	op := models.StockOpname{
		Date:  s.orToday(header.Date),
		Items: lines,
		User:  username,
	}
	if err := s.backend.SaveStockOpname(ctx, op); err != nil {
		s.notifier.Notify(notify.LevelError, fmt.Sprintf("Recalibration failed: %v", err))
		return err
	}

	b.Clear()
	s.notifier.Notify(notify.LevelSuccess, "Stock levels recalibrated")
	s.refreshAfterCommit(ctx)
	return nil
}

// DropCarts discards all carts for an operator, e.g. on logout.
func (s *Service) DropCarts(username string) {
	s.carts.Drop(username)
}

// refreshAfterCommit re-syncs the cache so stock reflects the committed
// batch. The submission already succeeded; a failed refresh is reported
// through the notifier by the cache itself.
func (s *Service) refreshAfterCommit(ctx context.Context) {
	if err := s.cache.Refresh(ctx); err != nil {
		s.logger.Warn("post-commit cache refresh failed", zap.Error(err))
	}
}

func (s *Service) orToday(date string) string {
	if date == "" {
		return s.now().Format(dateLayout)
	}
	return date
}

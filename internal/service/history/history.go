// Package history reconstructs the per-movement running balance for the
// audit timeline. The backend reports movements newest-first; balances are
// computed forward in time from the opening stock and handed back in the
// display order.
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"prostock/internal/domain/models"
)

// conservationTolerance absorbs float representation noise from the wire;
// anything beyond it is a data integrity problem, not rounding.
var conservationTolerance = decimal.New(1, -6)

// ErrNoItem is returned when a report is requested without an item.
var ErrNoItem = errors.New("an item must be selected for the history report")

// ConservationError reports that the reconstructed balance after the newest
// movement does not land on the backend's closing stock. It is never
// silently tolerated: it means the ledger and the movement list disagree.
type ConservationError struct {
	Computed float64
	Reported float64
}

func (e *ConservationError) Error() string {
	return fmt.Sprintf("running balance %g does not match backend closing stock %g", e.Computed, e.Reported)
}

// BalancedMovement pairs a movement with the stock level right after it.
type BalancedMovement struct {
	models.Movement
	Balance float64 `json:"balance"`
}

// Report is the backend report enriched with the reconstructed timeline,
// newest first.
type Report struct {
	models.HistoricalStockReport
	Timeline []BalancedMovement `json:"timeline"`
}

// Reconstruct walks the movements oldest-first starting from the opening
// stock: IN adds the quantity, OUT subtracts it, OPNAME subtracts the
// signed difference (a positive difference reconciles the ledger down to
// the physical count). The returned timeline is newest-first, matching the
// input order.
func Reconstruct(report models.HistoricalStockReport) ([]BalancedMovement, error) {
	running := decimal.NewFromFloat(report.OpeningStock)
	timeline := make([]BalancedMovement, len(report.Movements))

	for i := len(report.Movements) - 1; i >= 0; i-- {
		m := report.Movements[i]
		qty := decimal.NewFromFloat(m.Quantity)

		switch m.Type {
		case models.TypeIn:
			running = running.Add(qty)
		case models.TypeOut:
			running = running.Sub(qty)
		case models.TypeOpname:
			running = running.Sub(qty)
		default:
			return nil, fmt.Errorf("unknown movement type %q in movement %s", m.Type, m.ID)
		}

		balance, _ := running.Float64()
		timeline[i] = BalancedMovement{Movement: m, Balance: balance}
	}

	closing := decimal.NewFromFloat(report.ClosingStock)
	if running.Sub(closing).Abs().GreaterThan(conservationTolerance) {
		computed, _ := running.Float64()
		return nil, &ConservationError{Computed: computed, Reported: report.ClosingStock}
	}

	return timeline, nil
}

// Fetcher is the slice of the backend client this service needs.
type Fetcher interface {
	GetHistoricalStockReport(ctx context.Context, itemID, startDate, endDate string) (*models.HistoricalStockReport, error)
}

// Service fetches reports and reconstructs their timelines.
type Service struct {
	backend Fetcher
	logger  *zap.Logger
}

// NewService wires a history service instance.
func NewService(backend Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, logger: logger}
}

// Fetch loads the report for one item over a period and reconstructs the
// running balances.
func (s *Service) Fetch(ctx context.Context, itemID, startDate, endDate string) (*Report, error) {
	if itemID == "" {
		return nil, ErrNoItem
	}

	report, err := s.backend.GetHistoricalStockReport(ctx, itemID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("load history report: %w", err)
	}

	timeline, err := Reconstruct(*report)
	if err != nil {
		s.logger.Error("history report failed conservation check",
			zap.String("itemId", itemID), zap.Error(err))
		return nil, err
	}

	return &Report{HistoricalStockReport: *report, Timeline: timeline}, nil
}

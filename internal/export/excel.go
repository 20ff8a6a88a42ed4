// Package export builds the downloadable audit workbook from the movement
// ledger.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"prostock/internal/domain/models"
)

// ErrNoRows indicates the filter matched no movements.
var ErrNoRows = errors.New("no transactions match the selected filter")

const sheetName = "Audit_ProStock"

// Ledger is the slice of the RPC client the exporter needs.
type Ledger interface {
	GetTransactions(ctx context.Context) ([]models.Movement, error)
}

// Filter narrows the exported ledger. Zero values mean no constraint.
type Filter struct {
	StartDate string // inclusive, YYYY-MM-DD
	EndDate   string // inclusive, YYYY-MM-DD
	ItemID    string
	Type      models.TransactionType
}

// Service produces xlsx audit exports.
type Service struct {
	ledger Ledger
	logger *zap.Logger
}

// NewService wires an export service instance.
func NewService(ledger Ledger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ledger: ledger, logger: logger}
}

// Workbook fetches the full ledger, applies the filter and renders an xlsx
// workbook. Returns ErrNoRows when nothing matches.
func (s *Service) Workbook(ctx context.Context, filter Filter) ([]byte, error) {
	movements, err := s.ledger.GetTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	rows := applyFilter(movements, filter)
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	s.logger.Info("building audit workbook",
		zap.Int("rows", len(rows)),
		zap.String("itemId", filter.ItemID),
		zap.String("type", string(filter.Type)))

	return render(rows)
}

func applyFilter(movements []models.Movement, filter Filter) []models.Movement {
	var start, end time.Time
	if filter.StartDate != "" {
		start, _ = time.Parse("2006-01-02", filter.StartDate)
	}
	if filter.EndDate != "" {
		// End date is inclusive, so compare against the next midnight.
		if parsed, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			end = parsed.Add(24 * time.Hour)
		}
	}

	var out []models.Movement
	for _, m := range movements {
		if filter.ItemID != "" && m.ItemID != filter.ItemID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if !start.IsZero() || !end.IsZero() {
			ts, err := time.Parse(time.RFC3339, m.Timestamp)
			if err != nil {
				continue
			}
			if !start.IsZero() && ts.Before(start) {
				continue
			}
			if !end.IsZero() && !ts.Before(end) {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

func render(rows []models.Movement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"WAKTU_INPUT", "TIPE", "KODE_BARANG", "NAMA_BARANG", "QTY_PCS", "OPERATOR"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for r, m := range rows {
		values := []interface{}{m.Timestamp, string(m.Type), m.ItemID, m.ItemName, m.Quantity, m.User}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", r+2, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 22); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "B", "F", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

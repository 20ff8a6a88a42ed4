// Package cart implements the shared line-entry workflow used by the
// inbound, outbound and opname transaction flows: select an item, enter a
// quantity in a chosen unit, validate, commit the line, repeat. Lines are
// accumulated in entry order until one atomic batch submission.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prostock/internal/domain/models"
	"prostock/internal/service/units"
)

// Flow identifies which transaction screen a builder belongs to.
type Flow string

const (
	FlowInbound  Flow = "inbound"
	FlowOutbound Flow = "outbound"
	FlowOpname   Flow = "opname"
)

// State is the per-line entry state.
type State string

const (
	StateNoItem          State = "NO_ITEM_SELECTED"
	StateItemSelected    State = "ITEM_SELECTED"
	StateQuantityEntered State = "QUANTITY_ENTERED"
)

var (
	// ErrNoItemSelected is returned when quantity or unit is set before an
	// item has been selected.
	ErrNoItemSelected = errors.New("no item selected")

	// ErrUnknownUnit is returned when the requested unit is not offered for
	// the selected item.
	ErrUnknownUnit = errors.New("unit not offered for this item")

	// ErrInvalidQuantity blocks committing a line without a usable quantity.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrUnknownLine is returned when removing a line that is not in the cart.
	ErrUnknownLine = errors.New("line not found in cart")
)

// Builder accumulates validated lines for one flow. It is safe for
// concurrent use; every entry mutation re-runs validation so the entry
// state always reflects the latest quantity, unit and item.
type Builder struct {
	flow   Flow
	logger *zap.Logger

	mu    sync.Mutex
	entry entry
	lines []models.OpnameItem
}

// entry is the in-progress line between item selection and commit.
type entry struct {
	state         State
	item          models.InventoryItem
	options       []models.UnitOption
	unit          models.UnitOption
	quantity      float64
	remarks       string
	stockSnapshot float64 // cached base stock captured at selection time
	validationErr error
}

// EntrySnapshot is a read-only view of the current entry for presentation.
type EntrySnapshot struct {
	State             State                 `json:"state"`
	Item              *models.InventoryItem `json:"item,omitempty"`
	Options           []models.UnitOption   `json:"options,omitempty"`
	Unit              string                `json:"unit,omitempty"`
	Quantity          float64               `json:"quantity"`
	ConvertedQuantity float64               `json:"convertedQuantity"`
	ValidationError   string                `json:"validationError,omitempty"`
}

// NewBuilder constructs an empty cart builder for the given flow.
func NewBuilder(flow Flow, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{flow: flow, logger: logger}
}

// Flow reports which transaction flow this builder serves.
func (b *Builder) Flow() Flow { return b.flow }

// SelectItem starts a new line entry. The active unit resets to the item's
// default, the quantity resets to the flow default (current system stock for
// opname, zero otherwise) and the item's base stock is snapshotted for
// validation. Selecting while a previous entry is pending discards it.
func (b *Builder) SelectItem(item models.InventoryItem) {
	b.mu.Lock()
	defer b.mu.Unlock()

	opts := units.Options(item)
	b.entry = entry{
		state:         StateItemSelected,
		item:          item,
		options:       opts,
		unit:          opts[0],
		stockSnapshot: item.Stock,
	}
	if b.flow == FlowOpname {
		// Suggest the current system stock as the starting count.
		b.entry.quantity = item.Stock
	}
	b.revalidateLocked()
}

// SetUnit switches the active unit by name.
func (b *Builder) SetUnit(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.entry.state == StateNoItem {
		return ErrNoItemSelected
	}
	opt, ok := units.Find(b.entry.options, name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUnit, name)
	}
	b.entry.unit = opt
	b.revalidateLocked()
	return nil
}

// SetQuantity records the entered quantity (in the active unit).
func (b *Builder) SetQuantity(quantity float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.entry.state == StateNoItem {
		return ErrNoItemSelected
	}
	b.entry.quantity = quantity
	b.entry.state = StateQuantityEntered
	b.revalidateLocked()
	return nil
}

// SetRemarks attaches free-form remarks to the pending line.
func (b *Builder) SetRemarks(remarks string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.entry.state == StateNoItem {
		return ErrNoItemSelected
	}
	b.entry.remarks = remarks
	return nil
}

// revalidateLocked re-runs the sufficiency check for the pending entry.
// Only outbound issuance is gated; inbound receipts are unconstrained and
// opname counts are corrective, never blocked.
func (b *Builder) revalidateLocked() {
	b.entry.validationErr = nil
	if b.flow != FlowOutbound {
		return
	}
	if b.entry.quantity <= 0 {
		return
	}
	b.entry.validationErr = CheckSufficiency(
		b.entry.stockSnapshot,
		b.entry.quantity,
		b.entry.unit,
		b.entry.item.DefaultUnit,
	)
}

// Entry returns a view of the pending line entry.
func (b *Builder) Entry() EntrySnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := EntrySnapshot{
		State:    b.entry.state,
		Quantity: b.entry.quantity,
	}
	if b.entry.state != StateNoItem {
		item := b.entry.item
		snap.Item = &item
		snap.Options = append([]models.UnitOption(nil), b.entry.options...)
		snap.Unit = b.entry.unit.Name
		snap.ConvertedQuantity = units.ToBase(b.entry.quantity, b.entry.unit)
	}
	if b.entry.validationErr != nil {
		snap.ValidationError = b.entry.validationErr.Error()
	}
	return snap
}

// Commit appends the pending entry to the cart and resets the entry state
// so the next item can be selected immediately. A line commits only when
// validation passed (or was inapplicable) and the quantity is usable: for
// opname a zero count is a legitimate full-shortage observation, everywhere
// else the quantity must be positive.
func (b *Builder) Commit() (models.OpnameItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.entry.state == StateNoItem {
		return models.OpnameItem{}, ErrNoItemSelected
	}
	if b.entry.quantity < 0 || (b.flow != FlowOpname && b.entry.quantity <= 0) {
		return models.OpnameItem{}, ErrInvalidQuantity
	}
	if b.entry.validationErr != nil {
		return models.OpnameItem{}, b.entry.validationErr
	}

	converted := units.ToBase(b.entry.quantity, b.entry.unit)
	line := models.OpnameItem{
		TransactionItem: models.TransactionItem{
			LineID:            uuid.NewString(),
			ItemID:            b.entry.item.ID,
			ItemName:          b.entry.item.Name,
			Quantity:          b.entry.quantity,
			Unit:              b.entry.unit.Name,
			ConvertedQuantity: converted,
			Remarks:           b.entry.remarks,
		},
	}
	if b.flow == FlowOpname {
		line.SystemStock = b.entry.stockSnapshot
		line.PhysicalStock = converted
		line.Difference = b.entry.stockSnapshot - converted
		if line.Remarks == "" {
			line.Remarks = fmt.Sprintf("Adjustment via %s", b.entry.unit.Name)
		}
	}

	b.lines = append(b.lines, line)
	b.entry = entry{}
	b.logger.Debug("line committed",
		zap.String("flow", string(b.flow)),
		zap.String("item", line.ItemName),
		zap.Float64("convertedQuantity", line.ConvertedQuantity))
	return line, nil
}

// Remove drops a committed line. Removal is always permitted and never
// re-validates the remaining lines: each was validated independently
// against the stock snapshot taken at its own selection time.
func (b *Builder) Remove(lineID string) (models.OpnameItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, line := range b.lines {
		if line.LineID == lineID {
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
			return line, nil
		}
	}
	return models.OpnameItem{}, ErrUnknownLine
}

// Lines returns a copy of the committed lines in entry order.
func (b *Builder) Lines() []models.OpnameItem {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.OpnameItem, len(b.lines))
	copy(out, b.lines)
	return out
}

// Items returns the committed lines as plain transaction items, in entry
// order, for the inbound and outbound batch payloads.
func (b *Builder) Items() []models.TransactionItem {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.TransactionItem, 0, len(b.lines))
	for _, line := range b.lines {
		out = append(out, line.TransactionItem)
	}
	return out
}

// Len reports the number of committed lines.
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Clear empties the cart after a confirmed submission.
func (b *Builder) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
	b.entry = entry{}
}

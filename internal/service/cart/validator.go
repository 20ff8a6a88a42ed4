package cart

import (
	"fmt"

	"prostock/internal/domain/models"
	"prostock/internal/service/units"
)

// InsufficientStockError blocks an issuance whose converted quantity exceeds
// the cached base stock. It carries the shortage detail for presentation.
type InsufficientStockError struct {
	Requested float64
	Available float64
	Unit      string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: only %g %s available", e.Available, e.Unit)
}

// CheckSufficiency converts the requested quantity to base units and fails
// when it exceeds the available base stock. Requesting exactly the
// available amount passes.
func CheckSufficiency(availableBase, quantity float64, unit models.UnitOption, baseUnit string) error {
	requested := units.ToBase(quantity, unit)
	if requested > availableBase {
		return &InsufficientStockError{
			Requested: requested,
			Available: availableBase,
			Unit:      baseUnit,
		}
	}
	return nil
}

// Package units resolves an item's measurement units and converts
// quantities between a chosen unit and the item's base unit.
package units

import (
	"math"

	"prostock/internal/domain/models"
)

// Options derives the ordered unit list for an item: the default unit first
// (factor 1), then up to three alternates in declared order. Alternates with
// a missing name or a non-positive, NaN or infinite factor are rejected here,
// at the data boundary, so conversion arithmetic never sees them.
func Options(item models.InventoryItem) []models.UnitOption {
	opts := []models.UnitOption{
		{Name: item.DefaultUnit, Factor: 1, IsDefault: true},
	}

	alts := []models.UnitOption{
		{Name: item.AltUnit1, Factor: item.Conv1},
		{Name: item.AltUnit2, Factor: item.Conv2},
		{Name: item.AltUnit3, Factor: item.Conv3},
	}
	for _, alt := range alts {
		if !validFactor(alt) {
			continue
		}
		opts = append(opts, alt)
	}

	return opts
}

// Find returns the option with the given name from opts. The second return
// is false when the name is not offered for this item.
func Find(opts []models.UnitOption, name string) (models.UnitOption, bool) {
	for _, opt := range opts {
		if opt.Name == name {
			return opt, true
		}
	}
	return models.UnitOption{}, false
}

// ToBase converts a quantity expressed in opt into base units.
func ToBase(quantity float64, opt models.UnitOption) float64 {
	return quantity * opt.Factor
}

// FromBase converts a base-unit amount back into opt's unit.
func FromBase(base float64, opt models.UnitOption) float64 {
	return base / opt.Factor
}

func validFactor(opt models.UnitOption) bool {
	if opt.Name == "" {
		return false
	}
	if opt.Factor <= 0 || math.IsNaN(opt.Factor) || math.IsInf(opt.Factor, 0) {
		return false
	}
	return true
}

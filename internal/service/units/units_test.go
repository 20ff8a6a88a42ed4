package units

import (
	"math"
	"testing"

	"prostock/internal/domain/models"
)

func TestOptionsDefaultFirst(t *testing.T) {
	item := models.InventoryItem{
		DefaultUnit: "Pcs",
		AltUnit1:    "Box", Conv1: 12,
		AltUnit2: "Lusin", Conv2: 12,
		AltUnit3: "Pallet", Conv3: 480,
	}

	opts := Options(item)
	if len(opts) != 4 {
		t.Fatalf("got %d options, want 4", len(opts))
	}
	if !opts[0].IsDefault || opts[0].Name != "Pcs" || opts[0].Factor != 1 {
		t.Errorf("first option must be the default unit with factor 1, got %+v", opts[0])
	}
	for i, want := range []string{"Pcs", "Box", "Lusin", "Pallet"} {
		if opts[i].Name != want {
			t.Errorf("opts[%d].Name = %q, want %q (declared order)", i, opts[i].Name, want)
		}
	}
}

func TestOptionsRejectsMalformedAlternates(t *testing.T) {
	tests := []struct {
		name string
		item models.InventoryItem
		want int
	}{
		{"no alternates", models.InventoryItem{DefaultUnit: "Pcs"}, 1},
		{"zero factor", models.InventoryItem{DefaultUnit: "Pcs", AltUnit1: "Box", Conv1: 0}, 1},
		{"negative factor", models.InventoryItem{DefaultUnit: "Pcs", AltUnit1: "Box", Conv1: -5}, 1},
		{"nan factor", models.InventoryItem{DefaultUnit: "Pcs", AltUnit1: "Box", Conv1: math.NaN()}, 1},
		{"missing name", models.InventoryItem{DefaultUnit: "Pcs", Conv1: 10}, 1},
		{"valid mixed with invalid", models.InventoryItem{DefaultUnit: "Pcs", AltUnit1: "Box", Conv1: 12, AltUnit2: "Bad", Conv2: 0}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := len(Options(tc.item)); got != tc.want {
				t.Errorf("got %d options, want %d", got, tc.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	opts := Options(models.InventoryItem{DefaultUnit: "Pcs", AltUnit1: "Box", Conv1: 12})

	box, ok := Find(opts, "Box")
	if !ok || box.Factor != 12 {
		t.Fatalf("Find(Box) = %+v, %v", box, ok)
	}
	if _, ok := Find(opts, "Karung"); ok {
		t.Error("Find must report unknown units")
	}
}

func TestConversionRoundTrip(t *testing.T) {
	item := models.InventoryItem{
		DefaultUnit: "Pcs",
		AltUnit1:    "Box", Conv1: 12,
		AltUnit2: "Karung", Conv2: 0.4,
	}

	quantities := []float64{1, 8, 9.5, 120, 0.25}
	for _, opt := range Options(item) {
		for _, q := range quantities {
			got := FromBase(ToBase(q, opt), opt)
			if math.Abs(got-q) > 1e-9 {
				t.Errorf("round trip %v via %s = %v, want %v", q, opt.Name, got, q)
			}
		}
	}
}

func TestToBaseExample(t *testing.T) {
	box := models.UnitOption{Name: "Box", Factor: 12}
	if got := ToBase(9, box); got != 108 {
		t.Errorf("ToBase(9, Box@12) = %v, want 108", got)
	}
}

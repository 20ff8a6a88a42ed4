package models

// ItemStatus marks whether an item is still in circulation.
type ItemStatus string

const (
	StatusActive   ItemStatus = "ACTIVE"
	StatusInactive ItemStatus = "INACTIVE"
)

// InventoryItem is one stock-keeping unit as served by the backend.
// Stock is always expressed in the item's default (base) unit and is only
// ever mutated by the backend; the client reads it for validation and
// re-fetches after every committed transaction.
type InventoryItem struct {
	ID           string     `json:"id"`
	SKU          string     `json:"sku"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Stock        float64    `json:"stock"`
	MinStock     float64    `json:"minStock"`
	Price        float64    `json:"price"`
	DefaultUnit  string     `json:"defaultUnit"`
	AltUnit1     string     `json:"altUnit1,omitempty"`
	Conv1        float64    `json:"conv1,omitempty"`
	AltUnit2     string     `json:"altUnit2,omitempty"`
	Conv2        float64    `json:"conv2,omitempty"`
	AltUnit3     string     `json:"altUnit3,omitempty"`
	Conv3        float64    `json:"conv3,omitempty"`
	InitialStock float64    `json:"initialStock"`
	Status       ItemStatus `json:"status"`
}

// UnitOption is an ephemeral measurement choice derived from an item at
// selection time. Factor converts one unit of this option into base units.
type UnitOption struct {
	Name      string  `json:"name"`
	Factor    float64 `json:"factor"`
	IsDefault bool    `json:"isDefault"`
}

// Supplier is a counterparty record for inbound receipts.
type Supplier struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

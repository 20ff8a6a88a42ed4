package models

// TransactionType classifies a stock movement.
type TransactionType string

const (
	TypeIn     TransactionType = "IN"
	TypeOut    TransactionType = "OUT"
	TypeOpname TransactionType = "OPNAME"
)

// TransactionItem is one committed cart line. Quantity is in the unit the
// operator typed; ConvertedQuantity is the same amount in base units.
type TransactionItem struct {
	LineID            string  `json:"lineId"`
	ItemID            string  `json:"itemId"`
	ItemName          string  `json:"itemName"`
	Quantity          float64 `json:"quantity"`
	Unit              string  `json:"unit"`
	ConvertedQuantity float64 `json:"convertedQuantity"`
	Remarks           string  `json:"remarks"`
}

// OpnameItem extends a cart line with the physical-count reconciliation
// figures. A positive Difference means the physical count came up short of
// the system record; negative means a surplus was found.
type OpnameItem struct {
	TransactionItem
	SystemStock   float64 `json:"systemStock"`
	PhysicalStock float64 `json:"physicalStock"`
	Difference    float64 `json:"difference"`
}

// TransactionIn is an inbound receipt batch.
type TransactionIn struct {
	ID           string            `json:"id,omitempty"`
	Date         string            `json:"date"`
	Supplier     string            `json:"supplier"`
	PONumber     string            `json:"poNumber"`
	DeliveryNote string            `json:"deliveryNote"`
	Items        []TransactionItem `json:"items"`
	Photos       []string          `json:"photos,omitempty"`
	Timestamp    string            `json:"timestamp,omitempty"`
	User         string            `json:"user"`
}

// TransactionOut is an outbound issuance batch.
type TransactionOut struct {
	ID        string            `json:"id,omitempty"`
	Date      string            `json:"date"`
	Customer  string            `json:"customer"`
	Items     []TransactionItem `json:"items"`
	Timestamp string            `json:"timestamp,omitempty"`
	User      string            `json:"user"`
}

// StockOpname is a physical-count reconciliation batch.
type StockOpname struct {
	ID        string       `json:"id,omitempty"`
	Date      string       `json:"date"`
	Items     []OpnameItem `json:"items"`
	Timestamp string       `json:"timestamp,omitempty"`
	User      string       `json:"user"`
}

// Movement is one flattened ledger entry as returned by GET_TRANSACTIONS
// and inside historical reports. For OPNAME rows Quantity carries the
// signed difference, not the counted amount.
type Movement struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"itemId"`
	ItemName  string          `json:"itemName"`
	Type      TransactionType `json:"type"`
	Quantity  float64         `json:"quantity"`
	Timestamp string          `json:"timestamp"`
	User      string          `json:"user"`
}

package models

// TopItem is one entry of the dashboard's most-issued ranking.
type TopItem struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// DashboardStats is the backend-computed aggregate consumed as-is.
type DashboardStats struct {
	TotalItems           int             `json:"totalItems"`
	TotalStock           float64         `json:"totalStock"`
	LowStockItems        int             `json:"lowStockItems"`
	TransactionsInToday  int             `json:"transactionsInToday"`
	TransactionsOutToday int             `json:"transactionsOutToday"`
	TopItemsOut          []TopItem       `json:"topItemsOut"`
	LowStockList         []InventoryItem `json:"lowStockList"`
}

// HistoricalStockReport is the backend's audit report for one item over a
// period. Movements arrive newest-first; their running balances are
// reconstructed locally.
type HistoricalStockReport struct {
	ItemID          string     `json:"itemId"`
	ItemName        string     `json:"itemName"`
	OpeningStock    float64    `json:"openingStock"`
	TotalIn         float64    `json:"totalIn"`
	TotalOut        float64    `json:"totalOut"`
	TotalAdjustment float64    `json:"totalAdjustment"`
	ClosingStock    float64    `json:"closingStock"`
	Movements       []Movement `json:"movements"`
}

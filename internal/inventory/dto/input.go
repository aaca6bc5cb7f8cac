package dto

// MovementRef ties a stock mutation to the record that caused it.
type MovementRef struct {
	Type string // order, release, restock, adjustment
	ID   string
}

type AdjustStockInput struct {
	ItemID         string
	QuantityChange int
	Notes          string
}

type MovementFilters struct {
	ItemID   string
	Page     int
	PageSize int
}

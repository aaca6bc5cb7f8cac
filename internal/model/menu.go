package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is owned by the catalog service; the fulfillment engine only
// mutates stock_quantity and is_available. The availability flag is not
// derived from stock on read: it flips to false at the moment a
// reservation drains the stock, and the restaurant can toggle it
// independently. auto_disabled records which of the two happened, so a
// release or restock only re-enables items the ledger itself disabled.
type MenuItem struct {
	ID            string          `db:"id" json:"id"`
	RestaurantID  string          `db:"restaurant_id" json:"restaurant_id"`
	CategoryID    *string         `db:"category_id" json:"category_id"`
	Name          string          `db:"name" json:"name"`
	Description   *string         `db:"description" json:"description"`
	Price         decimal.Decimal `db:"price" json:"price"`
	ImageURL      *string         `db:"image_url" json:"image_url"`
	IsVeg         bool            `db:"is_veg" json:"is_veg"`
	StockQuantity int             `db:"stock_quantity" json:"stock_quantity"`
	IsAvailable   bool            `db:"is_available" json:"is_available"`
	AutoDisabled  bool            `db:"auto_disabled" json:"-"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// StockMovement is the audit trail for every stock mutation.
type StockMovement struct {
	ID             string    `db:"id" json:"id"`
	ItemID         string    `db:"item_id" json:"item_id"`
	MovementType   string    `db:"movement_type" json:"movement_type"` // reserve, release, restock, adjustment
	QuantityChange int       `db:"quantity_change" json:"quantity_change"`
	QuantityAfter  int       `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string   `db:"reference_type" json:"reference_type"`
	ReferenceID    *string   `db:"reference_id" json:"reference_id"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

const (
	MovementReserve    = "reserve"
	MovementRelease    = "release"
	MovementRestock    = "restock"
	MovementAdjustment = "adjustment"
)

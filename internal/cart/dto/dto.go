package dto

import (
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/shopspring/decimal"
)

type AddItemInput struct {
	ItemID   string   `json:"item_id" validate:"required"`
	Quantity int      `json:"quantity" validate:"required,min=1"`
	Variants []string `json:"variants"`
	Addons   []string `json:"addons"`
}

type UpdateLineInput struct {
	Quantity int `json:"quantity"`
}

// LineDetail joins a cart line with the live menu item fields the cart
// needs for advisory checks and live pricing.
type LineDetail struct {
	model.CartLine
	ItemName      string          `db:"item_name" json:"item_name"`
	UnitPrice     decimal.Decimal `db:"unit_price" json:"unit_price"`
	RestaurantID  string          `db:"restaurant_id" json:"restaurant_id"`
	StockQuantity int             `db:"stock_quantity" json:"stock_quantity"`
	IsAvailable   bool            `db:"is_available" json:"is_available"`
}

// CartView prices the cart live: the subtotal tracks current menu
// prices, only orders freeze them.
type CartView struct {
	Cart        *model.Cart     `json:"cart"`
	Lines       []LineDetail    `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

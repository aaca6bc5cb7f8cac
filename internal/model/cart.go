package model

import "time"

// Cart is created lazily on first add and emptied on checkout or clear.
// One cart per customer.
type Cart struct {
	ID         string    `db:"id" json:"id"`
	CustomerID string    `db:"customer_id" json:"customer_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CartLine struct {
	ID       string    `db:"id" json:"id"`
	CartID   string    `db:"cart_id" json:"cart_id"`
	ItemID   string    `db:"item_id" json:"item_id"`
	Quantity int       `db:"quantity" json:"quantity"`
	Variants Tags      `db:"variants" json:"variants"`
	Addons   Tags      `db:"addons" json:"addons"`
	AddedAt  time.Time `db:"added_at" json:"added_at"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReadyForPickup OrderStatus = "ready_for_pickup"
	OrderStatusRiderAssigned  OrderStatus = "rider_assigned"
	OrderStatusPickedUp       OrderStatus = "picked_up"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// ActiveDeliveryStatuses are the in-progress delivery states counted by
// the single-active-delivery-per-rider invariant.
var ActiveDeliveryStatuses = []OrderStatus{
	OrderStatusRiderAssigned,
	OrderStatusPickedUp,
	OrderStatusOutForDelivery,
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) Known() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReadyForPickup,
		OrderStatusRiderAssigned, OrderStatusPickedUp, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

const (
	PaymentCOD  = "cod"
	PaymentCard = "card"
	PaymentBank = "bank"
)

// Order is created once by checkout and then mutated only through
// state-machine transitions. Never deleted; cancellation is a status.
// Either AddressID or the three delivery_* columns are set, never both.
type Order struct {
	ID            string          `db:"id" json:"id"`
	CustomerID    string          `db:"customer_id" json:"customer_id"`
	RestaurantID  string          `db:"restaurant_id" json:"restaurant_id"`
	RiderID       *string         `db:"rider_id" json:"rider_id"`
	AddressID     *string         `db:"address_id" json:"address_id"`
	DeliveryLat   *float64        `db:"delivery_lat" json:"delivery_lat"`
	DeliveryLng   *float64        `db:"delivery_lng" json:"delivery_lng"`
	DeliveryText  *string         `db:"delivery_text" json:"delivery_text"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	DeliveryFee   decimal.Decimal `db:"delivery_fee" json:"delivery_fee"`
	Total         decimal.Decimal `db:"total" json:"total"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	PaymentStatus string          `db:"payment_status" json:"payment_status"`
	Status        OrderStatus     `db:"status" json:"status"`
	Note          *string         `db:"note" json:"note"`
	PrepTimeMin   *int            `db:"prep_time_minutes" json:"prep_time_minutes"`
	AcceptedAt    *time.Time      `db:"accepted_at" json:"accepted_at"`
	ReadyAt       *time.Time      `db:"ready_at" json:"ready_at"`
	AssignedAt    *time.Time      `db:"assigned_at" json:"assigned_at"`
	PickedUpAt    *time.Time      `db:"picked_up_at" json:"picked_up_at"`
	DeliveredAt   *time.Time      `db:"delivered_at" json:"delivered_at"`
	CancelledAt   *time.Time      `db:"cancelled_at" json:"cancelled_at"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`

	Lines []OrderLine `db:"-" json:"lines,omitempty"`
}

// OrderLine is a frozen snapshot: item name, unit price and tags are
// copied at checkout so later menu edits never alter history.
type OrderLine struct {
	ID        string          `db:"id" json:"id"`
	OrderID   string          `db:"order_id" json:"order_id"`
	ItemID    string          `db:"item_id" json:"item_id"`
	ItemName  string          `db:"item_name" json:"item_name"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	Variants  Tags            `db:"variants" json:"variants"`
	Addons    Tags            `db:"addons" json:"addons"`
}

// Address belongs to the account service's address book; read-only here.
type Address struct {
	ID          string  `db:"id" json:"id"`
	UserID      string  `db:"user_id" json:"user_id"`
	Title       string  `db:"title" json:"title"`
	AddressText string  `db:"address_text" json:"address_text"`
	Lat         float64 `db:"lat" json:"lat"`
	Lng         float64 `db:"lng" json:"lng"`
	IsDefault   bool    `db:"is_default" json:"is_default"`
}

// Review exists at most once per order and only after delivery.
type Review struct {
	ID        string    `db:"id" json:"id"`
	OrderID   string    `db:"order_id" json:"order_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   *string   `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// OrderChatMessage sender must be the customer, the restaurant, or the
// assigned rider.
type OrderChatMessage struct {
	ID        string    `db:"id" json:"id"`
	OrderID   string    `db:"order_id" json:"order_id"`
	SenderID  string    `db:"sender_id" json:"sender_id"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

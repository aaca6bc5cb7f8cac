package order

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/model"
)

type Repository interface {
	// CreateCheckout is the one transaction of checkout: reserve stock
	// for every line of o.Lines in the given sequence, insert the order
	// with its frozen snapshot, and clear the cart. A failed reservation
	// rolls everything back and surfaces the offending item's conflict.
	CreateCheckout(ctx context.Context, o *model.Order, cartID string) error

	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]model.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string, statuses []model.OrderStatus) ([]model.Order, error)

	// UpdateStatus flips from→to in one conditional statement, stamping
	// the transition timestamp for to. Returns false when the order was
	// no longer in from.
	UpdateStatus(ctx context.Context, orderID string, from, to model.OrderStatus, prepTimeMin *int) (bool, error)

	// CancelAndRestock flips to cancelled and releases every reserved
	// line in the same transaction.
	CancelAndRestock(ctx context.Context, orderID string, from model.OrderStatus) (bool, error)

	// Deliver flips out_for_delivery→delivered for the assigned rider
	// and credits the restaurant's earnings in the same transaction, so
	// the settlement fires exactly once per order.
	Deliver(ctx context.Context, orderID, riderID string) (bool, error)

	GetAddress(ctx context.Context, addressID, userID string) (*model.Address, error)

	GetReviewByOrder(ctx context.Context, orderID string) (*model.Review, error)
	InsertReview(ctx context.Context, r *model.Review) error

	ListChatMessages(ctx context.Context, orderID string) ([]model.OrderChatMessage, error)
	InsertChatMessage(ctx context.Context, m *model.OrderChatMessage) error
}

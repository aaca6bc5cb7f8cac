package rider

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/model"
)

type Repository interface {
	UpsertPresence(ctx context.Context, riderID string, online bool) (*model.RiderProfile, error)
	GetProfile(ctx context.Context, riderID string) (*model.RiderProfile, error)

	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	// MatchOrder assigns the first free online rider to a ready order.
	// ok is false when no rider qualifies or the order is no longer
	// assignable.
	MatchOrder(ctx context.Context, orderID string) (riderID string, ok bool, err error)
	// ClaimOrder is the rider-initiated variant of MatchOrder; the
	// returned error carries the precise conflict when the claim loses.
	ClaimOrder(ctx context.Context, orderID, riderID string) error

	ActiveOrder(ctx context.Context, riderID string) (*model.Order, error)
	ListAvailableOrders(ctx context.Context) ([]model.Order, error)
}

package rider

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/quickeats/fulfillment-service/internal/rider/dto"
)

type UseCase interface {
	// Match satisfies the order matcher contract: fired when an order
	// becomes ready for pickup.
	Match(ctx context.Context, orderID string)

	SetOnline(ctx context.Context, actor auth.Actor, input *dto.SetOnlineInput) (*model.RiderProfile, error)
	UpdateLocation(ctx context.Context, actor auth.Actor, input *dto.LocationInput) error
	OrderRiderLocation(ctx context.Context, actor auth.Actor, orderID string) (*model.RiderLocation, error)

	Accept(ctx context.Context, actor auth.Actor, orderID string) (*model.Order, error)
	CurrentOrder(ctx context.Context, actor auth.Actor) (*model.Order, error)
	ListAvailableOrders(ctx context.Context, actor auth.Actor) ([]model.Order, error)
}

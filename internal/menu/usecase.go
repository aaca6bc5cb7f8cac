package menu

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/model"
)

type UseCase interface {
	GetItem(ctx context.Context, itemID string) (*model.MenuItem, error)
	ListItems(ctx context.Context, restaurantID string) ([]model.MenuItem, error)
	SetAvailability(ctx context.Context, actor auth.Actor, itemID string, available bool) (*model.MenuItem, error)
}

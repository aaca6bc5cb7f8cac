package cart

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/cart/dto"
	"github.com/quickeats/fulfillment-service/internal/model"
)

type UseCase interface {
	AddItem(ctx context.Context, actor auth.Actor, input *dto.AddItemInput) (*model.CartLine, error)
	UpdateLine(ctx context.Context, actor auth.Actor, lineID string, quantity int) error
	RemoveLine(ctx context.Context, actor auth.Actor, lineID string) error
	Clear(ctx context.Context, actor auth.Actor) error
	Get(ctx context.Context, actor auth.Actor) (*dto.CartView, error)
}

package inventory

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/inventory/dto"
	"github.com/quickeats/fulfillment-service/internal/model"
)

type UseCase interface {
	Reserve(ctx context.Context, itemID string, qty int, ref dto.MovementRef) error
	Release(ctx context.Context, itemID string, qty int, ref dto.MovementRef) error
	AdjustStock(ctx context.Context, actor auth.Actor, input *dto.AdjustStockInput) (*model.MenuItem, error)
	ListMovements(ctx context.Context, actor auth.Actor, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}

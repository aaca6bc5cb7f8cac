package usecase

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/inventory"
	"github.com/quickeats/fulfillment-service/internal/inventory/dto"
	"github.com/quickeats/fulfillment-service/internal/model"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	logger *zap.Logger
}

func NewInventoryUseCase(repo inventory.Repository, log *zap.Logger) inventory.UseCase {
	return &inventoryUseCase{repo: repo, logger: log}
}

func (uc *inventoryUseCase) Reserve(ctx context.Context, itemID string, qty int, ref dto.MovementRef) error {
	return uc.repo.Reserve(ctx, itemID, qty, ref)
}

func (uc *inventoryUseCase) Release(ctx context.Context, itemID string, qty int, ref dto.MovementRef) error {
	return uc.repo.Release(ctx, itemID, qty, ref)
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, actor auth.Actor, input *dto.AdjustStockInput) (*model.MenuItem, error) {
	if err := uc.authorizeOwner(ctx, actor, input.ItemID); err != nil {
		return nil, err
	}
	if input.QuantityChange == 0 {
		return nil, apperr.Validation("invalid_quantity", "quantity change must be non-zero")
	}

	item, err := uc.repo.Adjust(ctx, input.ItemID, input.QuantityChange, input.Notes)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("stock adjusted",
		zap.String("item_id", input.ItemID),
		zap.Int("change", input.QuantityChange),
		zap.Int("stock", item.StockQuantity))
	return item, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, actor auth.Actor, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	if err := uc.authorizeOwner(ctx, actor, filters.ItemID); err != nil {
		return nil, 0, err
	}
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *inventoryUseCase) authorizeOwner(ctx context.Context, actor auth.Actor, itemID string) error {
	if actor.Role != auth.RoleRestaurant && actor.Role != auth.RoleAdmin {
		return apperr.Authorization("forbidden", "only the restaurant can manage stock")
	}
	item, err := uc.repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if actor.Role == auth.RoleRestaurant && item.RestaurantID != actor.ID {
		return apperr.NotFound("item_not_found", "menu item not found")
	}
	return nil
}

package inventory

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/inventory/dto"
	"github.com/quickeats/fulfillment-service/internal/model"
)

type Repository interface {
	GetItem(ctx context.Context, itemID string) (*model.MenuItem, error)

	// Reserve atomically checks availability and stock and decrements in
	// a single conditional statement; sets is_available = false when the
	// decrement drains the stock. Returns item_unavailable or
	// insufficient_stock conflicts.
	Reserve(ctx context.Context, itemID string, qty int, ref dto.MovementRef) error

	// Release is the compensating increment for a failed or cancelled
	// reservation.
	Release(ctx context.Context, itemID string, qty int, ref dto.MovementRef) error

	// Adjust applies a manual restock/correction and logs it.
	Adjust(ctx context.Context, itemID string, delta int, notes string) (*model.MenuItem, error)

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}

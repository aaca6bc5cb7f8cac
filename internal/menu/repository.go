package menu

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/model"
)

type Repository interface {
	GetItem(ctx context.Context, itemID string) (*model.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]model.MenuItem, error)
	// SetAvailability flips the manual flag; scoped to the owning
	// restaurant. Returns false when no row matched.
	SetAvailability(ctx context.Context, itemID, restaurantID string, available bool) (bool, error)
}

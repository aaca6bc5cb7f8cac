package cart

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/cart/dto"
	"github.com/quickeats/fulfillment-service/internal/model"
)

type Repository interface {
	// GetByCustomer returns nil when the customer has no cart yet.
	GetByCustomer(ctx context.Context, customerID string) (*model.Cart, error)
	GetOrCreate(ctx context.Context, customerID string) (*model.Cart, error)

	ListLines(ctx context.Context, cartID string) ([]dto.LineDetail, error)
	GetLine(ctx context.Context, cartID, lineID string) (*dto.LineDetail, error)
	InsertLine(ctx context.Context, line *model.CartLine) error
	UpdateLineQuantity(ctx context.Context, lineID string, quantity int) error
	DeleteLine(ctx context.Context, cartID, lineID string) (bool, error)
	ClearByCart(ctx context.Context, cartID string) error
}

package earnings

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// GetOrInit returns the ledger row, creating a zeroed one at the
	// default commission rate when the restaurant has none yet.
	GetOrInit(ctx context.Context, restaurantID string) (*model.RestaurantEarnings, error)

	// Withdraw debits available_balance and creates the pending request
	// in one transaction; the debit is conditional on sufficient
	// balance.
	Withdraw(ctx context.Context, restaurantID string, amount decimal.Decimal) (*model.WithdrawalRequest, error)

	ListWithdrawals(ctx context.Context, restaurantID string) ([]model.WithdrawalRequest, error)
}

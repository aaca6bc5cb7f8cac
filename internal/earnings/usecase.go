package earnings

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/shopspring/decimal"
)

type UseCase interface {
	GetEarnings(ctx context.Context, actor auth.Actor) (*model.RestaurantEarnings, error)
	RequestWithdrawal(ctx context.Context, actor auth.Actor, amount decimal.Decimal) (*model.WithdrawalRequest, error)
	ListWithdrawals(ctx context.Context, actor auth.Actor) ([]model.WithdrawalRequest, error)
}

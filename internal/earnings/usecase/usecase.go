package usecase

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/earnings"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type earningsUseCase struct {
	repo   earnings.Repository
	logger *zap.Logger
}

func NewEarningsUseCase(repo earnings.Repository, log *zap.Logger) earnings.UseCase {
	return &earningsUseCase{repo: repo, logger: log}
}

func (uc *earningsUseCase) GetEarnings(ctx context.Context, actor auth.Actor) (*model.RestaurantEarnings, error) {
	if actor.Role != auth.RoleRestaurant {
		return nil, apperr.Authorization("forbidden", "only restaurants have earnings")
	}
	return uc.repo.GetOrInit(ctx, actor.ID)
}

func (uc *earningsUseCase) RequestWithdrawal(ctx context.Context, actor auth.Actor, amount decimal.Decimal) (*model.WithdrawalRequest, error) {
	if actor.Role != auth.RoleRestaurant {
		return nil, apperr.Authorization("forbidden", "only restaurants can withdraw")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.Validation("invalid_amount", "withdrawal amount must be positive")
	}

	w, err := uc.repo.Withdraw(ctx, actor.ID, amount)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("withdrawal requested",
		zap.String("restaurant_id", actor.ID),
		zap.String("amount", amount.String()))
	return w, nil
}

func (uc *earningsUseCase) ListWithdrawals(ctx context.Context, actor auth.Actor) ([]model.WithdrawalRequest, error) {
	if actor.Role != auth.RoleRestaurant {
		return nil, apperr.Authorization("forbidden", "only restaurants can withdraw")
	}
	return uc.repo.ListWithdrawals(ctx, actor.ID)
}

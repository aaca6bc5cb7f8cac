package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/earnings"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB          *sqlx.DB
	defaultRate decimal.Decimal
}

func NewPGRepository(db *sqlx.DB, defaultCommissionRate decimal.Decimal) *PGRepository {
	return &PGRepository{DB: db, defaultRate: defaultCommissionRate}
}

func (r *PGRepository) ensureRow(ctx context.Context, ex sqlx.ExtContext, restaurantID string) error {
	_, err := ex.ExecContext(ctx, `
        INSERT INTO restaurant_earnings (restaurant_id, total_earnings, available_balance, pending_balance, total_withdrawn, commission_rate, updated_at)
        VALUES ($1, 0, 0, 0, 0, $2, now())
        ON CONFLICT (restaurant_id) DO NOTHING
    `, restaurantID, r.defaultRate)
	return err
}

func (r *PGRepository) GetOrInit(ctx context.Context, restaurantID string) (*model.RestaurantEarnings, error) {
	if err := r.ensureRow(ctx, r.DB, restaurantID); err != nil {
		return nil, err
	}
	var e model.RestaurantEarnings
	err := r.DB.GetContext(ctx, &e,
		`SELECT * FROM restaurant_earnings WHERE restaurant_id = $1`, restaurantID)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreditTx adds the restaurant share for one delivered order. Runs on
// the caller's transaction: the delivered status flip and this credit
// commit or roll back together. The rate row is locked so a concurrent
// rate change cannot slip between read and credit.
func (r *PGRepository) CreditTx(ctx context.Context, tx *sqlx.Tx, restaurantID, orderID string, total decimal.Decimal) (decimal.Decimal, error) {
	if err := r.ensureRow(ctx, tx, restaurantID); err != nil {
		return decimal.Zero, err
	}

	var rate decimal.Decimal
	if err := tx.GetContext(ctx, &rate,
		`SELECT commission_rate FROM restaurant_earnings WHERE restaurant_id = $1 FOR UPDATE`, restaurantID); err != nil {
		return decimal.Zero, err
	}

	_, share := earnings.Split(total, rate)
	_, err := tx.ExecContext(ctx, `
        UPDATE restaurant_earnings
        SET total_earnings = total_earnings + $2,
            available_balance = available_balance + $2,
            updated_at = now()
        WHERE restaurant_id = $1
    `, restaurantID, share)
	if err != nil {
		return decimal.Zero, err
	}

	// Settlement audit row, keyed by order so a replayed credit would
	// violate the unique constraint instead of double counting.
	_, err = tx.ExecContext(ctx, `
        INSERT INTO earnings_credits (order_id, restaurant_id, amount, created_at)
        VALUES ($1, $2, $3, now())
    `, orderID, restaurantID, share)
	if err != nil {
		return decimal.Zero, err
	}
	return share, nil
}

func (r *PGRepository) Withdraw(ctx context.Context, restaurantID string, amount decimal.Decimal) (*model.WithdrawalRequest, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
        UPDATE restaurant_earnings
        SET available_balance = available_balance - $2,
            total_withdrawn = total_withdrawn + $2,
            updated_at = now()
        WHERE restaurant_id = $1 AND available_balance >= $2
    `, restaurantID, amount)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperr.Conflict("insufficient_balance", "withdrawal amount exceeds available balance")
	}

	w := &model.WithdrawalRequest{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Amount:       amount,
		Status:       model.WithdrawalPending,
		RequestedAt:  time.Now(),
	}
	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO withdrawal_requests (id, restaurant_id, amount, status, requested_at)
        VALUES (:id, :restaurant_id, :amount, :status, :requested_at)
    `, w)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *PGRepository) ListWithdrawals(ctx context.Context, restaurantID string) ([]model.WithdrawalRequest, error) {
	var items []model.WithdrawalRequest
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM withdrawal_requests WHERE restaurant_id = $1 ORDER BY requested_at DESC`, restaurantID)
	return items, err
}

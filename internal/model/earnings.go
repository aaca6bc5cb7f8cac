package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestaurantEarnings is credited incrementally, once per delivered
// order. TotalEarnings is monotonically non-decreasing; the available
// balance also drops on withdrawals.
type RestaurantEarnings struct {
	RestaurantID     string          `db:"restaurant_id" json:"restaurant_id"`
	TotalEarnings    decimal.Decimal `db:"total_earnings" json:"total_earnings"`
	AvailableBalance decimal.Decimal `db:"available_balance" json:"available_balance"`
	PendingBalance   decimal.Decimal `db:"pending_balance" json:"pending_balance"`
	TotalWithdrawn   decimal.Decimal `db:"total_withdrawn" json:"total_withdrawn"`
	CommissionRate   decimal.Decimal `db:"commission_rate" json:"commission_rate"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "pending"
	WithdrawalProcessing WithdrawalStatus = "processing"
	WithdrawalCompleted  WithdrawalStatus = "completed"
	WithdrawalRejected   WithdrawalStatus = "rejected"
)

type WithdrawalRequest struct {
	ID           string           `db:"id" json:"id"`
	RestaurantID string           `db:"restaurant_id" json:"restaurant_id"`
	Amount       decimal.Decimal  `db:"amount" json:"amount"`
	Status       WithdrawalStatus `db:"status" json:"status"`
	RequestedAt  time.Time        `db:"requested_at" json:"requested_at"`
	ProcessedAt  *time.Time       `db:"processed_at" json:"processed_at"`
}

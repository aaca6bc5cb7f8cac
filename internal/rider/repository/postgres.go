package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/quickeats/fulfillment-service/internal/rider"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

var _ rider.Repository = (*PGRepository)(nil)

func (r *PGRepository) UpsertPresence(ctx context.Context, riderID string, online bool) (*model.RiderProfile, error) {
	var p model.RiderProfile
	err := r.DB.GetContext(ctx, &p, `
        INSERT INTO rider_profiles (rider_id, is_online, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (rider_id) DO UPDATE
        SET is_online = EXCLUDED.is_online, updated_at = now()
        RETURNING *
    `, riderID, online)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) GetProfile(ctx context.Context, riderID string) (*model.RiderProfile, error) {
	var p model.RiderProfile
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM rider_profiles WHERE rider_id = $1`, riderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("rider_not_found", "rider profile not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1`, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("order_not_found", "order not found")
		}
		return nil, err
	}
	return &o, nil
}

// The NOT EXISTS guards in the claim statements only see each
// statement's own snapshot: two claims of different orders for the same
// rider update different rows and neither blocks the other. The partial
// unique index uq_orders_rider_active is what actually holds the
// one-active-delivery-per-rider invariant across rows.
func isActiveDeliveryViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		pgErr.ConstraintName == "uq_orders_rider_active"
}

// MatchOrder picks the first online rider with no delivery in progress
// and assigns them in a single statement, so two concurrent matches can
// never hand the same order two riders. A candidate who picks up another
// delivery between selection and write trips the unique index; the next
// attempt re-selects without them.
func (r *PGRepository) MatchOrder(ctx context.Context, orderID string) (string, bool, error) {
	for attempt := 0; attempt < 3; attempt++ {
		riderID, ok, err := r.matchOnce(ctx, orderID)
		if err == nil {
			return riderID, ok, nil
		}
		if !isActiveDeliveryViolation(err) {
			return "", false, err
		}
	}
	return "", false, nil
}

func (r *PGRepository) matchOnce(ctx context.Context, orderID string) (string, bool, error) {
	var riderID string
	err := r.DB.GetContext(ctx, &riderID, `
        UPDATE orders o
        SET rider_id = c.rider_id,
            status = 'rider_assigned',
            assigned_at = now(),
            updated_at = now()
        FROM (
            SELECT rp.rider_id
            FROM rider_profiles rp
            WHERE rp.is_online = true
              AND NOT EXISTS (
                  SELECT 1 FROM orders a
                  WHERE a.rider_id = rp.rider_id
                    AND a.status IN ('rider_assigned', 'picked_up', 'out_for_delivery')
              )
            ORDER BY rp.updated_at, rp.rider_id
            LIMIT 1
        ) c
        WHERE o.id = $1
          AND o.status = 'ready_for_pickup'
          AND o.rider_id IS NULL
        RETURNING c.rider_id
    `, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return riderID, true, nil
}

func (r *PGRepository) ClaimOrder(ctx context.Context, orderID, riderID string) error {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE orders
        SET rider_id = $2,
            status = 'rider_assigned',
            assigned_at = now(),
            updated_at = now()
        WHERE id = $1
          AND status = 'ready_for_pickup'
          AND rider_id IS NULL
          AND EXISTS (
              SELECT 1 FROM rider_profiles rp
              WHERE rp.rider_id = $2 AND rp.is_online = true
          )
          AND NOT EXISTS (
              SELECT 1 FROM orders a
              WHERE a.rider_id = $2
                AND a.status IN ('rider_assigned', 'picked_up', 'out_for_delivery')
          )
    `, orderID, riderID)
	if err != nil {
		if isActiveDeliveryViolation(err) {
			return apperr.Conflict("rider_has_active_delivery", "finish your current delivery first")
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	return r.claimFailure(ctx, orderID, riderID)
}

// claimFailure re-reads state to report why the guarded claim matched
// nothing. Best effort: the losing race is reported even if state moved
// again in between.
func (r *PGRepository) claimFailure(ctx context.Context, orderID, riderID string) error {
	var o struct {
		Status  model.OrderStatus `db:"status"`
		RiderID *string           `db:"rider_id"`
	}
	err := r.DB.GetContext(ctx, &o, `SELECT status, rider_id FROM orders WHERE id = $1`, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("order_not_found", "order not found")
		}
		return err
	}
	if o.RiderID != nil {
		return apperr.Conflict("order_already_assigned", "order has already been assigned to another rider")
	}
	if o.Status != model.OrderStatusReadyForPickup {
		return apperr.Conflict("order_not_ready", "order is not ready for pickup")
	}

	var online bool
	err = r.DB.GetContext(ctx, &online,
		`SELECT is_online FROM rider_profiles WHERE rider_id = $1`, riderID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if !online {
		return apperr.Conflict("rider_offline", "go online before accepting orders")
	}
	return apperr.Conflict("rider_has_active_delivery", "finish your current delivery first")
}

func (r *PGRepository) ActiveOrder(ctx context.Context, riderID string) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, `
        SELECT * FROM orders
        WHERE rider_id = $1
          AND status IN ('rider_assigned', 'picked_up', 'out_for_delivery')
        ORDER BY assigned_at DESC
        LIMIT 1
    `, riderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) ListAvailableOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.SelectContext(ctx, &orders, `
        SELECT * FROM orders
        WHERE status = 'ready_for_pickup' AND rider_id IS NULL
        ORDER BY ready_at
    `)
	return orders, err
}

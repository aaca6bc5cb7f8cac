package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/quickeats/fulfillment-service/internal/apperr"
	earnrepo "github.com/quickeats/fulfillment-service/internal/earnings/repository"
	invdto "github.com/quickeats/fulfillment-service/internal/inventory/dto"
	invrepo "github.com/quickeats/fulfillment-service/internal/inventory/repository"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB       *sqlx.DB
	ledger   *invrepo.PGRepository
	earnings *earnrepo.PGRepository
}

func NewPGRepository(db *sqlx.DB, ledger *invrepo.PGRepository, earnings *earnrepo.PGRepository) *PGRepository {
	return &PGRepository{DB: db, ledger: ledger, earnings: earnings}
}

// CreateCheckout reserves stock for every snapshot line, inserts the
// order, and empties the cart — one transaction. The caller hands the
// lines pre-sorted by item id so concurrent checkouts sharing items
// always lock rows in the same sequence.
func (r *PGRepository) CreateCheckout(ctx context.Context, o *model.Order, cartID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range o.Lines {
		line := &o.Lines[i]
		ref := invdto.MovementRef{Type: "order", ID: o.ID}
		if err := r.ledger.ReserveTx(ctx, tx, line.ItemID, line.Quantity, ref); err != nil {
			return err
		}
	}

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO orders (
            id, customer_id, restaurant_id, rider_id, address_id,
            delivery_lat, delivery_lng, delivery_text,
            subtotal, delivery_fee, total, payment_method, payment_status,
            status, note, prep_time_minutes, created_at, updated_at
        ) VALUES (
            :id, :customer_id, :restaurant_id, :rider_id, :address_id,
            :delivery_lat, :delivery_lng, :delivery_text,
            :subtotal, :delivery_fee, :total, :payment_method, :payment_status,
            :status, :note, :prep_time_minutes, :created_at, :updated_at
        )
    `, o)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range o.Lines {
		_, err = tx.NamedExecContext(ctx, `
            INSERT INTO order_lines (id, order_id, item_id, item_name, quantity, unit_price, variants, addons)
            VALUES (:id, :order_id, :item_id, :item_name, :quantity, :unit_price, :variants, :addons)
        `, &o.Lines[i])
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("order_not_found", "order not found")
		}
		return nil, err
	}

	if err := r.DB.SelectContext(ctx, &o.Lines,
		`SELECT * FROM order_lines WHERE order_id = $1`, id); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) ListByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.SelectContext(ctx, &orders,
		`SELECT * FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
	return orders, err
}

func (r *PGRepository) ListByRestaurant(ctx context.Context, restaurantID string, statuses []model.OrderStatus) ([]model.Order, error) {
	query := `SELECT * FROM orders WHERE restaurant_id = ?`
	args := []interface{}{restaurantID}

	if len(statuses) > 0 {
		in := make([]string, len(statuses))
		for i, s := range statuses {
			in[i] = string(s)
		}
		var err error
		query, args, err = sqlx.In(query+` AND status IN (?)`, restaurantID, in)
		if err != nil {
			return nil, err
		}
	}
	query = r.DB.Rebind(query + ` ORDER BY created_at DESC`)

	var orders []model.Order
	err := r.DB.SelectContext(ctx, &orders, query, args...)
	return orders, err
}

// UpdateStatus performs the guarded flip. Reading the current status,
// validating, and writing the new one happens as one conditional
// statement: of two racing transition requests only one matches.
func (r *PGRepository) UpdateStatus(ctx context.Context, orderID string, from, to model.OrderStatus, prepTimeMin *int) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE orders
        SET status = $3,
            updated_at = now(),
            prep_time_minutes = COALESCE($4, prep_time_minutes),
            accepted_at  = CASE WHEN $3 = 'preparing'        THEN now() ELSE accepted_at END,
            ready_at     = CASE WHEN $3 = 'ready_for_pickup' THEN now() ELSE ready_at END,
            picked_up_at = CASE WHEN $3 = 'picked_up'        THEN now() ELSE picked_up_at END
        WHERE id = $1 AND status = $2
    `, orderID, string(from), string(to), prepTimeMin)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PGRepository) CancelAndRestock(ctx context.Context, orderID string, from model.OrderStatus) (bool, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
        UPDATE orders
        SET status = 'cancelled', cancelled_at = now(), updated_at = now()
        WHERE id = $1 AND status = $2
    `, orderID, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	var lines []model.OrderLine
	if err := tx.SelectContext(ctx, &lines,
		`SELECT * FROM order_lines WHERE order_id = $1`, orderID); err != nil {
		return false, err
	}
	for i := range lines {
		ref := invdto.MovementRef{Type: "release", ID: orderID}
		if err := r.ledger.ReleaseTx(ctx, tx, lines[i].ItemID, lines[i].Quantity, ref); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// Deliver flips the final edge and settles earnings atomically. The
// settlement is a side effect of this specific edge only: a second call
// finds the order already delivered, matches no row, and credits
// nothing.
func (r *PGRepository) Deliver(ctx context.Context, orderID, riderID string) (bool, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var delivered struct {
		RestaurantID string          `db:"restaurant_id"`
		Total        decimal.Decimal `db:"total"`
	}
	err = tx.GetContext(ctx, &delivered, `
        UPDATE orders
        SET status = 'delivered', delivered_at = now(), updated_at = now(),
            payment_status = CASE WHEN payment_method = 'cod' THEN 'paid' ELSE payment_status END
        WHERE id = $1 AND status = 'out_for_delivery' AND rider_id = $2
        RETURNING restaurant_id, total
    `, orderID, riderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	if _, err := r.earnings.CreditTx(ctx, tx, delivered.RestaurantID, orderID, delivered.Total); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *PGRepository) GetAddress(ctx context.Context, addressID, userID string) (*model.Address, error) {
	var addr model.Address
	err := r.DB.GetContext(ctx, &addr,
		`SELECT * FROM addresses WHERE id = $1 AND user_id = $2`, addressID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("invalid_address", "address not found or does not belong to you")
		}
		return nil, err
	}
	return &addr, nil
}

func (r *PGRepository) GetReviewByOrder(ctx context.Context, orderID string) (*model.Review, error) {
	var rev model.Review
	err := r.DB.GetContext(ctx, &rev, `SELECT * FROM reviews WHERE order_id = $1`, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rev, nil
}

func (r *PGRepository) InsertReview(ctx context.Context, rev *model.Review) error {
	_, err := r.DB.NamedExecContext(ctx, `
        INSERT INTO reviews (id, order_id, rating, comment, created_at)
        VALUES (:id, :order_id, :rating, :comment, :created_at)
    `, rev)
	return err
}

func (r *PGRepository) ListChatMessages(ctx context.Context, orderID string) ([]model.OrderChatMessage, error) {
	var msgs []model.OrderChatMessage
	err := r.DB.SelectContext(ctx, &msgs,
		`SELECT * FROM order_chat_messages WHERE order_id = $1 ORDER BY created_at`, orderID)
	return msgs, err
}

func (r *PGRepository) InsertChatMessage(ctx context.Context, m *model.OrderChatMessage) error {
	_, err := r.DB.NamedExecContext(ctx, `
        INSERT INTO order_chat_messages (id, order_id, sender_id, message, created_at)
        VALUES (:id, :order_id, :sender_id, :message, :created_at)
    `, m)
	return err
}

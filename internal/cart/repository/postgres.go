package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/quickeats/fulfillment-service/internal/cart/dto"
	"github.com/quickeats/fulfillment-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByCustomer(ctx context.Context, customerID string) (*model.Cart, error) {
	var c model.Cart
	err := r.DB.GetContext(ctx, &c, `SELECT * FROM carts WHERE customer_id = $1`, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) GetOrCreate(ctx context.Context, customerID string) (*model.Cart, error) {
	// Upsert keyed on the one-cart-per-customer unique constraint, so
	// two concurrent first adds agree on a single cart.
	var c model.Cart
	err := r.DB.GetContext(ctx, &c, `
        INSERT INTO carts (id, customer_id, created_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (customer_id) DO UPDATE SET customer_id = EXCLUDED.customer_id
        RETURNING *
    `, uuid.New().String(), customerID, time.Now())
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const lineDetailSelect = `
    SELECT cl.*, mi.name AS item_name, mi.price AS unit_price,
           mi.restaurant_id, mi.stock_quantity, mi.is_available
    FROM cart_lines cl
    JOIN menu_items mi ON mi.id = cl.item_id
`

func (r *PGRepository) ListLines(ctx context.Context, cartID string) ([]dto.LineDetail, error) {
	var lines []dto.LineDetail
	err := r.DB.SelectContext(ctx, &lines,
		lineDetailSelect+` WHERE cl.cart_id = $1 ORDER BY cl.added_at`, cartID)
	return lines, err
}

func (r *PGRepository) GetLine(ctx context.Context, cartID, lineID string) (*dto.LineDetail, error) {
	var line dto.LineDetail
	err := r.DB.GetContext(ctx, &line,
		lineDetailSelect+` WHERE cl.cart_id = $1 AND cl.id = $2`, cartID, lineID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *PGRepository) InsertLine(ctx context.Context, line *model.CartLine) error {
	query := `
        INSERT INTO cart_lines (id, cart_id, item_id, quantity, variants, addons, added_at)
        VALUES (:id, :cart_id, :item_id, :quantity, :variants, :addons, :added_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, line)
	return err
}

func (r *PGRepository) UpdateLineQuantity(ctx context.Context, lineID string, quantity int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE cart_lines SET quantity = $2 WHERE id = $1`, lineID, quantity)
	return err
}

func (r *PGRepository) DeleteLine(ctx context.Context, cartID, lineID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM cart_lines WHERE id = $1 AND cart_id = $2`, lineID, cartID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PGRepository) ClearByCart(ctx context.Context, cartID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID)
	return err
}

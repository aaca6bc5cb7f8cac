package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/inventory/dto"
	"github.com/quickeats/fulfillment-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetItem(ctx context.Context, itemID string) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.DB.GetContext(ctx, &item, `SELECT * FROM menu_items WHERE id = $1`, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("item_not_found", "menu item not found")
		}
		return nil, err
	}
	return &item, nil
}

// ReserveTx runs the reservation against the given executor so checkout
// can fold it into its own transaction. The check and decrement are one
// conditional UPDATE: two concurrent reservations can never both pass a
// stale stock read.
func (r *PGRepository) ReserveTx(ctx context.Context, ex sqlx.ExtContext, itemID string, qty int, ref dto.MovementRef) error {
	if qty < 1 {
		return apperr.Validation("invalid_quantity", "quantity must be at least 1")
	}

	var after int
	err := sqlx.GetContext(ctx, ex, &after, `
        UPDATE menu_items
        SET stock_quantity = stock_quantity - $2,
            is_available = CASE WHEN stock_quantity - $2 <= 0 THEN false ELSE is_available END,
            auto_disabled = stock_quantity - $2 <= 0,
            updated_at = now()
        WHERE id = $1 AND is_available = true AND stock_quantity >= $2
        RETURNING stock_quantity
    `, itemID, qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.reserveFailure(ctx, ex, itemID, qty)
		}
		return err
	}

	return r.logMovement(ctx, ex, itemID, model.MovementReserve, -qty, after, ref, "")
}

// reserveFailure re-reads the row to name the reason the conditional
// update matched nothing.
func (r *PGRepository) reserveFailure(ctx context.Context, ex sqlx.ExtContext, itemID string, qty int) error {
	var item model.MenuItem
	err := sqlx.GetContext(ctx, ex, &item, `SELECT * FROM menu_items WHERE id = $1`, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("item_not_found", "menu item not found")
		}
		return err
	}
	if !item.IsAvailable {
		return apperr.Conflict("item_unavailable", "%s is currently unavailable", item.Name)
	}
	return apperr.Conflict("insufficient_stock",
		"insufficient stock for %s: only %d available, %d requested", item.Name, item.StockQuantity, qty)
}

// ReleaseTx is the compensating increment. Availability is restored
// only when the zero-stock flip was the ledger's own doing; a manual
// disable by the restaurant survives.
func (r *PGRepository) ReleaseTx(ctx context.Context, ex sqlx.ExtContext, itemID string, qty int, ref dto.MovementRef) error {
	if qty < 1 {
		return apperr.Validation("invalid_quantity", "quantity must be at least 1")
	}

	var after int
	err := sqlx.GetContext(ctx, ex, &after, `
        UPDATE menu_items
        SET stock_quantity = stock_quantity + $2,
            is_available = CASE WHEN stock_quantity = 0 AND auto_disabled THEN true ELSE is_available END,
            auto_disabled = CASE WHEN stock_quantity = 0 THEN false ELSE auto_disabled END,
            updated_at = now()
        WHERE id = $1
        RETURNING stock_quantity
    `, itemID, qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("item_not_found", "menu item not found")
		}
		return err
	}

	return r.logMovement(ctx, ex, itemID, model.MovementRelease, qty, after, ref, "")
}

func (r *PGRepository) logMovement(ctx context.Context, ex sqlx.ExtContext, itemID, movementType string, change, after int, ref dto.MovementRef, notes string) error {
	var refType, refID *string
	if ref.Type != "" {
		refType = &ref.Type
	}
	if ref.ID != "" {
		refID = &ref.ID
	}

	_, err := ex.ExecContext(ctx, `
        INSERT INTO stock_movements (id, item_id, movement_type, quantity_change, quantity_after, reference_type, reference_id, notes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, uuid.New().String(), itemID, movementType, change, after, refType, refID, notes, time.Now())
	if err != nil {
		return fmt.Errorf("failed to log stock movement: %w", err)
	}
	return nil
}

func (r *PGRepository) Reserve(ctx context.Context, itemID string, qty int, ref dto.MovementRef) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.ReserveTx(ctx, tx, itemID, qty, ref); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepository) Release(ctx context.Context, itemID string, qty int, ref dto.MovementRef) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.ReleaseTx(ctx, tx, itemID, qty, ref); err != nil {
		return err
	}
	return tx.Commit()
}

// Adjust applies a manual stock correction. Negative deltas may not
// push the stock below zero.
func (r *PGRepository) Adjust(ctx context.Context, itemID string, delta int, notes string) (*model.MenuItem, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var item model.MenuItem
	err = sqlx.GetContext(ctx, tx, &item, `
        UPDATE menu_items
        SET stock_quantity = stock_quantity + $2,
            is_available = CASE
                WHEN stock_quantity + $2 <= 0 THEN false
                WHEN stock_quantity = 0 AND $2 > 0 AND auto_disabled THEN true
                ELSE is_available
            END,
            auto_disabled = CASE
                WHEN stock_quantity + $2 <= 0 THEN is_available
                WHEN stock_quantity = 0 AND $2 > 0 THEN false
                ELSE auto_disabled
            END,
            updated_at = now()
        WHERE id = $1 AND stock_quantity + $2 >= 0
        RETURNING *
    `, itemID, delta)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.adjustFailure(ctx, itemID, delta)
		}
		return nil, err
	}

	movementType := model.MovementRestock
	if delta < 0 {
		movementType = model.MovementAdjustment
	}
	if err := r.logMovement(ctx, tx, itemID, movementType, delta, item.StockQuantity, dto.MovementRef{Type: "adjustment"}, notes); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) adjustFailure(ctx context.Context, itemID string, delta int) error {
	var exists bool
	if err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM menu_items WHERE id = $1)`, itemID); err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("item_not_found", "menu item not found")
	}
	return apperr.Conflict("insufficient_stock", "adjustment of %d would make stock negative", delta)
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM stock_movements WHERE item_id = $1`, f.ItemID); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM stock_movements WHERE item_id = $1 ORDER BY created_at DESC`
	args := []interface{}{f.ItemID}
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, f.PageSize, (page-1)*f.PageSize)
	}

	var items []model.StockMovement
	err := r.DB.SelectContext(ctx, &items, query, args...)
	return items, count, err
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/quickeats/fulfillment-service/internal/apperr"
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

func (r *PGRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM menu_items WHERE restaurant_id = $1 ORDER BY name`, restaurantID)
	return items, err
}

func (r *PGRepository) SetAvailability(ctx context.Context, itemID, restaurantID string, available bool) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE menu_items SET is_available = $3, auto_disabled = false, updated_at = now()
        WHERE id = $1 AND restaurant_id = $2
    `, itemID, restaurantID, available)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

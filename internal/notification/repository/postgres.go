package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/quickeats/fulfillment-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Insert(ctx context.Context, n *model.Notification) error {
	query := `
        INSERT INTO notifications (id, user_id, message, is_read, created_at)
        VALUES (:id, :user_id, :message, :is_read, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, n)
	return err
}

func (r *PGRepository) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	var items []model.Notification
	query := `SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT 100`
	err := r.DB.SelectContext(ctx, &items, query, userID)
	return items, err
}

func (r *PGRepository) MarkRead(ctx context.Context, userID, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

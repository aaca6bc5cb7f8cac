package repository

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsActiveDeliveryViolation(t *testing.T) {
	busy := &pgconn.PgError{Code: "23505", ConstraintName: "uq_orders_rider_active"}
	assert.True(t, isActiveDeliveryViolation(busy))
	assert.True(t, isActiveDeliveryViolation(fmt.Errorf("claim order: %w", busy)))

	otherConstraint := &pgconn.PgError{Code: "23505", ConstraintName: "carts_customer_id_key"}
	assert.False(t, isActiveDeliveryViolation(otherConstraint))

	checkViolation := &pgconn.PgError{Code: "23514", ConstraintName: "uq_orders_rider_active"}
	assert.False(t, isActiveDeliveryViolation(checkViolation))

	assert.False(t, isActiveDeliveryViolation(fmt.Errorf("no rows")))
	assert.False(t, isActiveDeliveryViolation(nil))
}

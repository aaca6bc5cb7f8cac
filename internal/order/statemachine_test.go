package order

import (
	"testing"

	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestEdgeExists(t *testing.T) {
	legal := []struct{ from, to model.OrderStatus }{
		{model.OrderStatusPending, model.OrderStatusPreparing},
		{model.OrderStatusPending, model.OrderStatusCancelled},
		{model.OrderStatusPreparing, model.OrderStatusCancelled},
		{model.OrderStatusPreparing, model.OrderStatusReadyForPickup},
		{model.OrderStatusReadyForPickup, model.OrderStatusRiderAssigned},
		{model.OrderStatusRiderAssigned, model.OrderStatusPickedUp},
		{model.OrderStatusPickedUp, model.OrderStatusOutForDelivery},
		{model.OrderStatusOutForDelivery, model.OrderStatusDelivered},
	}
	for _, e := range legal {
		assert.True(t, EdgeExists(e.from, e.to), "%s -> %s should be legal", e.from, e.to)
	}

	illegal := []struct{ from, to model.OrderStatus }{
		{model.OrderStatusPending, model.OrderStatusReadyForPickup},
		{model.OrderStatusPending, model.OrderStatusDelivered},
		{model.OrderStatusReadyForPickup, model.OrderStatusCancelled},
		{model.OrderStatusRiderAssigned, model.OrderStatusCancelled},
		{model.OrderStatusOutForDelivery, model.OrderStatusCancelled},
		{model.OrderStatusDelivered, model.OrderStatusPending},
		{model.OrderStatusDelivered, model.OrderStatusCancelled},
		{model.OrderStatusCancelled, model.OrderStatusPending},
		{model.OrderStatusCancelled, model.OrderStatusPreparing},
		{model.OrderStatusPreparing, model.OrderStatusPending},
		{model.OrderStatusPickedUp, model.OrderStatusRiderAssigned},
	}
	for _, e := range illegal {
		assert.False(t, EdgeExists(e.from, e.to), "%s -> %s should be illegal", e.from, e.to)
	}
}

func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	all := []model.OrderStatus{
		model.OrderStatusPending, model.OrderStatusPreparing,
		model.OrderStatusReadyForPickup, model.OrderStatusRiderAssigned,
		model.OrderStatusPickedUp, model.OrderStatusOutForDelivery,
		model.OrderStatusDelivered, model.OrderStatusCancelled,
	}
	for _, terminal := range []model.OrderStatus{model.OrderStatusDelivered, model.OrderStatusCancelled} {
		for _, to := range all {
			assert.False(t, EdgeExists(terminal, to), "%s is terminal, %s -> %s must not exist", terminal, terminal, to)
		}
	}
}

func TestRoleAllowed(t *testing.T) {
	tests := []struct {
		name    string
		from    model.OrderStatus
		to      model.OrderStatus
		role    auth.Role
		allowed bool
	}{
		{"restaurant accepts", model.OrderStatusPending, model.OrderStatusPreparing, auth.RoleRestaurant, true},
		{"customer cannot accept", model.OrderStatusPending, model.OrderStatusPreparing, auth.RoleCustomer, false},
		{"rider cannot accept", model.OrderStatusPending, model.OrderStatusPreparing, auth.RoleRider, false},
		{"customer cancels pending", model.OrderStatusPending, model.OrderStatusCancelled, auth.RoleCustomer, true},
		{"restaurant cancels preparing", model.OrderStatusPreparing, model.OrderStatusCancelled, auth.RoleRestaurant, true},
		{"rider cannot cancel", model.OrderStatusPreparing, model.OrderStatusCancelled, auth.RoleRider, false},
		{"restaurant marks ready", model.OrderStatusPreparing, model.OrderStatusReadyForPickup, auth.RoleRestaurant, true},
		{"rider picks up", model.OrderStatusRiderAssigned, model.OrderStatusPickedUp, auth.RoleRider, true},
		{"customer cannot pick up", model.OrderStatusRiderAssigned, model.OrderStatusPickedUp, auth.RoleCustomer, false},
		{"rider delivers", model.OrderStatusOutForDelivery, model.OrderStatusDelivered, auth.RoleRider, true},
		{"restaurant cannot deliver", model.OrderStatusOutForDelivery, model.OrderStatusDelivered, auth.RoleRestaurant, false},
		{"admin has no edges", model.OrderStatusPending, model.OrderStatusPreparing, auth.RoleAdmin, false},
		{"nonexistent edge", model.OrderStatusDelivered, model.OrderStatusPending, auth.RoleRider, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, RoleAllowed(tt.from, tt.to, tt.role))
		})
	}
}

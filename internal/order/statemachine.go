package order

import (
	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/model"
)

type edge struct {
	from, to model.OrderStatus
}

// transitions is the complete set of legal edges and the roles allowed
// to drive them. Party scoping (order owner, owning restaurant,
// assigned rider) is enforced separately in the usecase.
var transitions = map[edge][]auth.Role{
	{model.OrderStatusPending, model.OrderStatusPreparing}:            {auth.RoleRestaurant},
	{model.OrderStatusPending, model.OrderStatusCancelled}:            {auth.RoleRestaurant, auth.RoleCustomer},
	{model.OrderStatusPreparing, model.OrderStatusCancelled}:          {auth.RoleRestaurant, auth.RoleCustomer},
	{model.OrderStatusPreparing, model.OrderStatusReadyForPickup}:     {auth.RoleRestaurant},
	{model.OrderStatusReadyForPickup, model.OrderStatusRiderAssigned}: {auth.RoleRider},
	{model.OrderStatusRiderAssigned, model.OrderStatusPickedUp}:       {auth.RoleRider},
	{model.OrderStatusPickedUp, model.OrderStatusOutForDelivery}:      {auth.RoleRider},
	{model.OrderStatusOutForDelivery, model.OrderStatusDelivered}:     {auth.RoleRider},
}

// EdgeExists reports whether from→to is a legal transition for anyone.
func EdgeExists(from, to model.OrderStatus) bool {
	_, ok := transitions[edge{from, to}]
	return ok
}

// RoleAllowed reports whether the role may drive the from→to edge.
// False when the edge does not exist at all.
func RoleAllowed(from, to model.OrderStatus, role auth.Role) bool {
	roles, ok := transitions[edge{from, to}]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

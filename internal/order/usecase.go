package order

import (
	"context"

	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/quickeats/fulfillment-service/internal/order/dto"
)

// Matcher is the rider-matching trigger fired when an order becomes
// ready for pickup. Implemented by the rider usecase.
type Matcher interface {
	Match(ctx context.Context, orderID string)
}

type UseCase interface {
	// SetMatcher wires the rider matcher after construction; the rider
	// usecase is built later and depends on order data.
	SetMatcher(m Matcher)

	Checkout(ctx context.Context, actor auth.Actor, input *dto.CheckoutInput) (*model.Order, error)
	Transition(ctx context.Context, actor auth.Actor, orderID string, to model.OrderStatus, input *dto.TransitionInput) (*model.Order, error)

	GetOrder(ctx context.Context, actor auth.Actor, orderID string) (*model.Order, error)
	ListMine(ctx context.Context, actor auth.Actor) ([]model.Order, error)
	ListRestaurantQueue(ctx context.Context, actor auth.Actor, filter string) ([]model.Order, error)

	AddReview(ctx context.Context, actor auth.Actor, orderID string, input *dto.ReviewInput) (*model.Review, error)
	ListChat(ctx context.Context, actor auth.Actor, orderID string) ([]model.OrderChatMessage, error)
	SendChat(ctx context.Context, actor auth.Actor, orderID string, input *dto.ChatInput) (*model.OrderChatMessage, error)
}

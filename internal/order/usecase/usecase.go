package usecase

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/cart"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/quickeats/fulfillment-service/internal/notification"
	"github.com/quickeats/fulfillment-service/internal/order"
	"github.com/quickeats/fulfillment-service/internal/order/dto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultPrepTimeMin = 20

type orderUseCase struct {
	repo        order.Repository
	cartRepo    cart.Repository
	notifier    notification.Notifier
	matcher     order.Matcher
	deliveryFee decimal.Decimal
	logger      *zap.Logger
}

func NewOrderUseCase(repo order.Repository, cartRepo cart.Repository, notifier notification.Notifier, deliveryFee decimal.Decimal, log *zap.Logger) order.UseCase {
	return &orderUseCase{
		repo:        repo,
		cartRepo:    cartRepo,
		notifier:    notifier,
		deliveryFee: deliveryFee,
		logger:      log,
	}
}

// SetMatcher breaks the order↔rider construction cycle; wired once in
// main before the server starts.
func (uc *orderUseCase) SetMatcher(m order.Matcher) { uc.matcher = m }

func (uc *orderUseCase) Checkout(ctx context.Context, actor auth.Actor, input *dto.CheckoutInput) (*model.Order, error) {
	if actor.Role != auth.RoleCustomer {
		return nil, apperr.Authorization("forbidden", "only customers can check out")
	}

	switch input.PaymentMethod {
	case model.PaymentCOD, model.PaymentCard, model.PaymentBank:
	default:
		return nil, apperr.Validation("invalid_payment_method", "unknown payment method %q", input.PaymentMethod)
	}

	c, err := uc.cartRepo.GetByCustomer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.Validation("empty_cart", "cart is empty")
	}
	lines, err := uc.cartRepo.ListLines(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperr.Validation("empty_cart", "cart is empty")
	}

	target, err := resolveTarget(input)
	if err != nil {
		return nil, err
	}

	// Authoritative per-line re-check; the cart-time check was advisory
	// and may be stale.
	restaurantID := lines[0].RestaurantID
	for i := range lines {
		if !lines[i].IsAvailable {
			return nil, apperr.Conflict("item_unavailable", "%s is currently unavailable", lines[i].ItemName)
		}
		if lines[i].RestaurantID != restaurantID {
			// Not reachable through AddItem, checked anyway.
			return nil, apperr.Conflict("multi_restaurant_cart", "cart contains items from multiple restaurants")
		}
	}

	// Reservations acquire in ascending item id so two checkouts
	// sharing items never lock rows in opposite orders.
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })

	now := time.Now()
	o := &model.Order{
		ID:            uuid.New().String(),
		CustomerID:    actor.ID,
		RestaurantID:  restaurantID,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: "pending",
		Status:        model.OrderStatusPending,
		DeliveryFee:   uc.deliveryFee,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if input.Note != "" {
		note := input.Note
		o.Note = &note
	}

	switch t := target.(type) {
	case dto.SavedAddress:
		addr, err := uc.repo.GetAddress(ctx, t.AddressID, actor.ID)
		if err != nil {
			return nil, err
		}
		o.AddressID = &addr.ID
	case dto.InlineLocation:
		lat, lng, text := t.Lat, t.Lng, t.Text
		o.DeliveryLat = &lat
		o.DeliveryLng = &lng
		o.DeliveryText = &text
	}

	subtotal := decimal.Zero
	for i := range lines {
		// Snapshot: the order keeps the price and tags as they are right
		// now, whatever the catalog does later.
		o.Lines = append(o.Lines, model.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			ItemID:    lines[i].ItemID,
			ItemName:  lines[i].ItemName,
			Quantity:  lines[i].Quantity,
			UnitPrice: lines[i].UnitPrice,
			Variants:  lines[i].Variants,
			Addons:    lines[i].Addons,
		})
		subtotal = subtotal.Add(lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(lines[i].Quantity))))
	}
	o.Subtotal = subtotal
	o.Total = subtotal.Add(uc.deliveryFee)

	if err := uc.repo.CreateCheckout(ctx, o, c.ID); err != nil {
		return nil, err
	}

	uc.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("customer_id", actor.ID),
		zap.String("total", o.Total.String()))
	uc.notifier.Notify(ctx, actor.ID, "Order placed!")
	return o, nil
}

func resolveTarget(input *dto.CheckoutInput) (dto.DeliveryTarget, error) {
	hasAddress := input.AddressID != ""
	hasLocation := input.Location != nil
	if hasAddress == hasLocation {
		return nil, apperr.Validation("missing_delivery_target",
			"exactly one of address_id or current_location is required")
	}
	if hasAddress {
		return dto.SavedAddress{AddressID: input.AddressID}, nil
	}
	return dto.InlineLocation{
		Lat:  input.Location.Lat,
		Lng:  input.Location.Lng,
		Text: input.Location.Text,
	}, nil
}

func (uc *orderUseCase) Transition(ctx context.Context, actor auth.Actor, orderID string, to model.OrderStatus, input *dto.TransitionInput) (*model.Order, error) {
	o, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := scopeActor(actor, o); err != nil {
		return nil, err
	}

	from := o.Status
	if !order.EdgeExists(from, to) {
		return nil, apperr.Conflict("illegal_transition",
			"cannot transition order from %s to %s", from, to)
	}
	if !order.RoleAllowed(from, to, actor.Role) {
		return nil, apperr.Authorization("forbidden",
			"role %s may not transition order from %s to %s", actor.Role, from, to)
	}

	var ok bool
	switch to {
	case model.OrderStatusCancelled:
		ok, err = uc.repo.CancelAndRestock(ctx, orderID, from)
	case model.OrderStatusDelivered:
		ok, err = uc.repo.Deliver(ctx, orderID, actor.ID)
	case model.OrderStatusPreparing:
		prep := defaultPrepTimeMin
		if input != nil && input.PrepTimeMinutes != nil {
			prep = *input.PrepTimeMinutes
		}
		ok, err = uc.repo.UpdateStatus(ctx, orderID, from, to, &prep)
	default:
		ok, err = uc.repo.UpdateStatus(ctx, orderID, from, to, nil)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race: someone else moved the order first.
		current, rerr := uc.repo.GetByID(ctx, orderID)
		if rerr != nil {
			return nil, rerr
		}
		return nil, apperr.Conflict("illegal_transition",
			"cannot transition order from %s to %s", current.Status, to)
	}

	updated, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order transitioned",
		zap.String("order_id", orderID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("actor_role", string(actor.Role)))
	uc.emitTransitionEffects(ctx, actor, updated)
	return updated, nil
}

func (uc *orderUseCase) emitTransitionEffects(ctx context.Context, actor auth.Actor, o *model.Order) {
	switch o.Status {
	case model.OrderStatusPreparing:
		prep := defaultPrepTimeMin
		if o.PrepTimeMin != nil {
			prep = *o.PrepTimeMin
		}
		uc.notifier.Notify(ctx, o.CustomerID,
			"Your order is being prepared! Estimated time: "+strconv.Itoa(prep)+" minutes")
	case model.OrderStatusCancelled:
		if actor.Role == auth.RoleCustomer {
			uc.notifier.Notify(ctx, o.RestaurantID, "Order #"+o.ID+" was cancelled by the customer.")
		} else {
			uc.notifier.Notify(ctx, o.CustomerID, "Your order has been cancelled. You will receive a full refund.")
		}
	case model.OrderStatusReadyForPickup:
		if uc.matcher != nil {
			uc.matcher.Match(ctx, o.ID)
		}
	case model.OrderStatusPickedUp:
		uc.notifier.Notify(ctx, o.CustomerID, "Your order has been picked up and is on the way!")
	case model.OrderStatusOutForDelivery:
		uc.notifier.Notify(ctx, o.CustomerID, "Your rider is on the way! Track your order for updates.")
	case model.OrderStatusDelivered:
		uc.notifier.Notify(ctx, o.CustomerID, "Your order has been delivered! Enjoy your meal!")
	}
}

func scopeActor(actor auth.Actor, o *model.Order) error {
	switch actor.Role {
	case auth.RoleCustomer:
		if o.CustomerID != actor.ID {
			return apperr.NotFound("order_not_found", "order not found")
		}
	case auth.RoleRestaurant:
		if o.RestaurantID != actor.ID {
			return apperr.NotFound("order_not_found", "order not found")
		}
	case auth.RoleRider:
		if o.RiderID == nil || *o.RiderID != actor.ID {
			return apperr.Authorization("forbidden", "you are not the assigned rider")
		}
	case auth.RoleAdmin:
		// Admin reads everything; transition table still rejects it as
		// a driver.
	default:
		return apperr.Authorization("forbidden", "unknown role")
	}
	return nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, actor auth.Actor, orderID string) (*model.Order, error) {
	o, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := scopeActor(actor, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *orderUseCase) ListMine(ctx context.Context, actor auth.Actor) ([]model.Order, error) {
	if actor.Role != auth.RoleCustomer {
		return nil, apperr.Authorization("forbidden", "customer listing only")
	}
	return uc.repo.ListByCustomer(ctx, actor.ID)
}

func (uc *orderUseCase) ListRestaurantQueue(ctx context.Context, actor auth.Actor, filter string) ([]model.Order, error) {
	if actor.Role != auth.RoleRestaurant {
		return nil, apperr.Authorization("forbidden", "restaurant listing only")
	}

	var statuses []model.OrderStatus
	switch filter {
	case "":
	case "active":
		statuses = []model.OrderStatus{
			model.OrderStatusPending, model.OrderStatusPreparing,
			model.OrderStatusReadyForPickup, model.OrderStatusRiderAssigned,
			model.OrderStatusPickedUp, model.OrderStatusOutForDelivery,
		}
	case "completed":
		statuses = []model.OrderStatus{model.OrderStatusDelivered, model.OrderStatusCancelled}
	default:
		s := model.OrderStatus(filter)
		if !s.Known() {
			return nil, apperr.Validation("invalid_status_filter", "unknown status filter %q", filter)
		}
		statuses = []model.OrderStatus{s}
	}
	return uc.repo.ListByRestaurant(ctx, actor.ID, statuses)
}

func (uc *orderUseCase) AddReview(ctx context.Context, actor auth.Actor, orderID string, input *dto.ReviewInput) (*model.Review, error) {
	if actor.Role != auth.RoleCustomer {
		return nil, apperr.Authorization("forbidden", "only customers review orders")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperr.Validation("invalid_rating", "rating must be between 1 and 5")
	}

	o, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != actor.ID {
		return nil, apperr.NotFound("order_not_found", "order not found")
	}
	if o.Status != model.OrderStatusDelivered {
		return nil, apperr.Conflict("order_not_delivered", "only delivered orders can be reviewed")
	}

	existing, err := uc.repo.GetReviewByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("review_exists", "order already reviewed")
	}

	rev := &model.Review{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		Rating:    input.Rating,
		CreatedAt: time.Now(),
	}
	if input.Comment != "" {
		comment := input.Comment
		rev.Comment = &comment
	}
	if err := uc.repo.InsertReview(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (uc *orderUseCase) ListChat(ctx context.Context, actor auth.Actor, orderID string) ([]model.OrderChatMessage, error) {
	if _, err := uc.chatOrder(ctx, actor, orderID); err != nil {
		return nil, err
	}
	return uc.repo.ListChatMessages(ctx, orderID)
}

func (uc *orderUseCase) SendChat(ctx context.Context, actor auth.Actor, orderID string, input *dto.ChatInput) (*model.OrderChatMessage, error) {
	if input.Message == "" {
		return nil, apperr.Validation("empty_message", "message must not be empty")
	}
	if _, err := uc.chatOrder(ctx, actor, orderID); err != nil {
		return nil, err
	}

	m := &model.OrderChatMessage{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		SenderID:  actor.ID,
		Message:   input.Message,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.InsertChatMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// chatOrder verifies the actor is a party to the order: the customer,
// the restaurant, or the assigned rider.
func (uc *orderUseCase) chatOrder(ctx context.Context, actor auth.Actor, orderID string) (*model.Order, error) {
	o, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.ID == o.CustomerID || actor.ID == o.RestaurantID {
		return o, nil
	}
	if o.RiderID != nil && *o.RiderID == actor.ID {
		return o, nil
	}
	return nil, apperr.Authorization("forbidden", "not a participant of this order")
}

package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/auth"
	cartdto "github.com/quickeats/fulfillment-service/internal/cart/dto"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/quickeats/fulfillment-service/internal/order/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	mu       sync.Mutex
	messages map[string][]string // user id -> messages
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{messages: map[string][]string{}}
}

func (f *fakeNotifier) Notify(_ context.Context, userID, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[userID] = append(f.messages[userID], message)
}

type fakeMatcher struct {
	matched []string
}

func (f *fakeMatcher) Match(_ context.Context, orderID string) {
	f.matched = append(f.matched, orderID)
}

// fakeOrderRepo mirrors the conditional-update semantics of the real
// repository: guarded flips only succeed from the expected status.
type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[string]*model.Order
	addresses map[string]*model.Address
	reviews   map[string]*model.Review // by order id
	chats     map[string][]model.OrderChatMessage
	restocked []string // order ids whose stock was released
	credited  []string // order ids settled to earnings
	checkouts []string // cart ids cleared by checkout

	// beforeUpdate runs inside UpdateStatus before the guard check, so a
	// test can interleave a competing write.
	beforeUpdate func()

	// stock, when set, makes CreateCheckout reserve line by line the way
	// the real transaction does: a failing line rolls earlier
	// reservations back and no order is written.
	stock map[string]int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:    map[string]*model.Order{},
		addresses: map[string]*model.Address{},
		reviews:   map[string]*model.Review{},
		chats:     map[string][]model.OrderChatMessage{},
	}
}

func (f *fakeOrderRepo) CreateCheckout(_ context.Context, o *model.Order, cartID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stock != nil {
		var reserved []model.OrderLine
		for _, l := range o.Lines {
			if f.stock[l.ItemID] < l.Quantity {
				for _, r := range reserved {
					f.stock[r.ItemID] += r.Quantity
				}
				return apperr.Conflict("insufficient_stock",
					"insufficient stock for %s: only %d available, %d requested", l.ItemName, f.stock[l.ItemID], l.Quantity)
			}
			f.stock[l.ItemID] -= l.Quantity
			reserved = append(reserved, l)
		}
	}
	cp := *o
	f.orders[o.ID] = &cp
	f.checkouts = append(f.checkouts, cartID)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, orderID string) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return nil, apperr.NotFound("order_not_found", "order not found")
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) ListByCustomer(_ context.Context, customerID string) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByRestaurant(_ context.Context, restaurantID string, statuses []model.OrderStatus) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Order
	for _, o := range f.orders {
		if o.RestaurantID != restaurantID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if o.Status == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, orderID string, from, to model.OrderStatus, prepTimeMin *int) (bool, error) {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	if prepTimeMin != nil {
		o.PrepTimeMin = prepTimeMin
	}
	return true, nil
}

func (f *fakeOrderRepo) CancelAndRestock(_ context.Context, orderID string, from model.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = model.OrderStatusCancelled
	f.restocked = append(f.restocked, orderID)
	return true, nil
}

func (f *fakeOrderRepo) Deliver(_ context.Context, orderID, riderID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok || o.Status != model.OrderStatusOutForDelivery || o.RiderID == nil || *o.RiderID != riderID {
		return false, nil
	}
	o.Status = model.OrderStatusDelivered
	f.credited = append(f.credited, orderID)
	return true, nil
}

func (f *fakeOrderRepo) GetAddress(_ context.Context, addressID, userID string) (*model.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	addr, ok := f.addresses[addressID]
	if !ok || addr.UserID != userID {
		return nil, apperr.NotFound("invalid_address", "address not found or does not belong to you")
	}
	cp := *addr
	return &cp, nil
}

func (f *fakeOrderRepo) GetReviewByOrder(_ context.Context, orderID string) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reviews[orderID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeOrderRepo) InsertReview(_ context.Context, r *model.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *r
	f.reviews[r.OrderID] = &cp
	return nil
}

func (f *fakeOrderRepo) ListChatMessages(_ context.Context, orderID string) ([]model.OrderChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.OrderChatMessage(nil), f.chats[orderID]...), nil
}

func (f *fakeOrderRepo) InsertChatMessage(_ context.Context, m *model.OrderChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chats[m.OrderID] = append(f.chats[m.OrderID], *m)
	return nil
}

// fakeCheckoutCartRepo serves only the methods checkout touches.
type fakeCheckoutCartRepo struct {
	cart  *model.Cart
	lines []cartdto.LineDetail
}

func (f *fakeCheckoutCartRepo) GetByCustomer(_ context.Context, customerID string) (*model.Cart, error) {
	if f.cart == nil || f.cart.CustomerID != customerID {
		return nil, nil
	}
	return f.cart, nil
}

func (f *fakeCheckoutCartRepo) GetOrCreate(_ context.Context, customerID string) (*model.Cart, error) {
	return f.cart, nil
}

func (f *fakeCheckoutCartRepo) ListLines(_ context.Context, cartID string) ([]cartdto.LineDetail, error) {
	if f.cart == nil || f.cart.ID != cartID {
		return nil, nil
	}
	return append([]cartdto.LineDetail(nil), f.lines...), nil
}

func (f *fakeCheckoutCartRepo) GetLine(_ context.Context, cartID, lineID string) (*cartdto.LineDetail, error) {
	return nil, nil
}

func (f *fakeCheckoutCartRepo) InsertLine(_ context.Context, line *model.CartLine) error { return nil }
func (f *fakeCheckoutCartRepo) UpdateLineQuantity(_ context.Context, lineID string, quantity int) error {
	return nil
}
func (f *fakeCheckoutCartRepo) DeleteLine(_ context.Context, cartID, lineID string) (bool, error) {
	return false, nil
}
func (f *fakeCheckoutCartRepo) ClearByCart(_ context.Context, cartID string) error { return nil }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func lineDetail(itemID, name, unitPrice string, qty int, available bool) cartdto.LineDetail {
	return cartdto.LineDetail{
		CartLine:      model.CartLine{ID: "line-" + itemID, CartID: "cart-1", ItemID: itemID, Quantity: qty},
		ItemName:      name,
		UnitPrice:     money(unitPrice),
		RestaurantID:  "rest-1",
		StockQuantity: 100,
		IsAvailable:   available,
	}
}

var (
	cust  = auth.Actor{ID: "cust-1", Role: auth.RoleCustomer}
	rest  = auth.Actor{ID: "rest-1", Role: auth.RoleRestaurant}
	rider = auth.Actor{ID: "rider-1", Role: auth.RoleRider}
)

func newTestOrderUC(repo *fakeOrderRepo, cartRepo *fakeCheckoutCartRepo) (*orderUseCase, *fakeNotifier, *fakeMatcher) {
	notifier := newFakeNotifier()
	matcher := &fakeMatcher{}
	uc := NewOrderUseCase(repo, cartRepo, notifier, money("5.00"), zap.NewNop()).(*orderUseCase)
	uc.SetMatcher(matcher)
	return uc, notifier, matcher
}

func filledCart() *fakeCheckoutCartRepo {
	return &fakeCheckoutCartRepo{
		cart: &model.Cart{ID: "cart-1", CustomerID: "cust-1"},
		lines: []cartdto.LineDetail{
			lineDetail("item-b", "Tiramisu", "6.00", 1, true),
			lineDetail("item-a", "Margherita", "12.50", 2, true),
		},
	}
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots prices and totals", func(t *testing.T) {
		repo := newFakeOrderRepo()
		uc, notifier, _ := newTestOrderUC(repo, filledCart())

		o, err := uc.Checkout(ctx, cust, &dto.CheckoutInput{
			PaymentMethod: model.PaymentCOD,
			Location:      &dto.InlineLocationInput{Lat: 41.0, Lng: 29.0, Text: "Pier 4"},
		})
		require.NoError(t, err)

		assert.Equal(t, model.OrderStatusPending, o.Status)
		assert.Equal(t, "31.00", o.Subtotal.StringFixed(2))
		assert.Equal(t, "5.00", o.DeliveryFee.StringFixed(2))
		assert.Equal(t, "36.00", o.Total.StringFixed(2))
		require.Len(t, o.Lines, 2)
		// Lines reserved in ascending item id order.
		assert.Equal(t, "item-a", o.Lines[0].ItemID)
		assert.Equal(t, "item-b", o.Lines[1].ItemID)
		assert.Equal(t, "Margherita", o.Lines[0].ItemName)
		assert.Equal(t, "12.50", o.Lines[0].UnitPrice.StringFixed(2))

		assert.Equal(t, []string{"cart-1"}, repo.checkouts)
		assert.Contains(t, notifier.messages["cust-1"], "Order placed!")
	})

	t.Run("failed reservation leaves no trace", func(t *testing.T) {
		repo := newFakeOrderRepo()
		repo.stock = map[string]int{"item-a": 5, "item-b": 0}
		uc, notifier, _ := newTestOrderUC(repo, filledCart())

		_, err := uc.Checkout(ctx, cust, &dto.CheckoutInput{
			PaymentMethod: model.PaymentCOD,
			Location:      &dto.InlineLocationInput{Lat: 41.0, Lng: 29.0, Text: "Pier 4"},
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "insufficient_stock"))

		assert.Empty(t, repo.orders, "no order row survives an aborted checkout")
		assert.Empty(t, repo.checkouts, "cart stays intact")
		assert.Equal(t, 5, repo.stock["item-a"], "the earlier reservation was released")
		assert.Empty(t, notifier.messages)
	})

	t.Run("empty cart", func(t *testing.T) {
		uc, _, _ := newTestOrderUC(newFakeOrderRepo(), &fakeCheckoutCartRepo{})
		_, err := uc.Checkout(ctx, cust, &dto.CheckoutInput{
			PaymentMethod: model.PaymentCOD,
			Location:      &dto.InlineLocationInput{Lat: 1, Lng: 1, Text: "x"},
		})
		assert.True(t, apperr.IsCode(err, "empty_cart"))
	})

	t.Run("requires exactly one delivery target", func(t *testing.T) {
		uc, _, _ := newTestOrderUC(newFakeOrderRepo(), filledCart())

		_, err := uc.Checkout(ctx, cust, &dto.CheckoutInput{PaymentMethod: model.PaymentCOD})
		assert.True(t, apperr.IsCode(err, "missing_delivery_target"))

		_, err = uc.Checkout(ctx, cust, &dto.CheckoutInput{
			PaymentMethod: model.PaymentCOD,
			AddressID:     "addr-1",
			Location:      &dto.InlineLocationInput{Lat: 1, Lng: 1, Text: "x"},
		})
		assert.True(t, apperr.IsCode(err, "missing_delivery_target"))
	})

	t.Run("saved address must belong to the customer", func(t *testing.T) {
		repo := newFakeOrderRepo()
		repo.addresses["addr-1"] = &model.Address{ID: "addr-1", UserID: "someone-else"}
		uc, _, _ := newTestOrderUC(repo, filledCart())

		_, err := uc.Checkout(ctx, cust, &dto.CheckoutInput{
			PaymentMethod: model.PaymentCOD,
			AddressID:     "addr-1",
		})
		assert.True(t, apperr.IsCode(err, "invalid_address"))
	})

	t.Run("saved address is accepted", func(t *testing.T) {
		repo := newFakeOrderRepo()
		repo.addresses["addr-1"] = &model.Address{ID: "addr-1", UserID: "cust-1"}
		uc, _, _ := newTestOrderUC(repo, filledCart())

		o, err := uc.Checkout(ctx, cust, &dto.CheckoutInput{
			PaymentMethod: model.PaymentCard,
			AddressID:     "addr-1",
		})
		require.NoError(t, err)
		require.NotNil(t, o.AddressID)
		assert.Equal(t, "addr-1", *o.AddressID)
		assert.Nil(t, o.DeliveryLat)
	})

	t.Run("unavailable line blocks checkout", func(t *testing.T) {
		cartRepo := filledCart()
		cartRepo.lines[0].IsAvailable = false
		uc, _, _ := newTestOrderUC(newFakeOrderRepo(), cartRepo)

		_, err := uc.Checkout(ctx, cust, &dto.CheckoutInput{
			PaymentMethod: model.PaymentCOD,
			Location:      &dto.InlineLocationInput{Lat: 1, Lng: 1, Text: "x"},
		})
		assert.True(t, apperr.IsCode(err, "item_unavailable"))
	})

	t.Run("only customers", func(t *testing.T) {
		uc, _, _ := newTestOrderUC(newFakeOrderRepo(), filledCart())
		_, err := uc.Checkout(ctx, rest, &dto.CheckoutInput{PaymentMethod: model.PaymentCOD})
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	})
}

func seedOrder(repo *fakeOrderRepo, status model.OrderStatus, riderID *string) *model.Order {
	o := &model.Order{
		ID:           "ord-1",
		CustomerID:   "cust-1",
		RestaurantID: "rest-1",
		RiderID:      riderID,
		Status:       status,
		Total:        money("36.00"),
	}
	repo.orders[o.ID] = o
	return o
}

func TestTransition(t *testing.T) {
	ctx := context.Background()
	riderID := "rider-1"

	t.Run("restaurant accepts with prep time", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusPending, nil)
		uc, notifier, _ := newTestOrderUC(repo, filledCart())

		prep := 30
		o, err := uc.Transition(ctx, rest, "ord-1", model.OrderStatusPreparing, &dto.TransitionInput{PrepTimeMinutes: &prep})
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusPreparing, o.Status)
		require.NotNil(t, o.PrepTimeMin)
		assert.Equal(t, 30, *o.PrepTimeMin)
		assert.Contains(t, notifier.messages["cust-1"][0], "30 minutes")
	})

	t.Run("illegal edge is a conflict", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusPending, nil)
		uc, _, _ := newTestOrderUC(repo, filledCart())

		_, err := uc.Transition(ctx, rest, "ord-1", model.OrderStatusDelivered, nil)
		assert.True(t, apperr.IsCode(err, "illegal_transition"))
		assert.Contains(t, err.Error(), "pending")
		assert.Contains(t, err.Error(), "delivered")
	})

	t.Run("wrong role on a legal edge is forbidden", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusPending, nil)
		uc, _, _ := newTestOrderUC(repo, filledCart())

		_, err := uc.Transition(ctx, cust, "ord-1", model.OrderStatusPreparing, nil)
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	})

	t.Run("customer cancellation restocks and notifies the restaurant", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusPreparing, nil)
		uc, notifier, _ := newTestOrderUC(repo, filledCart())

		o, err := uc.Transition(ctx, cust, "ord-1", model.OrderStatusCancelled, nil)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusCancelled, o.Status)
		assert.Equal(t, []string{"ord-1"}, repo.restocked)
		require.NotEmpty(t, notifier.messages["rest-1"])
		assert.Contains(t, notifier.messages["rest-1"][0], "cancelled by the customer")
	})

	t.Run("ready_for_pickup triggers matching", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusPreparing, nil)
		uc, _, matcher := newTestOrderUC(repo, filledCart())

		_, err := uc.Transition(ctx, rest, "ord-1", model.OrderStatusReadyForPickup, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"ord-1"}, matcher.matched)
	})

	t.Run("assigned rider delivers and settles exactly once", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusOutForDelivery, &riderID)
		uc, notifier, _ := newTestOrderUC(repo, filledCart())

		o, err := uc.Transition(ctx, rider, "ord-1", model.OrderStatusDelivered, nil)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusDelivered, o.Status)
		assert.Equal(t, []string{"ord-1"}, repo.credited)
		assert.Contains(t, notifier.messages["cust-1"][0], "delivered")

		// Replay: terminal state, no second credit.
		_, err = uc.Transition(ctx, rider, "ord-1", model.OrderStatusDelivered, nil)
		assert.True(t, apperr.IsCode(err, "illegal_transition"))
		assert.Equal(t, []string{"ord-1"}, repo.credited)
	})

	t.Run("unassigned rider cannot drive the order", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusOutForDelivery, &riderID)
		uc, _, _ := newTestOrderUC(repo, filledCart())

		other := auth.Actor{ID: "rider-2", Role: auth.RoleRider}
		_, err := uc.Transition(ctx, other, "ord-1", model.OrderStatusDelivered, nil)
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	})

	t.Run("another customer's order is invisible", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusPending, nil)
		uc, _, _ := newTestOrderUC(repo, filledCart())

		other := auth.Actor{ID: "cust-2", Role: auth.RoleCustomer}
		_, err := uc.Transition(ctx, other, "ord-1", model.OrderStatusCancelled, nil)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("lost race reports the current status", func(t *testing.T) {
		repo := newFakeOrderRepo()
		o := seedOrder(repo, model.OrderStatusPending, nil)
		uc, _, _ := newTestOrderUC(repo, filledCart())

		// A competing cancellation lands between the read and the
		// guarded update; the guard matches zero rows.
		repo.beforeUpdate = func() {
			repo.mu.Lock()
			repo.orders[o.ID].Status = model.OrderStatusCancelled
			repo.mu.Unlock()
			repo.beforeUpdate = nil
		}

		_, err := uc.Transition(ctx, rest, o.ID, model.OrderStatusPreparing, nil)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, "illegal_transition"))
		assert.Contains(t, err.Error(), "cancelled")
	})
}

func TestListRestaurantQueue(t *testing.T) {
	ctx := context.Background()

	t.Run("raw status filter", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusPreparing, nil)
		uc, _, _ := newTestOrderUC(repo, filledCart())

		orders, err := uc.ListRestaurantQueue(ctx, rest, "preparing")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, model.OrderStatusPreparing, orders[0].Status)
	})

	t.Run("unknown filter is rejected", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusPreparing, nil)
		uc, _, _ := newTestOrderUC(repo, filledCart())

		_, err := uc.ListRestaurantQueue(ctx, rest, "shipped")
		assert.True(t, apperr.IsCode(err, "invalid_status_filter"))
	})

	t.Run("completed filter", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusDelivered, nil)
		uc, _, _ := newTestOrderUC(repo, filledCart())

		orders, err := uc.ListRestaurantQueue(ctx, rest, "completed")
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})
}

func TestReviews(t *testing.T) {
	ctx := context.Background()
	riderID := "rider-1"

	t.Run("only delivered orders", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusPreparing, nil)
		uc, _, _ := newTestOrderUC(repo, filledCart())

		_, err := uc.AddReview(ctx, cust, "ord-1", &dto.ReviewInput{Rating: 5})
		assert.True(t, apperr.IsCode(err, "order_not_delivered"))
	})

	t.Run("one review per order", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusDelivered, &riderID)
		uc, _, _ := newTestOrderUC(repo, filledCart())

		rev, err := uc.AddReview(ctx, cust, "ord-1", &dto.ReviewInput{Rating: 4, Comment: "great"})
		require.NoError(t, err)
		assert.Equal(t, 4, rev.Rating)

		_, err = uc.AddReview(ctx, cust, "ord-1", &dto.ReviewInput{Rating: 5})
		assert.True(t, apperr.IsCode(err, "review_exists"))
	})

	t.Run("rating bounds", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusDelivered, &riderID)
		uc, _, _ := newTestOrderUC(repo, filledCart())

		_, err := uc.AddReview(ctx, cust, "ord-1", &dto.ReviewInput{Rating: 6})
		assert.True(t, apperr.IsCode(err, "invalid_rating"))
	})
}

func TestChat(t *testing.T) {
	ctx := context.Background()
	riderID := "rider-1"

	t.Run("participants can talk", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusPickedUp, &riderID)
		uc, _, _ := newTestOrderUC(repo, filledCart())

		_, err := uc.SendChat(ctx, cust, "ord-1", &dto.ChatInput{Message: "where are you?"})
		require.NoError(t, err)
		_, err = uc.SendChat(ctx, rider, "ord-1", &dto.ChatInput{Message: "two minutes away"})
		require.NoError(t, err)

		msgs, err := uc.ListChat(ctx, rest, "ord-1")
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "cust-1", msgs[0].SenderID)
	})

	t.Run("outsiders are rejected", func(t *testing.T) {
		repo := newFakeOrderRepo()
		seedOrder(repo, model.OrderStatusPickedUp, &riderID)
		uc, _, _ := newTestOrderUC(repo, filledCart())

		stranger := auth.Actor{ID: "rider-9", Role: auth.RoleRider}
		_, err := uc.SendChat(ctx, stranger, "ord-1", &dto.ChatInput{Message: "hi"})
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	})
}

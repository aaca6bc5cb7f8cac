package usecase

import (
	"context"
	"time"

	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/quickeats/fulfillment-service/internal/notification"
	"github.com/quickeats/fulfillment-service/internal/rider"
	"github.com/quickeats/fulfillment-service/internal/rider/dto"
	"go.uber.org/zap"
)

// Rider positions expire on their own if the app stops reporting.
const locationTTL = 5 * time.Minute

// LocationStore is the slice of the cache client the rider usecase
// needs for position upserts.
type LocationStore interface {
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
}

type riderUseCase struct {
	repo     rider.Repository
	cache    LocationStore
	notifier notification.Notifier
	logger   *zap.Logger
}

func NewRiderUseCase(repo rider.Repository, c LocationStore, notifier notification.Notifier, log *zap.Logger) rider.UseCase {
	return &riderUseCase{repo: repo, cache: c, notifier: notifier, logger: log}
}

// Match runs after an order flips to ready_for_pickup. It never returns
// an error: a failed match leaves the order assignable via Accept.
func (uc *riderUseCase) Match(ctx context.Context, orderID string) {
	riderID, ok, err := uc.repo.MatchOrder(ctx, orderID)
	if err != nil {
		uc.logger.Error("rider matching failed", zap.String("order_id", orderID), zap.Error(err))
		return
	}

	o, gerr := uc.repo.GetOrder(ctx, orderID)
	if gerr != nil {
		uc.logger.Error("order lookup after matching failed", zap.String("order_id", orderID), zap.Error(gerr))
		return
	}

	if !ok {
		uc.logger.Info("no rider available", zap.String("order_id", orderID))
		uc.notifier.Notify(ctx, o.CustomerID, "Your order is ready! We are looking for a rider.")
		return
	}

	uc.logger.Info("rider matched",
		zap.String("order_id", orderID),
		zap.String("rider_id", riderID))
	uc.notifier.Notify(ctx, riderID, "New delivery assigned! Head to the restaurant for pickup.")
	uc.notifier.Notify(ctx, o.CustomerID, "A rider has been assigned to your order!")
	uc.notifier.Notify(ctx, o.RestaurantID, "A rider is on the way to pick up order #"+orderID+".")
}

func (uc *riderUseCase) SetOnline(ctx context.Context, actor auth.Actor, input *dto.SetOnlineInput) (*model.RiderProfile, error) {
	if actor.Role != auth.RoleRider {
		return nil, apperr.Authorization("forbidden", "only riders manage presence")
	}
	if !input.IsOnline {
		// Going offline only blocks new assignments; an in-progress
		// delivery still has to be finished.
		if active, err := uc.repo.ActiveOrder(ctx, actor.ID); err != nil {
			return nil, err
		} else if active != nil {
			return nil, apperr.Conflict("rider_has_active_delivery", "finish your current delivery before going offline")
		}
	}
	p, err := uc.repo.UpsertPresence(ctx, actor.ID, input.IsOnline)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("rider presence changed",
		zap.String("rider_id", actor.ID),
		zap.Bool("is_online", input.IsOnline))
	return p, nil
}

func locationKey(riderID string) string { return "rider:location:" + riderID }

func (uc *riderUseCase) UpdateLocation(ctx context.Context, actor auth.Actor, input *dto.LocationInput) error {
	if actor.Role != auth.RoleRider {
		return apperr.Authorization("forbidden", "only riders report locations")
	}
	loc := model.RiderLocation{
		RiderID:   actor.ID,
		Lat:       input.Lat,
		Lng:       input.Lng,
		Heading:   input.Heading,
		SpeedKmh:  input.SpeedKmh,
		IsMoving:  input.SpeedKmh > 0,
		UpdatedAt: time.Now(),
	}
	return uc.cache.SetJSON(ctx, locationKey(actor.ID), loc, locationTTL)
}

func (uc *riderUseCase) OrderRiderLocation(ctx context.Context, actor auth.Actor, orderID string) (*model.RiderLocation, error) {
	o, err := uc.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	party := actor.ID == o.CustomerID || actor.ID == o.RestaurantID ||
		(o.RiderID != nil && *o.RiderID == actor.ID)
	if !party {
		return nil, apperr.Authorization("forbidden", "not a participant of this order")
	}
	if o.RiderID == nil {
		return nil, apperr.NotFound("rider_location_unknown", "no rider assigned yet")
	}

	var loc model.RiderLocation
	hit, err := uc.cache.GetJSON(ctx, locationKey(*o.RiderID), &loc)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, apperr.NotFound("rider_location_unknown", "rider location not available")
	}
	return &loc, nil
}

func (uc *riderUseCase) Accept(ctx context.Context, actor auth.Actor, orderID string) (*model.Order, error) {
	if actor.Role != auth.RoleRider {
		return nil, apperr.Authorization("forbidden", "only riders accept deliveries")
	}
	if err := uc.repo.ClaimOrder(ctx, orderID, actor.ID); err != nil {
		return nil, err
	}
	o, err := uc.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order claimed",
		zap.String("order_id", orderID),
		zap.String("rider_id", actor.ID))
	uc.notifier.Notify(ctx, o.CustomerID, "A rider has been assigned to your order!")
	uc.notifier.Notify(ctx, o.RestaurantID, "A rider is on the way to pick up order #"+orderID+".")
	return o, nil
}

func (uc *riderUseCase) CurrentOrder(ctx context.Context, actor auth.Actor) (*model.Order, error) {
	if actor.Role != auth.RoleRider {
		return nil, apperr.Authorization("forbidden", "rider endpoint")
	}
	o, err := uc.repo.ActiveOrder(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("no_active_delivery", "no delivery in progress")
	}
	return o, nil
}

func (uc *riderUseCase) ListAvailableOrders(ctx context.Context, actor auth.Actor) ([]model.Order, error) {
	if actor.Role != auth.RoleRider {
		return nil, apperr.Authorization("forbidden", "rider endpoint")
	}
	return uc.repo.ListAvailableOrders(ctx)
}

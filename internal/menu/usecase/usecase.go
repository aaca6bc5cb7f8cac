package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/menu"
	"github.com/quickeats/fulfillment-service/internal/model"
	"go.uber.org/zap"
)

const listCacheTTL = 5 * time.Minute

// ListCache is the slice of the cache client the menu reads go through.
// Nil disables caching.
type ListCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type menuUseCase struct {
	repo   menu.Repository
	cache  ListCache
	logger *zap.Logger
}

func NewMenuUseCase(repo menu.Repository, cache ListCache, log *zap.Logger) menu.UseCase {
	return &menuUseCase{repo: repo, cache: cache, logger: log}
}

func (uc *menuUseCase) GetItem(ctx context.Context, itemID string) (*model.MenuItem, error) {
	return uc.repo.GetItem(ctx, itemID)
}

func listCacheKey(restaurantID string) string {
	return fmt.Sprintf("menu:items:%s", restaurantID)
}

func (uc *menuUseCase) ListItems(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	if uc.cache != nil {
		var cached []model.MenuItem
		hit, err := uc.cache.GetJSON(ctx, listCacheKey(restaurantID), &cached)
		if err != nil {
			uc.logger.Warn("menu cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	items, err := uc.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, listCacheKey(restaurantID), items, listCacheTTL); err != nil {
			uc.logger.Warn("menu cache write failed", zap.Error(err))
		}
	}
	return items, nil
}

func (uc *menuUseCase) SetAvailability(ctx context.Context, actor auth.Actor, itemID string, available bool) (*model.MenuItem, error) {
	if actor.Role != auth.RoleRestaurant {
		return nil, apperr.Authorization("forbidden", "only the restaurant can toggle availability")
	}

	ok, err := uc.repo.SetAvailability(ctx, itemID, actor.ID, available)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("item_not_found", "menu item not found")
	}

	item, err := uc.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := uc.cache.Delete(ctx, listCacheKey(item.RestaurantID)); err != nil {
				uc.logger.Warn("menu cache invalidation failed", zap.Error(err))
			}
		}()
	}
	return item, nil
}

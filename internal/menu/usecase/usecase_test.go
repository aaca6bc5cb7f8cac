package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMenuRepo struct {
	mu        sync.Mutex
	items     map[string]*model.MenuItem
	listCalls int
}

func (f *fakeMenuRepo) GetItem(_ context.Context, itemID string) (*model.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemID]
	if !ok {
		return nil, apperr.NotFound("item_not_found", "menu item not found")
	}
	cp := *item
	return &cp, nil
}

func (f *fakeMenuRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]model.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	var out []model.MenuItem
	for _, item := range f.items {
		if item.RestaurantID == restaurantID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) SetAvailability(_ context.Context, itemID, restaurantID string, available bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemID]
	if !ok || item.RestaurantID != restaurantID {
		return false, nil
	}
	item.IsAvailable = available
	return true, nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (f *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	f.mu.Lock()
	b, ok := f.data[key]
	f.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, v interface{}, _ time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = b
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func seedMenu() *fakeMenuRepo {
	return &fakeMenuRepo{items: map[string]*model.MenuItem{
		"item-1": {ID: "item-1", RestaurantID: "rest-1", Name: "Margherita", IsAvailable: true},
	}}
}

func TestListItemsCaches(t *testing.T) {
	ctx := context.Background()
	repo := seedMenu()
	c := newFakeCache()
	uc := NewMenuUseCase(repo, c, zap.NewNop())

	first, err := uc.ListItems(ctx, "rest-1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, repo.listCalls)

	// Second read is served from the cache.
	second, err := uc.ListItems(ctx, "rest-1")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, repo.listCalls)
}

func TestSetAvailability(t *testing.T) {
	ctx := context.Background()
	ownerActor := auth.Actor{ID: "rest-1", Role: auth.RoleRestaurant}

	t.Run("owner toggles and the cache is invalidated", func(t *testing.T) {
		repo := seedMenu()
		c := newFakeCache()
		uc := NewMenuUseCase(repo, c, zap.NewNop())

		_, err := uc.ListItems(ctx, "rest-1")
		require.NoError(t, err)

		item, err := uc.SetAvailability(ctx, ownerActor, "item-1", false)
		require.NoError(t, err)
		assert.False(t, item.IsAvailable)

		// Invalidation runs in the background.
		require.Eventually(t, func() bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			_, ok := c.data["menu:items:rest-1"]
			return !ok
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("another restaurant cannot toggle", func(t *testing.T) {
		uc := NewMenuUseCase(seedMenu(), newFakeCache(), zap.NewNop())
		other := auth.Actor{ID: "rest-2", Role: auth.RoleRestaurant}
		_, err := uc.SetAvailability(ctx, other, "item-1", false)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("customers cannot toggle", func(t *testing.T) {
		uc := NewMenuUseCase(seedMenu(), newFakeCache(), zap.NewNop())
		cust := auth.Actor{ID: "cust-1", Role: auth.RoleCustomer}
		_, err := uc.SetAvailability(ctx, cust, "item-1", false)
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	})
}

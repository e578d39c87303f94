// Package service implements business logic on top of ports.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/domain/restaurant"
	"github.com/seatwise/seatwise/internal/port/cache"
	"github.com/seatwise/seatwise/internal/port/database"
)

// RestaurantService handles restaurant business logic.
type RestaurantService struct {
	store    database.Store
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewRestaurantService creates a new RestaurantService. cache may be nil, in
// which case every read goes to the store.
func NewRestaurantService(store database.Store, c cache.Cache, cacheTTL time.Duration) *RestaurantService {
	return &RestaurantService{store: store, cache: c, cacheTTL: cacheTTL}
}

// List returns all restaurants.
func (s *RestaurantService) List(ctx context.Context) ([]restaurant.Restaurant, error) {
	return s.store.ListRestaurants(ctx)
}

// Get returns a restaurant by ID, serving from the cache when possible.
func (s *RestaurantService) Get(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	return getRestaurantCached(ctx, s.store, s.cache, s.cacheTTL, id)
}

// Create creates a new restaurant after validating the request. Names are
// unique; a taken name yields domain.ErrConflict.
func (s *RestaurantService) Create(ctx context.Context, req *restaurant.CreateRequest) (*restaurant.Restaurant, error) {
	if err := restaurant.ValidateCreateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.store.FindRestaurantByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("restaurant %q already exists: %w", req.Name, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	return s.store.CreateRestaurant(ctx, req)
}

// Update applies partial updates to a restaurant. A provided settings value
// is validated and then replaces the stored settings wholesale; the booking
// engine never mutates settings itself.
func (s *RestaurantService) Update(ctx context.Context, id string, req restaurant.UpdateRequest) (*restaurant.Restaurant, error) {
	if req.Settings != nil {
		if err := req.Settings.Validate(); err != nil {
			return nil, err
		}
	}

	r, err := s.store.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		r.Name = *req.Name
	}
	if req.Logo != nil {
		r.Logo = *req.Logo
	}
	if req.PrimaryColor != nil {
		r.PrimaryColor = *req.PrimaryColor
	}
	if req.Settings != nil {
		r.Settings = *req.Settings
	}

	if err := s.store.UpdateRestaurant(ctx, r); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return r, nil
}

// UpdateSettings replaces a restaurant's settings after validation.
func (s *RestaurantService) UpdateSettings(ctx context.Context, id string, settings restaurant.Settings) (*restaurant.Restaurant, error) {
	return s.Update(ctx, id, restaurant.UpdateRequest{Settings: &settings})
}

// invalidate drops the cached record so the next booking sees fresh settings.
func (s *RestaurantService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, restaurantCacheKey(id)); err != nil {
		slog.Warn("restaurant cache invalidation failed", "restaurant_id", id, "error", err)
	}
}

func restaurantCacheKey(id string) string {
	return "restaurant:" + id
}

// getRestaurantCached reads a restaurant through the cache. Cache errors are
// logged and treated as misses; the store stays the source of truth.
func getRestaurantCached(ctx context.Context, store database.Store, c cache.Cache, ttl time.Duration, id string) (*restaurant.Restaurant, error) {
	if c == nil {
		return store.GetRestaurant(ctx, id)
	}

	key := restaurantCacheKey(id)
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		var r restaurant.Restaurant
		if err := json.Unmarshal(data, &r); err == nil {
			return &r, nil
		}
	}

	r, err := store.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(r); err == nil {
		if err := c.Set(ctx, key, data, ttl); err != nil {
			slog.Warn("restaurant cache set failed", "restaurant_id", id, "error", err)
		}
	}
	return r, nil
}

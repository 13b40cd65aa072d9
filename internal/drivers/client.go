package drivers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/farepilot/farepilot/pkg/httpclient"
	"github.com/farepilot/farepilot/pkg/logger"
	"github.com/farepilot/farepilot/pkg/resilience"
	"github.com/uber/h3-go/v4"
	"go.uber.org/zap"
)

// cacheResolution is the H3 resolution for lookup-result caching
// (~460m cell edge): pickups inside the same cell share one roster.
const cacheResolution = 8

// Cache stores serialized lookup results for a short TTL.
type Cache interface {
	GetString(ctx context.Context, key string) (string, error)
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Client queries the driver-pool service for independent drivers near a
// pickup point. Calls run through a circuit breaker; successful results
// are cached per H3 cell.
type Client struct {
	http     *httpclient.Client
	breaker  *resilience.CircuitBreaker
	cache    Cache
	cacheTTL time.Duration
}

// NewClient creates a new driver lookup client. cache may be nil.
func NewClient(http *httpclient.Client, breaker *resilience.CircuitBreaker, cache Cache, cacheTTL time.Duration) *Client {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &Client{
		http:     http,
		breaker:  breaker,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

type nearbyResponse struct {
	Drivers []Candidate `json:"drivers"`
}

// FindNearby returns candidates within radiusKm of the pickup point.
// Errors are returned as-is; the caller decides how to degrade.
func (c *Client) FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]Candidate, error) {
	cacheKey := c.cacheKey(lat, lng, radiusKm)

	if c.cache != nil && cacheKey != "" {
		if raw, err := c.cache.GetString(ctx, cacheKey); err == nil && raw != "" {
			var cached []Candidate
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	path := fmt.Sprintf("/drivers/nearby?lat=%f&lng=%f&radius_km=%.1f", lat, lng, radiusKm)

	result, err := c.breaker.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		body, err := c.http.Get(ctx, path)
		if err != nil {
			return nil, err
		}

		var resp nearbyResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decode nearby drivers response: %w", err)
		}
		return resp.Drivers, nil
	})
	if err != nil {
		return nil, err
	}

	candidates, _ := result.([]Candidate)

	if c.cache != nil && cacheKey != "" {
		if raw, err := json.Marshal(candidates); err == nil {
			if err := c.cache.SetWithExpiration(ctx, cacheKey, string(raw), c.cacheTTL); err != nil {
				logger.WarnContext(ctx, "failed to cache driver lookup result", zap.Error(err))
			}
		}
	}

	return candidates, nil
}

func (c *Client) cacheKey(lat, lng, radiusKm float64) string {
	cell, err := h3.LatLngToCell(h3.NewLatLng(lat, lng), cacheResolution)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("drivers:nearby:%s:%.1f", cell.String(), radiusKm)
}

package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/farepilot/farepilot/internal/fare"
	"github.com/farepilot/farepilot/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "capture:prices:"

// ObservedPrice is a fare value read off a competitor app's own screen by
// the on-device capture agent, as opposed to one computed locally.
type ObservedPrice struct {
	Provider   fare.Provider `json:"provider"`
	Price      float64       `json:"price"`
	ObservedAt time.Time     `json:"observed_at"`
}

type storedPrice struct {
	Price      float64   `json:"price"`
	ObservedAt time.Time `json:"observed_at"`
}

// Store reads observed prices the capture agent writes into Redis, one
// key per provider. Non-positive and stale entries are treated as absent.
type Store struct {
	rdb    redis.Cmdable
	maxAge time.Duration
}

// NewStore creates a new observed-price store
func NewStore(rdb redis.Cmdable, maxAge time.Duration) *Store {
	if maxAge <= 0 {
		maxAge = 5 * time.Minute
	}
	return &Store{rdb: rdb, maxAge: maxAge}
}

// LatestObservedPrices returns the freshest valid observation per provider.
// At most one entry per provider is ever returned.
func (s *Store) LatestObservedPrices(ctx context.Context) ([]ObservedPrice, error) {
	providers := fare.AllProviders()
	keys := make([]string, len(providers))
	for i, provider := range providers {
		keys[i] = keyPrefix + provider.String()
	}

	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read observed prices: %w", err)
	}

	now := time.Now()
	prices := make([]ObservedPrice, 0, len(providers))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok || raw == "" {
			continue
		}

		var stored storedPrice
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			logger.WarnContext(ctx, "discarding malformed observed price",
				zap.String("provider", providers[i].String()),
				zap.Error(err),
			)
			continue
		}

		if stored.Price <= 0 {
			continue
		}
		if now.Sub(stored.ObservedAt) > s.maxAge {
			continue
		}

		prices = append(prices, ObservedPrice{
			Provider:   providers[i],
			Price:      stored.Price,
			ObservedAt: stored.ObservedAt,
		})
	}

	return prices, nil
}

// ClearObservedPrices drops all captured observations.
func (s *Store) ClearObservedPrices(ctx context.Context) error {
	providers := fare.AllProviders()
	keys := make([]string, len(providers))
	for i, provider := range providers {
		keys[i] = keyPrefix + provider.String()
	}

	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear observed prices: %w", err)
	}
	return nil
}

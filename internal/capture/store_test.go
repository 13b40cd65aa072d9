package capture

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farepilot/farepilot/internal/fare"
)

func allKeys() []string {
	providers := fare.AllProviders()
	keys := make([]string, len(providers))
	for i, provider := range providers {
		keys[i] = keyPrefix + provider.String()
	}
	return keys
}

func encode(t *testing.T, price float64, observedAt time.Time) string {
	t.Helper()
	raw, err := json.Marshal(storedPrice{Price: price, ObservedAt: observedAt})
	require.NoError(t, err)
	return string(raw)
}

func TestLatestObservedPrices(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, 5*time.Minute)

	now := time.Now()
	mock.ExpectMGet(allKeys()...).SetVal([]interface{}{
		encode(t, 245.0, now.Add(-time.Minute)), // uber: fresh
		nil,                                     // careem: absent
		encode(t, 180.0, now.Add(-10*time.Minute)), // bolt: stale
		encode(t, -5.0, now),                       // didi: non-positive
		"{not json",                                // indriver: malformed
		encode(t, 150.0, now),                      // independent: fresh
	})

	prices, err := store.LatestObservedPrices(context.Background())
	require.NoError(t, err)

	require.Len(t, prices, 2)
	assert.Equal(t, fare.ProviderUber, prices[0].Provider)
	assert.Equal(t, 245.0, prices[0].Price)
	assert.Equal(t, fare.ProviderIndependent, prices[1].Provider)
	assert.Equal(t, 150.0, prices[1].Price)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestObservedPrices_RedisError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, 5*time.Minute)

	mock.ExpectMGet(allKeys()...).SetErr(assert.AnError)

	prices, err := store.LatestObservedPrices(context.Background())
	assert.Error(t, err)
	assert.Nil(t, prices)
}

func TestLatestObservedPrices_AllEmpty(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, 5*time.Minute)

	mock.ExpectMGet(allKeys()...).SetVal([]interface{}{nil, nil, nil, nil, nil, nil})

	prices, err := store.LatestObservedPrices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestClearObservedPrices(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, 5*time.Minute)

	mock.ExpectDel(allKeys()...).SetVal(int64(len(allKeys())))

	require.NoError(t, store.ClearObservedPrices(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package compare

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farepilot/farepilot/internal/fare"
)

func sampleQuotes() []FareQuote {
	return []FareQuote{
		{Provider: fare.ProviderUber, Price: 75, ETAMinutes: 4, Rating: 4.8},
		{Provider: fare.ProviderCareem, Price: 70, ETAMinutes: 5, Rating: 4.6},
		{Provider: fare.ProviderBolt, Price: 50, ETAMinutes: 6, Rating: 4.4},
		{Provider: fare.ProviderIndependent, Price: 40, ETAMinutes: 3, Rating: 4.7},
	}
}

func providerOrder(quotes []FareQuote) []fare.Provider {
	order := make([]fare.Provider, len(quotes))
	for i, q := range quotes {
		order[i] = q.Provider
	}
	return order
}

func TestRank_LowestPrice(t *testing.T) {
	ranked := Rank(sampleQuotes(), PolicyLowestPrice)

	assert.Equal(t, []fare.Provider{
		fare.ProviderIndependent, fare.ProviderBolt, fare.ProviderCareem, fare.ProviderUber,
	}, providerOrder(ranked))
	assert.True(t, ranked[0].IsBest)
}

func TestRank_FastestArrival(t *testing.T) {
	quotes := []FareQuote{
		{Provider: fare.ProviderCareem, Price: 40, ETAMinutes: 5},
		{Provider: fare.ProviderUber, Price: 50, ETAMinutes: 3},
	}

	ranked := Rank(quotes, PolicyFastestArrival)

	assert.Equal(t, fare.ProviderUber, ranked[0].Provider)
	assert.Equal(t, fare.ProviderCareem, ranked[1].Provider)
}

func TestRank_FastestArrivalPriceTieBreak(t *testing.T) {
	quotes := []FareQuote{
		{Provider: fare.ProviderUber, Price: 60, ETAMinutes: 4},
		{Provider: fare.ProviderBolt, Price: 45, ETAMinutes: 4},
	}

	ranked := Rank(quotes, PolicyFastestArrival)

	assert.Equal(t, fare.ProviderBolt, ranked[0].Provider)
}

func TestRank_BestService(t *testing.T) {
	quotes := []FareQuote{
		{Provider: fare.ProviderDidi, Price: 40, Rating: 4.3},
		{Provider: fare.ProviderUber, Price: 75, Rating: 4.8},
	}

	ranked := Rank(quotes, PolicyBestService)

	// 4.8*10 - 0.75 = 47.25 beats 4.3*10 - 0.40 = 42.60.
	assert.Equal(t, fare.ProviderUber, ranked[0].Provider)
}

func TestRank_SingleBestFlag(t *testing.T) {
	for _, policy := range []SortPolicy{PolicyLowestPrice, PolicyFastestArrival, PolicyBestService} {
		ranked := Rank(sampleQuotes(), policy)

		best := 0
		for _, q := range ranked {
			if q.IsBest {
				best++
			}
		}
		assert.Equal(t, 1, best, "policy %s", policy)
	}
}

func TestRank_OrderIndependentOfInput(t *testing.T) {
	want := providerOrder(Rank(sampleQuotes(), PolicyLowestPrice))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := sampleQuotes()
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		assert.Equal(t, want, providerOrder(Rank(shuffled, PolicyLowestPrice)))
	}
}

func TestRank_Idempotent(t *testing.T) {
	once := Rank(sampleQuotes(), PolicyBestService)
	twice := Rank(once, PolicyBestService)

	assert.Equal(t, once, twice)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	quotes := sampleQuotes()
	original := make([]FareQuote, len(quotes))
	copy(original, quotes)

	Rank(quotes, PolicyLowestPrice)

	assert.Equal(t, original, quotes)
}

func TestRank_Empty(t *testing.T) {
	ranked := Rank(nil, PolicyLowestPrice)
	require.Empty(t, ranked)
}

func TestParseSortPolicy(t *testing.T) {
	policy, err := ParseSortPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyLowestPrice, policy)

	policy, err = ParseSortPolicy("best_service")
	require.NoError(t, err)
	assert.Equal(t, PolicyBestService, policy)

	_, err = ParseSortPolicy("cheapest")
	assert.Error(t, err)
}

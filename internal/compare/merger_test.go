package compare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farepilot/farepilot/internal/capture"
	"github.com/farepilot/farepilot/internal/drivers"
	"github.com/farepilot/farepilot/internal/fare"
)

func testEstimates(t *testing.T) map[fare.Provider]fare.Estimate {
	t.Helper()
	at := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)
	return fare.EstimateAll(fare.DefaultTariffs(), 5.0, 15, at)
}

func quoteFor(t *testing.T, quotes []FareQuote, provider fare.Provider) FareQuote {
	t.Helper()
	for _, q := range quotes {
		if q.Provider == provider {
			return q
		}
	}
	t.Fatalf("no quote for %s", provider)
	return FareQuote{}
}

func TestMerge_ObservedPriceWinsVerbatim(t *testing.T) {
	estimates := testEstimates(t)
	require.NotEqual(t, 30.0, estimates[fare.ProviderUber].Price)

	quotes := Merge(MergeInput{
		Estimates: estimates,
		Observed: map[fare.Provider]capture.ObservedPrice{
			fare.ProviderUber: {Provider: fare.ProviderUber, Price: 30.0, ObservedAt: time.Now()},
		},
		Candidates: drivers.PlaceholderCandidates(),
	})

	uber := quoteFor(t, quotes, fare.ProviderUber)
	assert.Equal(t, 30.0, uber.Price)
	assert.True(t, uber.IsObserved)

	careem := quoteFor(t, quotes, fare.ProviderCareem)
	assert.False(t, careem.IsObserved)
	assert.Equal(t, estimates[fare.ProviderCareem].Price, careem.Price)
}

func TestMerge_NoIndependentWithoutDriverOrObservation(t *testing.T) {
	quotes := Merge(MergeInput{
		Estimates:  testEstimates(t),
		Candidates: nil,
	})

	assert.Len(t, quotes, len(fare.AllProviders())-1)
	for _, q := range quotes {
		assert.NotEqual(t, fare.ProviderIndependent, q.Provider)
	}
}

func TestMerge_IndependentFromObservedPriceAlone(t *testing.T) {
	quotes := Merge(MergeInput{
		Estimates: testEstimates(t),
		Observed: map[fare.Provider]capture.ObservedPrice{
			fare.ProviderIndependent: {Provider: fare.ProviderIndependent, Price: 28.0, ObservedAt: time.Now()},
		},
	})

	independent := quoteFor(t, quotes, fare.ProviderIndependent)
	assert.Equal(t, 28.0, independent.Price)
	assert.True(t, independent.IsObserved)
	assert.Nil(t, independent.Driver)
}

func TestMerge_IndependentCarriesNearestDriver(t *testing.T) {
	candidates := []drivers.Candidate{
		{ID: "d-far", Name: "Far", Rating: 4.9, DistanceKm: 4.0},
		{ID: "d-near", Name: "Near", Rating: 4.6, DistanceKm: 1.5},
	}

	quotes := Merge(MergeInput{
		Estimates:  testEstimates(t),
		Candidates: candidates,
	})

	independent := quoteFor(t, quotes, fare.ProviderIndependent)
	require.NotNil(t, independent.Driver)
	assert.Equal(t, "d-near", independent.Driver.ID)
	assert.Equal(t, 4.6, independent.Rating)
	// 1.5 km at 30 km/h is 3 minutes.
	assert.Equal(t, 3, independent.ETAMinutes)
}

func TestMerge_IndependentETAFloor(t *testing.T) {
	quotes := Merge(MergeInput{
		Estimates:  testEstimates(t),
		Candidates: []drivers.Candidate{{ID: "d1", DistanceKm: 0.2}},
	})

	independent := quoteFor(t, quotes, fare.ProviderIndependent)
	assert.Equal(t, 2, independent.ETAMinutes)
}

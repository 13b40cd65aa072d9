package fare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday reference times keep the Thursday/Friday evening stack out
// of the picture.
var (
	wedMorning = time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)
	wedEvening = time.Date(2024, 3, 13, 17, 0, 0, 0, time.UTC)
)

func TestNewEstimate_IndependentOffPeak(t *testing.T) {
	tariff := DefaultTariffs()[ProviderIndependent]

	// 10 + 5*3.2 + 15*0.5 + 0 = 33.5, no surge, rounds to 35.
	est := NewEstimate(tariff, 5.0, 15, wedMorning)

	assert.Equal(t, 35.0, est.Price)
	assert.Equal(t, 33.5, est.RawFare)
	assert.Equal(t, 1.0, est.SurgeMultiplier)
	assert.Equal(t, "PKR", est.Currency)
}

func TestNewEstimate_UberEveningRush(t *testing.T) {
	tariff := DefaultTariffs()[ProviderUber]

	// 12 + 5*4.5 + 15*0.9 + 6 = 54, evening surge 1.35 undamped,
	// 72.9 rounds to 75.
	est := NewEstimate(tariff, 5.0, 15, wedEvening)

	assert.Equal(t, 75.0, est.Price)
	assert.Equal(t, 1.35, est.SurgeMultiplier)
}

func TestNewEstimate_MinimumFareFloor(t *testing.T) {
	tariff := DefaultTariffs()[ProviderCareem]

	est := NewEstimate(tariff, 0.1, 1, wedMorning)

	assert.Equal(t, tariff.MinimumFare, est.Price)
}

func TestNewEstimate_NegativeInputsClamped(t *testing.T) {
	tariff := DefaultTariffs()[ProviderBolt]

	est := NewEstimate(tariff, -3.0, -10, wedMorning)

	assert.Equal(t, tariff.MinimumFare, est.Price)
	assert.Equal(t, 0, est.DurationMinutes)
}

func TestNewEstimate_PriceMonotonicInDistance(t *testing.T) {
	tariff := DefaultTariffs()[ProviderUber]

	previous := 0.0
	for km := 1.0; km <= 50; km += 1.0 {
		est := NewEstimate(tariff, km, int(km*2), wedMorning)
		assert.GreaterOrEqual(t, est.Price, previous, "distance %.0f km", km)
		previous = est.Price
	}
}

func TestNewEstimate_RoundedToUnit(t *testing.T) {
	for provider, tariff := range DefaultTariffs() {
		est := NewEstimate(tariff, 7.3, 19, wedEvening)
		remainder := est.Price / tariff.RoundingUnit
		assert.Equal(t, float64(int(remainder)), remainder,
			"provider %s price %.2f not on a %.0f-unit boundary", provider, est.Price, tariff.RoundingUnit)
	}
}

func TestEstimateAll_CoversEveryTariff(t *testing.T) {
	tariffs := DefaultTariffs()
	estimates := EstimateAll(tariffs, 5.0, 15, wedMorning)

	require.Len(t, estimates, len(tariffs))
	for _, provider := range AllProviders() {
		est, ok := estimates[provider]
		require.True(t, ok, "missing estimate for %s", provider)
		assert.Equal(t, provider, est.Provider)
		assert.GreaterOrEqual(t, est.Price, tariffs[provider].MinimumFare)
	}
}

func TestDefaultTariffs_IndependentUndercutsAggregators(t *testing.T) {
	estimates := EstimateAll(DefaultTariffs(), 8.0, 24, wedEvening)

	independent := estimates[ProviderIndependent]
	for _, provider := range []Provider{ProviderUber, ProviderCareem} {
		assert.Less(t, independent.Price, estimates[provider].Price,
			"independent should undercut %s", provider)
	}
}

package fare

import (
	"math"
	"time"
)

// Estimate is the formula-derived fare for one provider. It is a pure
// function of its inputs, which keeps the surge and rounding behaviour
// fully deterministic and testable.
type Estimate struct {
	Provider        Provider `json:"provider"`
	RawFare         float64  `json:"raw_fare"`
	SurgeMultiplier float64  `json:"surge_multiplier"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency"`
	DurationMinutes int      `json:"duration_minutes"`
	PickupETAMin    int      `json:"pickup_eta_min"`
	ServiceRating   float64  `json:"service_rating"`
}

// NewEstimate computes the fare for a trip of the given distance and
// duration under the tariff's model:
//
//	raw   = base + km*perKm + min*perMin + bookingFee
//	surge = damped time-based multiplier
//	price = round(raw*surge, roundingUnit), floored at the minimum fare
func NewEstimate(tariff Tariff, distanceKm float64, durationMin int, at time.Time) Estimate {
	if distanceKm < 0 {
		distanceKm = 0
	}
	if durationMin < 0 {
		durationMin = 0
	}

	raw := tariff.BaseFare +
		distanceKm*tariff.PerKmRate +
		float64(durationMin)*tariff.PerMinuteRate +
		tariff.BookingFee

	surge := DampedSurge(SurgeMultiplier(at), tariff.SurgeDamping)

	price := roundToUnit(raw*surge, tariff.RoundingUnit)
	if price < tariff.MinimumFare {
		price = tariff.MinimumFare
	}

	return Estimate{
		Provider:        tariff.Provider,
		RawFare:         math.Round(raw*100) / 100,
		SurgeMultiplier: math.Round(surge*1000) / 1000,
		Price:           price,
		Currency:        tariff.Currency,
		DurationMinutes: durationMin,
		PickupETAMin:    tariff.TypicalPickupETAMin,
		ServiceRating:   tariff.ServiceRating,
	}
}

// EstimateAll computes estimates for every tariff in the table.
func EstimateAll(tariffs map[Provider]Tariff, distanceKm float64, durationMin int, at time.Time) map[Provider]Estimate {
	estimates := make(map[Provider]Estimate, len(tariffs))
	for provider, tariff := range tariffs {
		estimates[provider] = NewEstimate(tariff, distanceKm, durationMin, at)
	}
	return estimates
}

// roundToUnit snaps v to the nearest multiple of unit. A non-positive
// unit degrades to rounding at two decimal places.
func roundToUnit(v, unit float64) float64 {
	if unit <= 0 {
		return math.Round(v*100) / 100
	}
	return math.Round(v/unit) * unit
}

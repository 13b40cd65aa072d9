package compare

import (
	"math"

	"github.com/farepilot/farepilot/internal/capture"
	"github.com/farepilot/farepilot/internal/drivers"
	"github.com/farepilot/farepilot/internal/fare"
)

// independentSpeedKmh is the assumed approach speed for an independent
// driver heading to the pickup point.
const independentSpeedKmh = 30.0

// MergeInput is everything the merger combines into one offer set.
type MergeInput struct {
	Estimates  map[fare.Provider]fare.Estimate
	Observed   map[fare.Provider]capture.ObservedPrice
	Candidates []drivers.Candidate
	Degraded   bool
}

// Merge builds one quote per provider from formula estimates, captured
// observed prices and the independent driver pool.
//
// An observed price replaces the estimated price verbatim and marks the
// quote as observed. The independent provider is only quoted when a
// driver candidate or an observed price backs it; with neither it is
// omitted rather than invented.
func Merge(in MergeInput) []FareQuote {
	quotes := make([]FareQuote, 0, len(in.Estimates))

	for _, provider := range fare.AllProviders() {
		est, ok := in.Estimates[provider]
		if !ok {
			continue
		}

		observed, hasObserved := in.Observed[provider]

		if provider == fare.ProviderIndependent && len(in.Candidates) == 0 && !hasObserved {
			continue
		}

		quote := FareQuote{
			Provider:        provider,
			Price:           est.Price,
			Currency:        est.Currency,
			ETAMinutes:      est.PickupETAMin,
			DurationMinutes: est.DurationMinutes,
			SurgeMultiplier: est.SurgeMultiplier,
			Rating:          est.ServiceRating,
		}

		if hasObserved {
			quote.Price = observed.Price
			quote.IsObserved = true
			quote.SurgeMultiplier = 1.0
		}

		if provider == fare.ProviderIndependent {
			if nearest, found := drivers.Nearest(in.Candidates); found {
				quote.ETAMinutes = approachETA(nearest.DistanceKm)
				quote.Rating = nearest.Rating
				quote.Driver = &DriverInfo{
					ID:         nearest.ID,
					Name:       nearest.Name,
					Rating:     nearest.Rating,
					TotalRides: nearest.TotalRides,
					DistanceKm: nearest.DistanceKm,
					Vehicle:    nearest.Vehicle.String(),
				}
			}
		}

		quotes = append(quotes, quote)
	}

	return quotes
}

// approachETA converts a driver's distance from the pickup into whole
// minutes at city approach speed, never below two minutes.
func approachETA(distanceKm float64) int {
	eta := int(math.Round(distanceKm / independentSpeedKmh * 60))
	if eta < 2 {
		eta = 2
	}
	return eta
}

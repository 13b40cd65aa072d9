package fare

import "context"

// Tariff holds the fare model constants for a single provider.
// Values are resolved from the tariff store with DefaultTariffs as the
// hardcoded fallback when the store is unavailable.
type Tariff struct {
	Provider      Provider `json:"provider"`
	BaseFare      float64  `json:"base_fare"`
	PerKmRate     float64  `json:"per_km_rate"`
	PerMinuteRate float64  `json:"per_minute_rate"`
	BookingFee    float64  `json:"booking_fee"`
	MinimumFare   float64  `json:"minimum_fare"`

	// SurgeDamping scales how strongly the provider follows the
	// time-based surge: 1.0 tracks it fully, 0.3 barely reacts.
	SurgeDamping float64 `json:"surge_damping"`

	// RoundingUnit is the currency unit the final price snaps to.
	RoundingUnit float64 `json:"rounding_unit"`
	Currency     string  `json:"currency"`

	// TypicalPickupETAMin is the provider's typical pickup wait used for
	// estimate-derived quotes. Independent quotes derive theirs from the
	// nearest driver instead.
	TypicalPickupETAMin int `json:"typical_pickup_eta_min"`

	// ServiceRating is the provider's aggregate service rating used by
	// the best-service ranking policy.
	ServiceRating float64 `json:"service_rating"`
}

// DefaultTariffs returns the hardcoded per-provider fare models used when
// the tariff store is unreachable or empty.
func DefaultTariffs() map[Provider]Tariff {
	return map[Provider]Tariff{
		ProviderUber: {
			Provider:            ProviderUber,
			BaseFare:            12.0,
			PerKmRate:           4.5,
			PerMinuteRate:       0.9,
			BookingFee:          6.0,
			MinimumFare:         20.0,
			SurgeDamping:        1.0,
			RoundingUnit:        5.0,
			Currency:            "PKR",
			TypicalPickupETAMin: 4,
			ServiceRating:       4.8,
		},
		ProviderCareem: {
			Provider:            ProviderCareem,
			BaseFare:            14.0,
			PerKmRate:           4.2,
			PerMinuteRate:       0.8,
			BookingFee:          5.0,
			MinimumFare:         25.0,
			SurgeDamping:        0.9,
			RoundingUnit:        5.0,
			Currency:            "PKR",
			TypicalPickupETAMin: 5,
			ServiceRating:       4.6,
		},
		ProviderBolt: {
			Provider:            ProviderBolt,
			BaseFare:            9.0,
			PerKmRate:           3.8,
			PerMinuteRate:       0.7,
			BookingFee:          4.0,
			MinimumFare:         15.0,
			SurgeDamping:        0.8,
			RoundingUnit:        5.0,
			Currency:            "PKR",
			TypicalPickupETAMin: 6,
			ServiceRating:       4.4,
		},
		ProviderDidi: {
			Provider:            ProviderDidi,
			BaseFare:            8.0,
			PerKmRate:           3.6,
			PerMinuteRate:       0.6,
			BookingFee:          3.0,
			MinimumFare:         15.0,
			SurgeDamping:        0.7,
			RoundingUnit:        5.0,
			Currency:            "PKR",
			TypicalPickupETAMin: 7,
			ServiceRating:       4.3,
		},
		// inDriver fares are rider-negotiated, so no booking fee applies.
		ProviderInDriver: {
			Provider:            ProviderInDriver,
			BaseFare:            8.0,
			PerKmRate:           3.0,
			PerMinuteRate:       0.5,
			BookingFee:          0,
			MinimumFare:         15.0,
			SurgeDamping:        0.5,
			RoundingUnit:        5.0,
			Currency:            "PKR",
			TypicalPickupETAMin: 8,
			ServiceRating:       4.2,
		},
		ProviderIndependent: {
			Provider:            ProviderIndependent,
			BaseFare:            10.0,
			PerKmRate:           3.2,
			PerMinuteRate:       0.5,
			BookingFee:          0,
			MinimumFare:         15.0,
			SurgeDamping:        0.3,
			RoundingUnit:        5.0,
			Currency:            "PKR",
			TypicalPickupETAMin: 6,
			ServiceRating:       4.5,
		},
	}
}

// StaticSource serves a fixed tariff table. It backs the service when no
// tariff database is configured and doubles as the test double.
type StaticSource struct {
	tariffs map[Provider]Tariff
}

// NewStaticSource returns a source serving the given tariffs, or the
// defaults when nil.
func NewStaticSource(tariffs map[Provider]Tariff) *StaticSource {
	if tariffs == nil {
		tariffs = DefaultTariffs()
	}
	return &StaticSource{tariffs: tariffs}
}

// Tariffs returns the tariff table.
func (s *StaticSource) Tariffs(_ context.Context) map[Provider]Tariff {
	out := make(map[Provider]Tariff, len(s.tariffs))
	for provider, tariff := range s.tariffs {
		out[provider] = tariff
	}
	return out
}

package compare

import (
	"fmt"
	"time"

	"github.com/farepilot/farepilot/internal/deeplink"
	"github.com/farepilot/farepilot/internal/fare"
)

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// TripRequest describes the trip to price across providers.
type TripRequest struct {
	Origin         Location
	Destination    Location
	PickupAddress  string
	DropoffAddress string
	RequestedAt    time.Time
}

// DriverInfo is attached to the independent offer when a real driver
// candidate backs it.
type DriverInfo struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	TotalRides int     `json:"total_rides"`
	DistanceKm float64 `json:"distance_km"`
	Vehicle    string  `json:"vehicle"`
}

// FareQuote is one provider's offer for the trip.
type FareQuote struct {
	Provider        fare.Provider `json:"provider"`
	Price           float64       `json:"price"`
	Currency        string        `json:"currency"`
	ETAMinutes      int           `json:"eta_minutes"`
	DurationMinutes int           `json:"duration_minutes"`
	SurgeMultiplier float64       `json:"surge_multiplier"`
	Rating          float64       `json:"rating"`
	IsObserved      bool          `json:"is_observed"`
	IsBest          bool          `json:"is_best"`
	Driver          *DriverInfo   `json:"driver,omitempty"`
}

// SortPolicy selects the ranking order for an offer set.
type SortPolicy string

const (
	PolicyLowestPrice    SortPolicy = "lowest_price"
	PolicyFastestArrival SortPolicy = "fastest_arrival"
	PolicyBestService    SortPolicy = "best_service"
)

// ParseSortPolicy validates a policy string. An empty string maps to
// the default lowest_price policy.
func ParseSortPolicy(s string) (SortPolicy, error) {
	switch SortPolicy(s) {
	case "":
		return PolicyLowestPrice, nil
	case PolicyLowestPrice, PolicyFastestArrival, PolicyBestService:
		return SortPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown sort policy: %q", s)
	}
}

// DataQuality flags whether an offer set is backed by live collaborator
// data or by placeholder fallbacks.
type DataQuality string

const (
	QualityLive     DataQuality = "live"
	QualityFallback DataQuality = "fallback"
)

// RankedOfferSet is the result of a comparison: ranked offers plus the
// trip geometry they were priced against.
type RankedOfferSet struct {
	Offers          []FareQuote `json:"offers"`
	Policy          SortPolicy  `json:"policy"`
	DataQuality     DataQuality `json:"data_quality"`
	DistanceKm      float64     `json:"distance_km"`
	DurationMinutes int         `json:"duration_minutes"`
	GeneratedAt     time.Time   `json:"generated_at"`
}

// CompareRequest is the HTTP payload for a comparison.
type CompareRequest struct {
	OriginLat      *float64 `json:"origin_lat" binding:"required"`
	OriginLng      *float64 `json:"origin_lng" binding:"required"`
	DestinationLat *float64 `json:"destination_lat" binding:"required"`
	DestinationLng *float64 `json:"destination_lng" binding:"required"`
	PickupAddress  string   `json:"pickup_address"`
	DropoffAddress string   `json:"dropoff_address"`
	SortBy         string   `json:"sort_by"`
}

// DeepLinkRequest is the HTTP payload for resolving a provider handoff.
type DeepLinkRequest struct {
	Provider       string   `json:"provider" binding:"required"`
	OriginLat      *float64 `json:"origin_lat" binding:"required"`
	OriginLng      *float64 `json:"origin_lng" binding:"required"`
	DestinationLat *float64 `json:"destination_lat" binding:"required"`
	DestinationLng *float64 `json:"destination_lng" binding:"required"`
	PickupAddress  string   `json:"pickup_address"`
	DropoffAddress string   `json:"dropoff_address"`
}

// DeepLinkResponse pairs the provider with its handoff action.
type DeepLinkResponse struct {
	Provider string          `json:"provider"`
	Action   deeplink.Action `json:"action"`
}

// ProviderInfo is the static provider description exposed on the
// providers listing endpoint.
type ProviderInfo struct {
	Provider      fare.Provider `json:"provider"`
	Currency      string        `json:"currency"`
	MinimumFare   float64       `json:"minimum_fare"`
	ServiceRating float64       `json:"service_rating"`
}

package eventbus

import "time"

// CompareCompletedData is emitted after a fare comparison finishes.
type CompareCompletedData struct {
	PickupLatitude   float64   `json:"pickup_latitude"`
	PickupLongitude  float64   `json:"pickup_longitude"`
	DropoffLatitude  float64   `json:"dropoff_latitude"`
	DropoffLongitude float64   `json:"dropoff_longitude"`
	DistanceKm       float64   `json:"distance_km"`
	SortPolicy       string    `json:"sort_policy"`
	OfferCount       int       `json:"offer_count"`
	ObservedCount    int       `json:"observed_count"`
	BestProvider     string    `json:"best_provider"`
	BestPrice        float64   `json:"best_price"`
	Currency         string    `json:"currency"`
	DataQuality      string    `json:"data_quality"`
	CompletedAt      time.Time `json:"completed_at"`
}

// OfferSelectedData is emitted when a rider dispatches to a provider.
type OfferSelectedData struct {
	Provider   string    `json:"provider"`
	Price      float64   `json:"price"`
	IsObserved bool      `json:"is_observed"`
	ActionType string    `json:"action_type"`
	SelectedAt time.Time `json:"selected_at"`
}

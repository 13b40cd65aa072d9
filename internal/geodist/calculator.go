package geodist

import (
	"math"
	"time"
)

const (
	earthRadiusKm = 6371.0

	// roadFactor inflates the great-circle distance to approximate the
	// actual driving distance on the road network.
	roadFactor = 1.20

	// Average speed buckets by hour of day.
	speedRushKmh   = 18.0
	speedNightKmh  = 35.0
	speedNormalKmh = 25.0
)

// Result holds the road-adjusted distance and traffic-aware duration for
// a trip. Both values are always non-negative.
type Result struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
}

// Calculate converts two coordinates and a trip time into a road-adjusted
// distance and a duration estimate. Pure function of its inputs.
func Calculate(originLat, originLng, destLat, destLng float64, at time.Time) Result {
	distance := Haversine(originLat, originLng, destLat, destLng) * roadFactor
	distance = math.Round(distance*100) / 100

	speed := speedForHour(at.Hour())
	minutes := int(math.Round(distance / speed * 60))

	return Result{
		DistanceKm:      distance,
		DurationMinutes: minutes,
	}
}

// Haversine calculates the great-circle distance in kilometres between
// two coordinates.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// speedForHour picks the average-speed bucket: rush hours crawl, night
// hours flow, everything else sits in between.
func speedForHour(hour int) float64 {
	switch {
	case (hour >= 7 && hour < 10) || (hour >= 16 && hour < 20):
		return speedRushKmh
	case hour >= 22 || hour < 6:
		return speedNightKmh
	default:
		return speedNormalKmh
	}
}

package drivers

import "fmt"

// Vehicle describes an independent driver's car.
type Vehicle struct {
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	Color       string `json:"color"`
	PlateNumber string `json:"plate_number"`
}

// String renders the vehicle as a rider-facing label.
func (v Vehicle) String() string {
	return fmt.Sprintf("%s %s (%s)", v.Make, v.Model, v.Color)
}

// Candidate is an independent driver available near a pickup point.
type Candidate struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	TotalRides int     `json:"total_rides"`
	DistanceKm float64 `json:"distance_km"`
	Vehicle    Vehicle `json:"vehicle"`
}

// Nearest returns the candidate with the smallest pickup distance, or
// false when the slice is empty.
func Nearest(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}

	nearest := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.DistanceKm < nearest.DistanceKm {
			nearest = candidate
		}
	}
	return nearest, true
}

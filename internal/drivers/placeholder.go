package drivers

// PlaceholderCandidates is the fixed fallback roster used when the
// driver-pool service is unreachable, so a comparison can still complete.
// Callers must surface the degraded state alongside these candidates.
func PlaceholderCandidates() []Candidate {
	return []Candidate{
		{
			ID:         "fallback-1",
			Name:       "Ahmed K.",
			Rating:     4.7,
			TotalRides: 1240,
			DistanceKm: 1.2,
			Vehicle:    Vehicle{Make: "Toyota", Model: "Corolla", Year: 2019, Color: "White", PlateNumber: "LEB-4821"},
		},
		{
			ID:         "fallback-2",
			Name:       "Bilal S.",
			Rating:     4.5,
			TotalRides: 860,
			DistanceKm: 2.1,
			Vehicle:    Vehicle{Make: "Suzuki", Model: "Cultus", Year: 2021, Color: "Silver", PlateNumber: "LEC-7730"},
		},
		{
			ID:         "fallback-3",
			Name:       "Imran R.",
			Rating:     4.8,
			TotalRides: 2050,
			DistanceKm: 2.8,
			Vehicle:    Vehicle{Make: "Honda", Model: "City", Year: 2018, Color: "Black", PlateNumber: "LED-1194"},
		},
	}
}

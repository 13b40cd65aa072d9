package compare

import "sort"

// Rank orders quotes by the given policy and marks the first offer as
// best. It returns a new slice and never mutates its input, so repeated
// ranking of the same quotes is stable and idempotent.
func Rank(quotes []FareQuote, policy SortPolicy) []FareQuote {
	ranked := make([]FareQuote, len(quotes))
	copy(ranked, quotes)
	for i := range ranked {
		ranked[i].IsBest = false
	}

	less := lessFunc(policy)
	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j])
	})

	if len(ranked) > 0 {
		ranked[0].IsBest = true
	}
	return ranked
}

func lessFunc(policy SortPolicy) func(a, b FareQuote) bool {
	switch policy {
	case PolicyFastestArrival:
		return func(a, b FareQuote) bool {
			if a.ETAMinutes != b.ETAMinutes {
				return a.ETAMinutes < b.ETAMinutes
			}
			return a.Price < b.Price
		}
	case PolicyBestService:
		return func(a, b FareQuote) bool {
			sa, sb := serviceScore(a), serviceScore(b)
			if sa != sb {
				return sa > sb
			}
			return a.Price < b.Price
		}
	default:
		// lowest_price
		return func(a, b FareQuote) bool {
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			if a.ETAMinutes != b.ETAMinutes {
				return a.ETAMinutes < b.ETAMinutes
			}
			return a.Rating > b.Rating
		}
	}
}

// serviceScore weighs rating against price so a slightly cheaper offer
// does not beat a clearly better-rated one.
func serviceScore(q FareQuote) float64 {
	return q.Rating*10 - q.Price/100
}

package fare

import "time"

// Surge window multipliers. Windows are half-open on the hour:
// [07,10) morning rush, [16,20) evening rush, [22,06) late night and a
// Friday midday window around Jummah prayers.
const (
	surgeMorningRush  = 1.25
	surgeEveningRush  = 1.35
	surgeLateNight    = 1.20
	surgeFridayMidday = 1.15

	// weekendStack applies on top of the window surge during the
	// Thursday and Friday going-out evenings.
	weekendStack = 1.10
)

// SurgeMultiplier computes the undamped surge for the given trip time.
// Returns exactly 1.0 outside all defined windows.
func SurgeMultiplier(at time.Time) float64 {
	surge := windowMultiplier(at)
	if isWeekendWindow(at) {
		surge *= weekendStack
	}
	return surge
}

// DampedSurge scales a raw surge toward 1.0 by the provider's damping
// factor: damping 1.0 keeps the surge as-is, damping 0 removes it.
func DampedSurge(surge, damping float64) float64 {
	return 1.0 + (surge-1.0)*damping
}

func windowMultiplier(at time.Time) float64 {
	hour := at.Hour()

	switch {
	case hour >= 7 && hour < 10:
		return surgeMorningRush
	case hour >= 16 && hour < 20:
		return surgeEveningRush
	case hour >= 22 || hour < 6:
		return surgeLateNight
	case at.Weekday() == time.Friday && hour >= 12 && hour < 14:
		return surgeFridayMidday
	}

	return 1.0
}

func isWeekendWindow(at time.Time) bool {
	weekday := at.Weekday()
	return (weekday == time.Thursday || weekday == time.Friday) && at.Hour() >= 18
}

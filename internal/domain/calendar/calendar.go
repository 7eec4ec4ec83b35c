package calendar

import (
	"time"
)

const (
	// DefaultMinimumStay applies whenever the upstream feed has no
	// per-date override.
	DefaultMinimumStay = 2

	// The synthesized window reaches back a few days so that gap
	// management can see recently closed ranges; the look-back is trimmed
	// before the calendar is exposed.
	lookBackDays = 5
	forwardDays  = 365

	// Short orphan windows between two blocked ranges are not sellable;
	// anything shorter than this many free days gets blacked out.
	minSellableGapDays = 3

	DateLayout = "2006-01-02"
)

// RawMaps carries the two loosely-typed structures the upstream feed embeds:
// per-date availability flags (0/1, exceptions only) and per-date
// minimum-stay overrides. Either map may be empty.
type RawMaps struct {
	Availability map[string]int
	MinimumStay  map[string]int
}

// Day is one date of a property's calendar.
type Day struct {
	Date             string `json:"date"`
	Available        bool   `json:"available"`
	MinimumStay      int    `json:"minimumStay"`
	ArrivalAllowed   bool   `json:"arrivalAllowed"`
	DepartureAllowed bool   `json:"departureAllowed"`
}

// CivilToday anchors "today" at midnight of the current civil date in the
// property's operating timezone, so day boundaries are stable no matter
// where the process runs.
func CivilToday(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Synthesize builds the raw day sequence from the two upstream maps. The
// availability map lists exceptions only: a date that is absent counts as
// available. Dates strictly before today are never available.
func Synthesize(availability map[string]int, minimumStay map[string]int, today time.Time) []Day {
	days := make([]Day, 0, lookBackDays+forwardDays+1)
	for offset := -lookBackDays; offset <= forwardDays; offset++ {
		date := today.AddDate(0, 0, offset)
		key := date.Format(DateLayout)

		available := offset >= 0
		if available {
			if flag, listed := availability[key]; listed {
				available = flag == 1
			}
		}

		stay := DefaultMinimumStay
		if override, ok := minimumStay[key]; ok && override >= 1 {
			stay = override
		}

		days = append(days, Day{
			Date:             key,
			Available:        available,
			MinimumStay:      stay,
			ArrivalAllowed:   true,
			DepartureAllowed: true,
		})
	}
	return days
}

// ApplyGapManagement blacks out 1-2 day availability windows wedged between
// two unavailable dates. Such micro-windows are technically bookable
// upstream but not operationally sellable. The slice is contiguous daily
// dates, so index distance equals calendar-day distance.
func ApplyGapManagement(days []Day) {
	blocked := make([]int, 0, len(days))
	for i, d := range days {
		if !d.Available {
			blocked = append(blocked, i)
		}
	}
	if len(blocked) < 2 {
		return
	}
	for i := 1; i < len(blocked); i++ {
		gap := blocked[i] - blocked[i-1] - 1
		if gap <= 0 || gap >= minSellableGapDays {
			continue
		}
		for j := blocked[i-1] + 1; j < blocked[i]; j++ {
			days[j].Available = false
			days[j].ArrivalAllowed = false
			days[j].DepartureAllowed = false
		}
	}
}

// TrimPast drops every date strictly before today. ISO dates compare
// lexicographically.
func TrimPast(days []Day, today time.Time) []Day {
	cutoff := today.Format(DateLayout)
	out := make([]Day, 0, len(days))
	for _, d := range days {
		if d.Date < cutoff {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Normalize runs the full pipeline over the raw upstream maps: synthesize
// the extended window, suppress short gaps, then trim the look-back.
func Normalize(availability map[string]int, minimumStay map[string]int, today time.Time) []Day {
	days := Synthesize(availability, minimumStay, today)
	ApplyGapManagement(days)
	return TrimPast(days, today)
}

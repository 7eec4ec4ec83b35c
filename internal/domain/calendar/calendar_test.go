package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func romeToday(t *testing.T, instant string) time.Time {
	t.Helper()
	now, err := time.Parse(time.RFC3339, instant)
	require.NoError(t, err)
	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)
	return CivilToday(now, loc)
}

func TestCivilTodayUsesRomeCivilDate(t *testing.T) {
	// 23:30 UTC is already past midnight in Rome (CET, +1).
	today := romeToday(t, "2026-01-15T23:30:00Z")
	assert.Equal(t, "2026-01-16", today.Format(DateLayout))

	// Same instant earlier in the evening stays on the 15th.
	today = romeToday(t, "2026-01-15T20:00:00Z")
	assert.Equal(t, "2026-01-15", today.Format(DateLayout))
}

func dayByDate(t *testing.T, days []Day, date string) Day {
	t.Helper()
	for _, d := range days {
		if d.Date == date {
			return d
		}
	}
	t.Fatalf("date %s not in calendar", date)
	return Day{}
}

func TestSynthesizePastDatesNeverAvailable(t *testing.T) {
	today := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	avail := map[string]int{
		"2026-06-07": 1, // upstream says available, but it is in the past
	}

	days := Synthesize(avail, nil, today)

	require.Len(t, days, 371)
	assert.Equal(t, "2026-06-05", days[0].Date)
	assert.Equal(t, "2027-06-10", days[len(days)-1].Date)
	for _, d := range days[:5] {
		assert.False(t, d.Available, "past date %s must be unavailable", d.Date)
	}
}

func TestSynthesizeAbsenceMeansAvailable(t *testing.T) {
	today := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	avail := map[string]int{
		"2026-06-12": 0,
		"2026-06-13": 1,
	}

	days := Synthesize(avail, nil, today)

	assert.True(t, dayByDate(t, days, "2026-06-11").Available, "unlisted date defaults to available")
	assert.False(t, dayByDate(t, days, "2026-06-12").Available)
	assert.True(t, dayByDate(t, days, "2026-06-13").Available)
}

func TestSynthesizeMinimumStay(t *testing.T) {
	today := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	minStay := map[string]int{
		"2026-06-12": 7,
		"2026-06-13": 0, // nonsense override falls back to the default
	}

	days := Synthesize(nil, minStay, today)

	assert.Equal(t, DefaultMinimumStay, dayByDate(t, days, "2026-06-11").MinimumStay)
	assert.Equal(t, 7, dayByDate(t, days, "2026-06-12").MinimumStay)
	assert.Equal(t, DefaultMinimumStay, dayByDate(t, days, "2026-06-13").MinimumStay)
}

func TestGapManagementSuppressesShortWindows(t *testing.T) {
	today := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	avail := map[string]int{
		// one-day orphan between two blocks
		"2026-06-12": 0,
		"2026-06-14": 0,
		// two-day orphan
		"2026-06-20": 0,
		"2026-06-23": 0,
		// three free days: stays sellable
		"2026-07-01": 0,
		"2026-07-05": 0,
	}

	days := Normalize(avail, nil, today)

	orphan := dayByDate(t, days, "2026-06-13")
	assert.False(t, orphan.Available)
	assert.False(t, orphan.ArrivalAllowed)
	assert.False(t, orphan.DepartureAllowed)

	for _, date := range []string{"2026-06-21", "2026-06-22"} {
		d := dayByDate(t, days, date)
		assert.False(t, d.Available, "%s inside 2-day gap", date)
		assert.False(t, d.ArrivalAllowed)
		assert.False(t, d.DepartureAllowed)
	}

	for _, date := range []string{"2026-07-02", "2026-07-03", "2026-07-04"} {
		d := dayByDate(t, days, date)
		assert.True(t, d.Available, "%s inside 3-day window stays open", date)
		assert.True(t, d.ArrivalAllowed)
	}
}

func TestGapManagementAdjacentBlocksUnchanged(t *testing.T) {
	days := []Day{
		{Date: "2026-06-12", Available: false, ArrivalAllowed: true, DepartureAllowed: true},
		{Date: "2026-06-13", Available: false, ArrivalAllowed: true, DepartureAllowed: true},
		{Date: "2026-06-14", Available: true, ArrivalAllowed: true, DepartureAllowed: true},
	}
	ApplyGapManagement(days)
	assert.True(t, days[2].Available)
	assert.True(t, days[2].ArrivalAllowed)
}

func TestGapManagementFewerThanTwoBlockedIsNoop(t *testing.T) {
	days := []Day{
		{Date: "2026-06-12", Available: true, ArrivalAllowed: true, DepartureAllowed: true},
		{Date: "2026-06-13", Available: false, ArrivalAllowed: true, DepartureAllowed: true},
		{Date: "2026-06-14", Available: true, ArrivalAllowed: true, DepartureAllowed: true},
	}
	ApplyGapManagement(days)
	assert.True(t, days[0].Available)
	assert.True(t, days[2].Available)
}

func TestNormalizeExposesOnlyFutureAscendingUnique(t *testing.T) {
	today := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	days := Normalize(map[string]int{"2026-06-15": 0}, nil, today)

	require.NotEmpty(t, days)
	assert.Equal(t, "2026-06-10", days[0].Date)
	seen := make(map[string]bool, len(days))
	prev := ""
	for _, d := range days {
		assert.False(t, seen[d.Date], "duplicate date %s", d.Date)
		seen[d.Date] = true
		assert.Greater(t, d.Date, prev)
		prev = d.Date
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	today := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	avail := map[string]int{"2026-06-12": 0, "2026-06-14": 0, "2026-08-01": 0}
	minStay := map[string]int{"2026-06-20": 3}

	first := Normalize(avail, minStay, today)
	second := Normalize(avail, minStay, today)
	assert.Equal(t, first, second)
}

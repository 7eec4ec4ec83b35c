package calendarfeed

import (
	"encoding/json"
	"regexp"
)

// The widget embeds two object literals as plain variable assignments. The
// patterns are anchored on the exact variable names and stop at the first
// closing brace: a nested or multi-line literal simply fails to match and
// yields an empty map, it never aborts the other extraction.
var (
	availabilityRe = regexp.MustCompile(`availability_calendar\s*=\s*(\{[^}]*\})`)
	minimumStayRe  = regexp.MustCompile(`minimum_stay\s*=\s*(\{[^}]*\})`)
)

// ExtractAvailability pulls the per-date availability flags out of the raw
// widget body. Absent dates mean "available"; the feed lists exceptions only.
func ExtractAvailability(body string) map[string]int {
	return extractObjectLiteral(availabilityRe, body)
}

// ExtractMinimumStay pulls the per-date minimum-stay overrides out of the
// raw widget body.
func ExtractMinimumStay(body string) map[string]int {
	return extractObjectLiteral(minimumStayRe, body)
}

func extractObjectLiteral(re *regexp.Regexp, body string) map[string]int {
	match := re.FindStringSubmatch(body)
	if match == nil {
		return map[string]int{}
	}
	out := map[string]int{}
	if err := json.Unmarshal([]byte(match[1]), &out); err != nil {
		return map[string]int{}
	}
	return out
}

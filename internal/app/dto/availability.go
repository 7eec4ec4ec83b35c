package dto

import (
	"villetta/internal/domain/calendar"
)

type CalendarDay struct {
	Date             string `json:"date"`
	Available        bool   `json:"available"`
	MinimumStay      int    `json:"minimumStay"`
	ArrivalAllowed   bool   `json:"arrivalAllowed"`
	DepartureAllowed bool   `json:"departureAllowed"`
}

type PropertyCalendar struct {
	PropertyID string        `json:"propertyId"`
	Calendar   []CalendarDay `json:"calendar"`
}

func MapCalendar(propertyID string, days []calendar.Day) PropertyCalendar {
	out := make([]CalendarDay, 0, len(days))
	for _, d := range days {
		out = append(out, CalendarDay{
			Date:             d.Date,
			Available:        d.Available,
			MinimumStay:      d.MinimumStay,
			ArrivalAllowed:   d.ArrivalAllowed,
			DepartureAllowed: d.DepartureAllowed,
		})
	}
	return PropertyCalendar{PropertyID: propertyID, Calendar: out}
}

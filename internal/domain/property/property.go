package property

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("property: not found")

// DefaultTimezone is where the portfolio operates; individual properties may
// override it.
const DefaultTimezone = "Europe/Rome"

// Property describes one rental unit and the upstream identifiers needed to
// query the reservation platform on its behalf.
type Property struct {
	ID                 string `json:"id"`
	Slug               string `json:"slug"`
	Name               string `json:"name"`
	UpstreamCalendarID string `json:"upstreamCalendarId"`
	UpstreamRoomTypeID string `json:"upstreamRoomTypeId"`
	MaxGuests          int    `json:"maxGuests"`
	Currency           string `json:"currency"`
	Timezone           string `json:"timezone"`
}

// Location resolves the property's operating timezone, falling back to the
// portfolio default when unset or unknown.
func (p Property) Location() *time.Location {
	name := p.Timezone
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc, _ = time.LoadLocation(DefaultTimezone)
	}
	return loc
}

type Repository interface {
	ByID(ctx context.Context, id string) (*Property, error)
	List(ctx context.Context) ([]Property, error)
	Save(ctx context.Context, p *Property) error
}

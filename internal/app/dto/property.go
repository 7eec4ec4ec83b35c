package dto

import (
	"villetta/internal/domain/property"
)

type PropertySummary struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	MaxGuests int    `json:"maxGuests"`
	Currency  string `json:"currency"`
	Timezone  string `json:"timezone"`
}

func MapProperty(p property.Property) PropertySummary {
	tz := p.Timezone
	if tz == "" {
		tz = property.DefaultTimezone
	}
	return PropertySummary{
		ID:        p.ID,
		Slug:      p.Slug,
		Name:      p.Name,
		MaxGuests: p.MaxGuests,
		Currency:  p.Currency,
		Timezone:  tz,
	}
}

func MapProperties(items []property.Property) []PropertySummary {
	out := make([]PropertySummary, 0, len(items))
	for _, p := range items {
		out = append(out, MapProperty(p))
	}
	return out
}

package dto

import (
	"villetta/internal/domain/pricing"
)

type PriceLineItem struct {
	Type     string `json:"type"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type PriceQuote struct {
	AccommodationTotal    int64           `json:"accommodationTotal"`
	AccommodationPerNight int64           `json:"accommodationPerNight"`
	CleaningFee           int64           `json:"cleaningFee"`
	Taxes                 int64           `json:"taxes"`
	ServiceFeesTotal      int64           `json:"serviceFeesTotal"`
	GrandTotal            int64           `json:"grandTotal"`
	Nights                int             `json:"nights"`
	Currency              string          `json:"currency"`
	Breakdown             []PriceLineItem `json:"breakdown"`
}

func MapQuote(calc pricing.Calculation) PriceQuote {
	breakdown := make([]PriceLineItem, 0, len(calc.Breakdown))
	for _, item := range calc.Breakdown {
		breakdown = append(breakdown, PriceLineItem{
			Type:     item.Type,
			Amount:   item.Total.Amount,
			Currency: item.Total.Currency,
		})
	}
	return PriceQuote{
		AccommodationTotal:    calc.AccommodationTotal,
		AccommodationPerNight: calc.AccommodationPerNight,
		CleaningFee:           calc.CleaningFee,
		Taxes:                 calc.Taxes,
		ServiceFeesTotal:      calc.ServiceFeesTotal,
		GrandTotal:            calc.GrandTotal,
		Nights:                calc.Nights,
		Currency:              calc.Currency,
		Breakdown:             breakdown,
	}
}

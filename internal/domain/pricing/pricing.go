package pricing

import (
	"strings"
	"time"

	"villetta/internal/domain/shared/jsontree"
	"villetta/internal/domain/shared/money"
)

// Upstream line-item types we recognize. Anything else, discounts included,
// folds into the service-fee bucket so the grand total always reconciles
// with the upstream sum.
const (
	ItemAccommodation = "ACCOMMODATION"
	ItemCleaningFee   = "CLEANING_FEE"
	ItemTaxes         = "TAXES"
	ItemServiceFee    = "SERVICE_FEE"
)

// BreakdownKey is the field the extractor hunts for inside the checkout
// response; its exact path is not guaranteed by the upstream schema.
const BreakdownKey = "priceBreakdown"

const itemsKey = "priceItems"

// QuoteParams identifies one checkout quote request.
type QuoteParams struct {
	RoomTypeID string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
}

// LineItem is one typed, priced component of the upstream quote, kept for
// traceability next to the derived totals.
type LineItem struct {
	Type  string      `json:"type"`
	Total money.Money `json:"total"`
}

// Calculation is the derived per-stay price summary. Amounts are whole
// currency units.
type Calculation struct {
	AccommodationTotal    int64      `json:"accommodationTotal"`
	AccommodationPerNight int64      `json:"accommodationPerNight"`
	CleaningFee           int64      `json:"cleaningFee"`
	Taxes                 int64      `json:"taxes"`
	ServiceFeesTotal      int64      `json:"serviceFeesTotal"`
	GrandTotal            int64      `json:"grandTotal"`
	Nights                int        `json:"nights"`
	Currency              string     `json:"currency"`
	Breakdown             []LineItem `json:"breakdown"`
}

// NightsBetween counts whole days between check-in and check-out.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}

// ItemsFromBreakdown pulls the flat top-level line-item list out of a
// breakdown node located by jsontree.FindFirst. Items that do not carry a
// parseable amount are skipped. Returns false when the node has no
// recognizable item list at all.
func ItemsFromBreakdown(node any) ([]LineItem, bool) {
	obj, ok := node.(*jsontree.Object)
	if !ok {
		return nil, false
	}
	rawItems, ok := obj.Get(itemsKey)
	if !ok {
		return nil, false
	}
	list, ok := rawItems.([]any)
	if !ok {
		return nil, false
	}

	items := make([]LineItem, 0, len(list))
	for _, raw := range list {
		item, ok := raw.(*jsontree.Object)
		if !ok {
			continue
		}
		typ, _ := item.Get("type")
		typeName, _ := typ.(string)

		total, ok := item.Get("total")
		if !ok {
			continue
		}
		totalObj, ok := total.(*jsontree.Object)
		if !ok {
			continue
		}
		rawMicros, _ := totalObj.Get("amountMicros")
		micros, err := money.ParseMicros(rawMicros)
		if err != nil {
			continue
		}
		rawCurrency, _ := totalObj.Get("currency")
		currency, _ := rawCurrency.(string)
		amount, err := money.FromMicros(micros, currency)
		if err != nil {
			continue
		}
		items = append(items, LineItem{Type: typeName, Total: amount})
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

// Classify buckets the line items and derives per-night and grand-total
// figures. Unrecognized types are folded into service fees rather than
// dropped, so the grand total still matches the sum of upstream amounts.
func Classify(items []LineItem, nights int) Calculation {
	calc := Calculation{Nights: nights, Breakdown: items}
	for _, item := range items {
		if calc.Currency == "" {
			calc.Currency = item.Total.Currency
		}
		switch strings.ToUpper(item.Type) {
		case ItemAccommodation:
			calc.AccommodationTotal += item.Total.Amount
		case ItemCleaningFee:
			calc.CleaningFee += item.Total.Amount
		case ItemTaxes:
			calc.Taxes += item.Total.Amount
		case ItemServiceFee:
			calc.ServiceFeesTotal += item.Total.Amount
		default:
			calc.ServiceFeesTotal += item.Total.Amount
		}
	}
	if nights > 0 {
		calc.AccommodationPerNight = calc.AccommodationTotal / int64(nights)
	}
	calc.GrandTotal = calc.AccommodationTotal + calc.CleaningFee + calc.Taxes + calc.ServiceFeesTotal
	return calc
}

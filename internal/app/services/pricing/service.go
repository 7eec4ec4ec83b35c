package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"villetta/internal/app/dto"
	"villetta/internal/domain/calendar"
	domainpricing "villetta/internal/domain/pricing"
	"villetta/internal/domain/property"
	"villetta/internal/domain/shared/jsontree"
)

var (
	// ErrInvalidDates rejects requests with missing or malformed dates.
	ErrInvalidDates = errors.New("pricing: checkin and checkout are required")
	// ErrInvalidRange rejects stays of zero or negative length.
	ErrInvalidRange = errors.New("pricing: checkout must fall after checkin")
	// ErrGuestLimit rejects guest counts outside the property's capacity.
	ErrGuestLimit = errors.New("pricing: guest count exceeds property capacity")
	// ErrNotAvailable signals that the upstream withheld the breakdown;
	// this is an expected funnel state, not a server fault.
	ErrNotAvailable = errors.New("pricing: breakdown not yet available")
)

// IsValidation reports whether err is a pre-flight validation failure, as
// opposed to an upstream condition.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidDates) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrGuestLimit)
}

// QuoteFetcher retrieves the raw checkout response for a stay.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, params domainpricing.QuoteParams) ([]byte, error)
}

type Service struct {
	properties property.Repository
	checkout   QuoteFetcher
	logger     *slog.Logger
}

func NewService(properties property.Repository, checkout QuoteFetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{properties: properties, checkout: checkout, logger: logger}
}

// Quote validates the request, fetches a fresh checkout quote and extracts
// the classified price breakdown. Validation failures never reach the
// network; a missing breakdown anywhere in the response maps to
// ErrNotAvailable.
func (s *Service) Quote(ctx context.Context, propertyID, checkIn, checkOut string, guests int) (dto.PriceQuote, error) {
	var zero dto.PriceQuote

	in, out, err := parseStayDates(checkIn, checkOut)
	if err != nil {
		return zero, err
	}
	nights := domainpricing.NightsBetween(in, out)
	if nights < 1 {
		return zero, ErrInvalidRange
	}

	p, err := s.properties.ByID(ctx, propertyID)
	if err != nil {
		return zero, err
	}
	if guests < 1 || guests > p.MaxGuests {
		return zero, ErrGuestLimit
	}

	body, err := s.checkout.FetchQuote(ctx, domainpricing.QuoteParams{
		RoomTypeID: p.UpstreamRoomTypeID,
		CheckIn:    in,
		CheckOut:   out,
		Guests:     guests,
	})
	if err != nil {
		s.logger.Warn("checkout quote unavailable", "property_id", p.ID, "error", err)
		return zero, fmt.Errorf("%w: %v", ErrNotAvailable, err)
	}

	root, err := jsontree.Parse(body)
	if err != nil {
		s.logger.Warn("checkout response not parseable", "property_id", p.ID, "error", err)
		return zero, ErrNotAvailable
	}
	node, ok := jsontree.FindFirst(root, domainpricing.BreakdownKey)
	if !ok {
		return zero, ErrNotAvailable
	}
	items, ok := domainpricing.ItemsFromBreakdown(node)
	if !ok {
		return zero, ErrNotAvailable
	}

	calc := domainpricing.Classify(items, nights)
	if calc.Currency == "" {
		calc.Currency = p.Currency
	}
	return dto.MapQuote(calc), nil
}

func parseStayDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	if checkIn == "" || checkOut == "" {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	in, err := time.Parse(calendar.DateLayout, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	out, err := time.Parse(calendar.DateLayout, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	return in, out, nil
}

// Package checkout queries the booking platform's checkout endpoint for a
// freshly quoted price. Quotes must never be served stale, so every request
// carries no-cache semantics.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"villetta/internal/domain/calendar"
	"villetta/internal/domain/pricing"
)

var ErrUnavailable = errors.New("checkout: upstream unavailable")

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const maxBodyBytes = 4 << 20

type Client struct {
	HTTP *http.Client
	// BaseURL of the checkout quote endpoint.
	BaseURL string
	// QueryHash identifies the persisted query shape on the upstream side.
	QueryHash string
	// Currency forced on every quote regardless of the visitor's locale.
	Currency string
	Limiter  *rate.Limiter
	Logger   *slog.Logger
}

// FetchQuote requests a quote for the given stay and returns the raw JSON
// response body; the breakdown's location inside it is not stable, so
// decoding is left to the extractor.
func (c *Client) FetchQuote(ctx context.Context, params pricing.QuoteParams) ([]byte, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	q := url.Values{}
	q.Set("room_type_id", params.RoomTypeID)
	q.Set("checkin", params.CheckIn.Format(calendar.DateLayout))
	q.Set("checkout", params.CheckOut.Format(calendar.DateLayout))
	q.Set("guests", strconv.Itoa(params.Guests))
	q.Set("currency", c.Currency)
	q.Set("query_hash", c.QueryHash)

	endpoint := strings.TrimRight(c.BaseURL, "/") + "/quote?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logWarn("checkout request failed", params, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		c.logWarn("checkout returned error", params, err)
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return body, nil
}

func (c *Client) logWarn(msg string, params pricing.QuoteParams, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Warn(msg,
		"room_type_id", params.RoomTypeID,
		"checkin", params.CheckIn.Format(calendar.DateLayout),
		"checkout", params.CheckOut.Format(calendar.DateLayout),
		"error", err,
	)
}

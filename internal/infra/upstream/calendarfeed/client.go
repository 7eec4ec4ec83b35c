// Package calendarfeed talks to the reservation platform's availability
// widget. The endpoint serves inline JavaScript variable assignments rather
// than JSON, so the adapter owns both the fetch and the extraction; none of
// that format ever leaks into calendar policy code.
package calendarfeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"villetta/internal/domain/calendar"
)

var ErrUnavailable = errors.New("calendarfeed: upstream unavailable")

// The widget endpoint rejects non-browser clients.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const maxBodyBytes = 1 << 20

type Client struct {
	HTTP    *http.Client
	BaseURL string
	Limiter *rate.Limiter
	Logger  *slog.Logger
}

// FetchCalendar retrieves and extracts the raw availability data for one
// upstream calendar id. Transport errors and non-2xx statuses surface as
// ErrUnavailable; callers degrade to a fallback calendar.
func (c *Client) FetchCalendar(ctx context.Context, calendarID string) (calendar.RawMaps, error) {
	var zero calendar.RawMaps

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return zero, err
		}
	}

	url := fmt.Sprintf("%s/calendar/%s", strings.TrimRight(c.BaseURL, "/"), calendarID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return zero, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/javascript, */*")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logWarn("calendar feed request failed", calendarID, err)
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		c.logWarn("calendar feed returned error", calendarID, err)
		return zero, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return calendar.RawMaps{
		Availability: ExtractAvailability(string(body)),
		MinimumStay:  ExtractMinimumStay(string(body)),
	}, nil
}

func (c *Client) logWarn(msg, calendarID string, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Warn(msg, "calendar_id", calendarID, "error", err)
}

package calendarfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCalendarSendsBrowserHeaders(t *testing.T) {
	var gotPath, gotAccept, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(sampleWidgetBody))
	}))
	defer srv.Close()

	client := &Client{HTTP: srv.Client(), BaseURL: srv.URL}
	raw, err := client.FetchCalendar(context.Background(), "18427")
	require.NoError(t, err)

	assert.Equal(t, "/calendar/18427", gotPath)
	assert.Equal(t, "text/javascript, */*", gotAccept)
	assert.True(t, strings.HasPrefix(gotUA, "Mozilla/5.0"), "user agent must look like a browser")
	assert.Equal(t, map[string]int{
		"2026-06-12": 0,
		"2026-06-13": 1,
		"2026-06-14": 0,
	}, raw.Availability)
	assert.Equal(t, map[string]int{
		"2026-06-20": 3,
		"2026-07-01": 7,
	}, raw.MinimumStay)
}

func TestFetchCalendarNonOKIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := &Client{HTTP: srv.Client(), BaseURL: srv.URL}
	_, err := client.FetchCalendar(context.Background(), "18427")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchCalendarNetworkErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := &Client{HTTP: http.DefaultClient, BaseURL: srv.URL}
	_, err := client.FetchCalendar(context.Background(), "18427")
	assert.ErrorIs(t, err, ErrUnavailable)
}

package feed

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testICS = strings.Join([]string{
	"BEGIN:VCALENDAR",
	"VERSION:2.0",
	"PRODID:-//Google Inc//Google Calendar 70.9054//EN",
	"BEGIN:VEVENT",
	"UID:ev-1",
	"DTSTART:20260115T090000",
	"SUMMARY:Reunion venta",
	"COLOR:9",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:ev-2",
	"DTSTART;VALUE=DATE:20260116",
	"SUMMARY:Jornada completa",
	"COLOR:8",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:ev-3",
	"DTSTART:20260115T130000Z",
	"SUMMARY:Remota",
	"END:VEVENT",
	"END:VCALENDAR",
	"",
}, "\r\n")

func testLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)
	return loc
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	return NewClient(slog.New(slog.NewTextHandler(io.Discard, nil)), url, testLoc(t))
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte(testICS))
	}))
	defer srv.Close()

	events, err := newTestClient(t, srv.URL).Fetch()
	require.NoError(t, err)
	require.Len(t, events, 3)

	loc := testLoc(t)

	assert.Equal(t, "Reunion venta", events[0].Title)
	assert.Equal(t, "9", events[0].Color)
	assert.False(t, events[0].AllDay)
	// Naive local time is interpreted in the configured timezone.
	assert.True(t, events[0].Start.Equal(time.Date(2026, 1, 15, 9, 0, 0, 0, loc)))

	// Date-only events start at local midnight.
	assert.True(t, events[1].AllDay)
	assert.True(t, events[1].Start.Equal(time.Date(2026, 1, 16, 0, 0, 0, 0, loc)))

	// Events without a COLOR property keep an empty color tag.
	assert.Equal(t, "", events[2].Color)
	assert.True(t, events[2].Start.Equal(time.Date(2026, 1, 15, 13, 0, 0, 0, time.UTC)))
}

func TestFetchRejectsHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<!DOCTYPE html><html><body>login required</body></html>"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Fetch()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTML")
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Fetch()
	require.Error(t, err)
	assert.Equal(t, 1, requests)
}

func TestFetchRetriesServerErrors(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(testICS))
	}))
	defer srv.Close()

	events, err := newTestClient(t, srv.URL).Fetch()
	require.NoError(t, err)
	assert.Len(t, events, 3)
	assert.Equal(t, 2, requests)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testICS))
	}))
	defer srv.Close()

	assert.NoError(t, newTestClient(t, srv.URL).Ping())

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not a calendar"))
	}))
	defer bad.Close()

	assert.Error(t, newTestClient(t, bad.URL).Ping())
}

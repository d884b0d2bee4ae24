// Package feed downloads and decodes the public iCal feed the sales
// calendar is published on. No OAuth is involved; the feed URL itself is
// the credential.
package feed

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/emersion/go-ical"

	"revops/internal/models"
)

// COLOR is an RFC 7986 property; Google's public feeds emit the event color
// as a small numeric code.
const propColor = "COLOR"

const maxRetries = 3

// Client fetches one configured feed URL.
type Client struct {
	logger     *slog.Logger
	url        string
	httpClient *http.Client
	loc        *time.Location
}

// NewClient creates a feed client. Times without an offset in the feed are
// interpreted in loc.
func NewClient(logger *slog.Logger, url string, loc *time.Location) *Client {
	return &Client{
		logger: logger,
		url:    url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		loc: loc,
	}
}

// Fetch downloads the feed and returns its raw events. Transport errors and
// 5xx responses are retried with exponential backoff; client errors are not.
func (c *Client) Fetch() ([]models.RawEvent, error) {
	c.logger.Info("downloading iCal feed", "url", c.url)

	body, err := backoff.RetryWithData(c.download,
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries))
	if err != nil {
		return nil, fmt.Errorf("failed to download feed: %w", err)
	}

	events, err := c.parse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Info("feed downloaded", "events", len(events))
	return events, nil
}

// Ping checks that the feed URL is reachable and serves calendar data. Used
// by the verify command.
func (c *Client) Ping() error {
	body, err := c.download()
	if err != nil {
		return err
	}
	if !strings.HasPrefix(strings.TrimSpace(string(body)), "BEGIN:VCALENDAR") {
		return fmt.Errorf("feed did not return iCalendar data")
	}
	return nil
}

func (c *Client) download() ([]byte, error) {
	resp, err := c.httpClient.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("feed returned HTTP %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// A 4xx will not get better by retrying.
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}
	return body, nil
}

func (c *Client) parse(body []byte) ([]models.RawEvent, error) {
	text := strings.TrimSpace(string(body))
	upper := strings.ToUpper(text)
	if strings.HasPrefix(upper, "<!DOCTYPE") || strings.HasPrefix(upper, "<HTML") {
		return nil, fmt.Errorf("received HTML instead of iCalendar data, check that the calendar is public")
	}
	if !strings.HasPrefix(text, "BEGIN:VCALENDAR") {
		return nil, fmt.Errorf("invalid iCalendar payload, expected BEGIN:VCALENDAR")
	}

	decoder := ical.NewDecoder(strings.NewReader(text))
	var events []models.RawEvent

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			ev, err := c.parseEvent(comp)
			if err != nil {
				// Malformed single events never abort the batch.
				c.logger.Warn("skipping malformed event", "error", err)
				continue
			}
			events = append(events, ev)
		}
	}

	return events, nil
}

func (c *Client) parseEvent(comp *ical.Component) (models.RawEvent, error) {
	ev := models.RawEvent{Title: "Sin título"}

	if p := comp.Props.Get(ical.PropSummary); p != nil {
		ev.Title = p.Value
	}
	if p := comp.Props.Get(propColor); p != nil {
		ev.Color = p.Value
	}

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return ev, fmt.Errorf("event %q has no start time", ev.Title)
	}

	start, allDay, err := c.parseStart(startProp)
	if err != nil {
		return ev, fmt.Errorf("event %q: %w", ev.Title, err)
	}
	ev.Start = start
	ev.AllDay = allDay
	return ev, nil
}

// parseStart handles the DTSTART shapes seen in the wild: date-only values
// (all-day events, local midnight), naive local date-times, and date-times
// with an explicit zone or UTC suffix.
func (c *Client) parseStart(prop *ical.Prop) (time.Time, bool, error) {
	allDay := prop.Params.Get(ical.ParamValue) == string(ical.ValueDate)

	if t, err := prop.DateTime(c.loc); err == nil {
		return t, allDay, nil
	}

	// Fallback for producers that emit slightly off-spec values.
	formats := []string{
		"20060102T150405",
		"20060102T150405Z",
		"20060102",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range formats {
		if t, err := time.ParseInLocation(layout, prop.Value, c.loc); err == nil {
			return t, allDay || layout == "20060102", nil
		}
	}

	return time.Time{}, false, fmt.Errorf("unparseable start time %q", prop.Value)
}

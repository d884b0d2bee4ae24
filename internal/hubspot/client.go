// Package hubspot is a minimal client for the HubSpot CRM search API. The
// pipeline only needs one number from it: how many contacts were created in
// a given day.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultBaseURL = "https://api.hubapi.com"

const maxRetries = 3

// Client is a bearer-token HubSpot API client.
type Client struct {
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client. An empty baseURL selects the production API;
// tests point it at a local server.
func NewClient(logger *slog.Logger, baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type searchFilter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type searchFilterGroup struct {
	Filters []searchFilter `json:"filters"`
}

type searchRequest struct {
	FilterGroups []searchFilterGroup `json:"filterGroups"`
	Properties   []string            `json:"properties"`
	Limit        int                 `json:"limit"`
}

type searchResponse struct {
	Total int `json:"total"`
}

// ContactsCreated returns the number of contacts whose create date falls in
// [from, to). The API filters on millisecond epochs.
func (c *Client) ContactsCreated(ctx context.Context, from, to time.Time) (int, error) {
	req := searchRequest{
		FilterGroups: []searchFilterGroup{{
			Filters: []searchFilter{
				{PropertyName: "createdate", Operator: "GTE", Value: strconv.FormatInt(from.UnixMilli(), 10)},
				{PropertyName: "createdate", Operator: "LT", Value: strconv.FormatInt(to.UnixMilli(), 10)},
			},
		}},
		Properties: []string{"createdate"},
		Limit:      100,
	}

	operation := func() (int, error) {
		body, err := c.doRequest(ctx, http.MethodPost, "/crm/v3/objects/contacts/search", req)
		if err != nil {
			return 0, err
		}
		var resp searchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return 0, backoff.Permanent(fmt.Errorf("unmarshal search response: %w", err))
		}
		return resp.Total, nil
	}

	total, err := backoff.RetryWithData(operation,
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to count created contacts: %w", err)
	}

	c.logger.Info("contacts created", "from", from.Format("2006-01-02"), "total", total)
	return total, nil
}

// Ping performs a cheap authenticated read to validate the API key. Used by
// the verify command.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/crm/v3/objects/contacts?limit=1", nil)
	return err
}

// doRequest performs one authenticated request. Responses in the 4xx range
// come back wrapped as permanent so the retry layer gives up immediately;
// 5xx responses stay retryable.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("marshal body: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	case resp.StatusCode >= 400:
		return nil, backoff.Permanent(fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody)))
	}

	return respBody, nil
}

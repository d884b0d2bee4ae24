// Package gsheet reads and updates the daily-report spreadsheet through the
// Google Sheets API, authenticated with a service account.
package gsheet

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"revops/internal/reconciler"
)

// Client wraps the Sheets service for one spreadsheet/worksheet pair.
type Client struct {
	logger        *slog.Logger
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
}

// NewClient creates a Sheets client from a service-account credentials file.
// A missing credentials file is a structural failure, surfaced before any
// network call.
func NewClient(ctx context.Context, logger *slog.Logger, credentialsPath, spreadsheetID, worksheet string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account credentials: %w", err)
	}

	jwt, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		logger:        logger,
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
	}, nil
}

// ReadAll downloads the whole worksheet as a text grid. Blank cells come
// back as empty strings; formatting is whatever the sheet displays, which
// is what the reconciler's parsers expect.
func (c *Client) ReadAll(ctx context.Context) (reconciler.Grid, error) {
	c.logger.Info("downloading sheet", "spreadsheet", c.spreadsheetID, "worksheet", c.worksheet)

	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.worksheet).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet values: %w", err)
	}

	grid := make(reconciler.Grid, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			cells[j] = fmt.Sprint(v)
		}
		grid[i] = cells
	}

	c.logger.Info("sheet downloaded", "rows", len(grid))
	return grid, nil
}

// a1Range builds an A1 reference for a single cell, quoting the worksheet
// name because it contains spaces.
func (c *Client) a1Range(col0, row1 int) string {
	return fmt.Sprintf("'%s'!%s%d", c.worksheet, columnLetter(col0), row1)
}

// columnLetter converts a zero-based column index to its A1 letters.
func columnLetter(col int) string {
	letters := ""
	for col >= 0 {
		letters = string(rune('A'+col%26)) + letters
		col = col/26 - 1
	}
	return letters
}

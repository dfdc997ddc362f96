// Package google implements the ledger ports on top of the Google Sheets
// API. Each user maps to their own spreadsheet; the three ledger sheets and
// the catalog sheet live inside it.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"finanzas/internal/core"
	"finanzas/internal/ledger"
)

type Client struct {
	svc          *gsheet.Service
	spreadsheets map[int64]string
}

// Ensure interface conformance
var _ ledger.Store = (*Client)(nil)

// Credentials selects the service account material: inline JSON wins over a
// file path.
type Credentials struct {
	JSON string
	File string
}

// New creates a Sheets client for the given user -> spreadsheet mapping.
func New(ctx context.Context, creds Credentials, spreadsheets map[int64]string) (*Client, error) {
	credentialsJSON, err := creds.load()
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheets: spreadsheets}, nil
}

func (c Credentials) load() ([]byte, error) {
	switch {
	case strings.TrimSpace(c.JSON) != "":
		return []byte(c.JSON), nil
	case strings.TrimSpace(c.File) != "":
		data, err := os.ReadFile(strings.TrimSpace(c.File))
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials")
	}
}

func (c *Client) spreadsheetFor(userID int64) (string, error) {
	id, ok := c.spreadsheets[userID]
	if !ok || id == "" {
		return "", fmt.Errorf("%w: user %d", core.ErrNoLedger, userID)
	}
	return id, nil
}

// AppendRow appends one row after the last non-empty row of the sheet.
func (c *Client) AppendRow(ctx context.Context, userID int64, sheet string, row []string) error {
	spreadsheetID, err := c.spreadsheetFor(userID)
	if err != nil {
		return err
	}

	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}
	vr := &gsheet.ValueRange{Values: [][]any{values}}

	_, err = c.svc.Spreadsheets.Values.
		Append(spreadsheetID, fmt.Sprintf("%s!A:A", sheet), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", sheet, err)
	}
	return nil
}

// ReadAllRows returns every populated row of the sheet as trimmed strings.
func (c *Client) ReadAllRows(ctx context.Context, userID int64, sheet string) ([][]string, error) {
	spreadsheetID, err := c.spreadsheetFor(userID)
	if err != nil {
		return nil, err
	}

	rng := fmt.Sprintf("%s!A:H", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	out := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		out = append(out, toStrings(row))
	}
	return out, nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

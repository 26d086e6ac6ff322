package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"planner/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

var _ sheets.LedgerWriter = (*Client)(nil)

// header is written to an empty yearly sheet before the first row.
var header = []any{
	"Occurred at", "Event", "Date", "Type", "Description", "Amount",
	"Account", "Category", "Transaction ID", "User ID",
}

type Config struct {
	SpreadsheetID string
	// SheetName is the base tab name; rows go to "<year> <SheetName>".
	SheetName       string
	CredentialsFile string
	CredentialsJSON string
}

// Client appends ledger rows to a Google spreadsheet, one tab per year.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetBase     string

	mu          sync.Mutex
	headerReady map[string]bool
}

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, cfg Config) (*Client, error) {
	spreadsheetID := strings.TrimSpace(cfg.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	base := strings.TrimSpace(cfg.SheetName)
	if base == "" {
		base = "Ledger"
	}

	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetBase:     base,
		headerReady:   make(map[string]bool),
	}, nil
}

// newSheetsService prefers inline JSON credentials over a credentials file.
func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	var (
		credentialsJSON []byte
		err             error
	)

	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		slog.InfoContext(ctx, "Using inline service account credentials")
		credentialsJSON = []byte(cfg.CredentialsJSON)
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		slog.InfoContext(ctx, "Reading service account credentials", "path", cfg.CredentialsFile)
		credentialsJSON, err = os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// AppendLedgerRow appends row to the tab of the row's year and returns the
// updated A1 range.
func (c *Client) AppendLedgerRow(ctx context.Context, row sheets.LedgerRow) (string, error) {
	if err := row.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	sheet := c.sheetFor(row)
	if err := c.ensureHeader(ctx, sheet); err != nil {
		return "", err
	}

	vr := &gsheet.ValueRange{Values: [][]any{rowValues(row)}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, sheet+"!A:J", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", sheet, err)
	}

	ref := sheet
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		ref = resp.Updates.UpdatedRange
	}
	return ref, nil
}

// ensureHeader writes the header row once per tab when the tab is empty.
func (c *Client) ensureHeader(ctx context.Context, sheet string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.headerReady[sheet] {
		return nil
	}

	rng := sheet + "!A1:J1"
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", sheet, err)
	}
	if len(resp.Values) == 0 {
		vr := &gsheet.ValueRange{Values: [][]any{header}}
		_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
			ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("write header of %s: %w", sheet, err)
		}
		slog.InfoContext(ctx, "Wrote ledger header", "sheet", sheet)
	}
	c.headerReady[sheet] = true
	return nil
}

func (c *Client) sheetFor(row sheets.LedgerRow) string {
	year := row.OccurredAt.Year()
	if !row.Date.IsZero() {
		year = row.Date.Year()
	}
	return yearPrefixedName(c.sheetBase, year)
}

func rowValues(row sheets.LedgerRow) []any {
	date := ""
	if !row.Date.IsZero() {
		date = row.Date.String()
	}
	return []any{
		row.OccurredAt.UTC().Format(time.RFC3339),
		row.Event,
		date,
		string(row.Type),
		row.Description,
		row.Amount.String(),
		row.Account,
		row.Category,
		row.TransactionID,
		row.UserID,
	}
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}

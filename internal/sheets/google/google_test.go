package google

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"planner/internal/core"
	"planner/internal/sheets"
)

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Config{CredentialsJSON: "{}"})
	if err == nil {
		t.Fatal("expected error for missing spreadsheet id")
	}
	if err.Error() != "missing spreadsheet id" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New(context.Background(), Config{SpreadsheetID: "test-id"})
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	if !strings.Contains(err.Error(), "missing service account credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_UnreadableCredentialsFile(t *testing.T) {
	_, err := New(context.Background(), Config{
		SpreadsheetID:   "test-id",
		CredentialsFile: filepath.Join(t.TempDir(), "missing.json"),
	})
	if err == nil {
		t.Fatal("expected error for missing credentials file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got: %v", err)
	}
}

func TestClient_AppendValidatesRow(t *testing.T) {
	c := &Client{spreadsheetID: "test", sheetBase: "Ledger"}

	_, err := c.AppendLedgerRow(context.Background(), sheets.LedgerRow{})
	if !errors.Is(err, sheets.ErrInvalidRow) {
		t.Fatalf("expected ErrInvalidRow, got: %v", err)
	}

	_, err = c.AppendLedgerRow(context.Background(), sheets.LedgerRow{
		OccurredAt:    time.Now(),
		Event:         "transaction.created",
		TransactionID: "tx-1",
	})
	if err == nil || !strings.Contains(err.Error(), "not initialized") {
		t.Fatalf("expected not initialized error, got: %v", err)
	}
}

func TestYearPrefixedName(t *testing.T) {
	tests := []struct {
		baseName string
		year     int
		expected string
	}{
		{"Ledger", 2025, "2025 Ledger"},
		{"", 2023, ""},
		{"Audit Trail", 2022, "2022 Audit Trail"},
		{"2025 Already Prefixed", 2024, "2025 Already Prefixed"},
	}

	for _, tt := range tests {
		got := yearPrefixedName(tt.baseName, tt.year)
		if got != tt.expected {
			t.Errorf("yearPrefixedName(%q, %d) = %q, want %q",
				tt.baseName, tt.year, got, tt.expected)
		}
	}
}

func TestSheetForUsesTransactionDate(t *testing.T) {
	c := &Client{sheetBase: "Ledger"}
	row := sheets.LedgerRow{OccurredAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}

	if got := c.sheetFor(row); got != "2025 Ledger" {
		t.Errorf("sheetFor() without date = %q", got)
	}
	row.Date = core.NewDate(2024, 12, 31)
	if got := c.sheetFor(row); got != "2024 Ledger" {
		t.Errorf("sheetFor() with date = %q", got)
	}
}

func TestRowValues(t *testing.T) {
	row := sheets.LedgerRow{
		OccurredAt:    time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Event:         "transaction.updated",
		TransactionID: "tx-1",
		UserID:        "user-1",
		Date:          core.NewDate(2024, 2, 29),
		Type:          core.TransactionExpense,
		Description:   "Groceries",
		Amount:        core.Money{Cents: 12050},
		Account:       "Main account",
		Category:      "Food",
	}

	got := rowValues(row)
	want := []any{
		"2024-03-01T12:30:00Z", "transaction.updated", "2024-02-29", "EXPENSE", "Groceries",
		"120.50", "Main account", "Food", "tx-1", "user-1",
	}
	if len(got) != len(header) {
		t.Fatalf("row has %d columns, header has %d", len(got), len(header))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// Package backend builds the ledger export sink selected by configuration.
package backend

import (
	"planner/internal/sheets"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result is a ready ledger writer and its optional cleanup.
type Result struct {
	Writer  sheets.LedgerWriter
	Cleanup CleanupFunc
}

// Config selects and configures the export sink.
type Config struct {
	Type Type

	// Google Sheets specific
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	CredentialsJSON string
}

// Type names an export sink.
type Type string

const (
	MemoryBackend Type = "memory"
	SheetsBackend Type = "sheets"
)

func (t Type) IsValid() bool {
	return t == MemoryBackend || t == SheetsBackend
}

func (t Type) String() string {
	return string(t)
}

// Types returns every valid backend type.
func Types() []Type {
	return []Type{MemoryBackend, SheetsBackend}
}

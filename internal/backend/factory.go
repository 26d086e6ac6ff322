package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"planner/internal/config"
	"planner/internal/log"
	gsheet "planner/internal/sheets/google"
	"planner/internal/sheets/memory"
)

// FromAppConfig extracts the export settings from the application config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, errors.New("app config is nil")
	}
	cfg := Config{
		Type:            Type(appConfig.LedgerExport),
		SpreadsheetID:   appConfig.GoogleSpreadsheetID,
		SheetName:       appConfig.GoogleSheetName,
		CredentialsFile: appConfig.GoogleServiceAccountFile,
		CredentialsJSON: appConfig.GoogleServiceAccountJSON,
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		names := make([]string, 0, len(Types()))
		for _, t := range Types() {
			names = append(names, t.String())
		}
		return fmt.Errorf("invalid backend type %q (want one of %s)", c.Type, strings.Join(names, ", "))
	}
	if c.Type == SheetsBackend {
		if strings.TrimSpace(c.SpreadsheetID) == "" {
			return errors.New("spreadsheet id is required for sheets backend")
		}
		if c.CredentialsFile == "" && c.CredentialsJSON == "" {
			return errors.New("service account credentials are required for sheets backend")
		}
	}
	return nil
}

// New creates the ledger writer described by cfg. A nil logger uses the
// default one.
func New(ctx context.Context, cfg Config, logger *log.Logger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentSheets)

	switch cfg.Type {
	case SheetsBackend:
		client, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:   cfg.SpreadsheetID,
			SheetName:       cfg.SheetName,
			CredentialsFile: cfg.CredentialsFile,
			CredentialsJSON: cfg.CredentialsJSON,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		logger.InfoContext(ctx, "Initialized Google Sheets backend",
			"spreadsheet_id", cfg.SpreadsheetID,
			"sheet", cfg.SheetName)
		return &Result{Writer: client}, nil
	default:
		store := memory.New()
		logger.InfoContext(ctx, "Initialized memory backend")
		return &Result{
			Writer: store,
			Cleanup: func() error {
				logger.Info("Memory backend discarded rows", "count", len(store.Rows()))
				return nil
			},
		}, nil
	}
}

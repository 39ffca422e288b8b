// ABOUTME: Sync CLI commands
// ABOUTME: Runs the Sheets mirror reconciler and reports the last run
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lonestarscholars/crm/models"
	"github.com/lonestarscholars/crm/sync"
)

// SyncCommand runs one full-snapshot export to the configured spreadsheet.
func SyncCommand(database *sql.DB, args []string) error {
	cfg := sync.LoadSheetsConfig()
	if !cfg.IsConfigured() {
		return sync.ErrNotConfigured
	}

	ctx := context.Background()
	svc, err := sync.NewSheetsService(ctx, cfg)
	if err != nil {
		return err
	}

	syncer := sync.NewSyncer(database, sync.NewSheetsMirror(svc, cfg.SpreadsheetID))
	result, err := syncer.Run(ctx)
	if err != nil {
		return err
	}

	if result.Success {
		fmt.Printf("✓ %s\n", result.Message)
	} else {
		fmt.Printf("✗ Sync failed: %s\n", result.Message)
	}
	return nil
}

// SyncStatusCommand prints the most recent sync run.
func SyncStatusCommand(database *sql.DB, args []string) error {
	run, err := sync.LastStatus(database)
	if err != nil {
		return fmt.Errorf("failed to read sync status: %w", err)
	}
	if run == nil {
		fmt.Println("No sync has run yet")
		return nil
	}

	fmt.Printf("Last sync: %s\n", run.Status)
	fmt.Printf("  Started:   %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if run.CompletedAt != nil {
		fmt.Printf("  Completed: %s\n", run.CompletedAt.Format("2006-01-02 15:04:05"))
	}
	if run.Message != "" {
		fmt.Printf("  Message:   %s\n", run.Message)
	}
	if run.Status == models.SyncStatusSuccess {
		fmt.Printf("  Rows:      %d\n", run.RowsSynced)
	}
	return nil
}

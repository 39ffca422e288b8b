// ABOUTME: Sync run database operations
// ABOUTME: Tracks mirror export invocations from in_progress to a terminal status
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lonestarscholars/crm/models"
)

// CreateSyncRun records the start of a reconciliation attempt.
func CreateSyncRun(q DBTX, syncType string) (*models.SyncRun, error) {
	run := &models.SyncRun{
		ID:        uuid.New(),
		SyncType:  syncType,
		Status:    models.SyncStatusInProgress,
		StartedAt: time.Now(),
	}

	_, err := q.Exec(`
		INSERT INTO sync_runs (id, sync_type, status, message, rows_synced, started_at)
		VALUES (?, ?, ?, '', 0, ?)
	`, run.ID.String(), run.SyncType, run.Status, utc(run.StartedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to create sync run: %w", err)
	}
	return run, nil
}

// CompleteSyncRun moves a run to its terminal status. Each run is completed
// exactly once.
func CompleteSyncRun(q DBTX, id uuid.UUID, status, message string, rowsSynced int) error {
	_, err := q.Exec(`
		UPDATE sync_runs
		SET status = ?, message = ?, rows_synced = ?, completed_at = ?
		WHERE id = ?
	`, status, message, rowsSynced, utc(time.Now()), id.String())
	if err != nil {
		return fmt.Errorf("failed to complete sync run: %w", err)
	}
	return nil
}

// GetLastSyncRun returns the most recently started run, or nil if none exist.
func GetLastSyncRun(q DBTX) (*models.SyncRun, error) {
	var run models.SyncRun
	var idStr string
	var completedAt sql.NullTime

	err := q.QueryRow(`
		SELECT id, sync_type, status, message, rows_synced, started_at, completed_at
		FROM sync_runs
		ORDER BY started_at DESC, id DESC
		LIMIT 1
	`).Scan(&idStr, &run.SyncType, &run.Status, &run.Message, &run.RowsSynced, &run.StartedAt, &completedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	run.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sync run ID: %w", err)
	}
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	return &run, nil
}

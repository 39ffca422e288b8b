// ABOUTME: Tests for sync run database operations
// ABOUTME: Covers run creation, terminal completion, and last-run lookup
package db

import (
	"testing"

	"github.com/lonestarscholars/crm/models"
)

func TestSyncRunLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	run, err := CreateSyncRun(db, models.SyncTypeFull)
	if err != nil {
		t.Fatalf("CreateSyncRun failed: %v", err)
	}
	if run.Status != models.SyncStatusInProgress {
		t.Errorf("Expected in_progress, got %s", run.Status)
	}

	last, err := GetLastSyncRun(db)
	if err != nil {
		t.Fatalf("GetLastSyncRun failed: %v", err)
	}
	if last == nil || last.ID != run.ID {
		t.Fatal("GetLastSyncRun did not return the created run")
	}
	if last.CompletedAt != nil {
		t.Error("CompletedAt should be unset while in progress")
	}

	if err := CompleteSyncRun(db, run.ID, models.SyncStatusSuccess, "Synced 15 rows", 15); err != nil {
		t.Fatalf("CompleteSyncRun failed: %v", err)
	}

	last, err = GetLastSyncRun(db)
	if err != nil {
		t.Fatalf("GetLastSyncRun failed: %v", err)
	}
	if last.Status != models.SyncStatusSuccess {
		t.Errorf("Expected success, got %s", last.Status)
	}
	if last.RowsSynced != 15 {
		t.Errorf("Expected 15 rows, got %d", last.RowsSynced)
	}
	if last.CompletedAt == nil {
		t.Error("CompletedAt should be set after completion")
	}
}

func TestGetLastSyncRunEmpty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	last, err := GetLastSyncRun(db)
	if err != nil {
		t.Fatalf("GetLastSyncRun failed: %v", err)
	}
	if last != nil {
		t.Error("Expected nil when no sync has run")
	}
}

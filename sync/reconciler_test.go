// ABOUTME: Tests for the full-snapshot reconciler
// ABOUTME: Uses an in-memory fake mirror to verify ordering, run records, and failure handling
package sync

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lonestarscholars/crm/db"
	"github.com/lonestarscholars/crm/models"
)

type fakeMirror struct {
	titles []string
	added  []string
	// calls records the operation order as "clear:range" / "write:range"
	calls   []string
	written map[string][][]string

	failOn      string
	formatErr   error
	formatCalls int
}

func newFakeMirror(titles ...string) *fakeMirror {
	return &fakeMirror{titles: titles, written: make(map[string][][]string)}
}

func (f *fakeMirror) SheetTitles(ctx context.Context) ([]string, error) {
	if f.failOn == "titles" {
		return nil, errors.New("spreadsheet not found")
	}
	return f.titles, nil
}

func (f *fakeMirror) AddSheets(ctx context.Context, titles []string) error {
	f.added = append(f.added, titles...)
	return nil
}

func (f *fakeMirror) Clear(ctx context.Context, rng string) error {
	f.calls = append(f.calls, "clear:"+rng)
	if f.failOn == "clear:"+rng {
		return errors.New("clear failed")
	}
	return nil
}

func (f *fakeMirror) Write(ctx context.Context, rng string, rows [][]string) error {
	f.calls = append(f.calls, "write:"+rng)
	if f.failOn == "write:"+rng {
		return errors.New("write failed")
	}
	f.written[rng] = rows
	return nil
}

func (f *fakeMirror) FormatHeaders(ctx context.Context, sheets []string) error {
	f.formatCalls++
	return f.formatErr
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// seedData inserts contacts and gives the first `interactions` of them one
// interaction each.
func seedData(t *testing.T, database *sql.DB, contacts, interactions int) {
	t.Helper()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < contacts; i++ {
		c := models.Contact{
			PrimaryFirstName: "Contact",
			PrimaryLastName:  string(rune('A' + i)),
			LeadStatus:       models.StatusContacted,
			DateAdded:        base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.InsertContact(database, &c))
		if i < interactions {
			require.NoError(t, db.InsertInteraction(database, &models.Interaction{
				ContactID:       c.ID,
				InteractionType: "Call",
				Summary:         "Check-in",
				Date:            base.Add(time.Duration(i) * time.Minute),
				CreatedAt:       base,
			}))
		}
	}
}

func TestRunSuccess(t *testing.T) {
	database := setupTestDB(t)
	seedData(t, database, 8, 7)
	mirror := newFakeMirror(ContactsSheet, InteractionsSheet)
	syncer := NewSyncer(database, mirror)

	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 15, result.RowsSynced)
	assert.Equal(t, "Synced 8 contacts and 7 interactions to Google Sheets", result.Message)

	// Header row plus one row per record
	require.Len(t, mirror.written[ContactsSheet+"!A1"], 9)
	require.Len(t, mirror.written[InteractionsSheet+"!A1"], 8)
	assert.Equal(t, ContactsHeaders, mirror.written[ContactsSheet+"!A1"][0])
	assert.Equal(t, InteractionsHeaders, mirror.written[InteractionsSheet+"!A1"][0])

	// Contacts fully rewritten before Interactions is touched
	assert.Equal(t, []string{
		"clear:" + contactsRange,
		"write:" + ContactsSheet + "!A1",
		"clear:" + interactionsRange,
		"write:" + InteractionsSheet + "!A1",
	}, mirror.calls)
	assert.Empty(t, mirror.added)
	assert.Equal(t, 1, mirror.formatCalls)

	run, err := LastStatus(database)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, models.SyncStatusSuccess, run.Status)
	assert.Equal(t, 15, run.RowsSynced)
	require.NotNil(t, run.CompletedAt)
}

func TestRunCreatesMissingSheets(t *testing.T) {
	database := setupTestDB(t)
	mirror := newFakeMirror(ContactsSheet)
	syncer := NewSyncer(database, mirror)

	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{InteractionsSheet}, mirror.added)
}

func TestRunExportFailureRecordsErrorRun(t *testing.T) {
	database := setupTestDB(t)
	seedData(t, database, 2, 1)
	mirror := newFakeMirror(ContactsSheet, InteractionsSheet)
	mirror.failOn = "write:" + InteractionsSheet + "!A1"
	syncer := NewSyncer(database, mirror)

	result, err := syncer.Run(context.Background())
	require.NoError(t, err, "export failures report through the result, not the error")
	assert.False(t, result.Success)
	assert.Equal(t, "write failed", result.Message)
	assert.Equal(t, 0, result.RowsSynced)

	run, err := LastStatus(database)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, models.SyncStatusError, run.Status)
	assert.Equal(t, "write failed", run.Message)
	assert.Equal(t, 0, run.RowsSynced)
	require.NotNil(t, run.CompletedAt)

	// Failure landed after Contacts was already rewritten
	assert.Len(t, mirror.written[ContactsSheet+"!A1"], 3)
	assert.Equal(t, 0, mirror.formatCalls)
}

func TestRunSheetLookupFailure(t *testing.T) {
	database := setupTestDB(t)
	mirror := newFakeMirror()
	mirror.failOn = "titles"
	syncer := NewSyncer(database, mirror)

	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "spreadsheet not found", result.Message)

	run, err := LastStatus(database)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusError, run.Status)
}

func TestRunFormattingFailureIgnored(t *testing.T) {
	database := setupTestDB(t)
	mirror := newFakeMirror(ContactsSheet, InteractionsSheet)
	mirror.formatErr = errors.New("formatting unavailable")
	syncer := NewSyncer(database, mirror)

	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)

	run, err := LastStatus(database)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusSuccess, run.Status)
}

func TestRunNilMirror(t *testing.T) {
	database := setupTestDB(t)
	syncer := NewSyncer(database, nil)

	_, err := syncer.Run(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)

	run, err := LastStatus(database)
	require.NoError(t, err)
	assert.Nil(t, run, "refusals must not create run records")
}

func TestRunOverlapRefused(t *testing.T) {
	database := setupTestDB(t)
	mirror := newFakeMirror(ContactsSheet, InteractionsSheet)
	syncer := NewSyncer(database, mirror)

	syncer.mu.Lock()
	_, err := syncer.Run(context.Background())
	assert.ErrorIs(t, err, ErrSyncInProgress)
	syncer.mu.Unlock()

	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)
}

// ABOUTME: Full-snapshot reconciler exporting contacts and interactions to the mirror
// ABOUTME: Runs the in_progress/success/error state machine with an overlap guard
package sync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	gosync "sync"

	"github.com/lonestarscholars/crm/db"
	"github.com/lonestarscholars/crm/models"
)

// ErrSyncInProgress refuses a reconciliation while another run holds the
// mirror; two interleaved full overwrites could corrupt it.
var ErrSyncInProgress = errors.New("sync already in progress")

// Result is the structured outcome of one reconciliation attempt. Export
// failures land here and in the SyncRun record, never as a returned error.
type Result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RowsSynced int    `json:"rowsSynced"`
}

// Syncer exports the full current snapshot to the mirror, overwriting
// whatever a previous run left there.
type Syncer struct {
	db     *sql.DB
	mirror Mirror

	mu gosync.Mutex
}

func NewSyncer(database *sql.DB, mirror Mirror) *Syncer {
	return &Syncer{db: database, mirror: mirror}
}

// Run performs one full-snapshot export. It returns an error only for the
// refusals that precede a SyncRun: a missing mirror (configuration) or an
// overlapping run. Everything after the run record exists is reported through
// the Result and the run's terminal status.
//
// Contacts are cleared and rewritten completely before Interactions is
// touched, so a mid-run failure leaves at most one table partial; the next
// successful run overwrites both.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	if s.mirror == nil {
		return nil, ErrNotConfigured
	}
	if !s.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	run, err := db.CreateSyncRun(s.db, models.SyncTypeFull)
	if err != nil {
		return nil, err
	}

	contactCount, interactionCount, err := s.export(ctx)
	if err != nil {
		if cerr := db.CompleteSyncRun(s.db, run.ID, models.SyncStatusError, err.Error(), 0); cerr != nil {
			log.Printf("sync: failed to record error status: %v", cerr)
		}
		return &Result{Success: false, Message: err.Error()}, nil
	}

	// Cosmetic only: formatting failures never fail the run
	if err := s.mirror.FormatHeaders(ctx, []string{ContactsSheet, InteractionsSheet}); err != nil {
		log.Printf("sync: header formatting failed (ignored): %v", err)
	}

	totalRows := contactCount + interactionCount
	message := fmt.Sprintf("Synced %d contacts and %d interactions to Google Sheets", contactCount, interactionCount)
	if err := db.CompleteSyncRun(s.db, run.ID, models.SyncStatusSuccess, message, totalRows); err != nil {
		return nil, err
	}

	return &Result{Success: true, Message: message, RowsSynced: totalRows}, nil
}

func (s *Syncer) export(ctx context.Context) (contactCount, interactionCount int, err error) {
	contacts, err := db.AllContactsByDateAdded(s.db)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read contacts: %w", err)
	}
	interactions, err := db.AllInteractionsWithContacts(s.db)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read interactions: %w", err)
	}

	contactRows := make([][]string, 0, len(contacts)+1)
	contactRows = append(contactRows, ContactsHeaders)
	for i := range contacts {
		contactRows = append(contactRows, ContactRow(&contacts[i]))
	}

	interactionRows := make([][]string, 0, len(interactions)+1)
	interactionRows = append(interactionRows, InteractionsHeaders)
	for i := range interactions {
		interactionRows = append(interactionRows, InteractionRow(&interactions[i]))
	}

	if err := s.ensureSheets(ctx); err != nil {
		return 0, 0, err
	}

	// Each table's clear+write pair completes before the next table starts
	if err := s.mirror.Clear(ctx, contactsRange); err != nil {
		return 0, 0, err
	}
	if err := s.mirror.Write(ctx, ContactsSheet+"!A1", contactRows); err != nil {
		return 0, 0, err
	}
	if err := s.mirror.Clear(ctx, interactionsRange); err != nil {
		return 0, 0, err
	}
	if err := s.mirror.Write(ctx, InteractionsSheet+"!A1", interactionRows); err != nil {
		return 0, 0, err
	}

	return len(contacts), len(interactions), nil
}

func (s *Syncer) ensureSheets(ctx context.Context) error {
	titles, err := s.mirror.SheetTitles(ctx)
	if err != nil {
		return err
	}

	have := make(map[string]bool, len(titles))
	for _, t := range titles {
		have[t] = true
	}

	var missing []string
	for _, want := range []string{ContactsSheet, InteractionsSheet} {
		if !have[want] {
			missing = append(missing, want)
		}
	}
	return s.mirror.AddSheets(ctx, missing)
}

// LastStatus returns the most recent sync run, or nil when none has run yet.
func LastStatus(database *sql.DB) (*models.SyncRun, error) {
	return db.GetLastSyncRun(database)
}

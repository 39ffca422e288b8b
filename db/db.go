// ABOUTME: Database connection management and initialization
// ABOUTME: Handles opening SQLite database with WAL mode at XDG path
package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// The driver stores time.Time as text carrying its zone offset, so values
// with mixed offsets compare lexicographically, not chronologically. Every
// bound time goes through utc/utcPtr so SQL comparisons stay correct.
func utc(t time.Time) time.Time { return t.UTC() }

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func OpenDatabase(path string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// Single connection avoids database-locked errors and gives the
	// mutation engine atomic read-modify-write per transaction
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

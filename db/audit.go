// ABOUTME: Audit log database operations
// ABOUTME: Handles field-change entry inserts and per-contact history reads
package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lonestarscholars/crm/models"
)

func InsertAuditEntry(q DBTX, entry *models.AuditLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.ChangedAt.IsZero() {
		entry.ChangedAt = time.Now()
	}

	_, err := q.Exec(`
		INSERT INTO audit_logs (id, contact_id, field, old_value, new_value, changed_by, changed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID.String(),
		entry.ContactID.String(),
		entry.Field,
		entry.OldValue,
		entry.NewValue,
		entry.ChangedBy,
		utc(entry.ChangedAt),
	)
	return err
}

// ListAuditEntries returns a contact's change history newest-first.
func ListAuditEntries(q DBTX, contactID uuid.UUID, limit int) ([]models.AuditLogEntry, error) {
	rows, err := q.Query(`
		SELECT id, contact_id, field, old_value, new_value, changed_by, changed_at
		FROM audit_logs
		WHERE contact_id = ?
		ORDER BY changed_at DESC, id DESC
		LIMIT ?
	`, contactID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []models.AuditLogEntry
	for rows.Next() {
		var e models.AuditLogEntry
		var idStr, contactIDStr string
		if err := rows.Scan(&idStr, &contactIDStr, &e.Field, &e.OldValue, &e.NewValue, &e.ChangedBy, &e.ChangedAt); err != nil {
			return nil, err
		}
		e.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse audit entry ID: %w", err)
		}
		e.ContactID, err = uuid.Parse(contactIDStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse contact ID: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

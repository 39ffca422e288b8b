// ABOUTME: Mutation engine for contact edits
// ABOUTME: Applies partial updates with a field-level audit diff in one transaction
package crm

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lonestarscholars/crm/db"
	"github.com/lonestarscholars/crm/models"
)

// CreateContact persists a new contact together with its synthetic "created"
// audit entry, atomically.
func CreateContact(database *sql.DB, contact *models.Contact, author string) error {
	if contact.PrimaryFirstName == "" && contact.PrimaryLastName == "" {
		return validationErr("name", "first or last name is required")
	}

	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	if err := db.InsertContact(tx, contact); err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}

	entry := &models.AuditLogEntry{
		ContactID: contact.ID,
		Field:     "created",
		NewValue:  contact.DisplayName(),
		ChangedBy: author,
	}
	if err := db.InsertAuditEntry(tx, entry); err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	return tx.Commit()
}

// UpdateContact loads a contact, applies the partial update, and persists the
// new row together with one audit entry per changed field. The comparison is
// string-equivalence over the enumerated models.AuditFields table; fields
// absent from the update are untouched and unaudited. The contact update and
// its audit entries commit as a single unit.
func UpdateContact(database *sql.DB, id uuid.UUID, update *models.ContactUpdate, author string) (*models.Contact, error) {
	tx, err := database.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	contact, err := db.GetContact(tx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	for _, field := range models.AuditFields {
		newVal, present := field.New(update)
		if !present {
			continue
		}
		oldVal := field.Old(contact)
		field.Apply(contact, update)
		if oldVal == newVal {
			continue
		}
		entry := &models.AuditLogEntry{
			ContactID: contact.ID,
			Field:     field.Name,
			OldValue:  oldVal,
			NewValue:  newVal,
			ChangedBy: author,
			ChangedAt: now,
		}
		if err := db.InsertAuditEntry(tx, entry); err != nil {
			return nil, fmt.Errorf("failed to insert audit entry: %w", err)
		}
	}

	if err := db.UpdateContactRow(tx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContact removes a contact and cascades its interactions and audit
// history. Fails with ErrNotFound when the contact does not exist.
func DeleteContact(database *sql.DB, id uuid.UUID) error {
	contact, err := db.GetContact(database, id)
	if err != nil {
		return err
	}
	if contact == nil {
		return ErrNotFound
	}
	return db.DeleteContact(database, id)
}

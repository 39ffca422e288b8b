// ABOUTME: Interaction database operations
// ABOUTME: Handles interaction inserts, per-contact history, and latest-date lookups
package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lonestarscholars/crm/models"
)

const interactionColumns = `id, contact_id, interaction_type, date, summary,
	outcome, next_follow_up_date, logged_by, created_at`

func InsertInteraction(q DBTX, interaction *models.Interaction) error {
	if interaction.ID == uuid.Nil {
		interaction.ID = uuid.New()
	}

	_, err := q.Exec(`
		INSERT INTO interactions (`+interactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		interaction.ID.String(),
		interaction.ContactID.String(),
		interaction.InteractionType,
		utc(interaction.Date),
		interaction.Summary,
		interaction.Outcome,
		utcPtr(interaction.NextFollowUpDate),
		interaction.LoggedBy,
		utc(interaction.CreatedAt),
	)
	return err
}

func scanInteraction(scan func(dest ...any) error) (*models.Interaction, error) {
	i := &models.Interaction{}
	var idStr, contactIDStr string
	var nextFollowUp sql.NullTime

	err := scan(&idStr, &contactIDStr, &i.InteractionType, &i.Date, &i.Summary,
		&i.Outcome, &nextFollowUp, &i.LoggedBy, &i.CreatedAt)
	if err != nil {
		return nil, err
	}

	i.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse interaction ID: %w", err)
	}
	i.ContactID, err = uuid.Parse(contactIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse contact ID: %w", err)
	}
	if nextFollowUp.Valid {
		i.NextFollowUpDate = &nextFollowUp.Time
	}
	return i, nil
}

// LatestInteraction returns the contact's most recent interaction, ties on
// date broken by descending id so concurrent writers converge on one answer.
func LatestInteraction(q DBTX, contactID uuid.UUID) (*models.Interaction, error) {
	row := q.QueryRow(`
		SELECT `+interactionColumns+`
		FROM interactions
		WHERE contact_id = ?
		ORDER BY date DESC, id DESC
		LIMIT 1
	`, contactID.String())

	interaction, err := scanInteraction(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return interaction, nil
}

// ListInteractionsByContact returns a contact's interaction history newest-first.
func ListInteractionsByContact(q DBTX, contactID uuid.UUID) ([]models.Interaction, error) {
	rows, err := q.Query(`
		SELECT `+interactionColumns+`
		FROM interactions
		WHERE contact_id = ?
		ORDER BY date DESC, id DESC
	`, contactID.String())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var interactions []models.Interaction
	for rows.Next() {
		i, err := scanInteraction(rows.Scan)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, *i)
	}
	return interactions, rows.Err()
}

func scanInteractionWithContact(rows *sql.Rows) (*models.InteractionWithContact, error) {
	iw := &models.InteractionWithContact{}
	var idStr, contactIDStr string
	var nextFollowUp sql.NullTime
	var firstName, lastName string

	err := rows.Scan(&idStr, &contactIDStr, &iw.InteractionType, &iw.Date, &iw.Summary,
		&iw.Outcome, &nextFollowUp, &iw.LoggedBy, &iw.CreatedAt, &firstName, &lastName)
	if err != nil {
		return nil, err
	}

	iw.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse interaction ID: %w", err)
	}
	iw.ContactID, err = uuid.Parse(contactIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse contact ID: %w", err)
	}
	if nextFollowUp.Valid {
		iw.NextFollowUpDate = &nextFollowUp.Time
	}
	name := firstName
	if lastName != "" {
		if name != "" {
			name += " "
		}
		name += lastName
	}
	iw.ContactName = name
	return iw, nil
}

const interactionJoin = `
	SELECT i.id, i.contact_id, i.interaction_type, i.date, i.summary,
	       i.outcome, i.next_follow_up_date, i.logged_by, i.created_at,
	       c.primary_first_name, c.primary_last_name
	FROM interactions i
	INNER JOIN contacts c ON c.id = i.contact_id
`

// RecentInteractions returns the most recently dated interactions system-wide
// annotated with their contact's name.
func RecentInteractions(q DBTX, limit int) ([]models.InteractionWithContact, error) {
	rows, err := q.Query(interactionJoin+`ORDER BY i.date DESC, i.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var interactions []models.InteractionWithContact
	for rows.Next() {
		iw, err := scanInteractionWithContact(rows)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, *iw)
	}
	return interactions, rows.Err()
}

// AllInteractionsWithContacts returns every interaction newest-first with its
// contact's name, the order the mirror sync exports.
func AllInteractionsWithContacts(q DBTX) ([]models.InteractionWithContact, error) {
	rows, err := q.Query(interactionJoin + `ORDER BY i.date DESC, i.id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var interactions []models.InteractionWithContact
	for rows.Next() {
		iw, err := scanInteractionWithContact(rows)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, *iw)
	}
	return interactions, rows.Err()
}

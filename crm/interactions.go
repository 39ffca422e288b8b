// ABOUTME: Interaction logging and the cascade updater
// ABOUTME: Recomputes a contact's last-contact date from all interactions after each insert
package crm

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lonestarscholars/crm/db"
	"github.com/lonestarscholars/crm/models"
)

// LogInteraction records a touchpoint and cascades the contact's derived
// dates. The last-contact date is recomputed from a fresh read of all the
// contact's interactions rather than trusted from the incoming record, so
// concurrent creations converge on the true maximum regardless of completion
// order (ties broken by id). If the interaction names a next follow-up date
// it overwrites the contact's; otherwise the existing one stands.
//
// The cascade is a system-derived write, not an operator edit, and produces
// no audit entries.
func LogInteraction(database *sql.DB, interaction *models.Interaction) error {
	if interaction.Summary == "" {
		return validationErr("summary", "summary is required")
	}
	if interaction.InteractionType == "" {
		return validationErr("interactionType", "interaction type is required")
	}

	contact, err := db.GetContact(database, interaction.ContactID)
	if err != nil {
		return err
	}
	if contact == nil {
		return ErrNotFound
	}

	if interaction.Date.IsZero() {
		interaction.Date = time.Now()
	}
	interaction.CreatedAt = time.Now()

	if err := db.InsertInteraction(database, interaction); err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}

	return recomputeContactDates(database, interaction)
}

// recomputeContactDates is the cascade: re-derive last contact from source of
// truth, then apply the optional follow-up overwrite.
func recomputeContactDates(database *sql.DB, trigger *models.Interaction) error {
	latest, err := db.LatestInteraction(database, trigger.ContactID)
	if err != nil {
		return fmt.Errorf("failed to read latest interaction: %w", err)
	}
	if latest == nil {
		// The interaction we just inserted is gone; nothing to derive.
		return nil
	}

	if err := db.UpdateContactDerivedDates(database, trigger.ContactID, latest.Date, trigger.NextFollowUpDate); err != nil {
		return fmt.Errorf("failed to update contact dates: %w", err)
	}
	return nil
}

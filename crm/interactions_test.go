// ABOUTME: Tests for interaction logging and the date cascade
// ABOUTME: Covers out-of-order creation, follow-up overwrites, and validation
package crm

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lonestarscholars/crm/db"
	"github.com/lonestarscholars/crm/models"
)

func TestLogInteractionSetsLastContactDate(t *testing.T) {
	database := setupTestDB(t)

	contact := &models.Contact{PrimaryFirstName: "Maria", PrimaryLastName: "Garcia"}
	require.NoError(t, CreateContact(database, contact, "cli"))
	require.Nil(t, contact.LastContactDate)

	when := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
	require.NoError(t, LogInteraction(database, &models.Interaction{
		ContactID:       contact.ID,
		InteractionType: "Call",
		Summary:         "Intro call, discussed essay coaching",
		Date:            when,
	}))

	got, err := db.GetContact(database, contact.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastContactDate)
	assert.True(t, got.LastContactDate.Equal(when))
}

func TestLogInteractionCascadeConvergesOnMaxDate(t *testing.T) {
	database := setupTestDB(t)

	contact := &models.Contact{PrimaryFirstName: "James", PrimaryLastName: "Wilson"}
	require.NoError(t, CreateContact(database, contact, "cli"))

	// Logged newest first: the backfilled older entry must not regress the date.
	newest := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	older := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, LogInteraction(database, &models.Interaction{
		ContactID:       contact.ID,
		InteractionType: "Email",
		Summary:         "Sent program overview",
		Date:            newest,
	}))
	require.NoError(t, LogInteraction(database, &models.Interaction{
		ContactID:       contact.ID,
		InteractionType: "Call",
		Summary:         "Backfilled earlier call",
		Date:            older,
	}))

	got, err := db.GetContact(database, contact.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastContactDate)
	assert.True(t, got.LastContactDate.Equal(newest))
}

func TestLogInteractionFollowUpOverwrite(t *testing.T) {
	database := setupTestDB(t)

	contact := &models.Contact{PrimaryFirstName: "Aiden", PrimaryLastName: "Patel"}
	require.NoError(t, CreateContact(database, contact, "cli"))

	first := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, LogInteraction(database, &models.Interaction{
		ContactID:        contact.ID,
		InteractionType:  "Call",
		Summary:          "Scheduled next check-in",
		Date:             time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		NextFollowUpDate: &first,
	}))

	got, err := db.GetContact(database, contact.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NextFollowUpDate)
	assert.True(t, got.NextFollowUpDate.Equal(first))

	// An interaction without a follow-up leaves the prior one standing.
	require.NoError(t, LogInteraction(database, &models.Interaction{
		ContactID:       contact.ID,
		InteractionType: "Text",
		Summary:         "Quick reminder text",
		Date:            time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
	}))

	got, err = db.GetContact(database, contact.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NextFollowUpDate)
	assert.True(t, got.NextFollowUpDate.Equal(first))

	// One with a new follow-up overwrites it.
	second := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, LogInteraction(database, &models.Interaction{
		ContactID:        contact.ID,
		InteractionType:  "Meeting",
		Summary:          "Parent meeting, pushed follow-up",
		Date:             time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC),
		NextFollowUpDate: &second,
	}))

	got, err = db.GetContact(database, contact.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NextFollowUpDate)
	assert.True(t, got.NextFollowUpDate.Equal(second))
}

func TestLogInteractionProducesNoAuditEntries(t *testing.T) {
	database := setupTestDB(t)

	contact := &models.Contact{PrimaryFirstName: "Maria", PrimaryLastName: "Garcia"}
	require.NoError(t, CreateContact(database, contact, "cli"))

	require.NoError(t, LogInteraction(database, &models.Interaction{
		ContactID:       contact.ID,
		InteractionType: "Call",
		Summary:         "Check-in call",
		Date:            time.Now(),
	}))

	entries, err := db.ListAuditEntries(database, contact.ID, 50)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "created", entries[0].Field)
}

func TestLogInteractionValidation(t *testing.T) {
	database := setupTestDB(t)

	var vErr *ValidationError
	err := LogInteraction(database, &models.Interaction{
		ContactID:       uuid.New(),
		InteractionType: "Call",
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "summary", vErr.Field)

	err = LogInteraction(database, &models.Interaction{
		ContactID: uuid.New(),
		Summary:   "No type",
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "interactionType", vErr.Field)
}

func TestLogInteractionMissingContact(t *testing.T) {
	database := setupTestDB(t)

	err := LogInteraction(database, &models.Interaction{
		ContactID:       uuid.New(),
		InteractionType: "Call",
		Summary:         "Ghost contact",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

// ABOUTME: Tests for interaction database operations
// ABOUTME: Covers inserts, history ordering, latest lookup, and contact-name joins
package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lonestarscholars/crm/models"
)

func TestLatestInteraction(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := &models.Contact{PrimaryFirstName: "Maria", PrimaryLastName: "Garcia"}
	if err := InsertContact(db, contact); err != nil {
		t.Fatalf("InsertContact failed: %v", err)
	}

	dates := []time.Time{
		time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		i := &models.Interaction{
			ContactID:       contact.ID,
			InteractionType: "Call",
			Date:            d,
			Summary:         "touchpoint",
			CreatedAt:       time.Now(),
		}
		if err := InsertInteraction(db, i); err != nil {
			t.Fatalf("InsertInteraction failed: %v", err)
		}
	}

	latest, err := LatestInteraction(db, contact.ID)
	if err != nil {
		t.Fatalf("LatestInteraction failed: %v", err)
	}
	if latest == nil {
		t.Fatal("LatestInteraction returned nil")
	}
	if !latest.Date.Equal(dates[1]) {
		t.Errorf("Expected latest date %v, got %v", dates[1], latest.Date)
	}
}

func TestLatestInteractionMixedZones(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := &models.Contact{PrimaryFirstName: "Maria", PrimaryLastName: "Garcia"}
	if err := InsertContact(db, contact); err != nil {
		t.Fatalf("InsertContact failed: %v", err)
	}

	// earlier renders as "2026-08-20 23:00:00+00:00" and later as
	// "2026-08-20 19:00:00-05:00". The later instant sorts first as text,
	// so ordering is only correct if both are stored in UTC.
	earlier := time.Date(2026, 8, 20, 23, 0, 0, 0, time.UTC)
	later := time.Date(2026, 8, 20, 19, 0, 0, 0, time.FixedZone("CDT", -5*3600))
	for _, d := range []time.Time{earlier, later} {
		i := &models.Interaction{
			ContactID:       contact.ID,
			InteractionType: "Call",
			Date:            d,
			Summary:         "touchpoint",
			CreatedAt:       time.Now(),
		}
		if err := InsertInteraction(db, i); err != nil {
			t.Fatalf("InsertInteraction failed: %v", err)
		}
	}

	latest, err := LatestInteraction(db, contact.ID)
	if err != nil {
		t.Fatalf("LatestInteraction failed: %v", err)
	}
	if latest == nil {
		t.Fatal("LatestInteraction returned nil")
	}
	if !latest.Date.Equal(later) {
		t.Errorf("Expected latest date %v, got %v", later, latest.Date)
	}
}

func TestLatestInteractionNone(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	latest, err := LatestInteraction(db, uuid.New())
	if err != nil {
		t.Fatalf("LatestInteraction failed: %v", err)
	}
	if latest != nil {
		t.Error("Expected nil when no interactions exist")
	}
}

func TestRecentInteractionsWithNames(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	maria := &models.Contact{PrimaryFirstName: "Maria", PrimaryLastName: "Garcia"}
	james := &models.Contact{PrimaryFirstName: "James", PrimaryLastName: "Wilson"}
	for _, c := range []*models.Contact{maria, james} {
		if err := InsertContact(db, c); err != nil {
			t.Fatalf("InsertContact failed: %v", err)
		}
	}

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 7; day++ {
		owner := maria
		if day%2 == 1 {
			owner = james
		}
		i := &models.Interaction{
			ContactID:       owner.ID,
			InteractionType: "Email",
			Date:            base.AddDate(0, 0, day),
			Summary:         "touchpoint",
			CreatedAt:       time.Now(),
		}
		if err := InsertInteraction(db, i); err != nil {
			t.Fatalf("InsertInteraction failed: %v", err)
		}
	}

	recent, err := RecentInteractions(db, 5)
	if err != nil {
		t.Fatalf("RecentInteractions failed: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("Expected 5 recent interactions, got %d", len(recent))
	}
	// Newest first
	if !recent[0].Date.Equal(base.AddDate(0, 0, 6)) {
		t.Errorf("Expected newest interaction first, got %v", recent[0].Date)
	}
	if recent[0].ContactName != "Maria Garcia" {
		t.Errorf("Expected contact name annotation, got %q", recent[0].ContactName)
	}
}

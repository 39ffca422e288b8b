// ABOUTME: Interaction API handlers
// ABOUTME: Lists touchpoints and logs new ones through the cascade updater
package web

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/lonestarscholars/crm/crm"
	"github.com/lonestarscholars/crm/db"
	"github.com/lonestarscholars/crm/models"
)

func (s *Server) handleListInteractions(w http.ResponseWriter, r *http.Request, _ string) {
	if contactIDStr := r.URL.Query().Get("contactId"); contactIDStr != "" {
		contactID, err := uuid.Parse(contactIDStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid contactId")
			return
		}
		interactions, err := db.ListInteractionsByContact(s.db, contactID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if interactions == nil {
			interactions = []models.Interaction{}
		}
		writeJSON(w, http.StatusOK, interactions)
		return
	}

	interactions, err := db.AllInteractionsWithContacts(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if interactions == nil {
		interactions = []models.InteractionWithContact{}
	}
	writeJSON(w, http.StatusOK, interactions)
}

func (s *Server) handleCreateInteraction(w http.ResponseWriter, r *http.Request, email string) {
	var payload struct {
		ContactID        string `json:"contactId"`
		InteractionType  string `json:"interactionType"`
		Date             string `json:"date"`
		Summary          string `json:"summary"`
		Outcome          string `json:"outcome"`
		NextFollowUpDate string `json:"nextFollowUpDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if payload.ContactID == "" || payload.InteractionType == "" || payload.Summary == "" {
		writeError(w, http.StatusBadRequest, "contactId, interactionType, and summary are required")
		return
	}
	contactID, err := uuid.Parse(payload.ContactID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Contact not found")
		return
	}

	interaction := &models.Interaction{
		ContactID:       contactID,
		InteractionType: payload.InteractionType,
		Summary:         payload.Summary,
		Outcome:         payload.Outcome,
		LoggedBy:        email,
	}
	if date, err := parseDate("date", payload.Date); err != nil {
		writeOperationError(w, err)
		return
	} else if date != nil {
		interaction.Date = *date
	}
	if interaction.NextFollowUpDate, err = parseDate("nextFollowUpDate", payload.NextFollowUpDate); err != nil {
		writeOperationError(w, err)
		return
	}

	if err := crm.LogInteraction(s.db, interaction); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, interaction)
}

// ABOUTME: Contact API handlers
// ABOUTME: Handles listing, creation, detail with history, edits, deletion, and CSV download
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lonestarscholars/crm/crm"
	"github.com/lonestarscholars/crm/db"
	"github.com/lonestarscholars/crm/export"
	"github.com/lonestarscholars/crm/models"
)

const auditHistoryLimit = 50

// contactPayload is the JSON body for contact creates and partial updates.
// Dates arrive as strings; nil means the field is absent from the request,
// an empty date string clears the stored date.
type contactPayload struct {
	ContactType            *string `json:"contactType"`
	PrimaryFirstName       *string `json:"primaryFirstName"`
	PrimaryLastName        *string `json:"primaryLastName"`
	StudentName            *string `json:"studentName"`
	StudentGradYear        *string `json:"studentGradYear"`
	Email                  *string `json:"email"`
	Phone                  *string `json:"phone"`
	PreferredContactMethod *string `json:"preferredContactMethod"`
	City                   *string `json:"city"`
	State                  *string `json:"state"`
	SchoolName             *string `json:"schoolName"`
	LeadSource             *string `json:"leadSource"`
	ReferredBy             *string `json:"referredBy"`
	ServiceInterest        *string `json:"serviceInterest"`
	BudgetFit              *string `json:"budgetFit"`
	PriorityScore          *string `json:"priorityScore"`
	LeadStatus             *string `json:"leadStatus"`
	StatusReason           *string `json:"statusReason"`
	Owner                  *string `json:"owner"`
	NextFollowUpDate       *string `json:"nextFollowUpDate"`
	NextStep               *string `json:"nextStep"`
	PackageInterestedIn    *string `json:"packageInterestedIn"`
	PackagePurchased       *string `json:"packagePurchased"`
	StartDate              *string `json:"startDate"`
	EndDate                *string `json:"endDate"`
	ClientStatus           *string `json:"clientStatus"`
	PaymentStatus          *string `json:"paymentStatus"`
	ContractSent           *bool   `json:"contractSent"`
	ContractSigned         *bool   `json:"contractSigned"`
	NotesStatic            *string `json:"notesStatic"`
}

// parseDate normalizes an external date representation. Accepts RFC 3339 or
// plain YYYY-MM-DD; anything else is a validation error.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, models.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, &crm.ValidationError{Field: field, Reason: fmt.Sprintf("unparseable date %q", value)}
}

func (p *contactPayload) dateUpdate(field string, value *string) (*models.DateUpdate, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &models.DateUpdate{Time: t}, nil
}

func (p *contactPayload) toUpdate() (*models.ContactUpdate, error) {
	u := &models.ContactUpdate{
		ContactType:            p.ContactType,
		PrimaryFirstName:       p.PrimaryFirstName,
		PrimaryLastName:        p.PrimaryLastName,
		StudentName:            p.StudentName,
		StudentGradYear:        p.StudentGradYear,
		Email:                  p.Email,
		Phone:                  p.Phone,
		PreferredContactMethod: p.PreferredContactMethod,
		City:                   p.City,
		State:                  p.State,
		SchoolName:             p.SchoolName,
		LeadSource:             p.LeadSource,
		ReferredBy:             p.ReferredBy,
		ServiceInterest:        p.ServiceInterest,
		BudgetFit:              p.BudgetFit,
		PriorityScore:          p.PriorityScore,
		LeadStatus:             p.LeadStatus,
		StatusReason:           p.StatusReason,
		Owner:                  p.Owner,
		NextStep:               p.NextStep,
		PackageInterestedIn:    p.PackageInterestedIn,
		PackagePurchased:       p.PackagePurchased,
		ClientStatus:           p.ClientStatus,
		PaymentStatus:          p.PaymentStatus,
		ContractSent:           p.ContractSent,
		ContractSigned:         p.ContractSigned,
		NotesStatic:            p.NotesStatic,
	}

	var err error
	if u.NextFollowUpDate, err = p.dateUpdate("nextFollowUpDate", p.NextFollowUpDate); err != nil {
		return nil, err
	}
	if u.StartDate, err = p.dateUpdate("startDate", p.StartDate); err != nil {
		return nil, err
	}
	if u.EndDate, err = p.dateUpdate("endDate", p.EndDate); err != nil {
		return nil, err
	}
	return u, nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (p *contactPayload) toContact() (*models.Contact, error) {
	c := &models.Contact{
		ContactType:            str(p.ContactType),
		PrimaryFirstName:       str(p.PrimaryFirstName),
		PrimaryLastName:        str(p.PrimaryLastName),
		StudentName:            str(p.StudentName),
		StudentGradYear:        str(p.StudentGradYear),
		Email:                  str(p.Email),
		Phone:                  str(p.Phone),
		PreferredContactMethod: str(p.PreferredContactMethod),
		City:                   str(p.City),
		State:                  str(p.State),
		SchoolName:             str(p.SchoolName),
		LeadSource:             str(p.LeadSource),
		ReferredBy:             str(p.ReferredBy),
		ServiceInterest:        str(p.ServiceInterest),
		BudgetFit:              str(p.BudgetFit),
		PriorityScore:          str(p.PriorityScore),
		LeadStatus:             str(p.LeadStatus),
		StatusReason:           str(p.StatusReason),
		Owner:                  str(p.Owner),
		NextStep:               str(p.NextStep),
		PackageInterestedIn:    str(p.PackageInterestedIn),
		PackagePurchased:       str(p.PackagePurchased),
		ClientStatus:           str(p.ClientStatus),
		PaymentStatus:          str(p.PaymentStatus),
		NotesStatic:            str(p.NotesStatic),
	}
	if p.ContractSent != nil {
		c.ContractSent = *p.ContractSent
	}
	if p.ContractSigned != nil {
		c.ContractSigned = *p.ContractSigned
	}

	var err error
	if p.NextFollowUpDate != nil {
		if c.NextFollowUpDate, err = parseDate("nextFollowUpDate", *p.NextFollowUpDate); err != nil {
			return nil, err
		}
	}
	if p.StartDate != nil {
		if c.StartDate, err = parseDate("startDate", *p.StartDate); err != nil {
			return nil, err
		}
	}
	if p.EndDate != nil {
		if c.EndDate, err = parseDate("endDate", *p.EndDate); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request, _ string) {
	q := r.URL.Query()

	filter := db.ContactFilter{
		ClientStatus: q.Get("clientStatus"),
		LeadSource:   q.Get("leadSource"),
		Priority:     q.Get("priority"),
		Search:       q.Get("search"),
		SortBy:       q.Get("sortBy"),
		SortDir:      q.Get("sortDir"),
	}
	if status := q.Get("status"); status != "" {
		filter.Statuses = strings.Split(status, ",")
	}

	contacts, err := db.ListContacts(s.db, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request, email string) {
	var payload contactPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contact, err := payload.toContact()
	if err != nil {
		writeOperationError(w, err)
		return
	}

	if err := crm.CreateContact(s.db, contact, email); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func (s *Server) contactID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Contact not found")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request, _ string) {
	id, ok := s.contactID(w, r)
	if !ok {
		return
	}

	contact, err := db.GetContact(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contact == nil {
		writeError(w, http.StatusNotFound, "Contact not found")
		return
	}

	interactions, err := db.ListInteractionsByContact(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	auditLogs, err := db.ListAuditEntries(s.db, id, auditHistoryLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, struct {
		*models.Contact
		Interactions []models.Interaction   `json:"interactions"`
		AuditLogs    []models.AuditLogEntry `json:"auditLogs"`
	}{contact, interactions, auditLogs})
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request, email string) {
	id, ok := s.contactID(w, r)
	if !ok {
		return
	}

	var payload contactPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update, err := payload.toUpdate()
	if err != nil {
		writeOperationError(w, err)
		return
	}

	contact, err := crm.UpdateContact(s.db, id, update, email)
	if err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request, _ string) {
	id, ok := s.contactID(w, r)
	if !ok {
		return
	}

	if err := crm.DeleteContact(s.db, id); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleExportContacts(w http.ResponseWriter, r *http.Request, _ string) {
	contacts, err := db.AllContactsByDateAdded(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))
	if err := export.WriteContacts(w, contacts); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

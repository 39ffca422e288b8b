// ABOUTME: Contact database operations
// ABOUTME: Handles CRUD operations, filtered listing, and cascade deletion
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lonestarscholars/crm/models"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same statement helpers
// serve plain calls and the mutation engine's transactions.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

const contactColumns = `id, contact_type, primary_first_name, primary_last_name,
	student_name, student_grad_year, email, phone, preferred_contact_method,
	city, state, school_name, lead_source, referred_by, service_interest,
	budget_fit, priority_score, lead_status, status_reason, owner, date_added,
	last_contact_date, next_follow_up_date, next_step, package_interested_in,
	package_purchased, start_date, end_date, client_status, payment_status,
	contract_sent, contract_signed, notes_static, created_at, updated_at`

func InsertContact(q DBTX, contact *models.Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	now := time.Now()
	if contact.DateAdded.IsZero() {
		contact.DateAdded = now
	}
	contact.CreatedAt = now
	contact.UpdatedAt = now
	if contact.LeadStatus == "" {
		contact.LeadStatus = models.StatusNewLead
	}

	_, err := q.Exec(`
		INSERT INTO contacts (`+contactColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		contact.ID.String(), contact.ContactType, contact.PrimaryFirstName, contact.PrimaryLastName,
		contact.StudentName, contact.StudentGradYear, contact.Email, contact.Phone, contact.PreferredContactMethod,
		contact.City, contact.State, contact.SchoolName, contact.LeadSource, contact.ReferredBy, contact.ServiceInterest,
		contact.BudgetFit, contact.PriorityScore, contact.LeadStatus, contact.StatusReason, contact.Owner, utc(contact.DateAdded),
		utcPtr(contact.LastContactDate), utcPtr(contact.NextFollowUpDate), contact.NextStep, contact.PackageInterestedIn,
		contact.PackagePurchased, utcPtr(contact.StartDate), utcPtr(contact.EndDate), contact.ClientStatus, contact.PaymentStatus,
		contact.ContractSent, contact.ContractSigned, contact.NotesStatic, utc(contact.CreatedAt), utc(contact.UpdatedAt),
	)
	return err
}

func scanContact(scan func(dest ...any) error) (*models.Contact, error) {
	c := &models.Contact{}
	var idStr string
	var lastContact, nextFollowUp, startDate, endDate sql.NullTime

	err := scan(
		&idStr, &c.ContactType, &c.PrimaryFirstName, &c.PrimaryLastName,
		&c.StudentName, &c.StudentGradYear, &c.Email, &c.Phone, &c.PreferredContactMethod,
		&c.City, &c.State, &c.SchoolName, &c.LeadSource, &c.ReferredBy, &c.ServiceInterest,
		&c.BudgetFit, &c.PriorityScore, &c.LeadStatus, &c.StatusReason, &c.Owner, &c.DateAdded,
		&lastContact, &nextFollowUp, &c.NextStep, &c.PackageInterestedIn,
		&c.PackagePurchased, &startDate, &endDate, &c.ClientStatus, &c.PaymentStatus,
		&c.ContractSent, &c.ContractSigned, &c.NotesStatic, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse contact ID: %w", err)
	}
	if lastContact.Valid {
		c.LastContactDate = &lastContact.Time
	}
	if nextFollowUp.Valid {
		c.NextFollowUpDate = &nextFollowUp.Time
	}
	if startDate.Valid {
		c.StartDate = &startDate.Time
	}
	if endDate.Valid {
		c.EndDate = &endDate.Time
	}
	return c, nil
}

func GetContact(q DBTX, id uuid.UUID) (*models.Contact, error) {
	row := q.QueryRow(`SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id.String())
	contact, err := scanContact(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// UpdateContactRow writes every mutable column of an already-loaded contact.
// The mutation engine applies field changes in memory first and persists the
// whole row alongside its audit entries in one transaction.
func UpdateContactRow(q DBTX, contact *models.Contact) error {
	contact.UpdatedAt = time.Now()

	_, err := q.Exec(`
		UPDATE contacts SET
			contact_type = ?, primary_first_name = ?, primary_last_name = ?,
			student_name = ?, student_grad_year = ?, email = ?, phone = ?,
			preferred_contact_method = ?, city = ?, state = ?, school_name = ?,
			lead_source = ?, referred_by = ?, service_interest = ?, budget_fit = ?,
			priority_score = ?, lead_status = ?, status_reason = ?, owner = ?,
			last_contact_date = ?, next_follow_up_date = ?, next_step = ?,
			package_interested_in = ?, package_purchased = ?, start_date = ?, end_date = ?,
			client_status = ?, payment_status = ?, contract_sent = ?, contract_signed = ?,
			notes_static = ?, updated_at = ?
		WHERE id = ?
	`,
		contact.ContactType, contact.PrimaryFirstName, contact.PrimaryLastName,
		contact.StudentName, contact.StudentGradYear, contact.Email, contact.Phone,
		contact.PreferredContactMethod, contact.City, contact.State, contact.SchoolName,
		contact.LeadSource, contact.ReferredBy, contact.ServiceInterest, contact.BudgetFit,
		contact.PriorityScore, contact.LeadStatus, contact.StatusReason, contact.Owner,
		utcPtr(contact.LastContactDate), utcPtr(contact.NextFollowUpDate), contact.NextStep,
		contact.PackageInterestedIn, contact.PackagePurchased, utcPtr(contact.StartDate), utcPtr(contact.EndDate),
		contact.ClientStatus, contact.PaymentStatus, contact.ContractSent, contact.ContractSigned,
		contact.NotesStatic, utc(contact.UpdatedAt), contact.ID.String(),
	)
	return err
}

// UpdateContactDerivedDates writes the cascade-maintained fields without
// touching anything operator-authored. nextFollowUp nil means leave as-is.
func UpdateContactDerivedDates(q DBTX, contactID uuid.UUID, lastContact time.Time, nextFollowUp *time.Time) error {
	if nextFollowUp != nil {
		_, err := q.Exec(`
			UPDATE contacts SET last_contact_date = ?, next_follow_up_date = ?, updated_at = ? WHERE id = ?
		`, utc(lastContact), utcPtr(nextFollowUp), utc(time.Now()), contactID.String())
		return err
	}
	_, err := q.Exec(`
		UPDATE contacts SET last_contact_date = ?, updated_at = ? WHERE id = ?
	`, utc(lastContact), utc(time.Now()), contactID.String())
	return err
}

// ContactFilter narrows and orders ListContacts results.
type ContactFilter struct {
	Statuses     []string // lead statuses, any-of; empty means all
	ClientStatus string
	LeadSource   string
	Priority     string
	Search       string // case-insensitive substring over names, email, phone, school
	SortBy       string // JSON field name; defaults to nextFollowUpDate
	SortDir      string // "asc" or "desc"
}

// priorityRank orders priority tiers by urgency for the secondary sort.
const priorityRank = `CASE priority_score WHEN 'Hot' THEN 0 WHEN 'Warm' THEN 1 WHEN 'Cold' THEN 2 ELSE 3 END ASC`

// sortColumns whitelists sortable fields against injection.
var sortColumns = map[string]string{
	"dateAdded":        "date_added",
	"primaryFirstName": "primary_first_name",
	"primaryLastName":  "primary_last_name",
	"leadStatus":       "lead_status",
	"priorityScore":    "priority_score",
	"lastContactDate":  "last_contact_date",
	"nextFollowUpDate": "next_follow_up_date",
}

func ListContacts(q DBTX, filter ContactFilter) ([]models.Contact, error) {
	var conds []string
	var args []any

	if len(filter.Statuses) == 1 {
		conds = append(conds, "lead_status = ?")
		args = append(args, filter.Statuses[0])
	} else if len(filter.Statuses) > 1 {
		placeholders := strings.Repeat("?,", len(filter.Statuses))
		conds = append(conds, "lead_status IN ("+placeholders[:len(placeholders)-1]+")")
		for _, s := range filter.Statuses {
			args = append(args, s)
		}
	}
	if filter.ClientStatus != "" {
		conds = append(conds, "client_status = ?")
		args = append(args, filter.ClientStatus)
	}
	if filter.LeadSource != "" {
		conds = append(conds, "lead_source = ?")
		args = append(args, filter.LeadSource)
	}
	if filter.Priority != "" {
		conds = append(conds, "priority_score = ?")
		args = append(args, filter.Priority)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		conds = append(conds, `(LOWER(primary_first_name) LIKE ? OR LOWER(primary_last_name) LIKE ?
			OR LOWER(student_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?
			OR LOWER(school_name) LIKE ?)`)
		for i := 0; i < 6; i++ {
			args = append(args, pattern)
		}
	}

	query := `SELECT ` + contactColumns + ` FROM contacts`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	col, ok := sortColumns[filter.SortBy]
	if !ok {
		col = "next_follow_up_date"
	}
	dir := "ASC"
	if filter.SortDir == "desc" {
		dir = "DESC"
	}
	// Priority tier rank is the stable secondary key, hottest first; the raw
	// column would sort Cold < Hot < Warm
	query += fmt.Sprintf(" ORDER BY %s %s, %s", col, dir, priorityRank)

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var contacts []models.Contact
	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

// AllContactsByDateAdded returns every contact newest-first, the order both
// the mirror sync and the CSV export use.
func AllContactsByDateAdded(q DBTX) ([]models.Contact, error) {
	return ListContacts(q, ContactFilter{SortBy: "dateAdded", SortDir: "desc"})
}

// DeleteContact removes a contact and everything it owns in one transaction.
func DeleteContact(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	if _, err := tx.Exec(`DELETE FROM interactions WHERE contact_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete interactions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM audit_logs WHERE contact_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete audit logs: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM contacts WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	return tx.Commit()
}

// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for managing pipeline contacts
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/lonestarscholars/crm/crm"
	"github.com/lonestarscholars/crm/db"
	"github.com/lonestarscholars/crm/models"
)

// cliAuthor identifies edits made from the command line in the audit trail.
const cliAuthor = "cli"

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(models.DateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("--%s must be YYYY-MM-DD: %w", name, err)
	}
	return &t, nil
}

// AddContactCommand adds a new contact to the pipeline.
func AddContactCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	firstName := fs.String("first-name", "", "Primary first name (required)")
	lastName := fs.String("last-name", "", "Primary last name")
	contactType := fs.String("type", "Parent", "Contact type")
	student := fs.String("student", "", "Student name")
	gradYear := fs.String("grad-year", "", "Student graduation year")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	school := fs.String("school", "", "School name")
	source := fs.String("source", "", "Lead source")
	status := fs.String("status", models.StatusNewLead, "Lead status")
	priority := fs.String("priority", "", "Priority score (Hot/Warm/Cold)")
	followUp := fs.String("follow-up", "", "Next follow-up date (YYYY-MM-DD)")
	notes := fs.String("notes", "", "Notes about the contact")
	_ = fs.Parse(args)

	if *firstName == "" {
		return fmt.Errorf("--first-name is required")
	}

	contact := &models.Contact{
		ContactType:      *contactType,
		PrimaryFirstName: *firstName,
		PrimaryLastName:  *lastName,
		StudentName:      *student,
		StudentGradYear:  *gradYear,
		Email:            *email,
		Phone:            *phone,
		SchoolName:       *school,
		LeadSource:       *source,
		LeadStatus:       *status,
		PriorityScore:    *priority,
		NotesStatic:      *notes,
	}

	var err error
	if contact.NextFollowUpDate, err = parseDateFlag("follow-up", *followUp); err != nil {
		return err
	}

	if err := crm.CreateContact(database, contact, cliAuthor); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	fmt.Printf("✓ Contact created: %s (ID: %s)\n", contact.DisplayName(), contact.ID)
	if contact.Email != "" {
		fmt.Printf("  Email: %s\n", contact.Email)
	}
	if contact.LeadStatus != "" {
		fmt.Printf("  Status: %s\n", contact.LeadStatus)
	}
	return nil
}

// ListContactsCommand lists contacts with optional filters.
func ListContactsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	status := fs.String("status", "", "Filter by lead status")
	source := fs.String("source", "", "Filter by lead source")
	priority := fs.String("priority", "", "Filter by priority score")
	search := fs.String("search", "", "Search names, email, phone, school")
	sortBy := fs.String("sort", "nextFollowUpDate", "Sort field")
	sortDir := fs.String("dir", "asc", "Sort direction (asc/desc)")
	_ = fs.Parse(args)

	filter := db.ContactFilter{
		LeadSource: *source,
		Priority:   *priority,
		Search:     *search,
		SortBy:     *sortBy,
		SortDir:    *sortDir,
	}
	if *status != "" {
		filter.Statuses = []string{*status}
	}

	contacts, err := db.ListContacts(database, filter)
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTUDENT\tSTATUS\tPRIORITY\tNEXT FOLLOW-UP\tID")
	for i := range contacts {
		c := &contacts[i]
		followUp := ""
		if c.NextFollowUpDate != nil {
			followUp = c.NextFollowUpDate.Format(models.DateOnly)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.DisplayName(), c.StudentName, c.LeadStatus, c.PriorityScore, followUp, c.ID)
	}
	return w.Flush()
}

// UpdateContactCommand applies a partial update to a contact.
func UpdateContactCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-contact", flag.ExitOnError)
	status := fs.String("status", "", "New lead status")
	statusReason := fs.String("status-reason", "", "Reason for the status")
	priority := fs.String("priority", "", "New priority score")
	followUp := fs.String("follow-up", "", "Next follow-up date (YYYY-MM-DD, empty keeps current)")
	nextStep := fs.String("next-step", "", "Next step text")
	notes := fs.String("notes", "", "Replacement notes")
	clientStatus := fs.String("client-status", "", "Client status")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: update-contact [flags] <contact-id>")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid contact ID: %w", err)
	}

	update := &models.ContactUpdate{}
	if *status != "" {
		update.LeadStatus = status
	}
	if *statusReason != "" {
		update.StatusReason = statusReason
	}
	if *priority != "" {
		update.PriorityScore = priority
	}
	if *nextStep != "" {
		update.NextStep = nextStep
	}
	if *notes != "" {
		update.NotesStatic = notes
	}
	if *clientStatus != "" {
		update.ClientStatus = clientStatus
	}
	if *followUp != "" {
		t, err := parseDateFlag("follow-up", *followUp)
		if err != nil {
			return err
		}
		update.NextFollowUpDate = &models.DateUpdate{Time: t}
	}

	contact, err := crm.UpdateContact(database, id, update, cliAuthor)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	fmt.Printf("✓ Contact updated: %s (status: %s)\n", contact.DisplayName(), contact.LeadStatus)
	return nil
}

// DeleteContactCommand deletes a contact and its history.
func DeleteContactCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-contact", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: delete-contact <contact-id>")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid contact ID: %w", err)
	}

	if err := crm.DeleteContact(database, id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	fmt.Printf("✓ Contact deleted: %s\n", id)
	return nil
}

// ABOUTME: Mirror export schemas and row mapping
// ABOUTME: Maps contacts and interactions to their fixed, ordered column layouts
package sync

import (
	"time"

	"github.com/lonestarscholars/crm/models"
)

// Target sheet names in the mirror spreadsheet.
const (
	ContactsSheet     = "Contacts"
	InteractionsSheet = "Interactions"
)

// Full data ranges cleared before each write.
const (
	contactsRange     = ContactsSheet + "!A:AH"
	interactionsRange = InteractionsSheet + "!A:I"
)

// ContactsHeaders is the ordered contact column schema.
var ContactsHeaders = []string{
	"contact_id",
	"contact_type",
	"primary_first_name",
	"primary_last_name",
	"student_name",
	"student_grad_year",
	"email",
	"phone",
	"preferred_contact_method",
	"city",
	"state",
	"school_name",
	"notes_static",
	"lead_source",
	"referred_by",
	"service_interest",
	"budget_fit",
	"priority_score",
	"lead_status",
	"status_reason",
	"owner",
	"date_added",
	"last_contact_date",
	"next_follow_up_date",
	"next_step",
	"package_interested_in",
	"package_purchased",
	"start_date",
	"end_date",
	"client_status",
	"payment_status",
	"contract_sent",
	"contract_signed",
}

// InteractionsHeaders is the ordered interaction column schema.
var InteractionsHeaders = []string{
	"interaction_id",
	"date",
	"contact_id",
	"contact_name",
	"interaction_type",
	"summary",
	"outcome",
	"next_follow_up_date",
	"logged_by",
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(models.DateOnly)
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

// ContactRow renders one contact in ContactsHeaders order. Absent values are
// empty strings, dates are YYYY-MM-DD, flags are Y/N.
func ContactRow(c *models.Contact) []string {
	dateAdded := c.DateAdded
	return []string{
		c.ID.String(),
		c.ContactType,
		c.PrimaryFirstName,
		c.PrimaryLastName,
		c.StudentName,
		c.StudentGradYear,
		c.Email,
		c.Phone,
		c.PreferredContactMethod,
		c.City,
		c.State,
		c.SchoolName,
		c.NotesStatic,
		c.LeadSource,
		c.ReferredBy,
		c.ServiceInterest,
		c.BudgetFit,
		c.PriorityScore,
		c.LeadStatus,
		c.StatusReason,
		c.Owner,
		formatDate(&dateAdded),
		formatDate(c.LastContactDate),
		formatDate(c.NextFollowUpDate),
		c.NextStep,
		c.PackageInterestedIn,
		c.PackagePurchased,
		formatDate(c.StartDate),
		formatDate(c.EndDate),
		c.ClientStatus,
		c.PaymentStatus,
		yesNo(c.ContractSent),
		yesNo(c.ContractSigned),
	}
}

// InteractionRow renders one interaction in InteractionsHeaders order.
func InteractionRow(i *models.InteractionWithContact) []string {
	date := i.Date
	return []string{
		i.ID.String(),
		formatDate(&date),
		i.ContactID.String(),
		i.ContactName,
		i.InteractionType,
		i.Summary,
		i.Outcome,
		formatDate(i.NextFollowUpDate),
		i.LoggedBy,
	}
}

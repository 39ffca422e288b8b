// ABOUTME: CSV download rendering for contacts
// ABOUTME: Writes the snake_case contact schema with RFC 4180 escaping
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/lonestarscholars/crm/models"
)

// csvHeaders is the download column order; a trimmed view of the mirror
// schema with notes moved to the end.
var csvHeaders = []string{
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
	"lead_source",
	"referred_by",
	"service_interest",
	"budget_fit",
	"priority_score",
	"lead_status",
	"status_reason",
	"next_follow_up_date",
	"next_step",
	"package_purchased",
	"client_status",
	"payment_status",
	"contract_sent",
	"contract_signed",
	"notes_static",
}

func fmtDate(t *time.Time) string {
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

// WriteContacts renders contacts as CSV. encoding/csv quotes and doubles
// embedded quotes per RFC 4180, so notes containing commas, quotes, or
// newlines round-trip through any standard parser.
func WriteContacts(w io.Writer, contacts []models.Contact) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeaders); err != nil {
		return err
	}
	for i := range contacts {
		c := &contacts[i]
		row := []string{
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
			c.LeadSource,
			c.ReferredBy,
			c.ServiceInterest,
			c.BudgetFit,
			c.PriorityScore,
			c.LeadStatus,
			c.StatusReason,
			fmtDate(c.NextFollowUpDate),
			c.NextStep,
			c.PackagePurchased,
			c.ClientStatus,
			c.PaymentStatus,
			yesNo(c.ContractSent),
			yesNo(c.ContractSigned),
			c.NotesStatic,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Filename returns the dated attachment name for a contact export.
func Filename(now time.Time) string {
	return fmt.Sprintf("contacts_%s.csv", now.Format(models.DateOnly))
}

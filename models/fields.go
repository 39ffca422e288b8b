// ABOUTME: Audit field descriptor table for contact updates
// ABOUTME: Enumerates every operator-editable field with its string coercion and apply rule
package models

import "time"

// DateUpdate wraps a date assignment so a partial update can distinguish
// "field absent" (nil *DateUpdate) from "clear the date" (Time == nil).
type DateUpdate struct {
	Time *time.Time
}

// ContactUpdate is a partial contact edit. Nil fields are absent from the
// update and left untouched; present fields are applied and audited when
// their coerced string value differs from the stored one.
type ContactUpdate struct {
	ContactType            *string
	PrimaryFirstName       *string
	PrimaryLastName        *string
	StudentName            *string
	StudentGradYear        *string
	Email                  *string
	Phone                  *string
	PreferredContactMethod *string
	City                   *string
	State                  *string
	SchoolName             *string
	LeadSource             *string
	ReferredBy             *string
	ServiceInterest        *string
	BudgetFit              *string
	PriorityScore          *string
	LeadStatus             *string
	StatusReason           *string
	Owner                  *string
	NextFollowUpDate       *DateUpdate
	NextStep               *string
	PackageInterestedIn    *string
	PackagePurchased       *string
	StartDate              *DateUpdate
	EndDate                *DateUpdate
	ClientStatus           *string
	PaymentStatus          *string
	ContractSent           *bool
	ContractSigned         *bool
	NotesStatic            *string
}

// FieldDescriptor describes one audit-tracked contact field: how to read its
// current value as a string, how to read the incoming value from a partial
// update, and how to apply it. Fields not in the table (id, dateAdded, the
// derived lastContactDate, timestamps, relations) are never diffed or audited.
type FieldDescriptor struct {
	Name string

	// Old returns the stored value coerced to a string ("" when absent).
	Old func(c *Contact) string

	// New returns the incoming value coerced to a string and whether the
	// field is present in the update at all.
	New func(u *ContactUpdate) (string, bool)

	// Apply copies the incoming value onto the contact.
	Apply func(c *Contact, u *ContactUpdate)
}

// DateOnly is the canonical date rendering used for audit values and exports.
const DateOnly = "2006-01-02"

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateOnly)
}

func stringField(name string, old func(*Contact) *string, upd func(*ContactUpdate) *string) FieldDescriptor {
	return FieldDescriptor{
		Name: name,
		Old:  func(c *Contact) string { return *old(c) },
		New: func(u *ContactUpdate) (string, bool) {
			p := upd(u)
			if p == nil {
				return "", false
			}
			return *p, true
		},
		Apply: func(c *Contact, u *ContactUpdate) {
			if p := upd(u); p != nil {
				*old(c) = *p
			}
		},
	}
}

func dateField(name string, old func(*Contact) **time.Time, upd func(*ContactUpdate) *DateUpdate) FieldDescriptor {
	return FieldDescriptor{
		Name: name,
		Old:  func(c *Contact) string { return formatDatePtr(*old(c)) },
		New: func(u *ContactUpdate) (string, bool) {
			d := upd(u)
			if d == nil {
				return "", false
			}
			return formatDatePtr(d.Time), true
		},
		Apply: func(c *Contact, u *ContactUpdate) {
			if d := upd(u); d != nil {
				*old(c) = d.Time
			}
		},
	}
}

func boolField(name string, old func(*Contact) *bool, upd func(*ContactUpdate) *bool) FieldDescriptor {
	return FieldDescriptor{
		Name: name,
		Old: func(c *Contact) string {
			if *old(c) {
				return "true"
			}
			return "false"
		},
		New: func(u *ContactUpdate) (string, bool) {
			p := upd(u)
			if p == nil {
				return "", false
			}
			if *p {
				return "true", true
			}
			return "false", true
		},
		Apply: func(c *Contact, u *ContactUpdate) {
			if p := upd(u); p != nil {
				*old(c) = *p
			}
		},
	}
}

// AuditFields enumerates every field the mutation engine diffs and audits,
// in export order.
var AuditFields = []FieldDescriptor{
	stringField("contactType", func(c *Contact) *string { return &c.ContactType }, func(u *ContactUpdate) *string { return u.ContactType }),
	stringField("primaryFirstName", func(c *Contact) *string { return &c.PrimaryFirstName }, func(u *ContactUpdate) *string { return u.PrimaryFirstName }),
	stringField("primaryLastName", func(c *Contact) *string { return &c.PrimaryLastName }, func(u *ContactUpdate) *string { return u.PrimaryLastName }),
	stringField("studentName", func(c *Contact) *string { return &c.StudentName }, func(u *ContactUpdate) *string { return u.StudentName }),
	stringField("studentGradYear", func(c *Contact) *string { return &c.StudentGradYear }, func(u *ContactUpdate) *string { return u.StudentGradYear }),
	stringField("email", func(c *Contact) *string { return &c.Email }, func(u *ContactUpdate) *string { return u.Email }),
	stringField("phone", func(c *Contact) *string { return &c.Phone }, func(u *ContactUpdate) *string { return u.Phone }),
	stringField("preferredContactMethod", func(c *Contact) *string { return &c.PreferredContactMethod }, func(u *ContactUpdate) *string { return u.PreferredContactMethod }),
	stringField("city", func(c *Contact) *string { return &c.City }, func(u *ContactUpdate) *string { return u.City }),
	stringField("state", func(c *Contact) *string { return &c.State }, func(u *ContactUpdate) *string { return u.State }),
	stringField("schoolName", func(c *Contact) *string { return &c.SchoolName }, func(u *ContactUpdate) *string { return u.SchoolName }),
	stringField("leadSource", func(c *Contact) *string { return &c.LeadSource }, func(u *ContactUpdate) *string { return u.LeadSource }),
	stringField("referredBy", func(c *Contact) *string { return &c.ReferredBy }, func(u *ContactUpdate) *string { return u.ReferredBy }),
	stringField("serviceInterest", func(c *Contact) *string { return &c.ServiceInterest }, func(u *ContactUpdate) *string { return u.ServiceInterest }),
	stringField("budgetFit", func(c *Contact) *string { return &c.BudgetFit }, func(u *ContactUpdate) *string { return u.BudgetFit }),
	stringField("priorityScore", func(c *Contact) *string { return &c.PriorityScore }, func(u *ContactUpdate) *string { return u.PriorityScore }),
	stringField("leadStatus", func(c *Contact) *string { return &c.LeadStatus }, func(u *ContactUpdate) *string { return u.LeadStatus }),
	stringField("statusReason", func(c *Contact) *string { return &c.StatusReason }, func(u *ContactUpdate) *string { return u.StatusReason }),
	stringField("owner", func(c *Contact) *string { return &c.Owner }, func(u *ContactUpdate) *string { return u.Owner }),
	dateField("nextFollowUpDate", func(c *Contact) **time.Time { return &c.NextFollowUpDate }, func(u *ContactUpdate) *DateUpdate { return u.NextFollowUpDate }),
	stringField("nextStep", func(c *Contact) *string { return &c.NextStep }, func(u *ContactUpdate) *string { return u.NextStep }),
	stringField("packageInterestedIn", func(c *Contact) *string { return &c.PackageInterestedIn }, func(u *ContactUpdate) *string { return u.PackageInterestedIn }),
	stringField("packagePurchased", func(c *Contact) *string { return &c.PackagePurchased }, func(u *ContactUpdate) *string { return u.PackagePurchased }),
	dateField("startDate", func(c *Contact) **time.Time { return &c.StartDate }, func(u *ContactUpdate) *DateUpdate { return u.StartDate }),
	dateField("endDate", func(c *Contact) **time.Time { return &c.EndDate }, func(u *ContactUpdate) *DateUpdate { return u.EndDate }),
	stringField("clientStatus", func(c *Contact) *string { return &c.ClientStatus }, func(u *ContactUpdate) *string { return u.ClientStatus }),
	stringField("paymentStatus", func(c *Contact) *string { return &c.PaymentStatus }, func(u *ContactUpdate) *string { return u.PaymentStatus }),
	boolField("contractSent", func(c *Contact) *bool { return &c.ContractSent }, func(u *ContactUpdate) *bool { return u.ContractSent }),
	boolField("contractSigned", func(c *Contact) *bool { return &c.ContractSigned }, func(u *ContactUpdate) *bool { return u.ContractSigned }),
	stringField("notesStatic", func(c *Contact) *string { return &c.NotesStatic }, func(u *ContactUpdate) *string { return u.NotesStatic }),
}
